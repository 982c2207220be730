package resolvers

import (
	"context"

	"gorm.io/gorm"

	"pos.GO/graphql"
)

// QueryResolver is the single resolver for all Query fields.
// Methods live in item.go, sale.go, stock.go, search.go.
// New Query fields: use RegisterSchemaExtension + add method on the root
// resolver, or use _extension for fully dynamic resolvers.
type QueryResolver struct {
	db *gorm.DB
}

// NewQueryResolver returns a resolver bound to the given DB.
func NewQueryResolver(db *gorm.DB) *QueryResolver {
	return &QueryResolver{db: db}
}

func (r *QueryResolver) locationID(ctx context.Context) uint {
	return graphql.LocationIDFromContext(ctx)
}

func (r *QueryResolver) searchService() *SearchService {
	return GetSearchService()
}
