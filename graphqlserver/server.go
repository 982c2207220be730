package graphqlserver

import (
	"context"
	"encoding/json"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"pos.GO/graphql"
	gqlmodels "pos.GO/graphql/models"
	"pos.GO/graphql/registry"
	"pos.GO/graphql/resolvers"
)

// RootResolver is the root for graphql-go. Field methods delegate to the
// resolvers package.
type RootResolver struct {
	DB *gorm.DB
}

func (r *RootResolver) query() *resolvers.QueryResolver {
	return resolvers.NewQueryResolver(r.DB)
}

// ItemArgs matches the item query arguments.
type ItemArgs struct {
	ID gql.ID
}

func (r *RootResolver) Item(ctx context.Context, args ItemArgs) (*gqlmodels.Item, error) {
	return r.query().Item(ctx, parseID(args.ID))
}

// SaleArgs matches the sale query arguments.
type SaleArgs struct {
	ID gql.ID
}

func (r *RootResolver) Sale(ctx context.Context, args SaleArgs) (*gqlmodels.Sale, error) {
	return r.query().Sale(ctx, parseID(args.ID))
}

// SalesArgs matches the sales query arguments (defaults in schema: limit=20, offset=0).
type SalesArgs struct {
	Limit  int32
	Offset int32
}

func (r *RootResolver) Sales(ctx context.Context, args SalesArgs) (*gqlmodels.SaleList, error) {
	return r.query().Sales(ctx, int(args.Limit), int(args.Offset))
}

// StockArgs matches the stock query arguments.
type StockArgs struct {
	VariantID  gql.ID
	LocationID gql.ID
}

func (r *RootResolver) Stock(ctx context.Context, args StockArgs) (*gqlmodels.StockInfo, error) {
	return r.query().Stock(ctx, parseID(args.VariantID), parseID(args.LocationID))
}

// LowStockArgs matches the lowStock query arguments.
type LowStockArgs struct {
	LocationID *gql.ID
}

func (r *RootResolver) LowStock(ctx context.Context, args LowStockArgs) ([]*gqlmodels.StockInfo, error) {
	var locationID uint
	if args.LocationID != nil {
		locationID = parseID(*args.LocationID)
	}
	return r.query().LowStock(ctx, locationID)
}

// SearchItemsArgs matches the searchItems query arguments.
type SearchItemsArgs struct {
	Query string
}

func (r *RootResolver) SearchItems(ctx context.Context, args SearchItemsArgs) ([]*gqlmodels.Item, error) {
	return r.query().SearchItems(ctx, args.Query)
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *RootResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func parseID(id gql.ID) uint {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
