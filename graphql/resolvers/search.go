package resolvers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	gqlmodels "pos.GO/graphql/models"
)

var (
	searchServiceInstance *SearchService
	searchServiceOnce     sync.Once
)

// GetSearchService returns singleton SearchService.
func GetSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchServiceInstance = NewSearchService()
	})
	return searchServiceInstance
}

type SearchService struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchService() *SearchService {
	index := os.Getenv("ELASTICSEARCH_ITEMS_INDEX")
	if index == "" {
		index = "pos_items"
	}

	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return &SearchService{index: index}
	}

	cfg := elasticsearch.Config{
		Addresses: []string{host},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return &SearchService{index: index}
	}

	return &SearchService{
		client: client,
		index:  index,
	}
}

// SearchItems (resolver) delegates to SearchService, then hydrates from the DB.
func (r *QueryResolver) SearchItems(ctx context.Context, query string) ([]*gqlmodels.Item, error) {
	ids, err := r.searchService().SearchItemIDs(ctx, query)
	if err != nil {
		return nil, err
	}
	items := make([]*gqlmodels.Item, 0, len(ids))
	for _, id := range ids {
		item, err := r.Item(ctx, id)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, item)
		}
	}
	return items, nil
}

// SearchItemIDs queries the items index and returns matching item IDs in rank order.
func (s *SearchService) SearchItemIDs(ctx context.Context, query string) ([]uint, error) {
	if s.client == nil {
		return nil, fmt.Errorf("elasticsearch not configured")
	}

	body := map[string]interface{}{
		"size": 20,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "sku^2", "description"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	var ids []uint
	for _, hit := range esResp.Hits.Hits {
		if id, ok := hit.Source["item_id"].(float64); ok {
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}
