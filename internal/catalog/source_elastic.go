// internal/catalog/source_elastic.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"foodfinder/internal/models"
)

const elasticPageSize = 500

// ElasticSource loads venues from an index, for deployments that keep the
// scraped catalog in Elasticsearch. Pagination uses search_after over the
// venue id so a full scan stays consistent.
type ElasticSource struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticSource(client *elasticsearch.Client, index string) *ElasticSource {
	return &ElasticSource{client: client, index: index}
}

func (s *ElasticSource) Name() string { return "elasticsearch" }

type elasticHit struct {
	Source models.Venue  `json:"_source"`
	Sort   []interface{} `json:"sort"`
}

type elasticResponse struct {
	Hits struct {
		Hits []elasticHit `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticSource) Load(ctx context.Context) ([]models.Venue, error) {
	var (
		venues      []models.Venue
		searchAfter []interface{}
	)

	for {
		queryBody := map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
			"sort":  []interface{}{map[string]interface{}{"id": "asc"}},
			"size":  elasticPageSize,
		}
		if searchAfter != nil {
			queryBody["search_after"] = searchAfter
		}

		body, _ := json.Marshal(queryBody)
		req := esapi.SearchRequest{
			Index: []string{s.index},
			Body:  bytes.NewReader(body),
		}

		res, err := req.Do(ctx, s.client)
		if err != nil {
			return nil, fmt.Errorf("elasticsearch source: search: %w", err)
		}

		page, err := decodePage(res)
		if err != nil {
			return nil, err
		}
		if len(page.Hits.Hits) == 0 {
			break
		}

		for _, hit := range page.Hits.Hits {
			venues = append(venues, hit.Source)
		}
		searchAfter = page.Hits.Hits[len(page.Hits.Hits)-1].Sort
		if searchAfter == nil || len(page.Hits.Hits) < elasticPageSize {
			break
		}
	}

	return venues, nil
}

func decodePage(res *esapi.Response) (*elasticResponse, error) {
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch source: search error: %s: %s", res.Status(), msg)
	}

	var page elasticResponse
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("elasticsearch source: decode response: %w", err)
	}
	return &page, nil
}
