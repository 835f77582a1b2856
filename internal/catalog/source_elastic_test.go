// internal/catalog/source_elastic_test.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedTransport serves canned search pages in order, keyed by request count.
type pagedTransport struct {
	pages    []string
	requests int
}

func (t *pagedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	body := `{"hits":{"hits":[]}}`
	if t.requests < len(t.pages) {
		body = t.pages[t.requests]
	}
	t.requests++

	return &http.Response{
		StatusCode: http.StatusOK,
		Header: http.Header{
			"Content-Type":      []string{"application/json"},
			"X-Elastic-Product": []string{"Elasticsearch"},
		},
		Body: io.NopCloser(strings.NewReader(body)),
	}, nil
}

func elasticPage(ids ...string) string {
	hits := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		hits = append(hits, map[string]interface{}{
			"_source": map[string]interface{}{
				"id":       id,
				"name":     "venue " + id,
				"location": map[string]float64{"lat": 42.87, "lon": 74.57},
			},
			"sort": []interface{}{id},
		})
	}
	page, _ := json.Marshal(map[string]interface{}{
		"hits": map[string]interface{}{"hits": hits},
	})
	return string(page)
}

func newElasticTestClient(t *testing.T, transport http.RoundTripper) *elasticsearch.Client {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://elasticsearch.test"},
		Transport: transport,
	})
	require.NoError(t, err)
	return client
}

func TestElasticSourceLoadSinglePage(t *testing.T) {
	client := newElasticTestClient(t, &pagedTransport{pages: []string{elasticPage("v1", "v2")}})

	source := NewElasticSource(client, "venues")
	venues, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, "v1", venues[0].ID)
	assert.Equal(t, "venue v2", venues[1].Name)
}

func TestElasticSourceLoadPaginates(t *testing.T) {
	// A full first page forces a search_after follow-up request.
	firstIDs := make([]string, elasticPageSize)
	for i := range firstIDs {
		firstIDs[i] = fmt.Sprintf("v%04d", i)
	}
	transport := &pagedTransport{pages: []string{
		elasticPage(firstIDs...),
		elasticPage("v9998", "v9999"),
	}}
	client := newElasticTestClient(t, transport)

	source := NewElasticSource(client, "venues")
	venues, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, venues, elasticPageSize+2)
	assert.Equal(t, 2, transport.requests)
}

func TestElasticSourceSearchError(t *testing.T) {
	transport := &errorTransport{}
	client := newElasticTestClient(t, transport)

	source := NewElasticSource(client, "venues")
	_, err := source.Load(context.Background())
	assert.Error(t, err)
}

type errorTransport struct{}

func (t *errorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusInternalServerError,
		Header: http.Header{
			"Content-Type":      []string{"application/json"},
			"X-Elastic-Product": []string{"Elasticsearch"},
		},
		Body: io.NopCloser(strings.NewReader(`{"error":{"reason":"index shards unavailable"}}`)),
	}, nil
}
