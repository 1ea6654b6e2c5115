// Package search implements the availability/search index contracts on
// Elasticsearch. The index is a secondary, eventually-consistent collaborator:
// adapters here only build queries and map hits, they never own the data.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/mosikk/nosql-airbnb/internal/config"
	"github.com/mosikk/nosql-airbnb/internal/domain"
)

// NewClient creates the process-wide Elasticsearch client.
func NewClient(cfg config.ElasticConfig) (*elasticsearch.Client, error) {
	return elasticsearch.NewClient(elasticsearch.Config{Addresses: cfg.Addresses})
}

// searchResponse is the subset of the _search reply the adapters consume.
type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

type searchHit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

// runSearch executes a _search against one index and returns its hits. An
// index that has never been created reports 404; that is the bootstrap case
// and maps to zero hits, distinct from an infrastructure failure.
func runSearch(ctx context.Context, es *elasticsearch.Client, index string, query any) ([]searchHit, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, domain.NewIndexError("build query", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, domain.NewIndexError("search "+index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil // index not yet created: vacuously empty
	}
	if res.IsError() {
		return nil, domain.NewIndexError("search "+index, fmt.Errorf("elasticsearch: %s", res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, domain.NewIndexError("decode search response", err)
	}
	return parsed.Hits.Hits, nil
}

// indexDocument writes one document into an index under the given id,
// creating the index on first use via dynamic mapping.
func indexDocument(ctx context.Context, es *elasticsearch.Client, index, id string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return domain.NewIndexError("encode document", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, es)
	if err != nil {
		return domain.NewIndexError("index "+index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return domain.NewIndexError("index "+index, fmt.Errorf("elasticsearch: %s", res.Status()))
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}
