// internal/common/database/elasticsearch.go
package database

import (
	"context"
	"fmt"
	"io"
	"time"

	"credit-pipeline/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchClient wraps the Elasticsearch client together with the
// analysis index the pipeline writes to.
type ElasticsearchClient struct {
	Client        *elasticsearch.Client
	AnalysisIndex string
}

// NewElasticsearch creates a new Elasticsearch client
func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
	}

	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &ElasticsearchClient{Client: es, AnalysisIndex: cfg.AnalysisIndex}, nil
}

// IndexAnalysisDocument writes one document into the analysis index,
// overwriting any prior document with the same ID. Refresh is forced so
// the document is searchable as soon as the run completes.
func (c *ElasticsearchClient) IndexAnalysisDocument(ctx context.Context, documentID string, body io.Reader) error {
	req := esapi.IndexRequest{
		Index:      c.AnalysisIndex,
		DocumentID: documentID,
		Body:       body,
		Refresh:    "true",
	}

	res, err := req.Do(ctx, c.Client)
	if err != nil {
		return fmt.Errorf("index document %s: %w", documentID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index document %s: %s", documentID, res.Status())
	}
	return nil
}

// Ping tests the Elasticsearch connection
func (c *ElasticsearchClient) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := c.Client.Ping(
		c.Client.Ping.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}

	return nil
}
