// Package storage implements the Elasticsearch adapter for the content
// pipeline: reading pending generated content and writing back analyzed
// documents.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/seoforge/content-analyzer/internal/config"
	"github.com/seoforge/content-analyzer/internal/domain"
)

// NewElasticsearchClient builds a client from config.
func NewElasticsearchClient(cfg config.ElasticsearchConfig) (*es.Client, error) {
	client, err := es.NewClient(es.Config{
		Addresses:  []string{cfg.URL},
		Username:   cfg.Username,
		Password:   cfg.Password,
		MaxRetries: cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return client, nil
}

// ElasticsearchStorage implements content-index operations for the analyzer.
type ElasticsearchStorage struct {
	client        *es.Client
	contentIndex  string
	analyzedIndex string
}

// NewElasticsearchStorage creates a new Elasticsearch storage instance.
func NewElasticsearchStorage(client *es.Client, contentIndex, analyzedIndex string) *ElasticsearchStorage {
	return &ElasticsearchStorage{
		client:        client,
		contentIndex:  contentIndex,
		analyzedIndex: analyzedIndex,
	}
}

// QueryPendingContent returns generated content awaiting analysis, oldest
// first.
func (s *ElasticsearchStorage) QueryPendingContent(ctx context.Context, batchSize int) ([]*domain.Content, error) {
	query := map[string]any{
		"query": map[string]any{
			"term": map[string]any{
				"analysis_status": domain.StatusPending,
			},
		},
		"size": batchSize,
		"sort": []map[string]any{
			{
				"generated_at": map[string]any{
					"order": "asc",
				},
			},
		},
	}

	queryBytes, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.contentIndex),
		s.client.Search.WithBody(bytes.NewReader(queryBytes)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source domain.Content `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	contents := make([]*domain.Content, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		content := hit.Source
		if content.ID == "" {
			content.ID = hit.ID
		}
		contents = append(contents, &content)
	}

	return contents, nil
}

// IndexAnalyzedContent writes an analyzed document to the analyzed index.
func (s *ElasticsearchStorage) IndexAnalyzedContent(ctx context.Context, content *domain.AnalyzedContent) error {
	content.AnalysisStatus = domain.StatusAnalyzed
	now := time.Now().UTC()
	content.AnalyzedAt = &now

	docBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	res, err := s.client.Index(
		s.analyzedIndex,
		bytes.NewReader(docBytes),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(content.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

// BulkIndexAnalyzedContent indexes multiple analyzed documents in one
// request.
func (s *ElasticsearchStorage) BulkIndexAnalyzedContent(ctx context.Context, contents []*domain.AnalyzedContent) error {
	if len(contents) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, content := range contents {
		meta := map[string]any{
			"index": map[string]any{
				"_index": s.analyzedIndex,
				"_id":    content.ID,
			},
		}

		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return fmt.Errorf("failed to encode meta: %w", err)
		}

		if err := json.NewEncoder(&buf).Encode(content); err != nil {
			return fmt.Errorf("failed to encode content: %w", err)
		}
	}

	res, err := s.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("bulk request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk indexing error: %s", res.String())
	}

	return nil
}

// UpdateContentStatus updates the analysis_status field in the content
// index.
func (s *ElasticsearchStorage) UpdateContentStatus(ctx context.Context, contentID, status string, analyzedAt time.Time) error {
	update := map[string]any{
		"doc": map[string]any{
			"analysis_status": status,
			"analyzed_at":     analyzedAt,
		},
	}

	updateBytes, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	res, err := s.client.Update(
		s.contentIndex,
		contentID,
		bytes.NewReader(updateBytes),
		s.client.Update.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error updating document: %s", res.String())
	}

	return nil
}

// EnsureIndices creates the content and analyzed indices with their
// mappings if they do not exist yet.
func (s *ElasticsearchStorage) EnsureIndices(ctx context.Context) error {
	indices := map[string]*IndexMapping{
		s.contentIndex:  NewContentMapping(),
		s.analyzedIndex: NewAnalyzedContentMapping(),
	}

	for name, mapping := range indices {
		exists, err := s.indexExists(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		body, err := mapping.JSON()
		if err != nil {
			return err
		}

		res, err := s.client.Indices.Create(
			name,
			s.client.Indices.Create.WithContext(ctx),
			s.client.Indices.Create.WithBody(bytes.NewReader(body)),
		)
		if err != nil {
			return fmt.Errorf("failed to create index %s: %w", name, err)
		}
		res.Body.Close()

		if res.IsError() {
			return fmt.Errorf("error creating index %s: %s", name, res.String())
		}
	}

	return nil
}

func (s *ElasticsearchStorage) indexExists(ctx context.Context, name string) (bool, error) {
	res, err := s.client.Indices.Exists(
		[]string{name},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("failed to check index %s: %w", name, err)
	}
	defer res.Body.Close()

	return res.StatusCode == 200, nil
}

// TestConnection tests the connection to Elasticsearch.
func (s *ElasticsearchStorage) TestConnection(ctx context.Context) error {
	res, err := s.client.Info()
	if err != nil {
		return fmt.Errorf("failed to connect to elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error response from elasticsearch: %s", res.String())
	}

	return nil
}
