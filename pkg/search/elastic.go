package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"notegraph-be/internal/pkg/apperror"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

type ElasticConfig struct {
	Addresses []string
	Username  string
	Password  string
	IndexName string
}

// noteMapping keeps title analysed for matching plus a keyword copy for sorting.
const noteMapping = `{
  "mappings": {
    "properties": {
      "title":     {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "content":   {"type": "text"},
      "tags":      {"type": "keyword"},
      "type":      {"type": "keyword"},
      "createdAt": {"type": "date"},
      "updatedAt": {"type": "date"}
    }
  }
}`

type ElasticIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticIndex(cfg ElasticConfig) (*ElasticIndex, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &ElasticIndex{client: client, index: cfg.IndexName}, nil
}

func (e *ElasticIndex) EnsureIndex(ctx context.Context) error {
	res, err := e.client.Indices.Exists([]string{e.index}, e.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrIndexUnavailable, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = e.client.Indices.Create(
		e.index,
		e.client.Indices.Create.WithBody(strings.NewReader(noteMapping)),
		e.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() && !strings.Contains(readBody(res), "resource_already_exists_exception") {
		return fmt.Errorf("%w: create index %s: %s", apperror.ErrIndexUnavailable, e.index, res.Status())
	}
	return nil
}

func (e *ElasticIndex) IndexDocument(ctx context.Context, id string, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrIndexWriteFailure, err)
	}
	res, err := e.client.Index(
		e.index,
		bytes.NewReader(body),
		e.client.Index.WithDocumentID(id),
		e.client.Index.WithContext(ctx),
	)
	return writeResult(res, err, false)
}

func (e *ElasticIndex) UpdateDocument(ctx context.Context, id string, doc Document) error {
	partial := map[string]interface{}{
		"title":     doc.Title,
		"content":   doc.Content,
		"tags":      nonNilTags(doc.Tags),
		"type":      doc.Type,
		"updatedAt": doc.UpdatedAt,
	}
	body, err := json.Marshal(map[string]interface{}{
		"doc":           partial,
		"doc_as_upsert": true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrIndexWriteFailure, err)
	}
	res, err := e.client.Update(e.index, id, bytes.NewReader(body), e.client.Update.WithContext(ctx))
	return writeResult(res, err, false)
}

func (e *ElasticIndex) DeleteDocument(ctx context.Context, id string) error {
	res, err := e.client.Delete(e.index, id, e.client.Delete.WithContext(ctx))
	return writeResult(res, err, true)
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID        string              `json:"_id"`
			Score     *float64            `json:"_score"`
			Source    Document            `json:"_source"`
			Highlight map[string][]string `json:"highlight"`
		} `json:"hits"`
	} `json:"hits"`
}

func (e *ElasticIndex) Query(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidInput, err)
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s: %s", apperror.ErrIndexUnavailable, res.Status(), readBody(res))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", apperror.ErrIndexUnavailable, err)
	}

	result := &Result{Total: parsed.Hits.Total.Value, Hits: make([]Hit, 0, len(parsed.Hits.Hits))}
	for _, h := range parsed.Hits.Hits {
		hit := Hit{ID: h.ID, Source: h.Source, Highlights: h.Highlight}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		result.Hits = append(result.Hits, hit)
	}
	return result, nil
}

func writeResult(res *esapi.Response, err error, missingOK bool) error {
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrIndexWriteFailure, err)
	}
	defer res.Body.Close()
	if missingOK && res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("%w: %s: %s", apperror.ErrIndexWriteFailure, res.Status(), readBody(res))
	}
	return nil
}

func readBody(res *esapi.Response) string {
	b, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
