package testdataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

// createIndex creates an Elasticsearch index with default mappings. The
// generated documents carry only keyword/numeric fields, so dynamic mapping
// is sufficient.
func createIndex(ctx context.Context, client *elasticsearch.Client, name string) error {
	res, err := client.Indices.Create(name, client.Indices.Create.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("creating index %q: %w", name, err)
	}
	defer res.Body.Close()

	if err := checkResponse(res); err != nil {
		return fmt.Errorf("creating index %q: %w", name, err)
	}

	return nil
}

// deleteIndex deletes an Elasticsearch index. A missing index is an error
// wrapping ErrIndexNotFound, never a silent success.
func deleteIndex(ctx context.Context, client *elasticsearch.Client, name string) error {
	res, err := client.Indices.Delete(
		[]string{name},
		client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("deleting index %q: %w", name, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("deleting index %q: %w", name, ErrIndexNotFound)
	}

	if err := checkResponse(res); err != nil {
		return fmt.Errorf("deleting index %q: %w", name, err)
	}

	return nil
}

// indexExists reports whether the index exists on the cluster.
func indexExists(ctx context.Context, client *elasticsearch.Client, name string) (bool, error) {
	res, err := client.Indices.Exists(
		[]string{name},
		client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("checking index %q: %w", name, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("checking index %q: %w", name, checkResponse(res))
	}
}

// countDocuments returns the number of documents in the index.
func countDocuments(ctx context.Context, client *elasticsearch.Client, name string) (int64, error) {
	res, err := client.Count(
		client.Count.WithIndex(name),
		client.Count.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("counting documents in %q: %w", name, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("counting documents in %q: %w", name, ErrIndexNotFound)
	}
	if err := checkResponse(res); err != nil {
		return 0, fmt.Errorf("counting documents in %q: %w", name, err)
	}

	var result struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decoding count response for %q: %w", name, err)
	}

	return result.Count, nil
}

// bulkFailures collects per-item failure reasons from BulkIndexer callbacks,
// which run concurrently on the indexer's worker goroutines.
type bulkFailures struct {
	mu      sync.Mutex
	reasons []string
}

func (f *bulkFailures) add(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reasons = append(f.reasons, reason)
}

func (f *bulkFailures) list() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reasons
}

// bulkInsertDocuments streams count generated documents into an
// Elasticsearch index using BulkIndexer, one at a time rather than
// materializing the whole set. Per-item failures are collected and returned
// as a *BulkError after the indexer drains.
func bulkInsertDocuments(ctx context.Context, client *elasticsearch.Client, indexName string, count int) error {
	if count <= 0 {
		return nil
	}

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client: client,
		Index:  indexName,
	})
	if err != nil {
		return fmt.Errorf("creating bulk indexer for %q: %w", indexName, err)
	}

	var failures bulkFailures
	for i := 0; i < count; i++ {
		doc := generateDocument(i)
		item := esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(doc.Body),
			OnFailure: func(_ context.Context, _ esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					failures.add(err.Error())
				} else {
					failures.add(fmt.Sprintf("[%d] %s: %s", res.Status, res.Error.Type, res.Error.Reason))
				}
			},
		}

		if err := indexer.Add(ctx, item); err != nil {
			return fmt.Errorf("adding document to bulk indexer: %w", err)
		}
	}

	if err := indexer.Close(ctx); err != nil {
		return fmt.Errorf("closing bulk indexer for %q: %w", indexName, err)
	}

	stats := indexer.Stats()
	reasons := failures.list()
	if stats.NumFailed > 0 || len(reasons) > 0 {
		return &BulkError{Index: indexName, Failed: stats.NumFailed, Reasons: reasons}
	}

	return nil
}

// refreshIndex forces a refresh on the index so documents are immediately searchable.
func refreshIndex(ctx context.Context, client *elasticsearch.Client, name string) error {
	res, err := client.Indices.Refresh(
		client.Indices.Refresh.WithIndex(name),
		client.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("refreshing index %q: %w", name, err)
	}
	defer res.Body.Close()

	if err := checkResponse(res); err != nil {
		return fmt.Errorf("refreshing index %q: %w", name, err)
	}

	return nil
}

// checkResponse checks an Elasticsearch API response for errors.
func checkResponse(res *esapi.Response) error {
	if !res.IsError() {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("elasticsearch error [%s]: %s", res.Status(), string(body))
}
