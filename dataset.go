package testdataset

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// Mode selects whether an operation targets the read index or the write index.
type Mode int

const (
	// Read targets the fixed index that read tests query. It is seeded once
	// and reused across test runs.
	Read Mode = iota
	// Write targets a per-run index so that concurrent test executions do
	// not step on each other's data.
	Write
)

func (m Mode) String() string {
	switch m {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Defaults for the connector integration data set.
const (
	DefaultReadIndex    = "beam"
	DefaultDocumentType = "test"
	DefaultNumDocs      = 60000

	// AverageDocSize and MaxDocSize describe the byte range of generated
	// documents. Tests use them to estimate index sizes.
	AverageDocSize = 25
	MaxDocSize     = 35
)

// DataSet manages the Elasticsearch data used by the connector's integration
// tests: a fixed read index seeded with generated documents, and a per-run
// write index whose name embeds a run identifier chosen at construction.
//
// Seeding is kept separate from the tests themselves so that the read index
// can be populated once, ahead of the test suite, rather than on every run.
type DataSet struct {
	client     *elasticsearch.Client
	readIndex  string
	writeBase  string
	writeIndex string
	runID      string
	docType    string
	numDocs    int
}

// New creates a DataSet for the given Elasticsearch client.
//
// The run identifier defaults to the current epoch milliseconds and is fixed
// for the lifetime of the DataSet, so IndexName(Write) is stable across
// repeated calls. Pass WithRunID to substitute an explicit identifier; two
// processes constructing DataSets in the same millisecond otherwise collide.
func New(client *elasticsearch.Client, opts ...Option) (*DataSet, error) {
	if client == nil {
		return nil, errors.New("testdataset: client must not be nil")
	}

	d := &DataSet{
		client:    client,
		readIndex: DefaultReadIndex,
		docType:   DefaultDocumentType,
		numDocs:   DefaultNumDocs,
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, fmt.Errorf("testdataset: applying option: %w", err)
		}
	}

	if d.writeBase == "" {
		d.writeBase = d.readIndex
	}
	if d.runID == "" {
		d.runID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	d.writeIndex = d.writeBase + d.runID

	return d, nil
}

// IndexName resolves the index name for the given mode. Pure lookup: the
// write name was fixed when the DataSet was constructed.
func (d *DataSet) IndexName(mode Mode) string {
	if mode == Write {
		return d.writeIndex
	}
	return d.readIndex
}

// RunID returns the run identifier embedded in the write index name.
func (d *DataSet) RunID() string {
	return d.runID
}

// DocumentType returns the document type label carried by this data set.
// Modern clusters no longer use mapping types; the label is kept for callers
// wiring connectors that still expect one.
func (d *DataSet) DocumentType() string {
	return d.docType
}

// DocumentCount returns the number of documents this data set seeds.
func (d *DataSet) DocumentCount() int {
	return d.numDocs
}

// CreateAndPopulate creates the index for the given mode if it does not
// exist, bulk-inserts the configured number of generated documents, and
// refreshes the index so they are immediately searchable.
//
// Failures propagate unmodified: there is no retry at this layer. A partial
// bulk failure surfaces as a *BulkError.
func (d *DataSet) CreateAndPopulate(ctx context.Context, mode Mode) error {
	name := d.IndexName(mode)

	exists, err := indexExists(ctx, d.client, name)
	if err != nil {
		return fmt.Errorf("testdataset: %w", err)
	}
	if !exists {
		if err := createIndex(ctx, d.client, name); err != nil {
			return fmt.Errorf("testdataset: %w", err)
		}
	}

	if err := bulkInsertDocuments(ctx, d.client, name, d.numDocs); err != nil {
		return fmt.Errorf("testdataset: %w", err)
	}

	if err := refreshIndex(ctx, d.client, name); err != nil {
		return fmt.Errorf("testdataset: %w", err)
	}

	return nil
}

// Delete removes the index for the given mode. Deleting an index that does
// not exist returns an error wrapping ErrIndexNotFound rather than silently
// succeeding, so that broken test setup is caught loudly.
func (d *DataSet) Delete(ctx context.Context, mode Mode) error {
	if err := deleteIndex(ctx, d.client, d.IndexName(mode)); err != nil {
		return fmt.Errorf("testdataset: %w", err)
	}
	return nil
}

// Exists reports whether the index for the given mode exists.
func (d *DataSet) Exists(ctx context.Context, mode Mode) (bool, error) {
	ok, err := indexExists(ctx, d.client, d.IndexName(mode))
	if err != nil {
		return false, fmt.Errorf("testdataset: %w", err)
	}
	return ok, nil
}

// Count returns the number of documents in the index for the given mode.
func (d *DataSet) Count(ctx context.Context, mode Mode) (int64, error) {
	n, err := countDocuments(ctx, d.client, d.IndexName(mode))
	if err != nil {
		return 0, fmt.Errorf("testdataset: %w", err)
	}
	return n, nil
}
