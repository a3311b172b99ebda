//go:build integration

package testdataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
)

var testClient *elasticsearch.Client

func TestMain(m *testing.M) {
	addr := os.Getenv("ELASTICSEARCH_URL")
	if addr == "" {
		addr = "http://localhost:9200"
	}

	var err error
	testClient, err = elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
	})
	if err != nil {
		fmt.Printf("creating ES client: %v\n", err)
		os.Exit(1)
	}

	res, err := testClient.Ping()
	if err != nil {
		fmt.Printf("Elasticsearch not available: %v\n", err)
		os.Exit(1)
	}
	res.Body.Close()

	os.Exit(m.Run())
}

// newIntegrationDataSet builds a small data set against a test-scoped index
// so runs do not interfere with real seeded data.
func newIntegrationDataSet(t *testing.T, docs int) *DataSet {
	t.Helper()

	d, err := New(testClient,
		WithReadIndex("testdataset-it-read"),
		WithWriteIndexBase("testdataset-it-write-"),
		WithDocumentCount(docs),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return d
}

func TestCreateAndPopulate_Read(t *testing.T) {
	ctx := context.Background()
	d := newIntegrationDataSet(t, 200)
	t.Cleanup(func() { d.Delete(ctx, Read) })

	if err := d.CreateAndPopulate(ctx, Read); err != nil {
		t.Fatalf("CreateAndPopulate(Read) error: %v", err)
	}

	count, err := d.Count(ctx, Read)
	if err != nil {
		t.Fatalf("Count(Read) error: %v", err)
	}
	if count != 200 {
		t.Errorf("Count(Read) = %d, want 200", count)
	}

	exists, err := d.Exists(ctx, Read)
	if err != nil {
		t.Fatalf("Exists(Read) error: %v", err)
	}
	if !exists {
		t.Error("read index should exist after CreateAndPopulate")
	}
}

func TestCreateAndPopulate_Idempotent(t *testing.T) {
	ctx := context.Background()
	d := newIntegrationDataSet(t, 50)
	t.Cleanup(func() { d.Delete(ctx, Read) })

	if err := d.CreateAndPopulate(ctx, Read); err != nil {
		t.Fatalf("first CreateAndPopulate error: %v", err)
	}
	if err := d.CreateAndPopulate(ctx, Read); err != nil {
		t.Fatalf("second CreateAndPopulate error: %v", err)
	}

	// Document IDs are positional, so re-seeding overwrites.
	count, err := d.Count(ctx, Read)
	if err != nil {
		t.Fatalf("Count(Read) error: %v", err)
	}
	if count != 50 {
		t.Errorf("Count(Read) after re-seed = %d, want 50", count)
	}
}

func TestDelete_RemovesIndex(t *testing.T) {
	ctx := context.Background()
	d := newIntegrationDataSet(t, 10)

	if err := d.CreateAndPopulate(ctx, Write); err != nil {
		t.Fatalf("CreateAndPopulate(Write) error: %v", err)
	}
	if err := d.Delete(ctx, Write); err != nil {
		t.Fatalf("Delete(Write) error: %v", err)
	}

	exists, err := d.Exists(ctx, Write)
	if err != nil {
		t.Fatalf("Exists(Write) error: %v", err)
	}
	if exists {
		t.Error("write index should not exist after Delete")
	}
}

func TestDelete_MissingIndex(t *testing.T) {
	ctx := context.Background()
	d := newIntegrationDataSet(t, 10)

	// Never created: the run-scoped write index cannot pre-exist.
	err := d.Delete(ctx, Write)
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("Delete of missing index = %v, want ErrIndexNotFound", err)
	}
}

func TestWriteIndexes_IsolatedPerRun(t *testing.T) {
	ctx := context.Background()

	a, err := New(testClient,
		WithWriteIndexBase("testdataset-it-iso-"),
		WithRunID("a"),
		WithDocumentCount(10),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	b, err := New(testClient,
		WithWriteIndexBase("testdataset-it-iso-"),
		WithRunID("b"),
		WithDocumentCount(20),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() {
		a.Delete(ctx, Write)
		b.Delete(ctx, Write)
	})

	if err := a.CreateAndPopulate(ctx, Write); err != nil {
		t.Fatalf("run a CreateAndPopulate error: %v", err)
	}
	if err := b.CreateAndPopulate(ctx, Write); err != nil {
		t.Fatalf("run b CreateAndPopulate error: %v", err)
	}

	countA, err := a.Count(ctx, Write)
	if err != nil {
		t.Fatalf("Count(a) error: %v", err)
	}
	countB, err := b.Count(ctx, Write)
	if err != nil {
		t.Fatalf("Count(b) error: %v", err)
	}
	if countA != 10 || countB != 20 {
		t.Errorf("runs interfered: counts %d/%d, want 10/20", countA, countB)
	}
}
