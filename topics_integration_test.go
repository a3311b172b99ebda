//go:build integration

package testdataset

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// kafkaBrokers gates Kafka integration tests: they run only when
// KAFKA_BROKERS is set, so the Elasticsearch-only suite stays usable without
// a broker.
func kafkaBrokers(t *testing.T) []string {
	t.Helper()

	raw := os.Getenv("KAFKA_BROKERS")
	if raw == "" {
		t.Skip("KAFKA_BROKERS not set, skipping Kafka integration test")
	}
	return strings.Split(raw, ",")
}

func TestTopicSet_CreateAndPublish(t *testing.T) {
	ctx := context.Background()
	ts, err := NewTopicSet(kafkaBrokers(t),
		WithReadTopic("testdataset-it-topic"),
		WithEventCount(100),
	)
	if err != nil {
		t.Fatalf("NewTopicSet() error: %v", err)
	}
	t.Cleanup(func() { ts.Delete(ctx, Write) })

	if err := ts.CreateAndPublish(ctx, Write); err != nil {
		t.Fatalf("CreateAndPublish(Write) error: %v", err)
	}

	exists, err := ts.Exists(ctx, Write)
	if err != nil {
		t.Fatalf("Exists(Write) error: %v", err)
	}
	if !exists {
		t.Error("write topic should exist after CreateAndPublish")
	}
}

func TestTopicSet_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	ts, err := NewTopicSet(kafkaBrokers(t),
		WithReadTopic("testdataset-it-missing"),
	)
	if err != nil {
		t.Fatalf("NewTopicSet() error: %v", err)
	}

	err = ts.Delete(ctx, Write)
	if !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("Delete of missing topic = %v, want ErrTopicNotFound", err)
	}
}
