package testdataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIndexNotFound is returned when an operation targets an index that
	// does not exist on the cluster.
	ErrIndexNotFound = errors.New("index not found")

	// ErrTopicNotFound is returned when an operation targets a Kafka topic
	// that does not exist on the brokers.
	ErrTopicNotFound = errors.New("topic not found")
)

// BulkError reports a partially failed bulk insert. The insert is not rolled
// back: some documents may have been indexed.
type BulkError struct {
	Index   string
	Failed  uint64
	Reasons []string
}

func (e *BulkError) Error() string {
	msg := fmt.Sprintf("bulk insert into %q: %d documents failed", e.Index, e.Failed)
	if len(e.Reasons) > 0 {
		msg += ": " + strings.Join(e.Reasons, "; ")
	}
	return msg
}
