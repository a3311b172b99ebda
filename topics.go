package testdataset

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Defaults for the connector integration topic set.
const (
	DefaultReadTopic   = "beam"
	DefaultNumEvents   = DefaultNumDocs
	defaultPartitions  = 1
	defaultReplication = 1
	publishBatchSize   = 1000
)

// TopicSet is the Kafka-side counterpart of DataSet. Connector integration
// tests read events from a fixed topic and write to a per-run topic; TopicSet
// seeds and tears those topics down with the same naming convention as the
// index set, so one run identifier covers both sides.
type TopicSet struct {
	brokers     []string
	readTopic   string
	writeBase   string
	writeTopic  string
	runID       string
	numEvents   int
	partitions  int
	replication int
}

// TopicOption configures a TopicSet.
type TopicOption func(*TopicSet) error

// WithReadTopic overrides the read topic name.
func WithReadTopic(name string) TopicOption {
	return func(t *TopicSet) error {
		if name == "" {
			return errors.New("read topic name must not be empty")
		}
		t.readTopic = name
		return nil
	}
}

// WithTopicRunID sets an explicit run identifier for the write topic suffix.
func WithTopicRunID(id string) TopicOption {
	return func(t *TopicSet) error {
		if id == "" {
			return errors.New("run id must not be empty")
		}
		t.runID = id
		return nil
	}
}

// WithEventCount overrides the number of events to publish.
func WithEventCount(n int) TopicOption {
	return func(t *TopicSet) error {
		if n <= 0 {
			return errors.New("event count must be positive")
		}
		t.numEvents = n
		return nil
	}
}

// WithPartitions sets the partition count for created topics.
func WithPartitions(n int) TopicOption {
	return func(t *TopicSet) error {
		if n <= 0 {
			return errors.New("partition count must be positive")
		}
		t.partitions = n
		return nil
	}
}

// NewTopicSet creates a TopicSet for the given brokers. The run identifier
// follows the same convention as DataSet: epoch milliseconds unless
// overridden, fixed for the lifetime of the value.
func NewTopicSet(brokers []string, opts ...TopicOption) (*TopicSet, error) {
	if len(brokers) == 0 {
		return nil, errors.New("testdataset: brokers must not be empty")
	}

	t := &TopicSet{
		brokers:     brokers,
		readTopic:   DefaultReadTopic,
		numEvents:   DefaultNumEvents,
		partitions:  defaultPartitions,
		replication: defaultReplication,
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, fmt.Errorf("testdataset: applying option: %w", err)
		}
	}

	if t.writeBase == "" {
		t.writeBase = t.readTopic
	}
	if t.runID == "" {
		t.runID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	t.writeTopic = t.writeBase + t.runID

	return t, nil
}

// TopicName resolves the topic name for the given mode.
func (t *TopicSet) TopicName(mode Mode) string {
	if mode == Write {
		return t.writeTopic
	}
	return t.readTopic
}

// RunID returns the run identifier embedded in the write topic name.
func (t *TopicSet) RunID() string {
	return t.runID
}

// CreateAndPublish ensures the topic for the given mode exists and publishes
// the configured number of generated events to it. Event keys and payloads
// match the documents DataSet seeds, so a connector moving events from the
// topic into an index can be verified field by field.
func (t *TopicSet) CreateAndPublish(ctx context.Context, mode Mode) error {
	name := t.TopicName(mode)

	if err := t.createTopic(ctx, name); err != nil {
		return fmt.Errorf("testdataset: %w", err)
	}

	w := &kafka.Writer{
		Addr:      kafka.TCP(t.brokers...),
		Topic:     name,
		Balancer:  &kafka.LeastBytes{},
		BatchSize: publishBatchSize,
	}
	defer w.Close()

	for start := 0; start < t.numEvents; start += publishBatchSize {
		end := min(start+publishBatchSize, t.numEvents)

		msgs := make([]kafka.Message, 0, end-start)
		for i := start; i < end; i++ {
			doc := generateDocument(i)
			msgs = append(msgs, kafka.Message{
				Key:   []byte(doc.ID),
				Value: doc.Body,
			})
		}

		if err := w.WriteMessages(ctx, msgs...); err != nil {
			return fmt.Errorf("testdataset: publishing to %q: %w", name, err)
		}
	}

	return nil
}

// Delete removes the topic for the given mode. A missing topic is an error
// wrapping ErrTopicNotFound.
func (t *TopicSet) Delete(ctx context.Context, mode Mode) error {
	name := t.TopicName(mode)

	conn, err := t.controllerConn(ctx)
	if err != nil {
		return fmt.Errorf("testdataset: %w", err)
	}
	defer conn.Close()

	if err := conn.DeleteTopics(name); err != nil {
		if errors.Is(err, kafka.UnknownTopicOrPartition) {
			return fmt.Errorf("testdataset: deleting topic %q: %w", name, ErrTopicNotFound)
		}
		return fmt.Errorf("testdataset: deleting topic %q: %w", name, err)
	}

	return nil
}

// Exists reports whether the topic for the given mode exists on the brokers.
func (t *TopicSet) Exists(ctx context.Context, mode Mode) (bool, error) {
	name := t.TopicName(mode)

	conn, err := kafka.DialContext(ctx, "tcp", t.brokers[0])
	if err != nil {
		return false, fmt.Errorf("testdataset: connecting to %q: %w", t.brokers[0], err)
	}
	defer conn.Close()

	if _, err := conn.ReadPartitions(name); err != nil {
		if errors.Is(err, kafka.UnknownTopicOrPartition) {
			return false, nil
		}
		return false, fmt.Errorf("testdataset: checking topic %q: %w", name, err)
	}

	return true, nil
}

// createTopic creates the topic on the controller broker. An already existing
// topic is not an error: publish proceeds into it, mirroring the
// create-if-absent semantics of the index side.
func (t *TopicSet) createTopic(ctx context.Context, name string) error {
	conn, err := t.controllerConn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             name,
		NumPartitions:     t.partitions,
		ReplicationFactor: t.replication,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("creating topic %q: %w", name, err)
	}

	return nil
}

// controllerConn dials the cluster controller, which is the only broker that
// accepts topic create/delete requests.
func (t *TopicSet) controllerConn(ctx context.Context) (*kafka.Conn, error) {
	conn, err := kafka.DialContext(ctx, "tcp", t.brokers[0])
	if err != nil {
		return nil, fmt.Errorf("connecting to %q: %w", t.brokers[0], err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return nil, fmt.Errorf("resolving controller: %w", err)
	}

	addr := net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port))
	ctrl, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to controller %q: %w", addr, err)
	}

	return ctrl, nil
}
