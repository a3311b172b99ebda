package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	testdataset "github.com/connectorlab/go-elasticsearch-testdataset"
)

var seedTopicCmd = &cobra.Command{
	Use:   "seed-topic",
	Short: "Create the target Kafka topic and publish generated events",
	RunE:  runSeedTopic,
}

var cleanTopicCmd = &cobra.Command{
	Use:   "clean-topic",
	Short: "Delete the target Kafka topic",
	RunE:  runCleanTopic,
}

func runSeedTopic(cmd *cobra.Command, args []string) error {
	ctx, stop, ts, cfg, err := setupTopicSet(cmd)
	if err != nil {
		return err
	}
	defer stop()

	name := ts.TopicName(cfg.Mode)
	log.Printf("seed-topic: publishing to topic %q", name)
	if err := ts.CreateAndPublish(ctx, cfg.Mode); err != nil {
		return err
	}
	log.Printf("seed-topic: topic %q seeded", name)
	return nil
}

func runCleanTopic(cmd *cobra.Command, args []string) error {
	ctx, stop, ts, cfg, err := setupTopicSet(cmd)
	if err != nil {
		return err
	}
	defer stop()

	name := ts.TopicName(cfg.Mode)
	if err := ts.Delete(ctx, cfg.Mode); err != nil {
		return err
	}
	log.Printf("clean-topic: deleted topic %q", name)
	return nil
}

func setupTopicSet(cmd *cobra.Command) (context.Context, context.CancelFunc, *testdataset.TopicSet, *config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := cfg.validateKafka(); err != nil {
		return nil, nil, nil, nil, err
	}

	ts, err := testdataset.NewTopicSet(cfg.KafkaBrokers, cfg.topicOptions()...)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx, stop, ts, cfg, nil
}
