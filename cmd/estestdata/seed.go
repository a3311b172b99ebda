package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/spf13/cobra"

	testdataset "github.com/connectorlab/go-elasticsearch-testdataset"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the target index and populate it with generated documents",
	RunE:  runSeed,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete the target index",
	RunE:  runClean,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, stop, ds, cfg, err := setupDataSet(cmd)
	if err != nil {
		return err
	}
	defer stop()

	name := ds.IndexName(cfg.Mode)
	log.Printf("seed: populating index %q with %d documents", name, ds.DocumentCount())
	if err := ds.CreateAndPopulate(ctx, cfg.Mode); err != nil {
		return err
	}

	count, err := ds.Count(ctx, cfg.Mode)
	if err != nil {
		return err
	}
	log.Printf("seed: index %q now holds %d documents", name, count)
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx, stop, ds, cfg, err := setupDataSet(cmd)
	if err != nil {
		return err
	}
	defer stop()

	name := ds.IndexName(cfg.Mode)
	if err := ds.Delete(ctx, cfg.Mode); err != nil {
		return err
	}
	log.Printf("clean: deleted index %q", name)
	return nil
}

// setupDataSet loads config, builds the Elasticsearch client, and constructs
// the data set. The returned context cancels on SIGINT/SIGTERM.
func setupDataSet(cmd *cobra.Command) (context.Context, context.CancelFunc, *testdataset.DataSet, *config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := cfg.validateElasticsearch(); err != nil {
		return nil, nil, nil, nil, err
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticsearchURL},
	})
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	ds, err := testdataset.New(client, cfg.datasetOptions()...)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx, stop, ds, cfg, nil
}
