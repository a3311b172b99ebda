// Command estestdata seeds and tears down the Elasticsearch indices and
// Kafka topics used by the connector's integration tests.
//
// Seeding the read index ahead of the test suite keeps read tests fast and
// repeatable: they only query, never populate.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "estestdata",
	Short:        "Manage connector integration test data (Elasticsearch indices, Kafka topics)",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("es-url", "", "Elasticsearch URL (default from ELASTICSEARCH_URL or ES_HOST/ES_HTTP_PORT)")
	rootCmd.PersistentFlags().String("brokers", "", "comma-separated Kafka brokers (default from KAFKA_BROKERS)")
	rootCmd.PersistentFlags().String("mode", "read", "which data set to target: read or write")
	rootCmd.PersistentFlags().String("run-id", "", "run identifier for write names; empty = epoch millis, \"auto\" = random UUID")
	rootCmd.PersistentFlags().Int("documents", 0, "override the number of documents/events to seed")
	rootCmd.PersistentFlags().String("profile", "", "path to a YAML profile file with connection parameters")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(seedTopicCmd)
	rootCmd.AddCommand(cleanTopicCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
