package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	testdataset "github.com/connectorlab/go-elasticsearch-testdataset"
)

// config holds the connection parameters and seeding knobs for one
// invocation, assembled from defaults, environment, an optional YAML
// profile, and flags, in that order of precedence.
type config struct {
	ElasticsearchURL string
	KafkaBrokers     []string
	ReadIndex        string
	ReadTopic        string
	Mode             testdataset.Mode
	RunID            string
	Documents        int
}

// profile is the YAML shape of the --profile file.
type profile struct {
	ElasticsearchURL string   `yaml:"elasticsearch_url"`
	KafkaBrokers     []string `yaml:"kafka_brokers"`
	ReadIndex        string   `yaml:"read_index"`
	ReadTopic        string   `yaml:"read_topic"`
	Documents        int      `yaml:"documents"`
}

// loadConfig builds the effective config for a command invocation.
func loadConfig(cmd *cobra.Command) (*config, error) {
	_ = godotenv.Load(".env")

	cfg := &config{
		ElasticsearchURL: elasticsearchURLFromEnv(),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
	}

	if profilePath, _ := cmd.Flags().GetString("profile"); profilePath != "" {
		p, err := loadProfile(profilePath)
		if err != nil {
			return nil, err
		}
		if p.ElasticsearchURL != "" {
			cfg.ElasticsearchURL = p.ElasticsearchURL
		}
		if len(p.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = p.KafkaBrokers
		}
		if p.ReadIndex != "" {
			cfg.ReadIndex = p.ReadIndex
		}
		if p.ReadTopic != "" {
			cfg.ReadTopic = p.ReadTopic
		}
		if p.Documents > 0 {
			cfg.Documents = p.Documents
		}
	}

	if cmd.Flags().Changed("es-url") {
		cfg.ElasticsearchURL, _ = cmd.Flags().GetString("es-url")
	}
	if cmd.Flags().Changed("brokers") {
		raw, _ := cmd.Flags().GetString("brokers")
		cfg.KafkaBrokers = splitList(raw)
	}
	if cmd.Flags().Changed("documents") {
		cfg.Documents, _ = cmd.Flags().GetInt("documents")
	}

	modeStr, _ := cmd.Flags().GetString("mode")
	mode, err := parseMode(modeStr)
	if err != nil {
		return nil, err
	}
	cfg.Mode = mode

	runID, _ := cmd.Flags().GetString("run-id")
	cfg.RunID = resolveRunID(runID)

	return cfg, nil
}

func (c *config) validateElasticsearch() error {
	if c.ElasticsearchURL == "" {
		return errors.New("config: Elasticsearch URL is required (set --es-url, ELASTICSEARCH_URL, or ES_HOST)")
	}
	return nil
}

func (c *config) validateKafka() error {
	if len(c.KafkaBrokers) == 0 {
		return errors.New("config: Kafka brokers are required (set --brokers or KAFKA_BROKERS)")
	}
	return nil
}

// datasetOptions translates the config into DataSet options.
func (c *config) datasetOptions() []testdataset.Option {
	var opts []testdataset.Option
	if c.ReadIndex != "" {
		opts = append(opts, testdataset.WithReadIndex(c.ReadIndex))
	}
	if c.RunID != "" {
		opts = append(opts, testdataset.WithRunID(c.RunID))
	}
	if c.Documents > 0 {
		opts = append(opts, testdataset.WithDocumentCount(c.Documents))
	}
	return opts
}

// topicOptions translates the config into TopicSet options.
func (c *config) topicOptions() []testdataset.TopicOption {
	var opts []testdataset.TopicOption
	if c.ReadTopic != "" {
		opts = append(opts, testdataset.WithReadTopic(c.ReadTopic))
	}
	if c.RunID != "" {
		opts = append(opts, testdataset.WithTopicRunID(c.RunID))
	}
	if c.Documents > 0 {
		opts = append(opts, testdataset.WithEventCount(c.Documents))
	}
	return opts
}

// elasticsearchURLFromEnv resolves the cluster URL from the environment.
// ELASTICSEARCH_URL wins; otherwise the URL is composed from ES_HOST and
// ES_HTTP_PORT.
func elasticsearchURLFromEnv() string {
	if v := os.Getenv("ELASTICSEARCH_URL"); v != "" {
		return v
	}
	host := os.Getenv("ES_HOST")
	if host == "" {
		return ""
	}
	port := getEnv("ES_HTTP_PORT", "9200")
	return "http://" + host + ":" + port
}

func loadProfile(path string) (*profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading profile %q: %w", path, err)
	}

	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: parsing profile %q: %w", path, err)
	}

	return &p, nil
}

func parseMode(s string) (testdataset.Mode, error) {
	switch strings.ToLower(s) {
	case "read":
		return testdataset.Read, nil
	case "write":
		return testdataset.Write, nil
	default:
		return 0, fmt.Errorf("config: mode must be read or write, got %q", s)
	}
}

// resolveRunID maps the --run-id flag to an explicit identifier. Empty means
// let the library pick its epoch-millisecond default; "auto" asks for a UUID,
// which cannot collide across processes started in the same millisecond.
func resolveRunID(flag string) string {
	if flag == "auto" {
		return uuid.NewString()
	}
	return flag
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
