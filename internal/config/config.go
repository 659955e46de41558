package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaNWRTopic    string
	KafkaNWWSTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// SessionDBPath is the SQLite file holding generation session snapshots.
	SessionDBPath string
	// PreferencesFile is an optional YAML file overriding DefaultPreferences.
	PreferencesFile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "climate-products-generated"),
		KafkaNWRTopic:      sharedcfg.EnvOrDefault("KAFKA_NWR_TOPIC", "climate-products-nwr"),
		KafkaNWWSTopic:     sharedcfg.EnvOrDefault("KAFKA_NWWS_TOPIC", "climate-products-nwws"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "climate-report-service"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		SessionDBPath:   sharedcfg.EnvOrDefault("SESSION_DB_PATH", "data/climate-sessions.db"),
		PreferencesFile: os.Getenv("PREFERENCES_FILE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects configurations the service cannot start with.
func (c *Config) validate() error {
	if len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	required := []struct{ env, value string }{
		{"KAFKA_SOURCE_TOPIC", c.KafkaSourceTopic},
		{"KAFKA_NWR_TOPIC", c.KafkaNWRTopic},
		{"KAFKA_NWWS_TOPIC", c.KafkaNWWSTopic},
		{"SESSION_DB_PATH", c.SessionDBPath},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.env)
		}
	}
	if c.KafkaNWRTopic == c.KafkaNWWSTopic {
		return fmt.Errorf("KAFKA_NWR_TOPIC and KAFKA_NWWS_TOPIC must differ, both are %q", c.KafkaNWRTopic)
	}
	return nil
}
