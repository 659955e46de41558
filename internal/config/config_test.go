package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "climate-products-generated", cfg.KafkaSourceTopic)
	assert.Equal(t, "climate-products-nwr", cfg.KafkaNWRTopic)
	assert.Equal(t, "climate-products-nwws", cfg.KafkaNWWSTopic)
	assert.Equal(t, "climate-report-service", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Equal(t, "data/climate-sessions.db", cfg.SessionDBPath)
	assert.Empty(t, cfg.PreferencesFile)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "generated")
	t.Setenv("KAFKA_NWR_TOPIC", "radio")
	t.Setenv("KAFKA_NWWS_TOPIC", "wire")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("SESSION_DB_PATH", "/var/lib/climate/sessions.db")
	t.Setenv("PREFERENCES_FILE", "/etc/climate/prefs.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "generated", cfg.KafkaSourceTopic)
	assert.Equal(t, "radio", cfg.KafkaNWRTopic)
	assert.Equal(t, "wire", cfg.KafkaNWWSTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, "/var/lib/climate/sessions.db", cfg.SessionDBPath)
	assert.Equal(t, "/etc/climate/prefs.yaml", cfg.PreferencesFile)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	for _, v := range []string{"0", "9999"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("BATCH_SIZE", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "BATCH_SIZE")
		})
	}
}

func TestLoad_InvalidBatchFlushInterval(t *testing.T) {
	t.Setenv("BATCH_FLUSH_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_FLUSH_INTERVAL")
}

func TestLoad_SameChannelTopics(t *testing.T) {
	t.Setenv("KAFKA_NWR_TOPIC", "products")
	t.Setenv("KAFKA_NWWS_TOPIC", "products")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_NWWS_TOPIC")
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no brokers", func(c *Config) { c.KafkaBrokers = nil }, "KAFKA_BROKERS"},
		{"no source topic", func(c *Config) { c.KafkaSourceTopic = "" }, "KAFKA_SOURCE_TOPIC"},
		{"no nwr topic", func(c *Config) { c.KafkaNWRTopic = "" }, "KAFKA_NWR_TOPIC"},
		{"no nwws topic", func(c *Config) { c.KafkaNWWSTopic = "" }, "KAFKA_NWWS_TOPIC"},
		{"no session db", func(c *Config) { c.SessionDBPath = "" }, "SESSION_DB_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadPreferences_EmptyPath(t *testing.T) {
	prefs, err := LoadPreferences("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences(), prefs)
}

func TestLoadPreferences_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strict_routing: true\n"), 0o600))

	prefs, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.True(t, prefs.StrictRouting)
	assert.Equal(t, DefaultExpiration, prefs.DefaultExpiration)
	assert.Equal(t, DefaultMaxTransmitAttempts, prefs.MaxTransmitAttempts)
}

func TestLoadPreferences_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	body := "default_expiration: 36h\nstrict_routing: false\nmax_transmit_attempts: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	prefs, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, Preferences{DefaultExpiration: 36 * time.Hour, MaxTransmitAttempts: 5}, prefs)
}

func TestLoadPreferences_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero attempts", "max_transmit_attempts: 0\n"},
		{"negative expiration", "default_expiration: -1h\n"},
		{"malformed", "strict_routing: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			_, err := LoadPreferences(path)
			require.Error(t, err)
		})
	}
}

func TestLoadPreferences_MissingFile(t *testing.T) {
	_, err := LoadPreferences(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
