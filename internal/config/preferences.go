package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Preferences are operator-tunable product handling defaults. They are
// loaded once at startup and passed explicitly to the components that use
// them.
type Preferences struct {
	// DefaultExpiration is added to the generation time when a product
	// arrives without an expiration.
	DefaultExpiration time.Duration `yaml:"default_expiration"`
	// StrictRouting rejects a generation that contains a product with no
	// distribution channel instead of dropping that product.
	StrictRouting bool `yaml:"strict_routing"`
	// MaxTransmitAttempts bounds retries per product within one session.
	MaxTransmitAttempts int `yaml:"max_transmit_attempts"`
}

const (
	DefaultExpiration          = 24 * time.Hour
	DefaultMaxTransmitAttempts = 3
)

var (
	errExpirationNotPositive = errors.New("default_expiration must be positive")
	errAttemptsNotPositive   = errors.New("max_transmit_attempts must be at least 1")
)

// DefaultPreferences returns the preferences used when no file is configured.
func DefaultPreferences() Preferences {
	return Preferences{
		DefaultExpiration:   DefaultExpiration,
		MaxTransmitAttempts: DefaultMaxTransmitAttempts,
	}
}

// LoadPreferences reads a YAML preferences file. Fields absent from the file
// keep their defaults. An empty path yields DefaultPreferences.
func LoadPreferences(path string) (Preferences, error) {
	prefs := DefaultPreferences()
	if path == "" {
		return prefs, nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Preferences{}, fmt.Errorf("read preferences: %w", err)
	}
	if err := yaml.Unmarshal(contents, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("unmarshal preferences: %w", err)
	}
	if err := prefs.Validate(); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}

// Validate checks that numeric preferences are in range.
func (p Preferences) Validate() error {
	if p.DefaultExpiration <= 0 {
		return errExpirationNotPositive
	}
	if p.MaxTransmitAttempts < 1 {
		return errAttemptsNotPositive
	}
	return nil
}
