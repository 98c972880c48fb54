// Package config loads fdpctl's YAML configuration file, grounded on
// sweeney-asterisk-mqtt's internal/config package (defaults applied before
// parsing, then validated).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is fdpctl's top-level configuration.
type Config struct {
	MQTT     MQTTConfig `yaml:"mqtt"`
	Manifest string     `yaml:"manifest"`
}

// MQTTConfig configures the broker connection used by fdpctl's message
// subcommands.
type MQTTConfig struct {
	Broker       string `yaml:"broker"`
	ClientID     string `yaml:"client_id"`
	CleanSession bool   `yaml:"clean_session"`
}

// Load reads and validates the configuration file at path, applying
// defaults for any field the file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := &Config{
		MQTT: MQTTConfig{
			Broker:       "tcp://localhost:1883",
			ClientID:     "fdpctl",
			CleanSession: true,
		},
		Manifest: "system.json",
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MQTT.Broker == "" {
		return fmt.Errorf("config: mqtt.broker is required")
	}
	if c.MQTT.ClientID == "" {
		return fmt.Errorf("config: mqtt.client_id is required")
	}
	if c.Manifest == "" {
		return fmt.Errorf("config: manifest is required")
	}
	return nil
}
