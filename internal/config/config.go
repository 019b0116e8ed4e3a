package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when neither a flag nor ENERGYUSAGE_CONFIG names a file.
const DefaultPath = "config.yaml"

// Config holds the energy usage service configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Publish  PublishConfig  `yaml:"publish"`
}

type LoggingConfig struct {
	Env   string `yaml:"env"`   // prod, dev, local (default: local)
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

type DatabaseConfig struct {
	Path          string `yaml:"path"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms"`
}

type GRPCConfig struct {
	Addr               string `yaml:"addr"`
	ShutdownTimeoutSec int    `yaml:"shutdown_timeout_sec"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the metrics listener
}

type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TopicPrefix string `yaml:"topic_prefix"`
	QoS         int    `yaml:"qos"`
	Retain      bool   `yaml:"retain"`
}

type PublishConfig struct {
	Schedule string   `yaml:"schedule"` // standard 5-field cron; empty disables
	Periods  []string `yaml:"periods"`  // daily, weekly, monthly
}

func (d DatabaseConfig) BusyTimeout() time.Duration {
	return time.Duration(d.BusyTimeoutMS) * time.Millisecond
}

func (g GRPCConfig) ShutdownTimeout() time.Duration {
	return time.Duration(g.ShutdownTimeoutSec) * time.Second
}

// Path resolves the config file location from an explicit flag value, then
// ENERGYUSAGE_CONFIG, then DefaultPath.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("ENERGYUSAGE_CONFIG"); env != "" {
		return env
	}
	return DefaultPath
}

// Load reads the YAML file at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Logging.Env == "" {
		c.Logging.Env = "local"
	}
	if c.Database.Path == "" {
		c.Database.Path = "energyusage.db"
	}
	if c.Database.BusyTimeoutMS <= 0 {
		c.Database.BusyTimeoutMS = 5000
	}
	if c.GRPC.Addr == "" {
		c.GRPC.Addr = ":50051"
	}
	if c.GRPC.ShutdownTimeoutSec <= 0 {
		c.GRPC.ShutdownTimeoutSec = 10
	}
	if c.MQTT.Broker == "" {
		c.MQTT.Broker = "tcp://localhost:1883"
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "energyusage"
	}
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = "energyusage"
	}
	if len(c.Publish.Periods) == 0 {
		c.Publish.Periods = []string{"daily", "weekly", "monthly"}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Logging.Env {
	case "prod", "dev", "local":
	default:
		return fmt.Errorf("logging.env must be prod, dev or local, got %q", c.Logging.Env)
	}
	if c.GRPC.Addr == "" {
		return fmt.Errorf("grpc.addr is required")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	for _, p := range c.Publish.Periods {
		switch p {
		case "daily", "weekly", "monthly":
		default:
			return fmt.Errorf("publish.periods: unknown period %q", p)
		}
	}
	if c.Publish.Schedule != "" {
		if _, err := cron.ParseStandard(c.Publish.Schedule); err != nil {
			return fmt.Errorf("publish.schedule %q: %w", c.Publish.Schedule, err)
		}
	}
	return nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		name, def, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = def
		}
		return []byte(val)
	})
}
