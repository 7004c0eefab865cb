package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Audit sinks.
const (
	AuditSinkLog   = "log"
	AuditSinkKafka = "kafka"
)

// EnvConfigFile names the optional YAML file overlaid before environment variables.
const EnvConfigFile = "PARTYBRIDGE_CONFIG"

// Config is the complete runtime configuration.
type Config struct {
	Server Server `yaml:"server"`
	Bridge Bridge `yaml:"bridge"`
	Log    Log    `yaml:"log"`
	Audit  Audit  `yaml:"audit"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Bridge configures the outbound REST bridge.
type Bridge struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Log selects the slog level and handler.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Audit selects where audit events go.
type Audit struct {
	Sink      string   `yaml:"sink"`
	QueueSize int      `yaml:"queue_size"`
	Brokers   []string `yaml:"brokers"`
	Topic     string   `yaml:"topic"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: Server{Addr: ":8080", ShutdownTimeout: 10 * time.Second},
		Bridge: Bridge{BaseURL: "http://localhost:9090", Timeout: 10 * time.Second},
		Log:    Log{Level: "info", Format: "json"},
		Audit:  Audit{Sink: AuditSinkLog, QueueSize: 256, Topic: "party-audit"},
	}
}

// FromEnv builds a Config from defaults and environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg := Defaults()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Load reads defaults, then the YAML file at path when non-empty, then
// environment variables. Later sources win.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Addr, "PARTYBRIDGE_ADDR")
	setString(&cfg.Bridge.BaseURL, "PARTYBRIDGE_BRIDGE_URL")
	setString(&cfg.Log.Level, "PARTYBRIDGE_LOG_LEVEL")
	setString(&cfg.Log.Format, "PARTYBRIDGE_LOG_FORMAT")
	setString(&cfg.Audit.Sink, "PARTYBRIDGE_AUDIT_SINK")
	setString(&cfg.Audit.Topic, "PARTYBRIDGE_KAFKA_TOPIC")
	if v := os.Getenv("PARTYBRIDGE_KAFKA_BROKERS"); v != "" {
		cfg.Audit.Brokers = splitList(v)
	}
	if err := setDuration(&cfg.Server.ShutdownTimeout, "PARTYBRIDGE_SHUTDOWN_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Bridge.Timeout, "PARTYBRIDGE_BRIDGE_TIMEOUT"); err != nil {
		return err
	}
	if v := os.Getenv("PARTYBRIDGE_AUDIT_QUEUE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PARTYBRIDGE_AUDIT_QUEUE_SIZE: %w", err)
		}
		cfg.Audit.QueueSize = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if c.Bridge.BaseURL == "" {
		return fmt.Errorf("bridge base URL is required")
	}
	if c.Bridge.Timeout <= 0 {
		return fmt.Errorf("bridge timeout must be positive")
	}
	switch c.Audit.Sink {
	case AuditSinkLog:
	case AuditSinkKafka:
		if len(c.Audit.Brokers) == 0 {
			return fmt.Errorf("kafka audit sink requires brokers")
		}
		if c.Audit.Topic == "" {
			return fmt.Errorf("kafka audit sink requires a topic")
		}
	default:
		return fmt.Errorf("unknown audit sink %q", c.Audit.Sink)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
