package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"office-dashboard/shared"
)

// Config holds the settings of both services.
type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Redis    RedisConfig    `yaml:"redis"`
	NATS     NATSConfig     `yaml:"nats"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Edge     EdgeConfig     `yaml:"edge"`
	Log      LogConfig      `yaml:"log"`
}

// BackendConfig points at the energy backend API.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// RedisConfig configures the snapshot cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// NATSConfig configures the event bus.
type NATSConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// SnapshotConfig configures the snapshot service.
type SnapshotConfig struct {
	Port            string        `yaml:"port"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
}

// EdgeConfig configures the WebSocket edge server.
type EdgeConfig struct {
	Port               string `yaml:"port"`
	SnapshotServiceURL string `yaml:"snapshot_service_url"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: shared.DefaultBackendURL,
			Timeout: shared.DefaultFetchTimeout,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		NATS:  NATSConfig{URL: "nats://127.0.0.1:4222"},
		Snapshot: SnapshotConfig{
			Port:            shared.DefaultSnapshotPort,
			RefreshInterval: shared.DefaultRefreshInterval,
			FetchTimeout:    shared.DefaultFetchTimeout,
		},
		Edge: EdgeConfig{
			Port:               shared.DefaultEdgePort,
			SnapshotServiceURL: shared.DefaultSnapshotURL,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads defaults, then the YAML file at path (when non-empty), then
// environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("PORT"); ok {
		c.Edge.Port = normalizePort(v)
	}
	if v, ok := get("SNAPSHOT_PORT"); ok {
		c.Snapshot.Port = normalizePort(v)
	}
	if v, ok := get("BACKEND_URL"); ok {
		c.Backend.BaseURL = v
	}
	if v, ok := get("SNAPSHOT_SERVICE_URL"); ok {
		c.Edge.SnapshotServiceURL = v
	}
	if v, ok := get("REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	if v, ok := get("REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}
	if v, ok := get("NATS_URL"); ok {
		c.NATS.URL = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("REFRESH_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REFRESH_INTERVAL: %w", err)
		}
		c.Snapshot.RefreshInterval = d
	}
	return nil
}

// Validate rejects settings the services cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Backend.BaseURL == "" {
		errs = append(errs, errors.New("backend.base_url is required"))
	}
	if c.Backend.Timeout <= 0 {
		errs = append(errs, errors.New("backend.timeout must be positive"))
	}
	if c.Snapshot.RefreshInterval <= 0 {
		errs = append(errs, errors.New("snapshot.refresh_interval must be positive"))
	}
	if c.Snapshot.FetchTimeout <= 0 {
		errs = append(errs, errors.New("snapshot.fetch_timeout must be positive"))
	}
	if c.Edge.SnapshotServiceURL == "" {
		errs = append(errs, errors.New("edge.snapshot_service_url is required"))
	}
	return errors.Join(errs...)
}

// normalizePort turns "3000" into ":3000" and leaves "host:3000" untouched.
func normalizePort(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
