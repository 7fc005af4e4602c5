package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"digitomize/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath      string `yaml:"db_path"`
	ServerPort  string `yaml:"server_port"`
	LogLevel    string `yaml:"log_level"`
	SyncOnStart bool   `yaml:"sync_on_start"`

	StalenessTTL       time.Duration `yaml:"staleness_ttl"`
	ExternalAPITimeout time.Duration `yaml:"external_api_timeout"`
	Intervals          Intervals     `yaml:"intervals"`
}

// Intervals are the periods of the scheduled tasks. Sources update at
// different cadences so each has its own.
type Intervals struct {
	ContestSync    time.Duration `yaml:"contest_sync"`
	ContestPurge   time.Duration `yaml:"contest_purge"`
	HackathonSync  time.Duration `yaml:"hackathon_sync"`
	HackathonPurge time.Duration `yaml:"hackathon_purge"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:             getEnv("DB_PATH", "digitomize.db"),
		ServerPort:         getEnv("SERVER_PORT", "4001"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		SyncOnStart:        getEnvBool("SYNC_ON_START", true),
		StalenessTTL:       getEnvDuration("STALENESS_TTL", constants.StalenessTTL),
		ExternalAPITimeout: getEnvDuration("EXTERNAL_API_TIMEOUT", constants.ExternalAPITimeout),
		Intervals: Intervals{
			ContestSync:    getEnvDuration("CONTEST_SYNC_INTERVAL", constants.ContestSyncInterval),
			ContestPurge:   getEnvDuration("CONTEST_PURGE_INTERVAL", constants.ContestPurgeInterval),
			HackathonSync:  getEnvDuration("HACKATHON_SYNC_INTERVAL", constants.HackathonSyncInterval),
			HackathonPurge: getEnvDuration("HACKATHON_PURGE_INTERVAL", constants.HackathonPurgeInterval),
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("staleness_ttl", cfg.StalenessTTL).
		Dur("contest_sync", cfg.Intervals.ContestSync).
		Dur("hackathon_sync", cfg.Intervals.HackathonSync).
		Msg("configuration loaded")

	return cfg, nil
}

// overlay decodes a YAML file on top of the env-derived values. Keys absent
// from the file keep their current value.
func (c *Config) overlay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return yaml.NewDecoder(f).Decode(c)
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.StalenessTTL <= 0 {
		return fmt.Errorf("staleness ttl must be positive, got %s", c.StalenessTTL)
	}
	if c.ExternalAPITimeout <= 0 {
		return fmt.Errorf("external api timeout must be positive, got %s", c.ExternalAPITimeout)
	}
	for name, d := range map[string]time.Duration{
		"contest_sync":    c.Intervals.ContestSync,
		"contest_purge":   c.Intervals.ContestPurge,
		"hackathon_sync":  c.Intervals.HackathonSync,
		"hackathon_purge": c.Intervals.HackathonPurge,
	} {
		if d <= 0 {
			return fmt.Errorf("interval %s must be positive, got %s", name, d)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
