package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/cursorkeep/pkg/adapters/file"
	"github.com/aretw0/cursorkeep/pkg/session"
)

// Supported backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Environment overrides, applied after the config file.
const (
	EnvRetentionDays = "CURSORKEEP_RETENTION_DAYS"
	EnvSessionFile   = "CURSORKEEP_SESSION_FILE"
)

// Config is the runtime configuration of cursorkeep.
type Config struct {
	RetentionDays int    `mapstructure:"retention_days"`
	SessionFile   string `mapstructure:"session_file"`
	Backend       string `mapstructure:"backend"`
	Redis         Redis  `mapstructure:"redis"`
	Log           Log    `mapstructure:"log"`
}

// Redis configures the redis backend.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

// Log configures the application logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		RetentionDays: session.DefaultRetentionDays,
		SessionFile:   DefaultSessionPath(),
		Backend:       BackendFile,
		Redis: Redis{
			Addr: "localhost:6379",
			Key:  "cursorkeep:table",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultSessionPath returns the session file location inside the user's
// application-data directory.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "cursorkeep", file.DefaultFileName)
}

// Load reads a configuration file (YAML or JSON) on top of the defaults.
// A missing file, or an empty path, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := readRaw(path)
		if err != nil {
			return Config{}, err
		}
		if err := decode(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the store cannot run with.
func (c Config) Validate() error {
	if c.RetentionDays < 0 {
		return fmt.Errorf("retention_days must be >= 0, got %d", c.RetentionDays)
	}
	switch c.Backend {
	case BackendFile:
		if c.SessionFile == "" {
			return fmt.Errorf("session_file is required for the %q backend", BackendFile)
		}
	case BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the %q backend", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown backend %q (want file, memory or redis)", c.Backend)
	}
	return nil
}

func readRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file means defaults
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return raw, nil
}

func decode(raw map[string]any, cfg *Config) error {
	if raw == nil {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvRetentionDays); ok {
		days, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRetentionDays, err)
		}
		cfg.RetentionDays = days
	}
	if v, ok := os.LookupEnv(EnvSessionFile); ok && v != "" {
		cfg.SessionFile = v
	}
	return nil
}
