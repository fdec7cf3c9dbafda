// Package config loads settings for the notification server and client.
//
// Settings are layered: defaults, then an optional TOML file, then HTTPNOTIFIER_* environment variables.
// Command line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

type Server struct {
	Addr            string        `toml:"addr"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

type Client struct {
	URL           string        `toml:"url"`
	APIKey        string        `toml:"api_key"`
	MaxTries      int           `toml:"max_tries"`
	RetryDelay    time.Duration `toml:"retry_delay"`
	BackoffFactor float64       `toml:"backoff_factor"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// SlogLevel parses Level, which is one of debug, info, warn, or error.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level '%s'", ErrInvalidConfig, l.Level)
	}
	return level, nil
}

// Config holds all settings for the httpnotifier command.
type Config struct {
	Server Server `toml:"server"`
	Client Client `toml:"client"`
	Log    Log    `toml:"log"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":5020",
			ShutdownTimeout: 5 * time.Second,
		},
		Client: Client{
			URL:           "http://localhost:5020",
			MaxTries:      3,
			RetryDelay:    200 * time.Millisecond,
			BackoffFactor: 2,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path over [Default], then applies environment overrides.
// An empty path skips the file.
// The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if len(path) > 0 {
		if err := cfg.DecodeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// DecodeFile overlays the settings in the TOML file at path.
// Keys that don't match a setting are reported as an error.
func (c *Config) DecodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("%w: unknown keys in '%s': %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overlays any HTTPNOTIFIER_* environment variables that are set.
// Every variable that can't be parsed is reported.
func (c *Config) ApplyEnv() error {
	var (
		env  = getEnv()
		errs []error
	)
	setString := func(key string, target *string) {
		if val, ok := env.lookup(key); ok {
			*target = val
		}
	}
	setDuration := func(key string, target *time.Duration) {
		if val, ok := env.lookup(key); ok {
			d, err := time.ParseDuration(val)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err))
				return
			}
			*target = d
		}
	}
	setString(EnvAddr, &c.Server.Addr)
	setDuration(EnvShutdownTimeout, &c.Server.ShutdownTimeout)
	setString(EnvURL, &c.Client.URL)
	setString(EnvAPIKey, &c.Client.APIKey)
	if val, ok := env.lookup(EnvMaxTries); ok {
		tries, err := strconv.Atoi(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvMaxTries, err))
		} else {
			c.Client.MaxTries = tries
		}
	}
	setDuration(EnvRetryDelay, &c.Client.RetryDelay)
	if val, ok := env.lookup(EnvBackoffFactor); ok {
		factor, err := strconv.ParseFloat(val, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvBackoffFactor, err))
		} else {
			c.Client.BackoffFactor = factor
		}
	}
	setString(EnvLogLevel, &c.Log.Level)
	setString(EnvLogFile, &c.Log.File)
	return errors.Join(errs...)
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}
	if len(strings.TrimSpace(c.Server.Addr)) == 0 {
		invalid("server address is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		invalid("shutdown timeout should be > 0")
	}
	if u, err := url.Parse(c.Client.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		invalid("client URL '%s' should be an http or https URL", c.Client.URL)
	}
	if c.Client.MaxTries < 1 {
		invalid("max tries should be >= 1")
	}
	if c.Client.RetryDelay < 0 {
		invalid("retry delay should be >= 0")
	}
	if c.Client.BackoffFactor < 1 {
		invalid("backoff factor should be >= 1")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
