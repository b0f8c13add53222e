// Package config loads the example host configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mnehpets/apirpc/envelope"
)

const (
	logPrefix = "config:Load"
	envPrefix = "APIRPC"
)

// Config holds the example host configuration.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// Codec is the envelope codec: json or cbor.
	Codec string `envconfig:"CODEC" default:"json"`
	// RequestFile is a raw request to dispatch. When empty a built-in sample
	// request is used.
	RequestFile  string `envconfig:"REQUEST_FILE"`
	PrintCatalog bool   `envconfig:"PRINT_CATALOG" default:"true"`
}

// Load reads the given dotenv files (".env" when none are named) into the
// process environment, then decodes APIRPC_* variables. Missing dotenv files
// are ignored; variables already set take precedence over dotenv values.
func Load(dotenv ...string) (*Config, error) {
	if err := godotenv.Load(dotenv...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s - failed to read dotenv: %w", logPrefix, err)
		}
		slog.Debug(fmt.Sprintf("%s - no dotenv file found, using environment variables", logPrefix))
	}

	var c Config
	if err := envconfig.Process(envPrefix, &c); err != nil {
		return nil, fmt.Errorf("%s - %w", logPrefix, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.EnvelopeCodec(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%s - %s_LOG_LEVEL %q must be debug, info, warn or error", logPrefix, envPrefix, c.LogLevel)
}

// EnvelopeCodec returns the codec named by Codec.
func (c *Config) EnvelopeCodec() (envelope.Codec, error) {
	codec, ok := envelope.Lookup(c.Codec)
	if !ok {
		return envelope.Codec{}, fmt.Errorf("%s - %s_CODEC %q must be json or cbor", logPrefix, envPrefix, c.Codec)
	}
	return codec, nil
}
