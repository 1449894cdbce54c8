// Package config loads the greeting service configuration from defaults,
// an optional YAML file and GREETING_ environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Gobd/presence"
)

// EnvPrefix prefixes every environment variable read by Load.
// GREETING_SERVER_PORT maps to server.port.
const EnvPrefix = "GREETING_"

// Config is the complete service configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Log        LogConfig        `koanf:"log"`
	Validation ValidationConfig `koanf:"validation"`
	Docs       DocsConfig       `koanf:"docs"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// ValidationConfig controls how rejected requests are answered and how
// schema properties are matched to fields.
type ValidationConfig struct {
	Status int    `koanf:"status"`
	Naming string `koanf:"naming"`
}

// DocsConfig controls the served OpenAPI document.
type DocsConfig struct {
	Path    string `koanf:"path"`
	Title   string `koanf:"title"`
	Version string `koanf:"version"`
}

// Addr returns host:port for net.Listen.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NamingPolicy returns the configured presence naming policy.
func (c ValidationConfig) NamingPolicy() presence.NamingPolicy {
	p, err := presence.ParseNamingPolicy(c.Naming)
	if err != nil {
		return presence.CamelCase
	}
	return p
}

func defaults() map[string]any {
	return map[string]any{
		"server.host": "0.0.0.0",
		"server.port": 8080,

		"log.level":  "info",
		"log.pretty": false,

		"validation.status": http.StatusBadRequest,
		"validation.naming": "camel",

		"docs.path":    "/openapi.json",
		"docs.title":   "Greeting API",
		"docs.version": "1.0.0",
	}
}

// Load reads configuration with priority, highest first:
//  1. GREETING_ environment variables
//  2. the YAML file at path, if path is not empty
//  3. defaults
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// GREETING_SERVER_PORT -> server.port
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	return validation.Errors{
		"server": validation.ValidateStruct(&c.Server,
			validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		),
		"log": validation.ValidateStruct(&c.Log,
			validation.Field(&c.Log.Level, validation.In("trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled")),
		),
		"validation": validation.ValidateStruct(&c.Validation,
			validation.Field(&c.Validation.Status, validation.Required, validation.In(http.StatusBadRequest, http.StatusUnprocessableEntity)),
			validation.Field(&c.Validation.Naming, validation.By(func(v any) error {
				_, err := presence.ParseNamingPolicy(v.(string))
				return err
			})),
		),
		"docs": validation.ValidateStruct(&c.Docs,
			validation.Field(&c.Docs.Path, validation.Required, validation.By(func(v any) error {
				if !strings.HasPrefix(v.(string), "/") {
					return errors.New("must start with /")
				}
				return nil
			})),
			validation.Field(&c.Docs.Title, validation.Required),
			validation.Field(&c.Docs.Version, validation.Required),
		),
	}.Filter()
}
