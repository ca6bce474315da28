// Package config loads assertion runtime settings from YAML or TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/rassert/internal/protocol"
)

// Environment variables consulted by Load.
const (
	EnvPath       = "RASSERT_CONFIG"
	EnvDisableAll = "RASSERT_DISABLE_ALL"
	EnvVariant    = "RASSERT_VARIANT"
)

// Report formats.
const (
	FormatPlain = "plain"
	FormatZap   = "zap"
	FormatJSON  = "json"
)

// Output destinations.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
)

// Config holds operator settings for one process.
type Config struct {
	// Variant is "retry" (trap until decided) or "single" (one trap per failure).
	Variant string `yaml:"variant" toml:"variant"`
	// Format selects the failure report layout: plain, zap or json.
	Format string `yaml:"format" toml:"format"`
	// Output is stderr or stdout.
	Output string `yaml:"output" toml:"output"`
	// Suppress lists file:line keys silenced from startup. The file part
	// may be a path suffix.
	Suppress []string `yaml:"suppress,omitempty" toml:"suppress,omitempty"`
	// DisableAll silences every assertion from startup.
	DisableAll bool `yaml:"disable_all" toml:"disable_all"`
	// Journal is an optional path for the hash-chained failure journal.
	Journal string `yaml:"journal,omitempty" toml:"journal,omitempty"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Variant: protocol.Retry.String(),
		Format:  FormatPlain,
		Output:  OutputStderr,
	}
}

// DefaultPath returns ~/.rassert/config.yaml, or "" if home is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rassert", "config.yaml")
}

// ResolvePath picks the config file: explicit path, then RASSERT_CONFIG,
// then DefaultPath.
func ResolvePath(path string) string {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		path = DefaultPath()
	}
	return path
}

// Load reads the config file chosen by ResolvePath. A missing file yields
// defaults, not an error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	path = ResolvePath(path)

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := Parse(path, data, cfg); err != nil {
				return nil, err
			}
			cfg.Path = path
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", displayPath(cfg.Path), err)
	}
	return cfg, nil
}

// Parse decodes data into cfg. Files ending in .toml are TOML, anything
// else is YAML.
func Parse(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvDisableAll); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDisableAll, err)
		}
		c.DisableAll = c.DisableAll || b
	}
	if v := os.Getenv(EnvVariant); v != "" {
		c.Variant = v
	}
	return nil
}

// Validate rejects unknown enum values and malformed suppression keys.
func (c *Config) Validate() error {
	if _, err := protocol.ParseVariant(c.Variant); err != nil {
		return err
	}
	switch c.Format {
	case FormatPlain, FormatZap, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (want plain, zap or json)", c.Format)
	}
	switch c.Output {
	case OutputStderr, OutputStdout:
	default:
		return fmt.Errorf("unknown output %q (want stderr or stdout)", c.Output)
	}
	for i, key := range c.Suppress {
		if err := validateKey(key); err != nil {
			return fmt.Errorf("suppress[%d]: %w", i, err)
		}
	}
	return nil
}

// ProtocolVariant returns the parsed variant. Call after Validate.
func (c *Config) ProtocolVariant() protocol.Variant {
	v, _ := protocol.ParseVariant(c.Variant)
	return v
}

func validateKey(key string) error {
	i := strings.LastIndexByte(key, ':')
	if i <= 0 {
		return fmt.Errorf("%q is not file:line", key)
	}
	if n, err := strconv.Atoi(key[i+1:]); err != nil || n <= 0 {
		return fmt.Errorf("%q has no valid line number", key)
	}
	return nil
}

func displayPath(p string) string {
	if p == "" {
		return "(defaults)"
	}
	return p
}
