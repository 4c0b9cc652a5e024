package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sofmeright/fedguard/src/guard"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFiles are tried in order when no path is given.
var DefaultConfigFiles = []string{".fedguard.yml", ".fedguard.yaml", ".fedguard.toml"}

// Config is the top-level fedguard configuration.
type Config struct {
	RequiredVersion string      `yaml:"required_version" toml:"required_version"`
	Guard           GuardConfig `yaml:"guard" toml:"guard"`

	// Path is the file the configuration was read from.
	Path string `yaml:"-" toml:"-"`
}

// Load reads configuration from a YAML or TOML file.
// If path is empty, it tries the default files in dir.
func Load(dir, path string) (*Config, error) {
	if path == "" {
		for _, name := range DefaultConfigFiles {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return nil, &guard.ConfigurationError{
				Reason: fmt.Sprintf("no configuration file found (tried %s)", strings.Join(DefaultConfigFiles, ", ")),
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &guard.ConfigurationError{Reason: fmt.Sprintf("config file %s does not exist", path)}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes configuration data. ext selects the format: ".toml" for TOML,
// anything else for YAML.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := defaults()
	if strings.EqualFold(ext, ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Guard: DefaultGuardConfig(),
	}
}
