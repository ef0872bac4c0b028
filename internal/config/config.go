// Package config loads the numerical settings of the roche command from a
// YAML file.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/StuartLittlefair/trm-roche/advanced"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the computations the command runs. The YAML
// schema mirrors the struct:
//
//	stream:
//	  kick: 1e-5
//	  step: 0.01
//	eclipse:
//	  fill: 0.9
type Config struct {
	Stream  advanced.StreamConfig   `yaml:"stream"`
	Eclipse advanced.EclipseOptions `yaml:"eclipse"`
	FindQ   advanced.FindQOptions   `yaml:"findq"`
}

func Default() *Config {
	return &Config{
		Stream:  advanced.DefaultStreamConfig(),
		Eclipse: advanced.DefaultEclipseOptions(),
		FindQ:   advanced.DefaultFindQOptions(),
	}
}

// Max config file size, 64kB.
const maxFileSize = 64 * 1024

// Load reads a YAML config file. Fields the file omits keep their defaults,
// so partial configs are safe.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, errors.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat config file")
	}
	if fileInfo.Size() > maxFileSize {
		return nil, errors.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
		return nil, errors.Wrapf(err, "failed to parse config %s", cleanPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration %s", cleanPath)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Stream.Validate(); err != nil {
		return err
	}
	if err := c.Eclipse.Validate(); err != nil {
		return err
	}
	return c.FindQ.Validate()
}

// Dump writes the config as YAML, for use as a starting point.
func (c *Config) Dump() ([]byte, error) {
	return yaml.Marshal(c)
}
