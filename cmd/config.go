package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/lispy/lisp"
	"gopkg.in/yaml.v3"
)

// Config holds settings read from a YAML configuration file.  Command line
// flags take precedence over file values.
type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history-file"`
	MaxDepth    int    `yaml:"max-depth"`
	Print       bool   `yaml:"print"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Prompt:   "lispy> ",
		MaxDepth: lisp.DefaultMaxDepth,
	}
}

// LoadConfig parses the configuration file at path.  Unknown keys are an
// error.  Keys absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadConfig(path, file)
}

// ReadConfig parses configuration from r.  The name is used in error messages.
func ReadConfig(name string, r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err := decoder.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", name, err)
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("config: %s: max-depth must not be negative: %d", name, cfg.MaxDepth)
	}
	return cfg, nil
}
