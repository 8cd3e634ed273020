// Package config loads project settings for the cobrascript command.
//
// Settings come from a YAML file; command-line flags override them.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/GriffinCanCode/cobrascript/pkg/compiler"
	"github.com/GriffinCanCode/cobrascript/pkg/logger"
)

// FileName is the settings file looked up in the working directory.
const FileName = ".cobrascript.yaml"

// Config holds every project setting.
type Config struct {
	Bare          bool   `yaml:"bare"`
	Join          bool   `yaml:"join"`
	AutoCamelcase bool   `yaml:"auto_camelcase"`
	Indent        int    `yaml:"indent"`
	Debug         bool   `yaml:"debug"`
	Warnings      bool   `yaml:"warnings"`
	Output        string `yaml:"output"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Indent:    4,
		LogLevel:  "error",
		LogFormat: "text",
	}
}

// Load reads path on top of the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads FileName from dir when it exists and falls back to the
// defaults otherwise.
func Discover(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Indent < 0 || c.Indent > 16 {
		return fmt.Errorf("indent must be between 0 and 16, got %d", c.Indent)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// CompilerOptions maps the settings onto compiler options.
func (c Config) CompilerOptions() compiler.Options {
	return compiler.Options{
		Bare:          c.Bare,
		AutoCamelcase: c.AutoCamelcase,
		Debug:         c.Debug,
		Indent:        c.Indent,
	}
}

// LoggerConfig maps the settings onto a logger configuration. Debug mode
// forces the debug level so the translation trace is visible.
func (c Config) LoggerConfig() logger.Config {
	cfg := logger.DefaultConfig()
	if level, err := logger.ParseLevel(c.LogLevel); err == nil {
		cfg.Level = level
	}
	if c.Debug {
		cfg.Level = logger.LevelDebug
	}
	if c.LogFormat != "" {
		cfg.Format = c.LogFormat
	}
	return cfg
}
