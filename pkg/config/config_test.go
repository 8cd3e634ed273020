package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GriffinCanCode/cobrascript/pkg/logger"
)

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bare: true\njoin: true\nauto_camelcase: true\nindent: 2\nwarnings: true\noutput: out.js\nlog_level: debug\nlog_format: json\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Bare:          true,
		Join:          true,
		AutoCamelcase: true,
		Indent:        2,
		Warnings:      true,
		Output:        "out.js",
		LogLevel:      "debug",
		LogFormat:     "json",
	}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bare: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Indent != 4 || cfg.LogLevel != "error" || !cfg.Bare {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Load(empty) = %+v, want defaults", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "barre: true\n", "field barre not found"},
		{"bad indent", "indent: 40\n", "indent must be between"},
		{"bad level", "log_level: loud\n", "unknown log level"},
		{"bad format", "log_format: xml\n", "log_format must be"},
		{"bad yaml", "bare: [\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, t.TempDir(), tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Discover(no file) = %+v, want defaults", cfg)
	}

	writeFile(t, dir, "join: true\n")
	cfg, err = Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Join {
		t.Error("Discover did not read the settings file")
	}
}

func TestCompilerOptions(t *testing.T) {
	cfg := Config{Bare: true, AutoCamelcase: true, Debug: true, Indent: 2}
	opts := cfg.CompilerOptions()
	if !opts.Bare || !opts.AutoCamelcase || !opts.Debug || opts.Indent != 2 {
		t.Errorf("CompilerOptions() = %+v", opts)
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := Default()
	if got := cfg.LoggerConfig(); got.Level != logger.LevelError || got.Format != "text" {
		t.Errorf("default LoggerConfig() = %+v", got)
	}

	cfg.Debug = true
	cfg.LogFormat = "json"
	if got := cfg.LoggerConfig(); got.Level != logger.LevelDebug || got.Format != "json" {
		t.Errorf("debug LoggerConfig() = %+v", got)
	}
}
