package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: LevelWarn, Format: "text", Output: &buf}); err != nil {
		t.Fatal(err)
	}
	defer func() { defaultLogger = nil }()

	LogTranslation("a.py", 3, 0)
	LogWarning("translate", "a.py", 2, "undefined variable foo")

	out := buf.String()
	if strings.Contains(out, "Translation complete") {
		t.Errorf("debug message logged at warn level: %s", out)
	}
	if !strings.Contains(out, "undefined variable foo") || !strings.Contains(out, "line=2") {
		t.Errorf("warning missing: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: LevelDebug, Format: "json", Output: &buf}); err != nil {
		t.Fatal(err)
	}
	defer func() { defaultLogger = nil }()

	LogCodeGen("a.py", 42)
	if !strings.Contains(buf.String(), `"bytes":42`) {
		t.Errorf("json output = %s", buf.String())
	}
}
