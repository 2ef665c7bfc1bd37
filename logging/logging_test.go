package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_HasComponent(t *testing.T) {
	var buf bytes.Buffer
	Init("debug", "text", &buf)

	logger := New("loader")
	logger.Info("ready")

	output := buf.String()
	if !strings.Contains(output, "component=loader") {
		t.Errorf("expected component=loader in output, got: %s", output)
	}
	if !strings.Contains(output, "ready") {
		t.Errorf("expected 'ready' in output, got: %s", output)
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init("info", "json", &buf)

	New("srv").Info("started")

	if !strings.Contains(buf.String(), `"component":"srv"`) {
		t.Errorf("expected JSON component attribute, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
