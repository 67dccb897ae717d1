package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupBuffer installs a global logger writing to a buffer and restores the
// previous global state when the test ends.
func setupBuffer(t *testing.T, level LogLevel, pretty bool) *bytes.Buffer {
	t.Helper()

	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	buf := &bytes.Buffer{}
	if _, err := Setup(Config{Level: level, Pretty: pretty, Output: buf}); err != nil {
		t.Fatalf("Setup(%q) error = %v", level, err)
	}
	return buf
}

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return fields
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != LevelInfo || cfg.Pretty || cfg.Output == nil {
		t.Errorf("DefaultConfig() = %+v, want info JSON logging to stderr", cfg)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetup_RejectsUnknownLevel(t *testing.T) {
	prevLogger := log.Logger
	defer func() { log.Logger = prevLogger }()

	buf := &bytes.Buffer{}
	if _, err := Setup(Config{Level: "verbose", Output: buf}); err == nil {
		t.Fatal("Setup accepted an unknown level")
	}
	log.Error().Msg("after failed setup")
	if buf.Len() != 0 {
		t.Errorf("Setup replaced the global logger despite the error: %q", buf.String())
	}
}

func TestSetup_GlobalLevel(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{"Info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			setupBuffer(t, tt.level, false)
			if got := zerolog.GlobalLevel(); got != tt.want {
				t.Errorf("global level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger_ComponentField(t *testing.T) {
	buf := setupBuffer(t, LevelInfo, false)

	for _, component := range []string{"upstream-client", "placeholder-api", "warmup"} {
		logger := NewLogger(component)
		logger.Info().Str("endpoint", "/posts/:id").Msg("cache miss")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d log lines, want 3: %q", len(lines), buf.String())
	}

	want := []string{"upstream-client", "placeholder-api", "warmup"}
	for i, line := range lines {
		fields := decodeLine(t, line)
		if fields["component"] != want[i] {
			t.Errorf("line %d component = %v, want %q", i, fields["component"], want[i])
		}
		if fields["endpoint"] != "/posts/:id" {
			t.Errorf("line %d endpoint = %v", i, fields["endpoint"])
		}
		if _, ok := fields["time"]; !ok {
			t.Errorf("line %d has no timestamp", i)
		}
	}
}

func TestNewLogger_FollowsGlobalLevel(t *testing.T) {
	buf := setupBuffer(t, LevelWarn, false)
	logger := NewLogger("upstream-client")

	logger.Debug().Msg("retrying upstream")
	logger.Info().Msg("fetched posts")
	logger.Warn().Int("attempt", 2).Msg("upstream request failed, retrying")
	logger.Error().Msg("upstream unavailable")

	out := buf.String()
	for _, dropped := range []string{"retrying upstream", "fetched posts"} {
		if strings.Contains(out, dropped) {
			t.Errorf("output contains %q below warn level", dropped)
		}
	}
	for _, kept := range []string{"upstream request failed, retrying", "upstream unavailable"} {
		if !strings.Contains(out, kept) {
			t.Errorf("output missing %q", kept)
		}
	}
}

func TestSetup_PrettyConsole(t *testing.T) {
	buf := setupBuffer(t, LevelInfo, true)

	logger := NewLogger("http")
	logger.Info().Int("status", 200).Msg("Request served")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("pretty output looks like JSON: %q", out)
	}
	for _, want := range []string{"INF", "Request served", "component=http", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q: %q", want, out)
		}
	}
}
