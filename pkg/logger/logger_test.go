package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONCarriesServiceAttribute(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSON, Output: &buf, Service: "reservations"})

	log.Info("hello", "key", "value")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log record: %v", err)
	}
	if record["service"] != "reservations" {
		t.Errorf("expected service attribute, got %v", record["service"])
	}
	if record["key"] != "value" {
		t.Errorf("expected key attribute, got %v", record["key"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		emitDebug bool
		emitWarn  bool
	}{
		{"debug level", DEBUG, true, true},
		{"info level", INFO, false, true},
		{"error level", ERROR, false, false},
		{"unknown falls back to info", "verbose", false, true},
		{"case insensitive", "WARN", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: tt.level, Output: &buf})

			log.Debug("debug message")
			if got := strings.Contains(buf.String(), "debug message"); got != tt.emitDebug {
				t.Errorf("debug emitted = %v, want %v", got, tt.emitDebug)
			}

			log.Warn("warn message")
			if got := strings.Contains(buf.String(), "warn message"); got != tt.emitWarn {
				t.Errorf("warn emitted = %v, want %v", got, tt.emitWarn)
			}
		})
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: TEXT, Output: &buf})
	log.Info("plain")

	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected text output, got %q", buf.String())
	}
}
