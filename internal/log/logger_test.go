package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/felixgeelhaar/specflow/internal/errors"
)

func newJSONLogger(buf *bytes.Buffer, level Level) *Logger {
	cfg := DefaultConfig()
	cfg.Format = FormatJSON
	cfg.Level = level
	cfg.Output = NewOutput(buf)
	return New(cfg)
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != LevelWarn {
		t.Errorf("Level = %v, want %v", cfg.Level, LevelWarn)
	}
	if cfg.Format != FormatText {
		t.Errorf("Format = %v, want %v", cfg.Format, FormatText)
	}
	if cfg.ServiceName != "specflow" {
		t.Errorf("ServiceName = %q, want specflow", cfg.ServiceName)
	}
}

func TestFromStrings(t *testing.T) {
	tests := []struct {
		level, format string
		wantLevel     Level
		wantFormat    Format
	}{
		{"debug", "json", LevelDebug, FormatJSON},
		{"ERROR", "text", LevelError, FormatText},
		{"", "", LevelWarn, FormatText},
		{"bogus", "xml", LevelInfo, FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			cfg := FromStrings(tt.level, tt.format, "1.2.3")
			if cfg.Level != tt.wantLevel {
				t.Errorf("Level = %v, want %v", cfg.Level, tt.wantLevel)
			}
			if cfg.Format != tt.wantFormat {
				t.Errorf("Format = %v, want %v", cfg.Format, tt.wantFormat)
			}
			if cfg.ServiceVersion != "1.2.3" {
				t.Errorf("ServiceVersion = %q, want 1.2.3", cfg.ServiceVersion)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf, LevelWarn)

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}

	logger.Warn("shown", "spec_id", "abc")
	entry := decode(t, &buf)
	if entry["msg"] != "shown" {
		t.Errorf("msg = %v, want shown", entry["msg"])
	}
	if entry["spec_id"] != "abc" {
		t.Errorf("spec_id = %v, want abc", entry["spec_id"])
	}
	if entry["service"] != "specflow" {
		t.Errorf("service = %v, want specflow", entry["service"])
	}
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "coded error",
			err:      errors.NewSpecNotFoundError("abc"),
			wantCode: "SPEC-001",
		},
		{
			name:     "wrapped coded error",
			err:      fmt.Errorf("show: %w", errors.NewGoalRequiredError()),
			wantCode: "INPUT-001",
		},
		{
			name: "plain error",
			err:  fmt.Errorf("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newJSONLogger(&buf, LevelDebug).WithError(tt.err).Info("failed")

			entry := decode(t, &buf)
			if tt.wantCode == "" {
				if _, ok := entry["error_code"]; ok {
					t.Errorf("plain errors should not carry error_code")
				}
				if entry["error"] != "boom" {
					t.Errorf("error = %v, want boom", entry["error"])
				}
				return
			}
			if entry["error_code"] != tt.wantCode {
				t.Errorf("error_code = %v, want %s", entry["error_code"], tt.wantCode)
			}
			if _, ok := entry["suggestions"]; !ok {
				t.Errorf("expected suggestions attribute")
			}
		})
	}
}

func TestWithErrorNil(t *testing.T) {
	logger := Discard()
	if logger.WithError(nil) != logger {
		t.Error("WithError(nil) should return the receiver")
	}
}

func TestLogErrorContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf, LevelDebug)

	logger.LogErrorContext(context.Background(), errors.NewStoreOpenError("sqlite", "/tmp/x.db", fmt.Errorf("locked")))

	entry := decode(t, &buf)
	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entry["level"])
	}
	if entry["cause"] != "locked" {
		t.Errorf("cause = %v, want locked", entry["cause"])
	}
	if !strings.Contains(fmt.Sprint(entry["docs_url"]), "#storage") {
		t.Errorf("docs_url = %v, want storage docs", entry["docs_url"])
	}

	buf.Reset()
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Errorf("LogError(nil) should not log, got %q", buf.String())
	}
}

func TestWithGroup(t *testing.T) {
	var buf bytes.Buffer
	newJSONLogger(&buf, LevelDebug).WithGroup("store").Info("saved", "count", 3)

	entry := decode(t, &buf)
	group, ok := entry["store"].(map[string]any)
	if !ok {
		t.Fatalf("expected store group, got %v", entry)
	}
	if group["count"] != float64(3) {
		t.Errorf("store.count = %v, want 3", group["count"])
	}
}

func TestEnabled(t *testing.T) {
	logger := newJSONLogger(&bytes.Buffer{}, LevelInfo)
	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
	if !logger.Enabled(context.Background(), LevelError) {
		t.Error("error should be enabled at info level")
	}
}
