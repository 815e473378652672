package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestJSONLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log lines at WarnLevel, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "warn message") {
		t.Errorf("Expected warn message in first line, got %s", lines[0])
	}
}

func TestJSONLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	floorID := uuid.New()
	logger.Info("route computed", FloorID(floorID), Distance(42.5), Count(3))

	var entry struct {
		Level   string         `json:"level"`
		Message string         `json:"msg"`
		Fields  map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log entry: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Expected level INFO, got %s", entry.Level)
	}
	if entry.Fields["floor_id"] != floorID.String() {
		t.Errorf("Expected floor_id %s, got %v", floorID, entry.Fields["floor_id"])
	}
	if entry.Fields["distance_m"] != 42.5 {
		t.Errorf("Expected distance_m 42.5, got %v", entry.Fields["distance_m"])
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("routing"))
	child.Info("graph assembled", Count(12))

	if !strings.Contains(buf.String(), `"component":"routing"`) {
		t.Errorf("Expected pre-set component field, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"count":12`) {
		t.Errorf("Expected count field, got %s", buf.String())
	}
}

func TestErrorField_Nil(t *testing.T) {
	f := Error(nil)
	if f.Value != nil {
		t.Errorf("Expected nil value for nil error, got %v", f.Value)
	}
	f = Error(errors.New("boom"))
	if f.Value != "boom" {
		t.Errorf("Expected 'boom', got %v", f.Value)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != DebugLevel {
		t.Error("Expected DebugLevel for 'debug'")
	}
	if ParseLevel("nonsense") != InfoLevel {
		t.Error("Expected InfoLevel default for unknown string")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	// Must not panic and With must return a usable logger
	logger.With(Component("x")).Info("ignored")
}
