package logging

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestTraceRespectsToggle(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetTraceEnabled(false)
	})

	Trace("drag.start", map[string]interface{}{"tab": "A"})
	if buf.Len() != 0 {
		t.Fatalf("expected no output while tracing disabled, got %q", buf.String())
	}
	SetTraceEnabled(true)
	Trace("drag.start", map[string]interface{}{"tab": "A"})
	line := strings.TrimSpace(buf.String())
	if got := gjson.Get(line, "event").String(); got != "drag.start" {
		t.Fatalf("expected drag.start event, got %q in %s", got, line)
	}
	if got := gjson.Get(line, "payload.tab").String(); got != "A" {
		t.Fatalf("expected payload tab A, got %q", got)
	}
}

func TestErrorAlwaysWrites(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	Error(nil)
	if buf.Len() != 0 {
		t.Fatalf("nil error should not be logged")
	}
	Error(errors.New("boom"))
	if got := gjson.Get(buf.String(), "payload.error").String(); got != "boom" {
		t.Fatalf("expected boom, got %q", got)
	}
}

func TestInfoNeedsVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetVerbose(false)
	})
	Info("hello %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("info written without verbose")
	}
	SetVerbose(true)
	Info("hello %d", 2)
	if got := gjson.Get(buf.String(), "payload.message").String(); got != "hello 2" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestConfigureFallsBackToDefault(t *testing.T) {
	t.Cleanup(func() { Configure("") })
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	if Path() != path {
		t.Fatalf("expected %s, got %s", path, Path())
	}
	Configure("  ")
	if Path() != defaultLogFile {
		t.Fatalf("expected default path, got %s", Path())
	}
}
