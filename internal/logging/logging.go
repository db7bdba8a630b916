package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "tabdeck.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	verbose      bool
	logPath      = defaultLogFile
	output       io.Writer
)

// Error appends err to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	write("error", map[string]interface{}{"error": err.Error()})
}

// Info records a message only when verbose logging is on.
func Info(format string, args ...interface{}) {
	mu.Lock()
	enabled := verbose
	mu.Unlock()
	if !enabled {
		return
	}
	write("info", map[string]interface{}{"message": fmt.Sprintf(format, args...)})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// SetVerbose toggles Info output.
func SetVerbose(enabled bool) {
	mu.Lock()
	verbose = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace currently writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	write(event, payload)
}

type entry struct {
	Time    time.Time   `json:"time"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

func write(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	e := entry{Time: time.Now().UTC(), Event: event, Payload: payload}
	if output != nil {
		encode(output, e)
		return
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	encode(f, e)
}

func encode(w io.Writer, e entry) {
	if err := json.NewEncoder(w).Encode(e); err != nil {
		fmt.Fprintf(os.Stderr, "log encoding failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	output = nil
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput redirects every entry to w instead of the log file. A nil writer
// restores file output.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// Path returns the current log file path.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}
