package ui

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/atomicstack/tabdeck/internal/backend"
	"github.com/atomicstack/tabdeck/internal/content"
	"github.com/atomicstack/tabdeck/internal/logging"
	"github.com/atomicstack/tabdeck/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestBackendEventReloadsFileBackedTabs(t *testing.T) {
	path := testutil.WriteFile(t, "notes.txt", "first draft")
	registry := content.NewRegistry()
	registry.SetSource("A", content.Source{Path: path})
	f := newFixture(t, Options{Registry: registry}, "P1:A", "P2:B")
	if !strings.Contains(f.harness.View(), "first draft") {
		t.Fatalf("expected file body:\n%s", f.harness.View())
	}
	if err := os.WriteFile(path, []byte("second draft"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.harness.Send(backendEventMsg{event: backend.Event{Kind: backend.KindFiles, Data: []string{path}}})
	if !strings.Contains(f.harness.View(), "second draft") {
		t.Fatalf("expected refreshed body:\n%s", f.harness.View())
	}
}

func TestBackendEventIgnoresUnrelatedPaths(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A")
	before := f.model().content["A"].seq
	f.harness.Send(backendEventMsg{event: backend.Event{Kind: backend.KindFiles, Data: []string{"/elsewhere"}}})
	if got := f.model().content["A"].seq; got != before {
		t.Fatalf("unrelated change reloaded content (seq %d -> %d)", before, got)
	}
}

func TestBackendErrorShownInStatus(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A")
	f.harness.Send(backendEventMsg{event: backend.Event{Kind: backend.KindFiles, Err: errors.New("stat failed")}})
	if !strings.Contains(f.harness.View(), "watch: stat failed") {
		t.Fatalf("expected watcher error:\n%s", f.harness.View())
	}
	f.harness.Send(backendDoneMsg{})
	if f.model().backend != nil {
		t.Fatalf("expected watcher to be released")
	}
}

func TestStaleContentIsDropped(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A")
	view := f.model().content["A"]
	lines := append([]string(nil), view.lines...)
	f.harness.Send(contentLoadedMsg{tabID: "A", seq: view.seq - 1, width: 10, content: content.Content{Lines: []string{"stale"}}})
	if got := f.model().content["A"].lines; len(got) != len(lines) || strings.Contains(strings.Join(got, "\n"), "stale") {
		t.Fatalf("stale result replaced content: %v", got)
	}
}

func TestClosedTabContentIsForgotten(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A,B")
	if _, ok := f.model().content["A"]; !ok {
		t.Fatalf("expected A to be loaded")
	}
	f.harness.Send(tea.KeyMsg{Type: tea.KeyCtrlW})
	if _, ok := f.model().content["A"]; ok {
		t.Fatalf("expected cache entry for closed tab to be dropped")
	}
	if _, ok := f.model().content["B"]; !ok {
		t.Fatalf("expected B to load once active")
	}
}
