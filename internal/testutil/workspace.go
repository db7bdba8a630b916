package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/atomicstack/tabdeck/internal/workspace"
)

// Workspace builds a workspace from compact panel descriptions of the form
// "P1:A,B,C". A tab id prefixed with '*' becomes the panel's active tab; the
// first tab is active otherwise. Tab titles are the ids lower-cased.
func Workspace(t testing.TB, panels ...string) workspace.Workspace {
	t.Helper()
	specs := make([]workspace.PanelSpec, 0, len(panels))
	for _, desc := range panels {
		spec, err := parsePanel(desc)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", desc, err)
		}
		specs = append(specs, spec)
	}
	ws, err := workspace.New(specs...)
	if err != nil {
		t.Fatalf("fixture workspace: %v", err)
	}
	return ws
}

func parsePanel(desc string) (workspace.PanelSpec, error) {
	id, list, ok := strings.Cut(desc, ":")
	if !ok || strings.TrimSpace(id) == "" {
		return workspace.PanelSpec{}, fmt.Errorf("expected PANEL:TAB[,TAB...]")
	}
	spec := workspace.PanelSpec{ID: strings.TrimSpace(id)}
	for _, raw := range strings.Split(list, ",") {
		tabID := strings.TrimSpace(raw)
		if tabID == "" {
			continue
		}
		if strings.HasPrefix(tabID, "*") {
			tabID = tabID[1:]
			spec.Active = tabID
		}
		spec.Tabs = append(spec.Tabs, workspace.TabSpec{
			ID:          tabID,
			Title:       strings.ToLower(tabID),
			ContentType: workspace.ContentCode,
		})
	}
	return spec, nil
}

// Layout renders a workspace back into the compact fixture form, with the
// active tab of each panel marked by '*'.
func Layout(ws workspace.Workspace) []string {
	out := make([]string, 0, ws.PanelCount())
	for _, panel := range ws.Panels() {
		ids := make([]string, len(panel.Tabs))
		for i, id := range panel.Tabs {
			if id == panel.ActiveTabID {
				id = "*" + id
			}
			ids[i] = id
		}
		out = append(out, panel.ID+":"+strings.Join(ids, ","))
	}
	return out
}

// Sequence returns a deterministic id generator yielding prefix1, prefix2...
func Sequence(prefix string) func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

// WriteFile writes content into a fresh temp directory and returns its path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
