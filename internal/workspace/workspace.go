package workspace

import (
	"fmt"
	"strings"
)

// ContentType tags a tab for visual routing. The engine never interprets it.
type ContentType string

const (
	ContentCode    ContentType = "code"
	ContentChat    ContentType = "chat"
	ContentDocs    ContentType = "docs"
	ContentTask    ContentType = "task"
	ContentDefault ContentType = "default"
)

// ParseContentType maps free-form input onto a known content type. Unknown
// values fall back to ContentDefault.
func ParseContentType(value string) ContentType {
	switch ct := ContentType(strings.ToLower(strings.TrimSpace(value))); ct {
	case ContentCode, ContentChat, ContentDocs, ContentTask:
		return ct
	default:
		return ContentDefault
	}
}

// Tab is a reference to a piece of content. PanelID is derived from panel
// membership and is only ever filled in by the accessors.
type Tab struct {
	ID          string
	Title       string
	ContentType ContentType
	PanelID     string
}

// Panel is an ordered container of tab ids with one active tab.
type Panel struct {
	ID          string
	Tabs        []string
	ActiveTabID string
}

// IndexOf returns the position of tabID within the panel or -1.
func (p Panel) IndexOf(tabID string) int {
	for i, id := range p.Tabs {
		if id == tabID {
			return i
		}
	}
	return -1
}

// Len returns the number of tabs in the panel.
func (p Panel) Len() int {
	return len(p.Tabs)
}

func (p Panel) clone() Panel {
	p.Tabs = cloneIDs(p.Tabs)
	return p
}

type tabMeta struct {
	title       string
	contentType ContentType
}

// Workspace is an immutable snapshot of every panel and its tab ordering.
// Operations never modify a Workspace in place; they return a new value.
type Workspace struct {
	order  []string
	panels map[string]Panel
	tabs   map[string]tabMeta
	owner  map[string]string
}

// TabSpec describes a tab when building or extending a workspace.
type TabSpec struct {
	ID          string
	Title       string
	ContentType ContentType
}

// PanelSpec describes a panel of an initial workspace.
type PanelSpec struct {
	ID     string
	Tabs   []TabSpec
	Active string
}

// New builds a workspace from panel specs. Panels keep the order given. A
// panel without an explicit active tab activates its first tab.
func New(specs ...PanelSpec) (Workspace, error) {
	w := Workspace{
		order:  make([]string, 0, len(specs)),
		panels: make(map[string]Panel, len(specs)),
		tabs:   make(map[string]tabMeta),
	}
	for _, spec := range specs {
		id := strings.TrimSpace(spec.ID)
		if id == "" {
			return Workspace{}, fmt.Errorf("%w: panel id is required", ErrInvalidLayout)
		}
		if _, exists := w.panels[id]; exists {
			return Workspace{}, fmt.Errorf("%w: duplicate panel %q", ErrInvalidLayout, id)
		}
		if len(spec.Tabs) == 0 {
			return Workspace{}, fmt.Errorf("%w: panel %q has no tabs", ErrInvalidLayout, id)
		}
		panel := Panel{ID: id, Tabs: make([]string, 0, len(spec.Tabs))}
		for _, tab := range spec.Tabs {
			if tab.ID == "" {
				return Workspace{}, fmt.Errorf("%w: tab in panel %q has no id", ErrInvalidLayout, id)
			}
			if _, exists := w.tabs[tab.ID]; exists {
				return Workspace{}, fmt.Errorf("%w: %q", ErrDuplicateTab, tab.ID)
			}
			w.tabs[tab.ID] = newTabMeta(tab)
			panel.Tabs = append(panel.Tabs, tab.ID)
		}
		panel.ActiveTabID = spec.Active
		if panel.ActiveTabID == "" {
			panel.ActiveTabID = panel.Tabs[0]
		}
		if panel.IndexOf(panel.ActiveTabID) < 0 {
			return Workspace{}, fmt.Errorf("%w: active tab %q not in panel %q", ErrInvalidLayout, spec.Active, id)
		}
		w.order = append(w.order, id)
		w.panels[id] = panel
	}
	w.reindex()
	return w, nil
}

func newTabMeta(spec TabSpec) tabMeta {
	title := strings.TrimSpace(spec.Title)
	if title == "" {
		title = spec.ID
	}
	ct := spec.ContentType
	if ct == "" {
		ct = ContentDefault
	}
	return tabMeta{title: title, contentType: ct}
}

// PanelIDs returns panel ids in on-screen order.
func (w Workspace) PanelIDs() []string {
	return cloneIDs(w.order)
}

// Panels returns copies of every panel in on-screen order.
func (w Workspace) Panels() []Panel {
	out := make([]Panel, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.panels[id].clone())
	}
	return out
}

// Panel looks up a panel by id.
func (w Workspace) Panel(id string) (Panel, bool) {
	panel, ok := w.panels[id]
	if !ok {
		return Panel{}, false
	}
	return panel.clone(), true
}

// PanelIndex returns the on-screen position of a panel or -1.
func (w Workspace) PanelIndex(id string) int {
	for i, candidate := range w.order {
		if candidate == id {
			return i
		}
	}
	return -1
}

// Tab looks up a tab by id, including the id of the panel that owns it.
func (w Workspace) Tab(id string) (Tab, bool) {
	meta, ok := w.tabs[id]
	if !ok {
		return Tab{}, false
	}
	return Tab{ID: id, Title: meta.title, ContentType: meta.contentType, PanelID: w.owner[id]}, true
}

// Tabs returns the tabs of a panel in order.
func (w Workspace) Tabs(panelID string) []Tab {
	panel, ok := w.panels[panelID]
	if !ok {
		return nil
	}
	out := make([]Tab, 0, len(panel.Tabs))
	for _, id := range panel.Tabs {
		if tab, ok := w.Tab(id); ok {
			out = append(out, tab)
		}
	}
	return out
}

// AllTabs returns every tab, grouped by panel in on-screen order.
func (w Workspace) AllTabs() []Tab {
	out := make([]Tab, 0, len(w.tabs))
	for _, id := range w.order {
		out = append(out, w.Tabs(id)...)
	}
	return out
}

// ActiveTab returns the active tab of a panel.
func (w Workspace) ActiveTab(panelID string) (Tab, bool) {
	panel, ok := w.panels[panelID]
	if !ok || panel.ActiveTabID == "" {
		return Tab{}, false
	}
	return w.Tab(panel.ActiveTabID)
}

// PanelOf reports which panel currently holds tabID.
func (w Workspace) PanelOf(tabID string) (string, bool) {
	id, ok := w.owner[tabID]
	return id, ok
}

// PanelCount returns the number of panels.
func (w Workspace) PanelCount() int {
	return len(w.order)
}

// TabCount returns the number of tabs across all panels.
func (w Workspace) TabCount() int {
	total := 0
	for _, panel := range w.panels {
		total += len(panel.Tabs)
	}
	return total
}

// Equal reports whether two snapshots describe the same layout.
func (w Workspace) Equal(other Workspace) bool {
	if len(w.order) != len(other.order) || len(w.tabs) != len(other.tabs) {
		return false
	}
	for i, id := range w.order {
		if other.order[i] != id {
			return false
		}
		a, b := w.panels[id], other.panels[id]
		if a.ActiveTabID != b.ActiveTabID || len(a.Tabs) != len(b.Tabs) {
			return false
		}
		for j := range a.Tabs {
			if a.Tabs[j] != b.Tabs[j] {
				return false
			}
		}
	}
	for id, meta := range w.tabs {
		if other.tabs[id] != meta {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants: every tab belongs to exactly one
// panel, the owner index matches membership, panels hold no duplicates and
// are never empty, and each active tab is a member of its panel.
func (w Workspace) Validate() error {
	if len(w.order) != len(w.panels) {
		return fmt.Errorf("%w: %d panels ordered but %d stored", ErrInvalidLayout, len(w.order), len(w.panels))
	}
	seen := make(map[string]string, len(w.tabs))
	for _, id := range w.order {
		panel, ok := w.panels[id]
		if !ok {
			return fmt.Errorf("%w: ordered panel %q missing", ErrInvalidLayout, id)
		}
		if panel.ID != id {
			return fmt.Errorf("%w: panel stored under %q reports id %q", ErrInvalidLayout, id, panel.ID)
		}
		if len(panel.Tabs) == 0 {
			return fmt.Errorf("%w: panel %q is empty", ErrInvalidLayout, id)
		}
		for _, tabID := range panel.Tabs {
			if other, dup := seen[tabID]; dup {
				return fmt.Errorf("%w: tab %q in panels %q and %q", ErrInvalidLayout, tabID, other, id)
			}
			seen[tabID] = id
			if _, ok := w.tabs[tabID]; !ok {
				return fmt.Errorf("%w: tab %q has no metadata", ErrInvalidLayout, tabID)
			}
			if w.owner[tabID] != id {
				return fmt.Errorf("%w: tab %q owned by %q, listed in %q", ErrInvalidLayout, tabID, w.owner[tabID], id)
			}
		}
		if panel.IndexOf(panel.ActiveTabID) < 0 {
			return fmt.Errorf("%w: panel %q active tab %q not a member", ErrInvalidLayout, id, panel.ActiveTabID)
		}
	}
	if len(seen) != len(w.tabs) {
		return fmt.Errorf("%w: %d tabs placed, %d known", ErrInvalidLayout, len(seen), len(w.tabs))
	}
	return nil
}

// clone copies the top-level containers. Panel tab slices are shared and must
// be replaced, never modified, by the caller.
func (w Workspace) clone() Workspace {
	next := Workspace{
		order:  cloneIDs(w.order),
		panels: make(map[string]Panel, len(w.panels)+1),
		tabs:   make(map[string]tabMeta, len(w.tabs)+1),
	}
	for id, panel := range w.panels {
		next.panels[id] = panel
	}
	for id, meta := range w.tabs {
		next.tabs[id] = meta
	}
	return next
}

func (w *Workspace) dropPanel(id string) {
	delete(w.panels, id)
	for i, candidate := range w.order {
		if candidate == id {
			w.order = append(w.order[:i:i], w.order[i+1:]...)
			return
		}
	}
}

func (w *Workspace) reindex() {
	w.owner = make(map[string]string, len(w.tabs))
	for _, panel := range w.panels {
		for _, tabID := range panel.Tabs {
			w.owner[tabID] = panel.ID
		}
	}
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	dup := make([]string, len(ids))
	copy(dup, ids)
	return dup
}
