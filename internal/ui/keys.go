package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/workspace"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit      key.Binding
	Cancel    key.Binding
	NextPanel key.Binding
	PrevPanel key.Binding
	PrevTab   key.Binding
	NextTab   key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Close     key.Binding
	NewTab    key.Binding
	QuickOpen key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	PageUp    key.Binding
	PageDn    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		NextPanel: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		PrevPanel: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev panel")),
		PrevTab:   key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "switch tab")),
		NextTab:   key.NewBinding(key.WithKeys("]")),
		MoveLeft:  key.NewBinding(key.WithKeys("{"), key.WithHelp("{/}", "move tab")),
		MoveRight: key.NewBinding(key.WithKeys("}")),
		Close:     key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close")),
		NewTab:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new tab")),
		QuickOpen: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "quick open")),
		ScrollUp:  key.NewBinding(key.WithKeys("up", "k")),
		ScrollDn:  key.NewBinding(key.WithKeys("down", "j")),
		PageUp:    key.NewBinding(key.WithKeys("pgup")),
		PageDn:    key.NewBinding(key.WithKeys("pgdown")),
	}
}

// footerHelp lists the bindings that carry help text.
func (k keyMap) footerHelp() string {
	bindings := []key.Binding{k.NextPanel, k.PrevTab, k.MoveLeft, k.Close, k.NewTab, k.QuickOpen, k.Cancel, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		if help.Key == "" {
			continue
		}
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(keyMsg.String())
	if m.picker != nil {
		return m.handlePickerKey(keyMsg)
	}
	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		if !m.cancelDrag() {
			m.clearStatus()
		}
	case key.Matches(keyMsg, m.keys.Quit):
		m.cancelDrag()
		m.quitting = true
		return tea.Quit
	case key.Matches(keyMsg, m.keys.NextPanel):
		m.cycleFocus(1)
	case key.Matches(keyMsg, m.keys.PrevPanel):
		m.cycleFocus(-1)
	case key.Matches(keyMsg, m.keys.PrevTab):
		m.stepTab(-1)
	case key.Matches(keyMsg, m.keys.NextTab):
		m.stepTab(1)
	case key.Matches(keyMsg, m.keys.MoveLeft):
		m.shiftTab(-1)
	case key.Matches(keyMsg, m.keys.MoveRight):
		m.shiftTab(1)
	case key.Matches(keyMsg, m.keys.Close):
		if tab, ok := m.controller.Snapshot().ActiveTab(m.focus); ok {
			m.controller.OnClose(tab.ID, m.focus)
		}
	case key.Matches(keyMsg, m.keys.NewTab):
		m.openScratch()
	case key.Matches(keyMsg, m.keys.QuickOpen):
		return m.openPicker()
	case key.Matches(keyMsg, m.keys.ScrollUp):
		m.scrollPanel(m.focus, -1)
	case key.Matches(keyMsg, m.keys.ScrollDn):
		m.scrollPanel(m.focus, 1)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.scrollPanel(m.focus, -m.pageSize())
	case key.Matches(keyMsg, m.keys.PageDn):
		m.scrollPanel(m.focus, m.pageSize())
	}
	return nil
}

// stepTab activates the neighbouring tab in the focused panel, wrapping at
// the ends.
func (m *Model) stepTab(delta int) {
	panel, ok := m.controller.Snapshot().Panel(m.focus)
	if !ok || panel.Len() == 0 {
		return
	}
	n := panel.Len()
	idx := panel.IndexOf(panel.ActiveTabID)
	next := ((idx+delta)%n + n) % n
	if next == idx {
		return
	}
	m.controller.OnActivate(panel.Tabs[next], panel.ID)
}

// shiftTab moves the active tab of the focused panel one slot along the bar.
func (m *Model) shiftTab(delta int) {
	panel, ok := m.controller.Snapshot().Panel(m.focus)
	if !ok {
		return
	}
	from := panel.IndexOf(panel.ActiveTabID)
	to := from + delta
	if from < 0 || to < 0 || to >= panel.Len() {
		return
	}
	m.controller.Reorder(panel.ID, from, to)
}

func (m *Model) openScratch() {
	m.scratch++
	id := "scratch-" + m.newID()
	m.registry.SetSource(id, scratchSource(m.scratch))
	res := m.controller.Open(m.focus, workspace.TabSpec{
		ID:          id,
		Title:       fmt.Sprintf("scratch %d", m.scratch),
		ContentType: workspace.ContentDefault,
	})
	if res.Err != nil {
		m.registry.Remove(id)
		return
	}
	m.setFocus(res.PanelID)
}

func (m *Model) pageSize() int {
	if size := m.bodyHeight() - 2; size > 1 {
		return size
	}
	return 1
}
