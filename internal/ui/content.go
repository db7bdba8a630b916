package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/tabdeck/internal/content"
	"github.com/atomicstack/tabdeck/internal/logging"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/ui/command"
	"github.com/atomicstack/tabdeck/internal/workspace"
	tea "github.com/charmbracelet/bubbletea"
)

// contentView caches the rendered body of one tab. seq identifies the latest
// request; results carrying an older seq are stale.
type contentView struct {
	lines   []string
	err     string
	width   int
	seq     int
	pending bool
	dirty   bool
}

type contentLoadedMsg struct {
	tabID   string
	seq     int
	width   int
	content content.Content
	err     error
}

func scratchSource(n int) content.Source {
	return content.Source{Body: fmt.Sprintf("scratch tab %d", n)}
}

// ensureContent requests bodies for every visible tab whose cache is missing,
// invalidated, or rendered at another width. Cache entries for tabs that no
// longer exist are dropped.
func (m *Model) ensureContent() []tea.Cmd {
	ws := m.controller.Snapshot()
	for id := range m.content {
		if _, ok := ws.Tab(id); !ok {
			delete(m.content, id)
			delete(m.scroll, id)
		}
	}
	s := m.layout(ws, m.controller.Session().Active())
	var cmds []tea.Cmd
	for _, p := range s.panels {
		tab, ok := ws.ActiveTab(p.id)
		if !ok {
			continue
		}
		width := p.inner().w
		view := m.content[tab.ID]
		if view != nil && !view.dirty && (view.pending || view.width == width) {
			continue
		}
		if view == nil {
			view = &contentView{}
			m.content[tab.ID] = view
		}
		m.seq++
		view.seq = m.seq
		view.pending = true
		view.dirty = false
		cmds = append(cmds, m.loadContentCmd(tab, width, view.seq))
	}
	return cmds
}

func (m *Model) loadContentCmd(tab workspace.Tab, width, seq int) tea.Cmd {
	events.Content.Load(tab.ID, seq)
	registry := m.registry
	return m.bus.Execute(command.Request{
		ID:    tab.ID,
		Label: "content",
		Handler: func(ctx context.Context) tea.Msg {
			c, err := registry.Resolve(ctx, tab, width)
			if err != nil {
				logging.Error(err)
			}
			return contentLoadedMsg{tabID: tab.ID, seq: seq, width: width, content: c, err: err}
		},
	})
}

func (m *Model) handleContentLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(contentLoadedMsg)
	if !ok {
		return nil
	}
	view := m.content[loaded.tabID]
	if view == nil || view.seq != loaded.seq {
		current := 0
		if view != nil {
			current = view.seq
		}
		events.Content.Stale(loaded.tabID, loaded.seq, current)
		return nil
	}
	view.pending = false
	view.width = loaded.width
	if loaded.err != nil {
		view.err = loaded.err.Error()
		view.lines = nil
		events.Content.Error(loaded.tabID, loaded.err)
		return nil
	}
	view.err = ""
	view.lines = loaded.content.Lines
	m.clampScroll(loaded.tabID)
	return nil
}

// invalidate marks cached bodies for reload on the next update.
func (m *Model) invalidate(tabIDs []string) {
	for _, id := range tabIDs {
		if view, ok := m.content[id]; ok {
			view.dirty = true
		}
	}
}

func (m *Model) scrollPanel(panelID string, delta int) {
	tab, ok := m.controller.Snapshot().ActiveTab(panelID)
	if !ok {
		return
	}
	before := m.scroll[tab.ID]
	m.scroll[tab.ID] = before + delta
	m.clampScroll(tab.ID)
	if after := m.scroll[tab.ID]; after != before {
		events.UI.Scroll(tab.ID, after)
	}
}

func (m *Model) clampScroll(tabID string) {
	view := m.content[tabID]
	limit := 0
	if view != nil {
		limit = len(view.lines) - (m.bodyHeight() - 2)
	}
	if limit < 0 {
		limit = 0
	}
	offset := m.scroll[tabID]
	if offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	m.scroll[tabID] = offset
}
