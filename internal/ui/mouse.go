package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

const wheelStep = 3

// gesture tracks a left-button press on a tab until release. It becomes a
// drag once the pointer leaves the cell it was pressed on.
type gesture struct {
	armed    bool
	dragging bool
	tabID    string
	panelID  string
	index    int
	x, y     int
	hover    hit
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || m.picker != nil {
		return nil
	}
	switch mouse.Action {
	case tea.MouseActionPress:
		m.mousePress(mouse)
	case tea.MouseActionMotion:
		m.mouseMotion(mouse)
	case tea.MouseActionRelease:
		m.mouseRelease(mouse)
	}
	return nil
}

func (m *Model) currentScreen() screen {
	return m.layout(m.controller.Snapshot(), m.controller.Session().Active())
}

func (m *Model) mousePress(mouse tea.MouseMsg) {
	h := m.currentScreen().hitTest(mouse.X, mouse.Y)
	switch mouse.Button {
	case tea.MouseButtonWheelUp:
		if h.panelID != "" {
			m.scrollPanel(h.panelID, -wheelStep)
		}
		return
	case tea.MouseButtonWheelDown:
		if h.panelID != "" {
			m.scrollPanel(h.panelID, wheelStep)
		}
		return
	case tea.MouseButtonMiddle:
		if h.kind == hitTab || h.kind == hitClose {
			m.controller.OnClose(h.tabID, h.panelID)
		}
		return
	case tea.MouseButtonLeft:
	default:
		return
	}

	if h.panelID != "" {
		m.setFocus(h.panelID)
	}
	switch h.kind {
	case hitClose:
		m.controller.OnClose(h.tabID, h.panelID)
	case hitTab:
		m.gesture = gesture{
			armed:   true,
			tabID:   h.tabID,
			panelID: h.panelID,
			index:   h.index,
			x:       mouse.X,
			y:       mouse.Y,
		}
	}
}

func (m *Model) mouseMotion(mouse tea.MouseMsg) {
	g := &m.gesture
	if !g.armed {
		return
	}
	if !g.dragging {
		if mouse.X == g.x && mouse.Y == g.y {
			return
		}
		m.controller.OnDragStart(g.tabID, g.panelID, g.index)
		if !m.controller.Session().Active() {
			m.gesture = gesture{}
			return
		}
		g.dragging = true
	}
	h := m.currentScreen().hitTest(mouse.X, mouse.Y)
	index, panelID, ok := h.dropTarget()
	if !ok || (h.panelID == g.hover.panelID && h.index == g.hover.index && h.kind == g.hover.kind) {
		return
	}
	g.hover = h
	m.controller.OnDragEnterCandidate(index, panelID)
}

func (m *Model) mouseRelease(mouse tea.MouseMsg) {
	g := m.gesture
	m.gesture = gesture{}
	if !g.armed {
		return
	}
	if !g.dragging {
		m.controller.OnActivate(g.tabID, g.panelID)
		return
	}
	h := m.currentScreen().hitTest(mouse.X, mouse.Y)
	if index, panelID, ok := h.dropTarget(); ok {
		m.controller.OnDragEnterCandidate(index, panelID)
		m.controller.OnDrop(index, panelID)
		if panelID != "" {
			m.setFocus(panelID)
		} else if ids := m.controller.Snapshot().PanelIDs(); len(ids) > 0 {
			m.setFocus(ids[len(ids)-1])
		}
	}
	m.controller.OnDragEnd()
}

// cancelDrag abandons an in-flight gesture without touching the workspace.
func (m *Model) cancelDrag() bool {
	dragging := m.gesture.dragging || m.controller.Session().Active()
	m.gesture = gesture{}
	if dragging {
		m.controller.OnDragEnd()
	}
	return dragging
}
