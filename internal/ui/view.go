package ui

import (
	"strings"

	"github.com/atomicstack/tabdeck/internal/dnd"
	"github.com/atomicstack/tabdeck/internal/workspace"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const emptyWorkspaceHint = "no open tabs (ctrl+n opens a scratch tab)"

type styledLine struct {
	text  string
	style *lipgloss.Style
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var top string
	if m.picker != nil {
		lines := limitHeight(m.pickerLines(), m.height-m.statusRows())
		top = renderLines(applyWidth(lines, m.width))
	} else {
		top = m.viewPanels()
	}
	return top + "\n" + renderLines(applyWidth(m.bottomLines(), m.width))
}

func (m *Model) viewPanels() string {
	ws := m.controller.Snapshot()
	session := m.controller.Session()
	s := m.layout(ws, session.Active())
	if len(s.panels) == 0 && !s.hasZone {
		return lipgloss.Place(m.width, s.statusY, lipgloss.Center, lipgloss.Center, styles.Info.Render(emptyWorkspaceHint))
	}
	columns := make([]string, 0, len(s.panels)+1)
	for _, p := range s.panels {
		columns = append(columns, m.renderPanel(ws, session, p))
	}
	if s.hasZone {
		columns = append(columns, renderZone(s.zone, session))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m *Model) renderPanel(ws workspace.Workspace, session dnd.Session, p panelBox) string {
	bar := m.renderTabBar(ws, session, p)
	inner := p.inner()
	var body []string
	if tab, ok := ws.ActiveTab(p.id); ok {
		body = m.bodyLines(tab.ID, inner.w, inner.h)
	}
	style := styles.Panel
	switch {
	case session.Hover != nil && session.Hover.PanelID == p.id:
		style = styles.HoverPanel
	case p.id == m.focus:
		style = styles.FocusedPanel
	}
	box := style.Copy().Width(inner.w).Height(inner.h).Render(strings.Join(body, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, bar, box)
}

func (m *Model) renderTabBar(ws workspace.Workspace, session dnd.Session, p panelBox) string {
	panel, _ := ws.Panel(p.id)
	var b strings.Builder
	used := 0
	for _, slot := range p.slots {
		style := styles.Tab
		switch {
		case session.Active() && session.TabID == slot.tab.ID:
			style = styles.DraggedTab
		case session.Hover != nil && session.Hover.PanelID == p.id && session.Hover.Index == slot.index:
			style = styles.DropMarker
		case slot.tab.ID == panel.ActiveTabID && p.id == m.focus:
			style = styles.FocusedTab
		case slot.tab.ID == panel.ActiveTabID:
			style = styles.ActiveTab
		}
		b.WriteString(style.Render(" "))
		b.WriteString(styles.Indicator(slot.tab.ContentType).Render("●"))
		b.WriteString(style.Render(" " + slot.title + " "))
		b.WriteString(styles.CloseButton.Render("×"))
		b.WriteString(style.Render(" "))
		used += slot.w
	}
	if fill := p.bar.w - used; fill > 0 {
		b.WriteString(styles.TabBar.Render(strings.Repeat(" ", fill)))
	}
	return b.String()
}

// bodyLines returns the visible rows of a tab body, cut to width.
func (m *Model) bodyLines(tabID string, width, height int) []string {
	view := m.content[tabID]
	var source []string
	switch {
	case view == nil || (view.pending && view.lines == nil && view.err == ""):
		source = []string{"loading…"}
	case view.err != "":
		source = []string{styles.Error.Render("error: " + view.err)}
	default:
		source = view.lines
		offset := m.scroll[tabID]
		if offset > len(source) {
			offset = len(source)
		}
		source = source[offset:]
	}
	if len(source) > height {
		source = source[:height]
	}
	out := make([]string, len(source))
	for i, line := range source {
		out[i] = styles.Body.Render(truncate.String(line, uint(max(width, 0))))
	}
	return out
}

func renderZone(zone rect, session dnd.Session) string {
	style := styles.NewPanelZone
	if session.Hover != nil && session.Hover.Workspace() {
		style = styles.NewPanelHover
	}
	return style.Copy().
		Width(max(zone.w-2, 0)).
		Height(max(zone.h-2, 0)).
		Align(lipgloss.Center).
		Render("+\nnew\npanel")
}

func (m *Model) bottomLines() []styledLine {
	var status styledLine
	if text, isErr := m.statusText(); text != "" {
		status = styledLine{text: text, style: styles.Info}
		if isErr {
			status.style = styles.Error
		}
	} else if m.backendErr != "" {
		status = styledLine{text: "watch: " + m.backendErr, style: styles.Error}
	}
	lines := []styledLine{status}
	if m.showFooter {
		lines = append(lines, styledLine{text: m.keys.footerHelp(), style: styles.Footer})
	}
	return lines
}

func limitHeight(lines []styledLine, height int) []styledLine {
	if height <= 0 {
		return nil
	}
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, styledLine{})
	}
	return lines
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	out := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncate.String(line.text, uint(width))
		out[i] = line
	}
	return out
}

func renderLines(lines []styledLine) string {
	rendered := make([]string, len(lines))
	for i, line := range lines {
		if line.style == nil || line.text == "" {
			rendered[i] = line.text
			continue
		}
		rendered[i] = line.style.Render(line.text)
	}
	return strings.Join(rendered, "\n")
}
