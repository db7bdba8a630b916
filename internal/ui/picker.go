package ui

import (
	"unicode"

	"github.com/atomicstack/tabdeck/internal/format/table"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	uistate "github.com/atomicstack/tabdeck/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const pickerTitle = "quick open"

// pickerItems lists every tab in panel order.
func (m *Model) pickerItems() []uistate.Item {
	ws := m.controller.Snapshot()
	items := make([]uistate.Item, 0, ws.TabCount())
	for _, tab := range ws.AllTabs() {
		items = append(items, uistate.Item{
			ID:      tab.ID,
			PanelID: tab.PanelID,
			Label:   tabTitle(tab),
			Detail:  string(tab.ContentType) + " " + tab.PanelID,
		})
	}
	return items
}

func (m *Model) openPicker() tea.Cmd {
	m.cancelDrag()
	m.picker = uistate.NewPicker(pickerTitle, m.pickerItems())
	if tab, ok := m.controller.Snapshot().ActiveTab(m.focus); ok {
		m.picker.Focus(tab.ID)
	}
	events.Picker.Open(len(m.picker.Items))
	return m.filterCursor.Focus()
}

func (m *Model) closePicker(reason string) {
	if m.picker == nil {
		return
	}
	m.picker = nil
	m.filterCursor.Blur()
	events.Picker.Close(reason)
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	p := m.picker
	switch msg.String() {
	case "esc":
		m.closePicker("cancel")
		return nil
	case "ctrl+c":
		m.closePicker("quit")
		m.quitting = true
		return tea.Quit
	case "enter":
		item, ok := p.Selected()
		m.closePicker("select")
		if ok {
			m.controller.OnActivate(item.ID, item.PanelID)
			m.setFocus(item.PanelID)
		}
		return nil
	case "up", "ctrl+p", "ctrl+k":
		m.movePickerCursor(p.MoveCursor(-1))
		return nil
	case "down", "ctrl+n", "ctrl+j":
		m.movePickerCursor(p.MoveCursor(1))
		return nil
	case "pgup":
		m.movePickerCursor(p.MoveCursorPage(-1, m.pickerRows()))
		return nil
	case "pgdown":
		m.movePickerCursor(p.MoveCursorPage(1, m.pickerRows()))
		return nil
	case "ctrl+u":
		if p.Filter != "" {
			p.SetFilter("", 0)
			m.noteFilter()
		}
		return nil
	case "ctrl+w":
		if p.DeleteFilterWordBackward() {
			m.noteFilter()
		}
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if p.DeleteFilterRuneBackward() {
			m.noteFilter()
		}
	case tea.KeyLeft:
		p.MoveFilterCursor(-1)
	case tea.KeyRight:
		p.MoveFilterCursor(1)
	case tea.KeySpace:
		if p.InsertFilterText(" ") {
			m.noteFilter()
		}
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		if p.InsertFilterText(string(msg.Runes)) {
			m.noteFilter()
		}
	}
	return nil
}

func (m *Model) movePickerCursor(moved bool) {
	if !moved {
		return
	}
	m.picker.EnsureCursorVisible(m.pickerRows())
	events.Picker.Cursor(m.picker.Cursor)
}

func (m *Model) noteFilter() {
	m.picker.EnsureCursorVisible(m.pickerRows())
	events.Picker.Filter(m.picker.Filter, len(m.picker.Items))
}

// pickerRows is the number of list rows shown under the header and prompt.
func (m *Model) pickerRows() int {
	rows := m.height - m.statusRows() - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) pickerLines() []styledLine {
	p := m.picker
	lines := []styledLine{
		{text: pickerTitle, style: styles.Header},
		{text: m.filterPrompt()},
	}
	if len(p.Items) == 0 {
		return append(lines, styledLine{text: "(no matching tabs)", style: styles.Info})
	}
	p.EnsureCursorVisible(m.pickerRows())
	visible := p.Visible(m.pickerRows())
	rows := make([][]string, len(visible))
	for i, item := range visible {
		tab, _ := m.controller.Snapshot().Tab(item.ID)
		rows[i] = []string{item.Label, string(tab.ContentType), item.PanelID}
	}
	formatted := table.Format(rows, []table.Column{{Max: maxTitleWidth}, {}, {Max: 24}})
	for i, text := range formatted {
		style := styles.Item
		prefix := "  "
		if p.ViewportOffset+i == p.Cursor {
			style = styles.SelectedItem
			prefix = "▌ "
		}
		lines = append(lines, styledLine{text: prefix + text, style: style})
	}
	return lines
}

func (m *Model) filterPrompt() string {
	p := m.picker
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if p.Filter == "" {
		placeholder := []rune("(type to filter tabs)")
		return prompt + m.renderFilterCursor(string(placeholder[0])) + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + render(styles.Filter, string(runes[:pos])) + m.renderFilterCursor(caret) + render(styles.Filter, after)
}

func (m *Model) renderFilterCursor(char string) string {
	m.filterCursor.SetChar(char)
	return m.filterCursor.View()
}
