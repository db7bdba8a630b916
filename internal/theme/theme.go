package theme

import (
	"github.com/atomicstack/tabdeck/internal/workspace"
	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Tab               *lipgloss.Style
	ActiveTab         *lipgloss.Style
	FocusedTab        *lipgloss.Style
	DraggedTab        *lipgloss.Style
	DropMarker        *lipgloss.Style
	CloseButton       *lipgloss.Style
	TabBar            *lipgloss.Style
	Panel             *lipgloss.Style
	FocusedPanel      *lipgloss.Style
	HoverPanel        *lipgloss.Style
	NewPanelZone      *lipgloss.Style
	NewPanelHover     *lipgloss.Style
	Body              *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Header            *lipgloss.Style
	Footer            *lipgloss.Style
	Item              *lipgloss.Style
	SelectedItem      *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
	Indicators        map[workspace.ContentType]*lipgloss.Style
}

var defaultStyles = Styles{
	Tab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("236")),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	FocusedTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Bold(true),
	),
	DraggedTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236")).Italic(true),
	),
	DropMarker: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	CloseButton: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	TabBar: ptr(
		lipgloss.NewStyle().Background(lipgloss.Color("235")),
	),
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
	),
	FocusedPanel: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("33")),
	),
	HoverPanel: ptr(
		lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("214")),
	),
	NewPanelZone: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Border(lipgloss.HiddenBorder()),
	),
	NewPanelHover: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("214")),
	),
	Body: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	Indicators: map[workspace.ContentType]*lipgloss.Style{
		workspace.ContentCode:    ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("39"))),
		workspace.ContentChat:    ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("170"))),
		workspace.ContentDocs:    ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("114"))),
		workspace.ContentTask:    ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("214"))),
		workspace.ContentDefault: ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("245"))),
	},
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Indicator returns the marker style for a content type.
func (s *Styles) Indicator(ct workspace.ContentType) *lipgloss.Style {
	if style, ok := s.Indicators[ct]; ok {
		return style
	}
	return s.Indicators[workspace.ContentDefault]
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
