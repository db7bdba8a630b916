package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/tabdeck/internal/backend"
	"github.com/atomicstack/tabdeck/internal/content"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/tabview"
	"github.com/atomicstack/tabdeck/internal/theme"
	"github.com/atomicstack/tabdeck/internal/ui/command"
	uistate "github.com/atomicstack/tabdeck/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	infoDuration  = 3 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Controller *tabview.Controller
	Registry   *content.Registry
	Watcher    *backend.Watcher
	// NewID names scratch tabs. Defaults to a random UUID prefix.
	NewID func() string
}

// Model implements the Bubble Tea model for the workspace.
type Model struct {
	controller *tabview.Controller
	registry   *content.Registry
	bus        *command.Bus
	backend    *backend.Watcher
	backendErr string
	newID      func() string
	now        func() time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	focus      string
	focusIndex int
	gesture    gesture
	scroll     map[string]int
	content    map[string]*contentView
	seq        int
	scratch    int
	quitting   bool

	picker       *uistate.Picker
	filterCursor cursor.Model
	keys         keyMap

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state around a tab view controller.
func NewModel(opts Options) *Model {
	registry := opts.Registry
	if registry == nil {
		registry = content.NewRegistry()
	}
	newID := opts.NewID
	if newID == nil {
		newID = func() string { return uuid.NewString()[:8] }
	}
	m := &Model{
		controller: opts.Controller,
		registry:   registry,
		bus:        command.New(context.Background()),
		backend:    opts.Watcher,
		newID:      newID,
		now:        time.Now,
		width:      defaultWidth,
		height:     defaultHeight,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		scroll:     make(map[string]int),
		content:    make(map[string]*contentView),
		keys:       defaultKeyMap(),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	c.SetMode(cursor.CursorStatic)
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	if ids := m.controller.Snapshot().PanelIDs(); len(ids) > 0 {
		m.focus = ids[0]
	}
	m.registerHandlers()
	return m
}

// SetContext scopes background work to ctx.
func (m *Model) SetContext(ctx context.Context) {
	m.bus = command.New(ctx)
}

// Close stops the backend watcher.
func (m *Model) Close() {
	if m.backend != nil {
		m.backend.Stop()
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	cmds = append(cmds, m.ensureContent()...)
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(contentLoadedMsg{}):  m.handleContentLoadedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.collectResult()
	m.syncFocus()
	cmds = append(cmds, m.ensureContent()...)
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth && size.Width > 0 {
		m.width = size.Width
	}
	if !m.fixedHeight && size.Height > 0 {
		m.height = size.Height
	}
	events.UI.Resize(m.width, m.height)
	return nil
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	if m.picker == nil {
		return nil
	}
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// syncFocus keeps the focused panel pointing at a live panel. When the
// focused panel disappears, focus moves to its neighbour.
func (m *Model) syncFocus() {
	ids := m.controller.Snapshot().PanelIDs()
	if len(ids) == 0 {
		m.focus = ""
		return
	}
	for i, id := range ids {
		if id == m.focus {
			m.focusIndex = i
			return
		}
	}
	idx := m.focusIndex
	if idx >= len(ids) {
		idx = len(ids) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.setFocus(ids[idx])
}

func (m *Model) setFocus(panelID string) {
	if panelID == "" || panelID == m.focus {
		return
	}
	m.focus = panelID
	m.focusIndex = m.controller.Snapshot().PanelIndex(panelID)
	events.UI.Focus(panelID)
}

func (m *Model) cycleFocus(delta int) {
	ids := m.controller.Snapshot().PanelIDs()
	if len(ids) == 0 {
		return
	}
	idx := m.controller.Snapshot().PanelIndex(m.focus)
	if idx < 0 {
		idx = 0
	}
	n := len(ids)
	m.setFocus(ids[((idx+delta)%n+n)%n])
}
