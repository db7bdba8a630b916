package ui

import (
	"github.com/atomicstack/tabdeck/internal/workspace"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	tabBarHeight     = 1
	maxTitleWidth    = 18
	tabChromeWidth   = 6 // " ● " before the title, " × " after it
	newPanelZoneWide = 8
	minPanelWidth    = 12
	minBodyHeight    = 3
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// tabSlot is a tab segment drawn in a panel's tab bar. x is relative to the
// screen.
type tabSlot struct {
	tab   workspace.Tab
	index int
	title string
	x     int
	w     int
}

func (s tabSlot) closeX() int {
	return s.x + s.w - 2
}

type panelBox struct {
	id    string
	bar   rect
	body  rect
	slots []tabSlot
}

// inner is the body area inside the border.
func (p panelBox) inner() rect {
	r := rect{x: p.body.x + 1, y: p.body.y + 1, w: p.body.w - 2, h: p.body.h - 2}
	if r.w < 0 {
		r.w = 0
	}
	if r.h < 0 {
		r.h = 0
	}
	return r
}

type screen struct {
	width   int
	height  int
	panels  []panelBox
	zone    rect
	hasZone bool
	statusY int
}

func (s screen) panel(id string) (panelBox, bool) {
	for _, p := range s.panels {
		if p.id == id {
			return p, true
		}
	}
	return panelBox{}, false
}

func (m *Model) statusRows() int {
	if m.showFooter {
		return 2
	}
	return 1
}

func (m *Model) bodyHeight() int {
	h := m.height - tabBarHeight - m.statusRows()
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// layout computes the geometry for ws. The view draws from it and mouse input
// is resolved against it. The new panel zone only exists while dragging.
func (m *Model) layout(ws workspace.Workspace, dragging bool) screen {
	s := screen{width: m.width, height: m.height}
	ids := ws.PanelIDs()
	avail := m.width
	if dragging && avail-newPanelZoneWide >= minPanelWidth*max(len(ids), 1) {
		avail -= newPanelZoneWide
		s.hasZone = true
		s.zone = rect{x: avail, y: 0, w: newPanelZoneWide, h: tabBarHeight + m.bodyHeight()}
	}
	s.statusY = tabBarHeight + m.bodyHeight()
	if len(ids) == 0 {
		if dragging {
			s.hasZone = true
			s.zone = rect{x: 0, y: 0, w: m.width, h: s.statusY}
		}
		return s
	}
	base := avail / len(ids)
	extra := avail % len(ids)
	x := 0
	for i, id := range ids {
		w := base
		if i < extra {
			w++
		}
		box := panelBox{
			id:   id,
			bar:  rect{x: x, y: 0, w: w, h: tabBarHeight},
			body: rect{x: x, y: tabBarHeight, w: w, h: m.bodyHeight()},
		}
		box.slots = layoutTabs(ws, id, x, w)
		s.panels = append(s.panels, box)
		x += w
	}
	return s
}

// layoutTabs places the tab segments of a panel, scrolling the bar so the
// active tab is visible. Tabs that do not fit are not drawn.
func layoutTabs(ws workspace.Workspace, panelID string, x, width int) []tabSlot {
	tabs := ws.Tabs(panelID)
	panel, _ := ws.Panel(panelID)
	active := panel.IndexOf(panel.ActiveTabID)
	if active < 0 {
		active = 0
	}
	titles := make([]string, len(tabs))
	widths := make([]int, len(tabs))
	for i, tab := range tabs {
		titles[i] = tabTitle(tab)
		widths[i] = ansi.PrintableRuneWidth(titles[i]) + tabChromeWidth
	}
	start := 0
	for start < active && sum(widths[start:active+1]) > width {
		start++
	}
	slots := make([]tabSlot, 0, len(tabs))
	pos := x
	for i := start; i < len(tabs); i++ {
		if pos+widths[i] > x+width {
			break
		}
		slots = append(slots, tabSlot{tab: tabs[i], index: i, title: titles[i], x: pos, w: widths[i]})
		pos += widths[i]
	}
	return slots
}

func tabTitle(tab workspace.Tab) string {
	title := tab.Title
	if title == "" {
		title = tab.ID
	}
	if ansi.PrintableRuneWidth(title) > maxTitleWidth {
		title = truncate.StringWithTail(title, maxTitleWidth, "…")
	}
	return title
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

type hitKind int

const (
	hitNone hitKind = iota
	hitTab
	hitClose
	hitBar
	hitBody
	hitZone
)

type hit struct {
	kind    hitKind
	panelID string
	tabID   string
	index   int
}

func (s screen) hitTest(x, y int) hit {
	if s.hasZone && s.zone.contains(x, y) {
		return hit{kind: hitZone, index: -1}
	}
	for _, p := range s.panels {
		if p.bar.contains(x, y) {
			for _, slot := range p.slots {
				if x < slot.x || x >= slot.x+slot.w {
					continue
				}
				kind := hitTab
				if x == slot.closeX() {
					kind = hitClose
				}
				return hit{kind: kind, panelID: p.id, tabID: slot.tab.ID, index: slot.index}
			}
			return hit{kind: hitBar, panelID: p.id, index: -1}
		}
		if p.body.contains(x, y) {
			return hit{kind: hitBody, panelID: p.id, index: -1}
		}
	}
	return hit{kind: hitNone, index: -1}
}

// dropTarget maps a hit to the slot passed to the tab view callbacks.
func (h hit) dropTarget() (index int, panelID string, ok bool) {
	switch h.kind {
	case hitTab, hitClose:
		return h.index, h.panelID, true
	case hitBar, hitBody:
		return -1, h.panelID, true
	case hitZone:
		return -1, "", true
	default:
		return 0, "", false
	}
}
