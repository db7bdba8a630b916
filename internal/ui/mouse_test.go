package ui

import (
	"testing"

	"github.com/atomicstack/tabdeck/internal/content"
	"github.com/atomicstack/tabdeck/internal/dnd"
	tea "github.com/charmbracelet/bubbletea"
)

// With an 80 column screen and two panels, P1 spans columns 0-39 and P2
// columns 40-79. Tabs titled with one letter are seven cells wide. While a
// drag is in flight the new panel zone takes the last eight columns and the
// panels shrink to 36 columns each.

func TestLayoutGeometry(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A,B", "P2:C")
	m := f.model()
	s := m.layout(m.controller.Snapshot(), false)
	if len(s.panels) != 2 || s.hasZone {
		t.Fatalf("unexpected screen %+v", s)
	}
	p1, p2 := s.panels[0], s.panels[1]
	if p1.bar.w != 40 || p2.bar.x != 40 || p1.body.h != testHeight-2 {
		t.Fatalf("unexpected panel boxes %+v %+v", p1, p2)
	}
	if len(p1.slots) != 2 || p1.slots[1].x != 7 || p1.slots[1].closeX() != 12 {
		t.Fatalf("unexpected slots %+v", p1.slots)
	}

	cases := []struct {
		x, y int
		want hit
	}{
		{2, 0, hit{kind: hitTab, panelID: "P1", tabID: "A", index: 0}},
		{12, 0, hit{kind: hitClose, panelID: "P1", tabID: "B", index: 1}},
		{30, 0, hit{kind: hitBar, panelID: "P1", index: -1}},
		{50, 4, hit{kind: hitBody, panelID: "P2", index: -1}},
		{50, testHeight - 1, hit{kind: hitNone, index: -1}},
	}
	for _, tc := range cases {
		if got := s.hitTest(tc.x, tc.y); got != tc.want {
			t.Fatalf("hit at %d,%d: want %+v got %+v", tc.x, tc.y, tc.want, got)
		}
	}

	dragging := m.layout(m.controller.Snapshot(), true)
	if !dragging.hasZone || dragging.zone.x != 72 || dragging.panels[1].bar.x != 36 {
		t.Fatalf("unexpected drag geometry %+v", dragging)
	}
	if got := dragging.hitTest(75, 3); got.kind != hitZone {
		t.Fatalf("expected zone hit, got %+v", got)
	}
}

func TestTabBarScrollsToActiveTab(t *testing.T) {
	f := newFixture(t, Options{Width: 20}, "P1:A,B,C,*D")
	m := f.model()
	s := m.layout(m.controller.Snapshot(), false)
	slots := s.panels[0].slots
	if len(slots) == 0 || slots[len(slots)-1].tab.ID != "D" {
		t.Fatalf("expected active tab D to be visible, got %+v", slots)
	}
	if slots[0].index == 0 {
		t.Fatalf("expected leading tabs to scroll out, got %+v", slots)
	}
}

func TestClickActivatesTab(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A,B", "P2:C")
	f.harness.Click(9, 0)
	f.expectLayout(t, "P1:A,*B", "P2:*C")
}

func TestClickCloseButton(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A,B", "P2:C")
	f.harness.Click(12, 0)
	f.expectLayout(t, "P1:*A", "P2:*C")
}

func TestMiddleClickCloses(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A,B", "P2:C")
	f.harness.Send(tea.MouseMsg{X: 42, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonMiddle})
	f.expectLayout(t, "P1:*A,B")
}

func TestClickBodyFocusesPanel(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A", "P2:C")
	f.harness.Click(60, 5)
	if f.model().focus != "P2" {
		t.Fatalf("expected focus on P2, got %q", f.model().focus)
	}
}

func TestDragTabOntoOtherPanel(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A,B", "P2:C")
	f.harness.Drag(9, 0, [2]int{20, 0}, [2]int{50, 5})
	f.expectLayout(t, "P1:*A", "P2:C,*B")
	if f.model().controller.Session().Phase != dnd.Idle {
		t.Fatalf("expected idle session after drop")
	}
	if f.model().focus != "P2" {
		t.Fatalf("expected focus to follow the drop, got %q", f.model().focus)
	}
}

func TestDragTabOntoTabSlot(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A,B", "P2:C")
	f.harness.Drag(2, 0, [2]int{38, 0})
	f.expectLayout(t, "P1:*B", "P2:*A,C")
}

func TestDragReordersWithinPanel(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A,B,C")
	f.harness.Drag(2, 0, [2]int{9, 0}, [2]int{16, 0})
	f.expectLayout(t, "P1:B,C,*A")
}

func TestDragToNewPanelZone(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A,B", "P2:C")
	f.harness.Drag(9, 0, [2]int{75, 3})
	f.expectLayout(t, "P1:*A", "P2:*C", "N1:*B")
	if f.model().focus != "N1" {
		t.Fatalf("expected focus on the new panel, got %q", f.model().focus)
	}
}

func TestEscapeCancelsDrag(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A,B", "P2:C")
	before := f.model().controller.Version()
	f.harness.Send(tea.MouseMsg{X: 9, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	f.harness.Send(tea.MouseMsg{X: 50, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	session := f.model().controller.Session()
	if session.Phase != dnd.Hovering || session.Hover == nil || session.Hover.PanelID != "P2" {
		t.Fatalf("expected hover over P2, got %+v", session)
	}
	f.harness.Send(tea.KeyMsg{Type: tea.KeyEsc})
	f.harness.Send(tea.MouseMsg{X: 50, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	f.expectLayout(t, "P1:*A,B", "P2:*C")
	if f.model().controller.Version() != before {
		t.Fatalf("cancelled drag changed the workspace")
	}
}

func TestReleaseOutsideTargetsCancels(t *testing.T) {
	f := newFixture(t, Options{}, "P1:A,B", "P2:C")
	f.harness.Drag(9, 0, [2]int{50, 5}, [2]int{50, testHeight - 1})
	f.expectLayout(t, "P1:*A,B", "P2:*C")
	if f.model().controller.Session().Active() {
		t.Fatalf("session should be closed")
	}
}

func TestWheelScrollsBody(t *testing.T) {
	body := ""
	for i := 0; i < 40; i++ {
		body += "line\n"
	}
	f := newFixture(t, Options{}, "P1:A")
	f.registry.SetSource("A", content.Source{Body: body})
	f.model().invalidate([]string{"A"})
	f.harness.Send(tea.WindowSizeMsg{})
	f.harness.Send(tea.MouseMsg{X: 5, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if got := f.model().scroll["A"]; got != wheelStep {
		t.Fatalf("expected scroll offset %d, got %d", wheelStep, got)
	}
	for i := 0; i < 20; i++ {
		f.harness.Send(tea.KeyMsg{Type: tea.KeyPgDown})
	}
	limit := len(f.model().content["A"].lines) - (f.model().bodyHeight() - 2)
	if got := f.model().scroll["A"]; got != limit {
		t.Fatalf("expected scroll clamped to %d, got %d", limit, got)
	}
}
