package workspace_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/tabdeck/internal/testutil"
	"github.com/atomicstack/tabdeck/internal/workspace"
)

func newEngine() *workspace.Engine {
	return workspace.NewEngine(workspace.WithIDSource(testutil.Sequence("N")))
}

func TestReorderTabMovesWithinPanel(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,B,C")
	next, err := newEngine().ReorderTab(ws, "P1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"P1:B,C,*A"}, testutil.Layout(next))
	assert.Equal(t, []string{"P1:*A,B,C"}, testutil.Layout(ws), "input snapshot must not change")
}

func TestReorderTabKeepsActive(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,*B,C,D")
	next, err := newEngine().ReorderTab(ws, "P1", 3, 0)
	require.NoError(t, err)
	panel, ok := next.Panel("P1")
	require.True(t, ok)
	assert.Equal(t, []string{"D", "A", "B", "C"}, panel.Tabs)
	assert.Equal(t, "B", panel.ActiveTabID)
}

func TestReorderTabOutOfRange(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,B,C")
	next, err := newEngine().ReorderTab(ws, "P1", 5, 0)
	require.ErrorIs(t, err, workspace.ErrIndexOutOfRange)
	assert.True(t, next.Equal(ws))

	_, err = newEngine().ReorderTab(ws, "P1", 0, -1)
	require.ErrorIs(t, err, workspace.ErrIndexOutOfRange)
	_, err = newEngine().ReorderTab(ws, "P1", 0, 3)
	require.ErrorIs(t, err, workspace.ErrIndexOutOfRange)
	_, err = newEngine().ReorderTab(ws, "P9", 0, 1)
	require.ErrorIs(t, err, workspace.ErrNotFound)
}

func TestReorderTabSameIndexIsNoop(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,B,C", "P2:D")
	for i := 0; i < 3; i++ {
		next, err := newEngine().ReorderTab(ws, "P1", i, i)
		require.NoError(t, err)
		assert.True(t, next.Equal(ws), "reorder %d->%d changed the workspace", i, i)
	}
}

func TestMoveTabAcrossPanels(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,B", "P2:C")
	next, err := newEngine().MoveTabAcrossPanels(ws, "B", "P1", "P2", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"P1:*A", "P2:*B,C"}, testutil.Layout(next))
	tab, ok := next.Tab("B")
	require.True(t, ok)
	assert.Equal(t, "P2", tab.PanelID)
	require.NoError(t, next.Validate())
}

func TestMoveTabAcrossPanelsRepairsSourceActive(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,*B,C", "P2:D")
	next, err := newEngine().MoveTabAcrossPanels(ws, "B", "P1", "P2", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"P1:A,*C", "P2:D,*B"}, testutil.Layout(next))
}

func TestMoveTabAcrossPanelsClampsIndex(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,B", "P2:C,D")
	next, err := newEngine().MoveTabAcrossPanels(ws, "A", "P1", "P2", 42)
	require.NoError(t, err)
	assert.Equal(t, []string{"P1:*B", "P2:C,D,*A"}, testutil.Layout(next))

	next, err = newEngine().MoveTabAcrossPanels(ws, "A", "P1", "P2", -3)
	require.NoError(t, err)
	assert.Equal(t, []string{"P1:*B", "P2:*A,C,D"}, testutil.Layout(next))
}

func TestMoveTabAcrossPanelsPrunesEmptySource(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A", "P2:B")
	next, err := newEngine().MoveTabAcrossPanels(ws, "A", "P1", "P2", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"P2:B,*A"}, testutil.Layout(next))
	_, ok := next.Panel("P1")
	assert.False(t, ok)
}

func TestMoveTabAcrossPanelsErrors(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,B", "P2:C")
	e := newEngine()

	next, err := e.MoveTabAcrossPanels(ws, "A", "P1", "P1", 0)
	require.ErrorIs(t, err, workspace.ErrInvalidPanel)
	assert.True(t, next.Equal(ws))

	next, err = e.MoveTabAcrossPanels(ws, "A", "P1", "P9", 0)
	require.ErrorIs(t, err, workspace.ErrInvalidPanel)
	assert.True(t, next.Equal(ws))

	next, err = e.MoveTabAcrossPanels(ws, "C", "P1", "P2", 0)
	require.ErrorIs(t, err, workspace.ErrNotFound)
	assert.True(t, next.Equal(ws))

	_, err = e.MoveTabAcrossPanels(ws, "A", "P9", "P2", 0)
	require.ErrorIs(t, err, workspace.ErrNotFound)
}

func TestCloseTabPrunesLastPanelTab(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A", "P2:B")
	next, err := newEngine().CloseTab(ws, "P1", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"P2:*B"}, testutil.Layout(next))
	_, ok := next.Tab("A")
	assert.False(t, ok)
}

func TestCloseTabSuccessor(t *testing.T) {
	tests := []struct {
		name   string
		panel  string
		close  string
		expect string
	}{
		{name: "next slides in", panel: "P1:A,*B,C", close: "B", expect: "P1:A,*C"},
		{name: "last falls back", panel: "P1:A,B,*C", close: "C", expect: "P1:A,*B"},
		{name: "inactive keeps active", panel: "P1:A,*B,C", close: "A", expect: "P1:*B,C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := testutil.Workspace(t, tt.panel)
			next, err := newEngine().CloseTab(ws, "P1", tt.close)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.expect}, testutil.Layout(next))
		})
	}
}

func TestCloseTabMissing(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A", "P2:B")
	next, err := newEngine().CloseTab(ws, "P1", "B")
	require.ErrorIs(t, err, workspace.ErrNotFound)
	assert.True(t, next.Equal(ws))
	_, err = newEngine().CloseTab(ws, "P3", "A")
	require.ErrorIs(t, err, workspace.ErrNotFound)
}

func TestActivateTab(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,B")
	e := newEngine()
	next, err := e.ActivateTab(ws, "P1", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"P1:A,*B"}, testutil.Layout(next))

	same, err := e.ActivateTab(next, "P1", "B")
	require.NoError(t, err)
	assert.True(t, same.Equal(next))

	_, err = e.ActivateTab(ws, "P1", "Z")
	require.ErrorIs(t, err, workspace.ErrNotFound)
	_, err = e.ActivateTab(ws, "P2", "A")
	require.ErrorIs(t, err, workspace.ErrNotFound)
}

func TestCreatePanelForMove(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,B", "P2:C")
	next, id, err := newEngine().CreatePanelForMove(ws, "A", "P1")
	require.NoError(t, err)
	assert.Equal(t, "N1", id)
	assert.Equal(t, []string{"P1:*B", "P2:*C", "N1:*A"}, testutil.Layout(next))
	require.NoError(t, next.Validate())
}

func TestCreatePanelForMoveFromSingletonPanel(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A", "P2:C")
	next, id, err := newEngine().CreatePanelForMove(ws, "A", "P1")
	require.NoError(t, err)
	assert.Equal(t, []string{"P2:*C", id + ":*A"}, testutil.Layout(next))
}

func TestCreatePanelForMoveAvoidsIDCollision(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,B", "N1:C")
	next, id, err := newEngine().CreatePanelForMove(ws, "B", "P1")
	require.NoError(t, err)
	assert.Equal(t, "N1-2", id)
	assert.Equal(t, 3, next.PanelCount())
}

func TestOpenTab(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A")
	e := newEngine()
	next, panelID, err := e.OpenTab(ws, "P1", workspace.TabSpec{ID: "B", Title: "notes", ContentType: workspace.ContentDocs})
	require.NoError(t, err)
	assert.Equal(t, "P1", panelID)
	assert.Equal(t, []string{"P1:A,*B"}, testutil.Layout(next))
	tab, ok := next.Tab("B")
	require.True(t, ok)
	assert.Equal(t, workspace.ContentDocs, tab.ContentType)
	assert.Equal(t, "notes", tab.Title)

	next, panelID, err = e.OpenTab(next, "", workspace.TabSpec{ID: "C"})
	require.NoError(t, err)
	assert.Equal(t, "N1", panelID)
	assert.Equal(t, []string{"P1:A,*B", "N1:*C"}, testutil.Layout(next))

	_, _, err = e.OpenTab(next, "P1", workspace.TabSpec{ID: "A"})
	require.ErrorIs(t, err, workspace.ErrDuplicateTab)
	_, _, err = e.OpenTab(next, "P7", workspace.TabSpec{ID: "Q"})
	require.ErrorIs(t, err, workspace.ErrNotFound)
}

func tabMultiset(ws workspace.Workspace) []string {
	var ids []string
	for _, panel := range ws.Panels() {
		ids = append(ids, panel.Tabs...)
	}
	sort.Strings(ids)
	return ids
}

func TestReorderClosure(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ws := testutil.Workspace(t, "P1:A,B,C,D,E", "P2:F,G")
	before := tabMultiset(ws)
	e := newEngine()
	for i := 0; i < 200; i++ {
		from, to := rng.Intn(5), rng.Intn(5)
		next, err := e.ReorderTab(ws, "P1", from, to)
		require.NoError(t, err)
		require.Equal(t, before, tabMultiset(next))
		require.NoError(t, next.Validate())
		ws = next
	}
}

func TestMoveConservation(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,B,C", "P2:D,E")
	p1, _ := ws.Panel("P1")
	p2, _ := ws.Panel("P2")
	next, err := newEngine().MoveTabAcrossPanels(ws, "C", "P1", "P2", 1)
	require.NoError(t, err)
	q1, _ := next.Panel("P1")
	q2, _ := next.Panel("P2")
	assert.Equal(t, p1.Len()-1, q1.Len())
	assert.Equal(t, p2.Len()+1, q2.Len())
	assert.Equal(t, ws.TabCount(), next.TabCount())
}

// TestRandomSequencesKeepInvariants drives random operations and checks that
// every snapshot places each tab in exactly one panel.
func TestRandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := newEngine()
	ws := testutil.Workspace(t, "P1:A,B,C", "P2:D,E", "P3:F")
	for step := 0; step < 500; step++ {
		panels := ws.Panels()
		require.NotEmpty(t, panels)
		src := panels[rng.Intn(len(panels))]
		tabID := src.Tabs[rng.Intn(len(src.Tabs))]
		var (
			next workspace.Workspace
			err  error
		)
		switch rng.Intn(5) {
		case 0:
			next, err = e.ReorderTab(ws, src.ID, rng.Intn(src.Len()), rng.Intn(src.Len()))
		case 1:
			dst := panels[rng.Intn(len(panels))]
			next, err = e.MoveTabAcrossPanels(ws, tabID, src.ID, dst.ID, rng.Intn(dst.Len()+2))
			if dst.ID == src.ID {
				require.ErrorIs(t, err, workspace.ErrInvalidPanel)
				require.True(t, next.Equal(ws))
				continue
			}
			if err == nil {
				require.Equal(t, ws.TabCount(), next.TabCount())
			}
		case 2:
			if ws.PanelCount() < 5 {
				next, _, err = e.CreatePanelForMove(ws, tabID, src.ID)
			} else {
				next, err = e.ActivateTab(ws, src.ID, tabID)
			}
		case 3:
			next, err = e.ActivateTab(ws, src.ID, tabID)
		default:
			if ws.TabCount() > 3 {
				next, err = e.CloseTab(ws, src.ID, tabID)
			} else {
				next, err = e.ActivateTab(ws, src.ID, tabID)
			}
		}
		require.NoError(t, err, "step %d", step)
		require.NoError(t, next.Validate(), "step %d", step)
		seen := map[string]bool{}
		for _, panel := range next.Panels() {
			for _, id := range panel.Tabs {
				require.False(t, seen[id], "tab %s duplicated at step %d", id, step)
				seen[id] = true
				owner, ok := next.PanelOf(id)
				require.True(t, ok)
				require.Equal(t, panel.ID, owner)
			}
		}
		ws = next
	}
}

func TestNewRejectsBadLayouts(t *testing.T) {
	_, err := workspace.New(workspace.PanelSpec{ID: "P1"})
	require.ErrorIs(t, err, workspace.ErrInvalidLayout)

	_, err = workspace.New(
		workspace.PanelSpec{ID: "P1", Tabs: []workspace.TabSpec{{ID: "A"}}},
		workspace.PanelSpec{ID: "P2", Tabs: []workspace.TabSpec{{ID: "A"}}},
	)
	require.ErrorIs(t, err, workspace.ErrDuplicateTab)

	_, err = workspace.New(workspace.PanelSpec{ID: "P1", Tabs: []workspace.TabSpec{{ID: "A"}}, Active: "B"})
	require.ErrorIs(t, err, workspace.ErrInvalidLayout)

	_, err = workspace.New(
		workspace.PanelSpec{ID: "P1", Tabs: []workspace.TabSpec{{ID: "A"}}},
		workspace.PanelSpec{ID: "P1", Tabs: []workspace.TabSpec{{ID: "B"}}},
	)
	require.ErrorIs(t, err, workspace.ErrInvalidLayout)
}

func TestAccessorsReturnCopies(t *testing.T) {
	ws := testutil.Workspace(t, "P1:A,B")
	panel, _ := ws.Panel("P1")
	panel.Tabs[0] = "Z"
	ids := ws.PanelIDs()
	ids[0] = "nope"
	assert.Equal(t, []string{"P1:*A,B"}, testutil.Layout(ws))
}

func TestParseContentType(t *testing.T) {
	assert.Equal(t, workspace.ContentChat, workspace.ParseContentType(" Chat "))
	assert.Equal(t, workspace.ContentTask, workspace.ParseContentType("task"))
	assert.Equal(t, workspace.ContentDefault, workspace.ParseContentType("spreadsheet"))
	assert.Equal(t, workspace.ContentDefault, workspace.ParseContentType(""))
}
