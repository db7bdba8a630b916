package state

import (
	"errors"
	"testing"

	"github.com/atomicstack/tabdeck/internal/testutil"
	"github.com/atomicstack/tabdeck/internal/workspace"
)

func TestWorkspaceStoreApplyBumpsVersion(t *testing.T) {
	store := NewWorkspaceStore(testutil.Workspace(t, "P1:A,B"))
	engine := workspace.NewEngine()
	changed, err := store.Apply(func(ws workspace.Workspace) (workspace.Workspace, error) {
		return engine.ActivateTab(ws, "P1", "B")
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !changed || store.Version() != 1 {
		t.Fatalf("expected change at version 1, got changed=%v version=%d", changed, store.Version())
	}
	if got := testutil.Layout(store.Snapshot()); got[0] != "P1:A,*B" {
		t.Fatalf("unexpected layout %v", got)
	}
}

func TestWorkspaceStoreNoopKeepsVersion(t *testing.T) {
	store := NewWorkspaceStore(testutil.Workspace(t, "P1:A,B"))
	engine := workspace.NewEngine()
	changed, err := store.Apply(func(ws workspace.Workspace) (workspace.Workspace, error) {
		return engine.ReorderTab(ws, "P1", 1, 1)
	})
	if err != nil || changed {
		t.Fatalf("expected silent no-op, got changed=%v err=%v", changed, err)
	}
	if store.Version() != 0 {
		t.Fatalf("expected version 0, got %d", store.Version())
	}
}

func TestWorkspaceStoreRejectsFailedMutation(t *testing.T) {
	before := testutil.Workspace(t, "P1:A,B,C")
	store := NewWorkspaceStore(before)
	engine := workspace.NewEngine()
	_, err := store.Apply(func(ws workspace.Workspace) (workspace.Workspace, error) {
		return engine.ReorderTab(ws, "P1", 5, 0)
	})
	if !errors.Is(err, workspace.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if !store.Snapshot().Equal(before) || store.Version() != 0 {
		t.Fatalf("store changed after failed mutation")
	}
}

func TestWorkspaceStoreReplace(t *testing.T) {
	store := NewWorkspaceStore(testutil.Workspace(t, "P1:A"))
	err := store.Replace(workspace.Workspace{})
	if err != nil {
		t.Fatalf("empty workspace should be valid: %v", err)
	}
	if store.Snapshot().PanelCount() != 0 {
		t.Fatalf("expected empty workspace after replace")
	}
}
