package state

import (
	"sync"

	"github.com/atomicstack/tabdeck/internal/workspace"
)

// Mutation derives the next workspace from the current one.
type Mutation func(workspace.Workspace) (workspace.Workspace, error)

type WorkspaceStore interface {
	Snapshot() workspace.Workspace
	Version() uint64
	Apply(Mutation) (bool, error)
	Replace(workspace.Workspace) error
}

type workspaceStore struct {
	mu      sync.RWMutex
	current workspace.Workspace
	version uint64
}

func NewWorkspaceStore(initial workspace.Workspace) WorkspaceStore {
	return &workspaceStore{current: initial}
}

func (s *workspaceStore) Snapshot() workspace.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *workspaceStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Apply runs fn against the current snapshot and commits its result. Nothing
// is committed when fn fails or returns an invalid workspace. The bool reports
// whether the committed snapshot differs from the previous one.
func (s *workspaceStore) Apply(fn Mutation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.current)
	if err != nil {
		return false, err
	}
	if err := next.Validate(); err != nil {
		return false, err
	}
	if next.Equal(s.current) {
		return false, nil
	}
	s.current = next
	s.version++
	return true, nil
}

// Replace swaps in a whole workspace, used when a layout is reloaded.
func (s *workspaceStore) Replace(ws workspace.Workspace) error {
	_, err := s.Apply(func(workspace.Workspace) (workspace.Workspace, error) {
		return ws, nil
	})
	return err
}
