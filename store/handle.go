package store

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Handle publishes the current corpus snapshot to concurrent readers.
// Snapshot is wait-free; Reload builds a replacement off to the side and
// swaps it in atomically, so readers are never torn by a reload.
type Handle struct {
	current  atomic.Pointer[Store]
	reloadMu sync.Mutex
}

// NewHandle creates a handle over an initial snapshot.
func NewHandle(s *Store) (*Handle, error) {
	if s == nil {
		return nil, fmt.Errorf("store: nil snapshot for handle")
	}
	h := &Handle{}
	h.current.Store(s)
	return h, nil
}

// Snapshot returns the current snapshot. Callers keep using the returned
// value for the duration of one operation; it stays valid across reloads.
func (h *Handle) Snapshot() *Store { return h.current.Load() }

// Swap publishes a new snapshot, replacing the current one.
func (h *Handle) Swap(s *Store) {
	if s == nil {
		return
	}
	h.current.Store(s)
}

// Reload builds a fresh snapshot via load and publishes it. On error the
// previous snapshot stays in place. Concurrent Reload calls serialize;
// readers are never blocked.
func (h *Handle) Reload(load func() (*Store, error)) error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	s, err := load()
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("store: reload produced a nil snapshot")
	}
	h.current.Store(s)
	return nil
}
