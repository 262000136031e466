package snapshot

import "sync/atomic"

// Store publishes the current Snapshot to concurrent readers. Readers
// Load a Snapshot and keep using it; writers build a complete replacement
// and Swap it in.
type Store struct {
	cur atomic.Pointer[Snapshot]
}

// NewStore returns a Store holding s.
func NewStore(s *Snapshot) *Store {
	st := &Store{}
	st.cur.Store(s)
	return st
}

// Load returns the current Snapshot.
func (st *Store) Load() *Snapshot { return st.cur.Load() }

// Swap publishes next and returns the previous Snapshot.
func (st *Store) Swap(next *Snapshot) *Snapshot { return st.cur.Swap(next) }
