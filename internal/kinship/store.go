package kinship

import "sync"

// Store is an append-and-rewrite ordered list of ground facts (spec.md
// §4.B). New facts are prepended so that "newest first" is an externally
// observable property of both the in-memory order and the persisted form
// (§6). It guards itself with a mutex the way the teacher's prolog.Engine
// guards its shelled-out process, even though a single session never calls
// it concurrently — the session registry (SPEC_FULL §2 component J) can.
type Store struct {
	mu    sync.Mutex
	facts []Fact
}

// NewStore returns an empty fact store.
func NewStore() *Store {
	return &Store{}
}

// Contains reports whether fact is already present.
func (s *Store) Contains(f Fact) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(f)
}

func (s *Store) containsLocked(f Fact) bool {
	for _, existing := range s.facts {
		if existing.Equal(f) {
			return true
		}
	}
	return false
}

// InsertMany adds absent facts, preserving "newest first" order, and skips
// duplicates (gender facts are skipped iff already present, per spec.md
// §4.B). It returns the subset that was actually inserted.
func (s *Store) InsertMany(facts []Fact) []Fact {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := make([]Fact, 0, len(facts))
	for _, f := range facts {
		if s.containsLocked(f) {
			continue
		}
		inserted = append(inserted, f)
	}
	// Prepend as a block, preserving the caller's relative order so the
	// first new fact ends up closest to the top.
	s.facts = append(append([]Fact{}, inserted...), s.facts...)
	return inserted
}

// RemoveWhere deletes every fact matching pred and returns what was
// removed, used by placeholder replacement (§4.G).
func (s *Store) RemoveWhere(pred func(Fact) bool) []Fact {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.facts[:0:0]
	var removed []Fact
	for _, f := range s.facts {
		if pred(f) {
			removed = append(removed, f)
		} else {
			kept = append(kept, f)
		}
	}
	s.facts = kept
	return removed
}

// Snapshot returns a consistent, independent copy of the current facts for
// the evaluator to reason over. No half-written state is ever visible: a
// Snapshot call never interleaves with an InsertMany/RemoveWhere call.
func (s *Store) Snapshot() []Fact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Fact, len(s.facts))
	copy(out, s.facts)
	return out
}

// Clone deep-copies the store, used when a session needs an isolated copy
// (e.g. export without disturbing the live session).
func (s *Store) Clone() *Store {
	return &Store{facts: s.Snapshot()}
}
