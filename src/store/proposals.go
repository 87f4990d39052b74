// Package store holds the portal's in-memory state. There is no database:
// every store starts from seed data and lives for the process lifetime.
// Stores are safe for concurrent use by HTTP handlers.
package store

import (
	"sync"

	"github.com/alby-numerique/participation/src/types"
)

// Proposals keeps the proposal list newest-first.
type Proposals struct {
	mu    sync.Mutex
	items []types.Proposal
}

func NewProposals(seed []types.Proposal) *Proposals {
	items := make([]types.Proposal, len(seed))
	copy(items, seed)
	return &Proposals{items: items}
}

// List returns a copy of the proposals, newest first.
func (s *Proposals) List() []types.Proposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Proposal, len(s.items))
	copy(out, s.items)
	return out
}

// Add prepends a proposal so the newest submission is always first.
func (s *Proposals) Add(p types.Proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]types.Proposal{p}, s.items...)
}

// Vote increments the vote count of the given proposal by one. Repeat votes
// stack; this is a "like", not a toggle. Returns false when the id is
// unknown, in which case nothing changes.
func (s *Proposals) Vote(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Votes++
			return true
		}
	}
	return false
}
