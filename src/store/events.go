package store

import "github.com/alby-numerique/participation/src/types"

// Events serves the municipal agenda. Read-only, so no locking.
type Events struct {
	items []types.Event
}

func NewEvents(seed []types.Event) *Events {
	items := make([]types.Event, len(seed))
	copy(items, seed)
	return &Events{items: items}
}

func (s *Events) List() []types.Event {
	out := make([]types.Event, len(s.items))
	copy(out, s.items)
	return out
}
