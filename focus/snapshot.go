package focus

import "time"

// IDSet is a set of item ids.
type IDSet[ID comparable] map[ID]struct{}

// Contains reports membership.
func (s IDSet[ID]) Contains(id ID) bool {
	_, ok := s[id]
	return ok
}

// Equal reports whether both sets hold the same ids, regardless of
// instance identity or insertion order.
func (s IDSet[ID]) Equal(other IDSet[ID]) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s IDSet[ID]) Clone() IDSet[ID] {
	out := make(IDSet[ID], len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

func (s IDSet[ID]) add(id ID) {
	s[id] = struct{}{}
}

// Snapshot is the immutable result of one compute pass. Accessors
// return internal maps; callers must treat them as read-only.
type Snapshot[ID comparable] struct {
	computedAt time.Time
	primary    Primary[ID]
	focused    IDSet[ID]
	visible    IDSet[ID]
	items      map[ID]ItemFocus[ID]
}

// NewSnapshot freezes a selection result at the given time.
func NewSnapshot[ID comparable](sel Selection[ID], at time.Time) *Snapshot[ID] {
	return &Snapshot[ID]{
		computedAt: at,
		primary:    sel.Primary,
		focused:    sel.Focused,
		visible:    sel.Visible,
		items:      sel.Items,
	}
}

// EmptySnapshot returns a snapshot with no items.
func EmptySnapshot[ID comparable](at time.Time) *Snapshot[ID] {
	return &Snapshot[ID]{
		computedAt: at,
		focused:    make(IDSet[ID]),
		visible:    make(IDSet[ID]),
		items:      make(map[ID]ItemFocus[ID]),
	}
}

// ComputedAt returns when the snapshot was produced.
func (s *Snapshot[ID]) ComputedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.computedAt
}

// Primary returns the primary item id, if any.
func (s *Snapshot[ID]) Primary() (ID, bool) {
	if s == nil {
		var zero ID
		return zero, false
	}
	return s.primary.ID, s.primary.Valid
}

// PrimarySince returns when the current primary took the role.
func (s *Snapshot[ID]) PrimarySince() (time.Time, bool) {
	if s == nil || !s.primary.Valid {
		return time.Time{}, false
	}
	return s.primary.Since, true
}

// FocusedIDs returns the focused-id set.
func (s *Snapshot[ID]) FocusedIDs() IDSet[ID] {
	if s == nil {
		return nil
	}
	return s.focused
}

// VisibleIDs returns the visible-id set.
func (s *Snapshot[ID]) VisibleIDs() IDSet[ID] {
	if s == nil {
		return nil
	}
	return s.visible
}

// Item returns the classification for id, if the pass saw it.
func (s *Snapshot[ID]) Item(id ID) (ItemFocus[ID], bool) {
	if s == nil {
		var zero ItemFocus[ID]
		return zero, false
	}
	item, ok := s.items[id]
	return item, ok
}

// Items returns the per-item classification map.
func (s *Snapshot[ID]) Items() map[ID]ItemFocus[ID] {
	if s == nil {
		return nil
	}
	return s.items
}

// Len returns the number of classified items.
func (s *Snapshot[ID]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}
