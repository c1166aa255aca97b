// Package tracker drives focus computation for a scrollable container:
// it holds the registered items and viewport description, runs the
// geometry/classification/selection pipeline on demand, and publishes
// diff-suppressed change notifications for the results.
package tracker

import (
	"sync"

	"github.com/odvcencio/spotlight/focus"
	"github.com/odvcencio/spotlight/geom"
)

// Item is one registered list entry: its rectangle in the reference
// container's coordinate space, and the container it belongs to.
type Item[ID comparable] struct {
	ID         ID
	Rect       geom.Rect
	ViewportID int
}

// Registry holds the registered items in registration order. It is
// fed by the host's layout phase and read once per compute pass.
type Registry[ID comparable] struct {
	mu    sync.Mutex
	order []ID
	items map[ID]Item[ID]
}

// NewRegistry creates an empty registry.
func NewRegistry[ID comparable]() *Registry[ID] {
	return &Registry[ID]{items: make(map[ID]Item[ID])}
}

// Register adds or updates an item. Registering an id twice keeps the
// original registration order and the latest rectangle (last write
// wins).
func (r *Registry[ID]) Register(item Item[ID]) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if _, ok := r.items[item.ID]; !ok {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = item
	r.mu.Unlock()
}

// Unregister removes an item. Unknown ids are ignored.
func (r *Registry[ID]) Unregister(id ID) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if _, ok := r.items[id]; ok {
		delete(r.items, id)
		for i, existing := range r.order {
			if existing == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()
}

// Len returns the number of registered items.
func (r *Registry[ID]) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	n := len(r.order)
	r.mu.Unlock()
	return n
}

// Entries returns the registered items as ordered pass entries.
func (r *Registry[ID]) Entries() []focus.Entry[ID] {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]focus.Entry[ID], 0, len(r.order))
	for i, id := range r.order {
		item := r.items[id]
		out = append(out, focus.Entry[ID]{
			ID:         item.ID,
			Rect:       item.Rect,
			ViewportID: item.ViewportID,
			Order:      i,
		})
	}
	return out
}
