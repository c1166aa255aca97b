package tracker

import (
	"testing"

	"github.com/odvcencio/spotlight/geom"
)

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry[string]()
	r.Register(Item[string]{ID: "b", Rect: geom.XYWH(0, 50, 100, 50)})
	r.Register(Item[string]{ID: "a", Rect: geom.XYWH(0, 0, 100, 50)})
	r.Register(Item[string]{ID: "c", Rect: geom.XYWH(0, 100, 100, 50)})

	entries := r.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	wantOrder := []string{"b", "a", "c"}
	for i, entry := range entries {
		if entry.ID != wantOrder[i] {
			t.Fatalf("entry %d = %v, want %v", i, entry.ID, wantOrder[i])
		}
		if entry.Order != i {
			t.Fatalf("entry %v order = %d, want %d", entry.ID, entry.Order, i)
		}
	}
}

func TestRegistryLastWriteWins(t *testing.T) {
	r := NewRegistry[string]()
	r.Register(Item[string]{ID: "a", Rect: geom.XYWH(0, 0, 100, 50)})
	r.Register(Item[string]{ID: "b", Rect: geom.XYWH(0, 50, 100, 50)})
	r.Register(Item[string]{ID: "a", Rect: geom.XYWH(0, 200, 100, 50)})

	if got := r.Len(); got != 2 {
		t.Fatalf("len = %d, want 2", got)
	}
	entries := r.Entries()
	// Re-registration keeps the original position but takes the new
	// rectangle.
	if entries[0].ID != "a" || entries[0].Rect != geom.XYWH(0, 200, 100, 50) {
		t.Fatalf("entry 0 = %+v", entries[0])
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry[string]()
	r.Register(Item[string]{ID: "a"})
	r.Register(Item[string]{ID: "b"})
	r.Unregister("a")
	r.Unregister("missing") // no-op

	entries := r.Entries()
	if len(entries) != 1 || entries[0].ID != "b" {
		t.Fatalf("entries = %+v, want only b", entries)
	}
	if entries[0].Order != 0 {
		t.Fatalf("order = %d, want reindexed to 0", entries[0].Order)
	}
}
