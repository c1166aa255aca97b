package focus

import "github.com/odvcencio/spotlight/geom"

// Entry is one registered item as supplied by the host: its rectangle
// in the reference container's coordinate space and its registration
// order. Entries are read once per pass and never retained.
type Entry[ID comparable] struct {
	ID         ID
	Rect       geom.Rect
	ViewportID int
	Order      int
}

// Viewport describes the scroll container a pass measures against.
// The effective viewport is Rect shrunk by Insets; visibility is
// tested against the effective viewport when InsetsAffectVisibility
// is set, against the full viewport otherwise. The attention region
// always resolves within the effective viewport.
type Viewport struct {
	Rect                   geom.Rect
	Axis                   geom.Axis
	Insets                 geom.Insets
	InsetsAffectVisibility bool
}

// PassConfig bundles the inputs of one geometry pass.
type PassConfig struct {
	Viewport Viewport
	Region   Region
	// IncludeRects carries per-item rectangles into the pass output.
	// Off in hot paths; classification uses the rectangles either way.
	IncludeRects bool
}

// ProjectedItem is one entry projected into viewport-local space.
type ProjectedItem[ID comparable] struct {
	ID         ID
	Order      int
	Rect       geom.Rect
	Visible    geom.Rect
	HasVisible bool
}

// PassResult is the output of one geometry pass. All rectangles are in
// viewport-local coordinates with the full viewport's origin at (0,0).
type PassResult[ID comparable] struct {
	Full       geom.Rect
	Effective  geom.Rect
	Region     geom.Rect
	AnchorPos  float64
	Axis       geom.Axis
	ZoneExtent float64
	IsZone     bool
	// IncludeRects is carried into classification: when unset, item
	// rectangles are dropped from the published ItemFocus values.
	IncludeRects bool
	Items        []ProjectedItem[ID]
	// Skipped counts entries dropped because their ViewportID did not
	// match the reference (first) entry's. Hosts feeding a single
	// container should assert this stays zero.
	Skipped int
}

// ComputePass projects entries into viewport-local space, intersects
// them with the visibility rect, and resolves the attention region.
// Degenerate viewports and items produce empty rectangles, never
// errors. Entries from a different container than the first entry's
// are skipped and counted in Skipped.
func ComputePass[ID comparable](entries []Entry[ID], cfg PassConfig) PassResult[ID] {
	vp := cfg.Viewport
	full := vp.Rect.Translate(-vp.Rect.Min.X, -vp.Rect.Min.Y)
	effective := full.Shrink(vp.Insets)
	anchorPos, regionRect := cfg.Region.resolve(effective, vp.Axis)

	out := PassResult[ID]{
		Full:         full,
		Effective:    effective,
		Region:       regionRect,
		AnchorPos:    anchorPos,
		Axis:         vp.Axis,
		ZoneExtent:   cfg.Region.Extent(),
		IsZone:       cfg.Region.IsZone(),
		IncludeRects: cfg.IncludeRects,
	}
	if len(entries) == 0 {
		return out
	}

	visibleIn := full
	if vp.InsetsAffectVisibility {
		visibleIn = effective
	}

	reference := entries[0].ViewportID
	out.Items = make([]ProjectedItem[ID], 0, len(entries))
	for _, entry := range entries {
		if entry.ViewportID != reference {
			out.Skipped++
			continue
		}
		rect := entry.Rect.Translate(-vp.Rect.Min.X, -vp.Rect.Min.Y)
		visible := rect.Intersect(visibleIn)
		out.Items = append(out.Items, ProjectedItem[ID]{
			ID:         entry.ID,
			Order:      entry.Order,
			Rect:       rect,
			Visible:    visible,
			HasVisible: !visible.Empty(),
		})
	}
	return out
}
