package focus

import (
	"math"

	"github.com/odvcencio/spotlight/geom"
)

// ItemFocus is the classification result for one item. Unknown items
// (never registered, or gone from the current pass) use the value
// returned by Unknown.
type ItemFocus[ID comparable] struct {
	ID ID
	// Order is the item's registration order, the final tie-break in
	// selection.
	Order   int
	Visible bool
	Focused bool
	Primary bool
	// VisibleFraction is visible area over item area, in [0, 1].
	VisibleFraction float64
	// DistanceToAnchor is the main-axis distance from the item center
	// to the anchor, in pixels. +Inf for unknown items.
	DistanceToAnchor float64
	// FocusProgress is normalized closeness to the anchor in [0, 1]:
	// 1 at the anchor, 0 at or beyond the normalization distance
	// (half the effective viewport's main-axis extent for lines, the
	// zone extent for zones when positive).
	FocusProgress float64
	// FocusOverlap is the zone overlap over the smaller of item and
	// zone extents, in [0, 1]. Always 0 for line regions.
	FocusOverlap float64
	// Rects are only carried when the pass was configured with
	// IncludeRects; nil otherwise.
	ItemRect    *geom.Rect
	VisibleRect *geom.Rect
}

// Unknown returns the canonical value for an item the engine knows
// nothing about.
func Unknown[ID comparable](id ID) ItemFocus[ID] {
	return ItemFocus[ID]{
		ID:               id,
		DistanceToAnchor: math.Inf(1),
	}
}

// ClassifyPass derives per-item metrics from a geometry pass. Primary
// is always false here; selection assigns it afterwards.
func ClassifyPass[ID comparable](pass PassResult[ID]) []ItemFocus[ID] {
	if len(pass.Items) == 0 {
		return nil
	}
	norm := pass.Axis.MainExtent(pass.Effective) / 2
	if pass.IsZone && pass.ZoneExtent > 0 {
		norm = pass.ZoneExtent
	}
	out := make([]ItemFocus[ID], 0, len(pass.Items))
	for _, item := range pass.Items {
		out = append(out, classify(item, pass, norm))
	}
	return out
}

func classify[ID comparable](item ProjectedItem[ID], pass PassResult[ID], norm float64) ItemFocus[ID] {
	axis := pass.Axis
	fc := ItemFocus[ID]{
		ID:      item.ID,
		Order:   item.Order,
		Visible: item.HasVisible,
	}

	itemArea := item.Rect.Area()
	if fc.Visible && itemArea > 0 {
		fc.VisibleFraction = clamp01(item.Visible.Area() / itemArea)
	}

	// Distance stays geometric for off-viewport items; the other
	// metrics keep their unknown defaults.
	fc.DistanceToAnchor = math.Abs(axis.MainCenter(item.Rect) - pass.AnchorPos)
	if norm > 0 && !item.Rect.Intersect(pass.Full).Empty() {
		fc.FocusProgress = 1 - clamp01(fc.DistanceToAnchor/norm)
	}

	if fc.Visible {
		start := axis.MainStart(item.Rect)
		end := axis.MainEnd(item.Rect)
		if pass.IsZone {
			overlap := math.Min(end, axis.MainEnd(pass.Region)) - math.Max(start, axis.MainStart(pass.Region))
			if overlap > 0 {
				fc.Focused = true
				denom := math.Min(end-start, pass.ZoneExtent)
				if denom > 0 {
					fc.FocusOverlap = clamp01(overlap / denom)
				}
			}
		} else {
			fc.Focused = start <= pass.AnchorPos && pass.AnchorPos <= end
		}
	}

	if pass.IncludeRects {
		rect := item.Rect
		fc.ItemRect = &rect
		if item.HasVisible {
			visible := item.Visible
			fc.VisibleRect = &visible
		}
	}
	return fc
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
