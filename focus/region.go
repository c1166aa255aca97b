// Package focus computes which items in a scrollable viewport are
// visible, which overlap an attention region, and which single item is
// primary under a selection policy with anti-flicker stability rules.
package focus

import (
	"fmt"
	"math"

	"github.com/odvcencio/spotlight/geom"
)

// AnchorKind identifies how an anchor position is expressed.
type AnchorKind int

const (
	// AnchorFraction positions the anchor at a fraction of the
	// effective viewport's main-axis extent.
	AnchorFraction AnchorKind = iota
	// AnchorPixels positions the anchor at a pixel offset from the
	// effective viewport's leading edge.
	AnchorPixels
)

// Anchor resolves to a single scalar position along the main axis.
type Anchor struct {
	kind  AnchorKind
	value float64
}

// FractionAnchor creates an anchor at fraction f of the viewport,
// where f must lie in [0, 1].
func FractionAnchor(f float64) (Anchor, error) {
	if math.IsNaN(f) || f < 0 || f > 1 {
		return Anchor{}, fmt.Errorf("focus: fraction anchor %v outside [0, 1]", f)
	}
	return Anchor{kind: AnchorFraction, value: f}, nil
}

// PixelAnchor creates an anchor at a pixel offset from the viewport's
// leading edge. Offsets beyond the viewport are allowed; the region
// simply lands outside every item.
func PixelAnchor(offset float64) (Anchor, error) {
	if math.IsNaN(offset) {
		return Anchor{}, fmt.Errorf("focus: pixel anchor offset is NaN")
	}
	return Anchor{kind: AnchorPixels, value: offset}, nil
}

// Kind returns how the anchor is expressed.
func (a Anchor) Kind() AnchorKind {
	return a.kind
}

// Resolve returns the anchor's scalar position given the effective
// viewport's leading edge and main-axis extent.
func (a Anchor) Resolve(start, extent float64) float64 {
	if a.kind == AnchorFraction {
		return start + a.value*extent
	}
	return start + a.value
}

// Region is the attention region focus is tested against: either a
// zero-thickness line at the anchor or a zone centered on it.
type Region struct {
	anchor Anchor
	extent float64
	zone   bool
}

// LineRegion creates a zero-thickness region at the anchor.
func LineRegion(anchor Anchor) Region {
	return Region{anchor: anchor}
}

// ZoneRegion creates a band of extentPx centered on the anchor,
// spanning the full cross axis. The extent must be non-negative.
func ZoneRegion(anchor Anchor, extentPx float64) (Region, error) {
	if math.IsNaN(extentPx) || extentPx < 0 {
		return Region{}, fmt.Errorf("focus: zone extent %v must be non-negative", extentPx)
	}
	return Region{anchor: anchor, extent: extentPx, zone: true}, nil
}

// IsZone reports whether the region is a zone rather than a line.
func (r Region) IsZone() bool {
	return r.zone
}

// Extent returns the zone extent in pixels, zero for lines.
func (r Region) Extent() float64 {
	return r.extent
}

// Anchor returns the region's anchor.
func (r Region) Anchor() Anchor {
	return r.anchor
}

// resolve returns the anchor position and region rectangle within the
// effective viewport.
func (r Region) resolve(effective geom.Rect, axis geom.Axis) (float64, geom.Rect) {
	pos := r.anchor.Resolve(axis.MainStart(effective), axis.MainExtent(effective))
	half := r.extent / 2
	return pos, axis.Band(effective, pos-half, pos+half)
}
