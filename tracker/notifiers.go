package tracker

import (
	"github.com/odvcencio/spotlight/focus"
	"github.com/odvcencio/spotlight/geom"
	"github.com/odvcencio/spotlight/state"
)

// Epsilons below which metric changes are swallowed: fractional fields
// move in [0, 1], distance and rectangle edges in pixels.
const (
	fractionEpsilon = 0.001
	pixelEpsilon    = 0.5
)

var (
	fractionEqual = state.EqualWithin(fractionEpsilon)
	pixelEqual    = state.EqualWithin(pixelEpsilon)
)

// OptionalID is a present-or-absent item id, the payload of the global
// primary notifier.
type OptionalID[ID comparable] struct {
	ID    ID
	Valid bool
}

// itemNotifiers is the per-item notifier record. The metrics signal is
// always populated; boolean projections are created on first request.
// omitted marks a record absent from the latest commit, arming it for
// eviction once no listeners remain.
type itemNotifiers[ID comparable] struct {
	metrics *state.Signal[focus.ItemFocus[ID]]
	primary *state.Signal[bool]
	focused *state.Signal[bool]
	visible *state.Signal[bool]
	omitted bool
}

func newItemNotifiers[ID comparable](seed focus.ItemFocus[ID]) *itemNotifiers[ID] {
	metrics := state.NewSignal(seed)
	metrics.SetEqualFunc(itemFocusEqual[ID])
	return &itemNotifiers[ID]{metrics: metrics}
}

func (n *itemNotifiers[ID]) publish(value focus.ItemFocus[ID]) {
	n.metrics.Set(value)
	n.primary.Set(value.Primary)
	n.focused.Set(value.Focused)
	n.visible.Set(value.Visible)
}

// listenerCount sums listeners across the metrics signal and any
// boolean projections.
func (n *itemNotifiers[ID]) listenerCount() int {
	return n.metrics.ListenerCount() +
		n.primary.ListenerCount() +
		n.focused.ListenerCount() +
		n.visible.ListenerCount()
}

func (n *itemNotifiers[ID]) primarySignal() *state.Signal[bool] {
	if n.primary == nil {
		n.primary = boolProjection(n.metrics.Get().Primary)
	}
	return n.primary
}

func (n *itemNotifiers[ID]) focusedSignal() *state.Signal[bool] {
	if n.focused == nil {
		n.focused = boolProjection(n.metrics.Get().Focused)
	}
	return n.focused
}

func (n *itemNotifiers[ID]) visibleSignal() *state.Signal[bool] {
	if n.visible == nil {
		n.visible = boolProjection(n.metrics.Get().Visible)
	}
	return n.visible
}

func boolProjection(seed bool) *state.Signal[bool] {
	sig := state.NewSignal(seed)
	sig.SetEqualFunc(state.EqualComparable[bool])
	return sig
}

// itemFocusEqual compares published metrics: booleans exactly,
// fractional fields within fractionEpsilon, distance and rectangle
// edges within pixelEpsilon.
func itemFocusEqual[ID comparable](a, b focus.ItemFocus[ID]) bool {
	if a.ID != b.ID {
		return false
	}
	if a.Visible != b.Visible || a.Focused != b.Focused || a.Primary != b.Primary {
		return false
	}
	if !fractionEqual(a.VisibleFraction, b.VisibleFraction) ||
		!fractionEqual(a.FocusProgress, b.FocusProgress) ||
		!fractionEqual(a.FocusOverlap, b.FocusOverlap) {
		return false
	}
	if !pixelEqual(a.DistanceToAnchor, b.DistanceToAnchor) {
		return false
	}
	return rectEqual(a.ItemRect, b.ItemRect) && rectEqual(a.VisibleRect, b.VisibleRect)
}

func rectEqual(a, b *geom.Rect) bool {
	if a == nil || b == nil {
		return a == b
	}
	return pixelEqual(a.Min.X, b.Min.X) && pixelEqual(a.Min.Y, b.Min.Y) &&
		pixelEqual(a.Max.X, b.Max.X) && pixelEqual(a.Max.Y, b.Max.Y)
}
