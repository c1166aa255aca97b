package focus

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func candidate(id string, distance, fraction float64) ItemFocus[string] {
	return ItemFocus[string]{
		ID:               id,
		Visible:          true,
		Focused:          true,
		VisibleFraction:  fraction,
		DistanceToAnchor: distance,
	}
}

func TestSelectClosestToAnchor(t *testing.T) {
	now := time.Unix(100, 0)
	items := []ItemFocus[string]{
		candidate("a", 40, 1),
		candidate("b", 10, 1),
		candidate("c", 25, 1),
	}

	sel := Select(items, ClosestToAnchor[string](), Stability{}, Primary[string]{}, now)
	if !sel.Primary.Valid || sel.Primary.ID != "b" {
		t.Fatalf("primary = %+v, want b", sel.Primary)
	}
	if sel.Primary.Since != now {
		t.Fatalf("since = %v, want %v", sel.Primary.Since, now)
	}
	if !sel.Items["b"].Primary {
		t.Fatalf("chosen item should carry the primary flag")
	}

	primaries := 0
	for _, item := range sel.Items {
		if item.Primary {
			primaries++
		}
	}
	if primaries != 1 {
		t.Fatalf("primaries = %d, want exactly 1", primaries)
	}
}

func TestSelectLargestProgress(t *testing.T) {
	items := []ItemFocus[string]{
		{ID: "a", Visible: true, Focused: true, FocusProgress: 0.4},
		{ID: "b", Visible: true, Focused: true, FocusProgress: 0.9},
	}
	sel := Select(items, LargestProgress[string](), Stability{}, Primary[string]{}, time.Unix(0, 0))
	if sel.Primary.ID != "b" {
		t.Fatalf("primary = %v, want b", sel.Primary.ID)
	}
}

func TestSelectIdempotent(t *testing.T) {
	now := time.Unix(42, 0)
	items := []ItemFocus[string]{
		candidate("a", 40, 0.8),
		candidate("b", 10, 0.6),
	}
	prev := Primary[string]{ID: "a", Since: now.Add(-time.Second), Valid: true}
	stab := Stability{MinPrimaryDuration: 500 * time.Millisecond, HysteresisPx: 5, PreferCurrentPrimary: true}

	first := Select(items, ClosestToAnchor[string](), stab, prev, now)
	second := Select(items, ClosestToAnchor[string](), stab, prev, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("select is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestSelectEmptyPool(t *testing.T) {
	items := []ItemFocus[string]{
		{ID: "a", Visible: true}, // visible but not focused
	}
	sel := Select(items, ClosestToAnchor[string](), Stability{}, Primary[string]{}, time.Unix(0, 0))
	if sel.Primary.Valid {
		t.Fatalf("primary = %+v, want none", sel.Primary)
	}
	for id, item := range sel.Items {
		if item.Primary {
			t.Fatalf("item %v marked primary with empty pool", id)
		}
	}
}

func TestSelectFallbackToVisible(t *testing.T) {
	items := []ItemFocus[string]{
		{ID: "a", Visible: true, DistanceToAnchor: 30},
		{ID: "b", Visible: true, DistanceToAnchor: 10},
	}
	stab := Stability{AllowPrimaryWhenNoneFocused: true}
	sel := Select(items, ClosestToAnchor[string](), stab, Primary[string]{}, time.Unix(0, 0))
	if !sel.Primary.Valid || sel.Primary.ID != "b" {
		t.Fatalf("primary = %+v, want visible fallback b", sel.Primary)
	}
	if len(sel.Focused) != 0 {
		t.Fatalf("focused ids = %v, want empty", sel.Focused)
	}
}

func TestSelectTieBreakChain(t *testing.T) {
	alwaysTie := PolicyFunc[string](func(a, b ItemFocus[string]) int { return 0 })

	// Visible fraction decides first, even at sub-percent differences.
	items := []ItemFocus[string]{
		candidate("a", 10, 0.500),
		candidate("b", 10, 0.501),
	}
	sel := Select(items, alwaysTie, Stability{}, Primary[string]{}, time.Unix(0, 0))
	if sel.Primary.ID != "b" {
		t.Fatalf("fraction tie-break picked %v, want b", sel.Primary.ID)
	}

	// Then distance.
	items = []ItemFocus[string]{
		candidate("a", 20, 0.5),
		candidate("b", 10, 0.5),
	}
	sel = Select(items, alwaysTie, Stability{}, Primary[string]{}, time.Unix(0, 0))
	if sel.Primary.ID != "b" {
		t.Fatalf("distance tie-break picked %v, want b", sel.Primary.ID)
	}

	// Then registration order; with equal Order fields the earlier
	// slice entry wins, so swapping the input swaps the winner.
	items = []ItemFocus[string]{
		candidate("a", 10, 0.5),
		candidate("b", 10, 0.5),
	}
	sel = Select(items, alwaysTie, Stability{}, Primary[string]{}, time.Unix(0, 0))
	if sel.Primary.ID != "a" {
		t.Fatalf("order tie-break picked %v, want a", sel.Primary.ID)
	}
	items[0], items[1] = items[1], items[0]
	sel = Select(items, alwaysTie, Stability{}, Primary[string]{}, time.Unix(0, 0))
	if sel.Primary.ID != "b" {
		t.Fatalf("order tie-break after swap picked %v, want b", sel.Primary.ID)
	}
}

func TestSelectRegistrationOrderBreaksFinalTies(t *testing.T) {
	alwaysTie := PolicyFunc[string](func(a, b ItemFocus[string]) int { return 0 })
	a := candidate("a", 10, 0.5)
	a.Order = 3
	b := candidate("b", 10, 0.5)
	b.Order = 1

	// The earlier-registered item wins regardless of slice position.
	sel := Select([]ItemFocus[string]{a, b}, alwaysTie, Stability{}, Primary[string]{}, time.Unix(0, 0))
	if sel.Primary.ID != "b" {
		t.Fatalf("order tie-break picked %v, want b", sel.Primary.ID)
	}
	sel = Select([]ItemFocus[string]{b, a}, alwaysTie, Stability{}, Primary[string]{}, time.Unix(0, 0))
	if sel.Primary.ID != "b" {
		t.Fatalf("order tie-break after swap picked %v, want b", sel.Primary.ID)
	}
}

func TestSelectMinPrimaryDuration(t *testing.T) {
	start := time.Unix(100, 0)
	stab := Stability{MinPrimaryDuration: time.Second}
	items := []ItemFocus[string]{
		candidate("a", 50, 1), // current primary, now far from anchor
		candidate("b", 5, 1),  // strictly better challenger
	}
	prev := Primary[string]{ID: "a", Since: start, Valid: true}

	sel := Select(items, ClosestToAnchor[string](), stab, prev, start.Add(500*time.Millisecond))
	if sel.Primary.ID != "a" {
		t.Fatalf("primary switched before MinPrimaryDuration, got %v", sel.Primary.ID)
	}
	if sel.Primary.Since != start {
		t.Fatalf("kept primary since = %v, want %v", sel.Primary.Since, start)
	}

	sel = Select(items, ClosestToAnchor[string](), stab, prev, start.Add(time.Second))
	if sel.Primary.ID != "b" {
		t.Fatalf("primary should switch at MinPrimaryDuration, got %v", sel.Primary.ID)
	}
	if sel.Primary.Since != start.Add(time.Second) {
		t.Fatalf("new primary since = %v, want now", sel.Primary.Since)
	}
}

func TestSelectZeroSinceIsMaximallyProtected(t *testing.T) {
	now := time.Unix(100, 0)
	stab := Stability{MinPrimaryDuration: time.Second}
	items := []ItemFocus[string]{
		candidate("a", 50, 1),
		candidate("b", 5, 1),
	}
	prev := Primary[string]{ID: "a", Valid: true} // unknown start time

	sel := Select(items, ClosestToAnchor[string](), stab, prev, now)
	if sel.Primary.ID != "a" {
		t.Fatalf("primary with unknown since should be protected, got %v", sel.Primary.ID)
	}
	if sel.Primary.Since != now {
		t.Fatalf("normalized since = %v, want now", sel.Primary.Since)
	}
}

func TestSelectHysteresis(t *testing.T) {
	now := time.Unix(100, 0)
	stab := Stability{PreferCurrentPrimary: true, HysteresisPx: 10}
	prev := Primary[string]{ID: "a", Since: now.Add(-time.Minute), Valid: true}

	// Improvement of exactly the hysteresis margin: keep the incumbent.
	items := []ItemFocus[string]{
		candidate("a", 20, 1),
		candidate("b", 10, 1),
	}
	sel := Select(items, ClosestToAnchor[string](), stab, prev, now)
	if sel.Primary.ID != "a" {
		t.Fatalf("improvement equal to hysteresis should not switch, got %v", sel.Primary.ID)
	}

	// Strictly greater improvement: switch.
	items = []ItemFocus[string]{
		candidate("a", 21, 1),
		candidate("b", 10, 1),
	}
	sel = Select(items, ClosestToAnchor[string](), stab, prev, now)
	if sel.Primary.ID != "b" {
		t.Fatalf("improvement beyond hysteresis should switch, got %v", sel.Primary.ID)
	}
}

func TestSelectPreviousPrimaryGone(t *testing.T) {
	now := time.Unix(100, 0)
	stab := Stability{MinPrimaryDuration: time.Hour, PreferCurrentPrimary: true, HysteresisPx: 100}
	prev := Primary[string]{ID: "gone", Since: now.Add(-time.Millisecond), Valid: true}
	items := []ItemFocus[string]{
		candidate("a", 10, 1),
	}

	// Stability rules do not protect a primary that left the pool.
	sel := Select(items, ClosestToAnchor[string](), stab, prev, now)
	if sel.Primary.ID != "a" {
		t.Fatalf("primary = %v, want a", sel.Primary.ID)
	}
	if sel.Primary.Since != now {
		t.Fatalf("since = %v, want now", sel.Primary.Since)
	}
}

func TestSelectSinceCarriedForUnchangedPrimary(t *testing.T) {
	start := time.Unix(50, 0)
	items := []ItemFocus[string]{
		candidate("a", 5, 1),
		candidate("b", 50, 1),
	}
	prev := Primary[string]{ID: "a", Since: start, Valid: true}
	sel := Select(items, ClosestToAnchor[string](), Stability{}, prev, start.Add(time.Minute))
	if sel.Primary.ID != "a" || sel.Primary.Since != start {
		t.Fatalf("primary = %+v, want a held since %v", sel.Primary, start)
	}
}

func TestSelectDerivedSets(t *testing.T) {
	items := []ItemFocus[string]{
		{ID: "a", Visible: true, Focused: true},
		{ID: "b", Visible: true},
		{ID: "c"},
	}
	sel := Select(items, ClosestToAnchor[string](), Stability{}, Primary[string]{}, time.Unix(0, 0))
	if !sel.Focused.Equal(IDSet[string]{"a": {}}) {
		t.Fatalf("focused = %v", sel.Focused)
	}
	if !sel.Visible.Equal(IDSet[string]{"a": {}, "b": {}}) {
		t.Fatalf("visible = %v", sel.Visible)
	}
	if len(sel.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(sel.Items))
	}
}

func TestStabilityValidate(t *testing.T) {
	if err := (Stability{MinPrimaryDuration: -time.Second}).Validate(); err == nil {
		t.Fatalf("expected error for negative duration")
	}
	if err := (Stability{HysteresisPx: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative hysteresis")
	}
	if err := (Stability{HysteresisPx: math.NaN()}).Validate(); err == nil {
		t.Fatalf("expected error for NaN hysteresis")
	}
	if err := (Stability{MinPrimaryDuration: time.Second, HysteresisPx: 8}).Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}
