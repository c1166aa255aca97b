package focus

import (
	"fmt"
	"math"
	"time"
)

// Policy orders primary candidates. Compare returns negative when a is
// the better candidate, positive when b is, zero for a tie. Ties fall
// through to the deterministic tie-break chain, so a comparator that
// always returns zero is still a valid policy.
type Policy[ID comparable] interface {
	Compare(a, b ItemFocus[ID]) int
}

// PolicyFunc adapts a comparator function into a Policy.
type PolicyFunc[ID comparable] func(a, b ItemFocus[ID]) int

// Compare invokes the wrapped comparator.
func (f PolicyFunc[ID]) Compare(a, b ItemFocus[ID]) int {
	if f == nil {
		return 0
	}
	return f(a, b)
}

// ClosestToAnchor prefers the candidate nearest the anchor.
func ClosestToAnchor[ID comparable]() Policy[ID] {
	return PolicyFunc[ID](func(a, b ItemFocus[ID]) int {
		return compareFloat(a.DistanceToAnchor, b.DistanceToAnchor)
	})
}

// LargestProgress prefers the candidate with the highest focus
// progress.
func LargestProgress[ID comparable]() Policy[ID] {
	return PolicyFunc[ID](func(a, b ItemFocus[ID]) int {
		return compareFloat(b.FocusProgress, a.FocusProgress)
	})
}

// Stability configures the anti-flicker rules applied after the policy
// picks its best candidate.
type Stability struct {
	// MinPrimaryDuration blocks any switch away from the current
	// primary until it has held the role this long.
	MinPrimaryDuration time.Duration
	// HysteresisPx is the distance improvement a challenger must show
	// over the current primary before a switch is allowed. Only
	// applied when PreferCurrentPrimary is set.
	HysteresisPx float64
	// PreferCurrentPrimary keeps the current primary on ties and
	// sub-hysteresis improvements.
	PreferCurrentPrimary bool
	// AllowPrimaryWhenNoneFocused falls back to visible items when no
	// item overlaps the attention region.
	AllowPrimaryWhenNoneFocused bool
}

// Validate rejects configurations that could never be satisfied.
func (s Stability) Validate() error {
	if s.MinPrimaryDuration < 0 {
		return fmt.Errorf("focus: negative MinPrimaryDuration %v", s.MinPrimaryDuration)
	}
	if math.IsNaN(s.HysteresisPx) || s.HysteresisPx < 0 {
		return fmt.Errorf("focus: HysteresisPx %v must be non-negative", s.HysteresisPx)
	}
	return nil
}

// Primary identifies the current primary item and when it took the
// role. A zero Since means the start time is unknown; selection treats
// that as just-assigned.
type Primary[ID comparable] struct {
	ID    ID
	Since time.Time
	Valid bool
}

// Selection is the output of one selection pass.
type Selection[ID comparable] struct {
	Primary Primary[ID]
	Focused IDSet[ID]
	Visible IDSet[ID]
	Items   map[ID]ItemFocus[ID]
}

// Select picks at most one primary among the classified items.
// Candidates are the focused items, falling back to visible items when
// permitted by stab. Identical inputs with the same now produce
// identical results.
func Select[ID comparable](items []ItemFocus[ID], policy Policy[ID], stab Stability, prev Primary[ID], now time.Time) Selection[ID] {
	out := Selection[ID]{
		Focused: make(IDSet[ID]),
		Visible: make(IDSet[ID]),
		Items:   make(map[ID]ItemFocus[ID], len(items)),
	}

	var candidates []ItemFocus[ID]
	for _, item := range items {
		item.Primary = false
		out.Items[item.ID] = item
		if item.Visible {
			out.Visible.add(item.ID)
		}
		if item.Focused {
			out.Focused.add(item.ID)
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 && stab.AllowPrimaryWhenNoneFocused {
		for _, item := range items {
			if item.Visible {
				candidates = append(candidates, item)
			}
		}
	}
	if len(candidates) == 0 {
		return out
	}

	winner := candidates[0]
	for _, c := range candidates[1:] {
		if better(c, winner, policy) {
			winner = c
		}
	}

	chosen := winner.ID
	if prev.Valid {
		if prevItem, ok := findCandidate(candidates, prev.ID); ok && winner.ID != prev.ID {
			since := prev.Since
			if since.IsZero() {
				since = now
			}
			switch {
			case now.Sub(since) < stab.MinPrimaryDuration:
				chosen = prev.ID
			case stab.PreferCurrentPrimary &&
				prevItem.DistanceToAnchor-winner.DistanceToAnchor <= stab.HysteresisPx:
				chosen = prev.ID
			}
		}
	}

	since := now
	if prev.Valid && prev.ID == chosen && !prev.Since.IsZero() {
		since = prev.Since
	}
	out.Primary = Primary[ID]{ID: chosen, Since: since, Valid: true}

	item := out.Items[chosen]
	item.Primary = true
	out.Items[chosen] = item
	return out
}

// better reports whether a beats b under policy plus the tie-break
// chain: visible fraction descending, distance ascending, then
// registration order ascending (b, the incumbent, wins remaining
// ties).
func better[ID comparable](a, b ItemFocus[ID], policy Policy[ID]) bool {
	if policy != nil {
		if c := policy.Compare(a, b); c != 0 {
			return c < 0
		}
	}
	if a.VisibleFraction != b.VisibleFraction {
		return a.VisibleFraction > b.VisibleFraction
	}
	if c := compareFloat(a.DistanceToAnchor, b.DistanceToAnchor); c != 0 {
		return c < 0
	}
	return a.Order < b.Order
}

func findCandidate[ID comparable](candidates []ItemFocus[ID], id ID) (ItemFocus[ID], bool) {
	for _, c := range candidates {
		if c.ID == id {
			return c, true
		}
	}
	return ItemFocus[ID]{}, false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
