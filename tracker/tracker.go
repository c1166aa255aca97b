package tracker

import (
	"sync"
	"time"

	"github.com/odvcencio/spotlight/focus"
	"github.com/odvcencio/spotlight/overlay"
	"github.com/odvcencio/spotlight/state"
)

// Config bundles a tracker's fixed configuration. Region, policy and
// stability are validated once here so compute passes never fail.
type Config[ID comparable] struct {
	Region    focus.Region
	Policy    focus.Policy[ID]
	Stability focus.Stability
	// IncludeRects carries per-item rectangles into snapshots and
	// debug frames. Leave off in hot paths.
	IncludeRects bool
	// Cadence rate-limits recomputation. Nil computes on every
	// trigger.
	Cadence Cadence
	// FrameLog, when set, receives one debug frame per compute pass.
	FrameLog *overlay.FrameLog[ID]
	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// Tracker owns the compute pipeline for one scrollable container. One
// compute pass runs geometry, classification, selection and commit
// atomically: observers never see a partially updated snapshot.
type Tracker[ID comparable] struct {
	mu       sync.Mutex
	cfg      Config[ID]
	cadence  Cadence
	clock    func() time.Time
	registry *Registry[ID]
	viewport focus.Viewport
	snapshot *focus.Snapshot[ID]
	seq      uint64
	disposed bool

	primary *state.Signal[OptionalID[ID]]
	focused *state.Signal[focus.IDSet[ID]]
	visible *state.Signal[focus.IDSet[ID]]
	items   map[ID]*itemNotifiers[ID]
}

// New creates a tracker. The policy defaults to closest-to-anchor and
// the cadence to per-event.
func New[ID comparable](cfg Config[ID]) (*Tracker[ID], error) {
	if err := cfg.Stability.Validate(); err != nil {
		return nil, err
	}
	if cfg.Policy == nil {
		cfg.Policy = focus.ClosestToAnchor[ID]()
	}
	cadence := cfg.Cadence
	if cadence == nil {
		cadence = PerEvent{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	t := &Tracker[ID]{
		cfg:      cfg,
		cadence:  cadence,
		clock:    clock,
		registry: NewRegistry[ID](),
		snapshot: focus.EmptySnapshot[ID](clock()),
		primary:  state.NewSignal(OptionalID[ID]{}),
		focused:  state.NewSignal(focus.IDSet[ID]{}),
		visible:  state.NewSignal(focus.IDSet[ID]{}),
		items:    make(map[ID]*itemNotifiers[ID]),
	}
	t.primary.SetEqualFunc(state.EqualComparable[OptionalID[ID]])
	t.focused.SetEqualFunc(setEqual[ID])
	t.visible.SetEqualFunc(setEqual[ID])
	return t, nil
}

func setEqual[ID comparable](a, b focus.IDSet[ID]) bool {
	return a.Equal(b)
}

// Register adds or updates an item and requests recomputation.
func (t *Tracker[ID]) Register(item Item[ID]) {
	if t == nil {
		return
	}
	t.registry.Register(item)
	t.Invalidate()
}

// Unregister removes an item and requests recomputation.
func (t *Tracker[ID]) Unregister(id ID) {
	if t == nil {
		return
	}
	t.registry.Unregister(id)
	t.Invalidate()
}

// SetViewport updates the viewport description and requests
// recomputation. Called per scroll or layout change.
func (t *Tracker[ID]) SetViewport(vp focus.Viewport) {
	if t == nil {
		return
	}
	t.mu.Lock()
	changed := t.viewport != vp
	t.viewport = vp
	t.mu.Unlock()
	if changed {
		t.Invalidate()
	}
}

// Invalidate requests recomputation through the configured cadence.
func (t *Tracker[ID]) Invalidate() {
	if t == nil {
		return
	}
	t.mu.Lock()
	disposed := t.disposed
	t.mu.Unlock()
	if disposed {
		return
	}
	t.cadence.Trigger(t.Compute)
}

// Compute runs one full pass immediately, bypassing the cadence:
// geometry, classification, selection, then commit and notification.
func (t *Tracker[ID]) Compute() {
	if t == nil {
		return
	}
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}

	entries := t.registry.Entries()
	pass := focus.ComputePass(entries, focus.PassConfig{
		Viewport:     t.viewport,
		Region:       t.cfg.Region,
		IncludeRects: t.cfg.IncludeRects,
	})
	classified := focus.ClassifyPass(pass)

	now := t.clock()
	prev := focus.Primary[ID]{}
	if id, ok := t.snapshot.Primary(); ok {
		prev.ID = id
		prev.Valid = true
		if since, ok := t.snapshot.PrimarySince(); ok {
			prev.Since = since
		}
	}
	sel := focus.Select(classified, t.cfg.Policy, t.cfg.Stability, prev, now)
	snap := focus.NewSnapshot(sel, now)

	// Swap state before any notification fires so reentrant reads see
	// the completed snapshot.
	t.snapshot = snap
	t.seq++
	seq := t.seq
	notify := t.commitLocked(snap)
	frameLog := t.cfg.FrameLog
	t.mu.Unlock()

	if frameLog != nil {
		frameLog.Record(overlay.NewFrame(seq, pass, snap))
	}
	for _, fn := range notify {
		fn()
	}
}

// commitLocked diffs the new snapshot against the notifier state and
// returns the notification publishers to run after unlocking.
func (t *Tracker[ID]) commitLocked(snap *focus.Snapshot[ID]) []func() {
	var notify []func()

	primary := OptionalID[ID]{}
	primary.ID, primary.Valid = snap.Primary()
	notify = append(notify, func() { t.primary.Set(primary) })

	focused := snap.FocusedIDs()
	visible := snap.VisibleIDs()
	notify = append(notify, func() { t.focused.Set(focused) })
	notify = append(notify, func() { t.visible.Set(visible) })

	for id, record := range t.items {
		if value, ok := snap.Item(id); ok {
			record.omitted = false
			notify = append(notify, func() { record.publish(value) })
			continue
		}
		if record.omitted && record.listenerCount() == 0 {
			// Unobserved and already dark for a full commit: evict.
			delete(t.items, id)
			continue
		}
		record.omitted = true
		unknown := focus.Unknown(id)
		notify = append(notify, func() { record.publish(unknown) })
	}
	return notify
}

// Snapshot returns the current snapshot.
func (t *Tracker[ID]) Snapshot() *focus.Snapshot[ID] {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	snap := t.snapshot
	t.mu.Unlock()
	return snap
}

// Sequence returns the number of completed compute passes.
func (t *Tracker[ID]) Sequence() uint64 {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	seq := t.seq
	t.mu.Unlock()
	return seq
}

// PrimaryID notifies on changes of the primary item id.
func (t *Tracker[ID]) PrimaryID() state.Readable[OptionalID[ID]] {
	return t.primary
}

// FocusedIDs notifies when the focused-id set's contents change.
func (t *Tracker[ID]) FocusedIDs() state.Readable[focus.IDSet[ID]] {
	return t.focused
}

// VisibleIDs notifies when the visible-id set's contents change.
func (t *Tracker[ID]) VisibleIDs() state.Readable[focus.IDSet[ID]] {
	return t.visible
}

// ItemFocusOf returns the per-item metrics notifier for id, creating
// it on first request. Unknown ids yield the canonical unknown value,
// never an error. Repeated calls return the same notifier until it is
// evicted.
func (t *Tracker[ID]) ItemFocusOf(id ID) state.Readable[focus.ItemFocus[ID]] {
	record := t.itemRecord(id)
	if record == nil {
		return state.NewSignal(focus.Unknown(id))
	}
	return record.metrics
}

// ItemIsPrimaryOf notifies when the item's primary flag toggles.
func (t *Tracker[ID]) ItemIsPrimaryOf(id ID) state.Readable[bool] {
	record := t.itemRecord(id)
	if record == nil {
		return state.NewSignal(false)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return record.primarySignal()
}

// ItemIsFocusedOf notifies when the item's focused flag toggles.
func (t *Tracker[ID]) ItemIsFocusedOf(id ID) state.Readable[bool] {
	record := t.itemRecord(id)
	if record == nil {
		return state.NewSignal(false)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return record.focusedSignal()
}

// ItemIsVisibleOf notifies when the item's visible flag toggles.
func (t *Tracker[ID]) ItemIsVisibleOf(id ID) state.Readable[bool] {
	record := t.itemRecord(id)
	if record == nil {
		return state.NewSignal(false)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return record.visibleSignal()
}

// itemRecord returns the notifier record for id, creating and seeding
// it from the current snapshot on first request. Returns nil only
// after disposal.
func (t *Tracker[ID]) itemRecord(id ID) *itemNotifiers[ID] {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return nil
	}
	if record, ok := t.items[id]; ok {
		return record
	}
	seed, ok := t.snapshot.Item(id)
	if !ok {
		seed = focus.Unknown(id)
	}
	record := newItemNotifiers(seed)
	t.items[id] = record
	return record
}

// Dispose cancels pending scheduled work and releases all per-item
// notifiers. A disposed tracker ignores further triggers; pending
// cadence callbacks are discarded without firing.
func (t *Tracker[ID]) Dispose() {
	if t == nil {
		return
	}
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.disposed = true
	t.items = make(map[ID]*itemNotifiers[ID])
	t.mu.Unlock()
	t.cadence.Stop()
}
