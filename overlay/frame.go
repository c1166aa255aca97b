// Package overlay packages computation results into frames for an
// external debug visualization renderer.
package overlay

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/spotlight/focus"
	"github.com/odvcencio/spotlight/geom"
)

// Frame is one compute pass packaged for the overlay renderer. Seq
// increments once per pass and is the sole repaint trigger key.
type Frame[ID comparable] struct {
	Seq        uint64
	PassID     string
	At         time.Time
	Viewport   geom.Rect
	Effective  geom.Rect
	Region     geom.Rect
	AnchorPos  float64
	Primary    ID
	HasPrimary bool
	FocusedIDs []ID
	Items      []ItemBox[ID]
	Skipped    int
}

// ItemBox is one item's rectangles in viewport-local space.
type ItemBox[ID comparable] struct {
	ID         ID
	Rect       geom.Rect
	Visible    geom.Rect
	HasVisible bool
}

// NewFrame builds a frame from a pass and its resulting snapshot.
// Item boxes are only included when the pass carried rectangles.
func NewFrame[ID comparable](seq uint64, pass focus.PassResult[ID], snap *focus.Snapshot[ID]) Frame[ID] {
	frame := Frame[ID]{
		Seq:       seq,
		PassID:    ulid.Make().String(),
		At:        snap.ComputedAt(),
		Viewport:  pass.Full,
		Effective: pass.Effective,
		Region:    pass.Region,
		AnchorPos: pass.AnchorPos,
		Skipped:   pass.Skipped,
	}
	frame.Primary, frame.HasPrimary = snap.Primary()
	for id := range snap.FocusedIDs() {
		frame.FocusedIDs = append(frame.FocusedIDs, id)
	}
	if pass.IncludeRects {
		frame.Items = make([]ItemBox[ID], 0, len(pass.Items))
		for _, item := range pass.Items {
			frame.Items = append(frame.Items, ItemBox[ID]{
				ID:         item.ID,
				Rect:       item.Rect,
				Visible:    item.Visible,
				HasVisible: item.HasVisible,
			})
		}
	}
	return frame
}

// FrameLog retains the most recent frames in a bounded cache keyed by
// sequence number, for post-hoc inspection of selection behavior.
type FrameLog[ID comparable] struct {
	mu     sync.Mutex
	cache  *lru.Cache[uint64, Frame[ID]]
	latest uint64
	seen   bool
}

// NewFrameLog creates a log retaining up to capacity frames.
func NewFrameLog[ID comparable](capacity int) (*FrameLog[ID], error) {
	cache, err := lru.New[uint64, Frame[ID]](capacity)
	if err != nil {
		return nil, err
	}
	return &FrameLog[ID]{cache: cache}, nil
}

// Record stores a frame, evicting the oldest when full.
func (l *FrameLog[ID]) Record(frame Frame[ID]) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.cache.Add(frame.Seq, frame)
	if !l.seen || frame.Seq > l.latest {
		l.latest = frame.Seq
		l.seen = true
	}
	l.mu.Unlock()
}

// Frame returns the frame for a sequence number, if still retained.
func (l *FrameLog[ID]) Frame(seq uint64) (Frame[ID], bool) {
	if l == nil {
		return Frame[ID]{}, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Get(seq)
}

// Latest returns the most recently recorded frame.
func (l *FrameLog[ID]) Latest() (Frame[ID], bool) {
	if l == nil {
		return Frame[ID]{}, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.seen {
		return Frame[ID]{}, false
	}
	if frame, ok := l.cache.Get(l.latest); ok {
		return frame, true
	}
	return Frame[ID]{}, false
}

// Len returns the number of retained frames.
func (l *FrameLog[ID]) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Len()
}
