// ════════════════════════════════════════════════════════════════════════════════════════════════
// Segmented Bucket Array
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Concurrent Interning Dictionary
// Component: Growable Logical Bucket Vector
//
// Description:
//   Provides a logical bucket vector of size InitialTableSize * 2^k that grows by appending a new
//   segment rather than reallocating — every bucket-head address handed out to a reader remains
//   valid for the dictionary's lifetime, cache-line isolated the way ring24 isolates its producer
//   and consumer cursors, applied here to isolate the hot "current segment" pointer every lookup
//   reads from the cold bookkeeping growth touches.
//
// Concurrency:
//   Segment installs are release-published via one atomic.Pointer.Store; readers snapshot with a
//   single acquire-load and never see a partially built segment.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package segtable

import (
	"errors"
	"sync/atomic"

	"github.com/kestrelsys/intern/arena"
	"github.com/kestrelsys/intern/constants"
	"github.com/kestrelsys/intern/sol"
)

// ErrSegmentsExhausted is returned by Grow once MaxSegments segments are
// installed. It is not a failure of the dictionary: spec.md §7 treats
// running out of growth headroom as "the table simply stops growing,"
// not an error surfaced to Intern's caller.
var ErrSegmentsExhausted = errors.New("segtable: max segments installed")

// errNotInitialized is an internal sentinel for calling Grow before
// InitFirstSegment; the engine never lets this escape because it always
// initializes segment 0 first.
var errNotInitialized = errors.New("segtable: no segment installed")

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// SEGMENT
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Segment is one array of atomic bucket-head pointers, owning logical
// bucket indices [PrevTableSize, TableSize). Once installed via Grow or
// InitFirstSegment, a Segment's heads slice is never reallocated and its
// prev link never changes — only the individual head pointers inside it
// are ever rewritten, and only under the engine's insertion lock.
type Segment struct {
	prevTableSize uint32
	tableSize     uint32
	version       uint32
	heads         []atomic.Pointer[arena.Node]
	prev          *Segment
}

// TableSize returns the logical bucket count once this segment is
// installed.
func (s *Segment) TableSize() uint32 { return s.tableSize }

// PrevTableSize returns the logical bucket count before this segment.
func (s *Segment) PrevTableSize() uint32 { return s.prevTableSize }

// Prev returns the segment installed immediately before this one, or
// nil for segment 0.
func (s *Segment) Prev() *Segment { return s.prev }

// head returns the atomic head pointer for a bucket this segment owns.
// Callers must ensure prevTableSize <= bucket < tableSize.
func (s *Segment) head(bucket uint32) *atomic.Pointer[arena.Node] {
	return &s.heads[bucket-s.prevTableSize]
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// TABLE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Table is the segmented bucket array. The zero value is ready to use;
// no segment is installed until InitFirstSegment runs.
type Table struct {
	_       [64]byte
	current atomic.Pointer[Segment]
	_       [56]byte
}

// Snapshot performs the single acquire-load a lock-free reader needs:
// the currently published segment, or nil if none has been installed
// yet (in which case the caller falls through to the insertion path).
//
//go:nosplit
//go:inline
func (t *Table) Snapshot() *Segment {
	return t.current.Load()
}

// Locate walks the prev chain downward from start, as many segments as
// needed, to find the segment owning bucket, then returns that segment's atomic head
// pointer for it (spec.md §4.3). start is normally a snapshot taken by
// the caller; growth also uses Locate against an older segment
// directly.
func Locate(start *Segment, bucket uint32) *atomic.Pointer[arena.Node] {
	for seg := start; seg != nil; seg = seg.prev {
		if bucket >= seg.prevTableSize && bucket < seg.tableSize {
			return seg.head(bucket)
		}
	}
	return nil
}

// InitFirstSegment allocates and publishes segment 0, sized
// constants.InitialTableSize. Called under the engine's insertion lock
// on every insertion; only the first call, which finds no segment
// installed, allocates. Idempotent: any later call just returns the
// current segment.
func (t *Table) InitFirstSegment() *Segment {
	if seg := t.current.Load(); seg != nil {
		return seg
	}
	seg := &Segment{
		tableSize: constants.InitialTableSize,
		heads:     make([]atomic.Pointer[arena.Node], constants.InitialTableSize),
	}
	t.current.Store(seg)
	return seg
}

// Grow implements spec.md §4.6: build segment k+1 completely in a local
// variable — every new head fully resolved via sol.SplitPoint against
// the old segment's existing list — then publish it with one
// release-store. No node is ever relinked; only new heads are added.
// Called under the engine's insertion lock.
func (t *Table) Grow() (*Segment, error) {
	old := t.current.Load()
	if old == nil {
		return nil, errNotInitialized
	}
	if old.version+1 >= constants.MaxSegments {
		return nil, ErrSegmentsExhausted
	}

	oldSize := old.tableSize
	newSize := oldSize * 2
	next := &Segment{
		prevTableSize: oldSize,
		tableSize:     newSize,
		version:       old.version + 1,
		heads:         make([]atomic.Pointer[arena.Node], oldSize),
		prev:          old,
	}

	for i := uint32(0); i < oldSize; i++ {
		oldHead := Locate(old, i).Load()
		splitAt := sol.SplitPoint(oldHead, oldSize, newSize, i)
		next.heads[i].Store(splitAt)
	}

	t.current.Store(next)
	return next, nil
}
