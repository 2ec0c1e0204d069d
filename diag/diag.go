// ════════════════════════════════════════════════════════════════════════════════════════════════
// Interning Activity Telemetry
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Concurrent Interning Dictionary
// Component: Lock-Free Activity Counters
//
// Description:
//   Optional, zero-lock activity telemetry for a Dictionary. Counters are plain atomics so the
//   lock-free lookup path never blocks on telemetry; the insertion path (already mutex-guarded)
//   pays one extra atomic add per call.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package diag

import (
	"sync/atomic"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// RECORDER
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Recorder accumulates interning activity counters. The zero value is ready
// to use. A nil *Recorder is valid everywhere as a no-op — every method on
// it checks for nil first, so a Dictionary can hold an optional recorder
// without branching at every call site.
type Recorder struct {
	lookups      uint64 // Intern calls not rejected as oversized, hit or miss
	hits         uint64 // Intern calls answered without the lock (lock-free hit or empty input)
	inserts      uint64 // Intern calls that allocated and spliced a new node
	growthEvents uint64 // completed Table.Grow calls
	lastActivity int64  // UnixNano of the most recent Intern call
}

// Snapshot is a point-in-time copy of a Recorder's counters.
type Snapshot struct {
	Lookups      uint64
	Hits         uint64
	Inserts      uint64
	GrowthEvents uint64
	LastActivity time.Time
}

// RecordLookup marks one Intern call and whether it was answered without
// the lock (hit: the lock-free search path, or empty input) or fell
// through to insertion.
//
//go:nosplit
//go:inline
func (r *Recorder) RecordLookup(hit bool) {
	if r == nil {
		return
	}
	atomic.AddUint64(&r.lookups, 1)
	if hit {
		atomic.AddUint64(&r.hits, 1)
	}
	atomic.StoreInt64(&r.lastActivity, time.Now().UnixNano())
}

// RecordInsert marks one successful node splice under the insertion lock.
//
//go:nosplit
//go:inline
func (r *Recorder) RecordInsert() {
	if r == nil {
		return
	}
	atomic.AddUint64(&r.inserts, 1)
}

// RecordGrowth marks one completed segment installation.
//
//go:nosplit
//go:inline
func (r *Recorder) RecordGrowth() {
	if r == nil {
		return
	}
	atomic.AddUint64(&r.growthEvents, 1)
}

// Snapshot returns a consistent-enough point-in-time read of all counters.
// Counters are read independently with plain atomic loads; under
// concurrent activity the four values may not correspond to exactly the
// same instant, which is acceptable for a diagnostics snapshot.
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return Snapshot{
		Lookups:      atomic.LoadUint64(&r.lookups),
		Hits:         atomic.LoadUint64(&r.hits),
		Inserts:      atomic.LoadUint64(&r.inserts),
		GrowthEvents: atomic.LoadUint64(&r.growthEvents),
		LastActivity: time.Unix(0, atomic.LoadInt64(&r.lastActivity)),
	}
}
