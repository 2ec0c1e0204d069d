// ════════════════════════════════════════════════════════════════════════════════════════════════
// Interning Engine (C5)
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Concurrent Interning Dictionary
// Component: Lock-Free Lookup, Mutex-Serialized Insertion
//
// Description:
//   Dictionary ties the arena, split-ordered list helpers, and segmented bucket table into the
//   public Intern contract: a lock-free search first, falling through to a single mutex-guarded
//   insertion path that re-checks for a race winner, allocates, splices, and — at load factor one —
//   grows the table before releasing the lock. Field grouping follows syncharvester's cache-
//   temperature discipline: the lock-free-reachable table sits first, the mutex and cold insertion
//   bookkeeping after.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package intern

import (
	"sync"
	"sync/atomic"

	"github.com/kestrelsys/intern/arena"
	"github.com/kestrelsys/intern/constants"
	"github.com/kestrelsys/intern/debug"
	"github.com/kestrelsys/intern/diag"
	"github.com/kestrelsys/intern/internhash"
	"github.com/kestrelsys/intern/segtable"
	"github.com/kestrelsys/intern/sol"
)

// Dictionary is a concurrent interning table. Lookups are lock-free;
// insertions (including table growth) are serialized behind a single
// mutex. The zero value is not usable — construct with New.
type Dictionary struct {
	// Hot: touched by every Intern call, lock-free path included.
	table    segtable.Table
	recorder *diag.Recorder

	// growthGate is accessed with sync/atomic and must stay 8-byte
	// aligned on 32-bit platforms; keep it ahead of the plain fields
	// below so struct layout never pushes it off an 8-byte boundary.
	growthGate int64

	// Cold: touched only under mu, during insertion and growth.
	mu    sync.Mutex
	arena arena.Arena
	size  uint32
}

// New returns a ready-to-use Dictionary with no telemetry attached.
func New() *Dictionary {
	return &Dictionary{}
}

var globalDict atomic.Pointer[Dictionary]
var globalOnce sync.Once

// Global returns the process-wide singleton Dictionary, constructing it
// on first use. Safe for concurrent use from multiple goroutines.
func Global() *Dictionary {
	globalOnce.Do(func() {
		globalDict.Store(New())
	})
	return globalDict.Load()
}

// InternGlobal interns b in the process-wide singleton returned by
// Global.
func InternGlobal(b []byte) (Handle, error) {
	return Global().Intern(b)
}

// WithRecorder attaches an activity recorder to the dictionary. Intended
// for use immediately after New, before any concurrent Intern calls
// begin; not safe to call concurrently with Intern.
func (d *Dictionary) WithRecorder(r *diag.Recorder) *Dictionary {
	d.recorder = r
	return d
}

// Intern returns the address-stable handle for b, allocating and
// publishing a new node the first time b's content is seen. Concurrent
// calls interning equal content always converge on the same handle.
func (d *Dictionary) Intern(b []byte) (Handle, error) {
	if len(b) == 0 {
		d.recorder.RecordLookup(true)
		return Handle{}, nil
	}
	if len(b) > constants.MaxStringSize {
		return Handle{}, ErrTooLarge
	}

	hash := internhash.Sum32(b)

	if h, ok := d.lockFreeFind(hash, b); ok {
		d.recorder.RecordLookup(true)
		return h, nil
	}
	d.recorder.RecordLookup(false)

	d.mu.Lock()
	defer d.mu.Unlock()

	seg := d.table.InitFirstSegment()

	bucket := sol.BucketOf(hash, seg.TableSize())
	headPtr := segtable.Locate(seg, bucket)
	prev, match, next := sol.FindSplice(headPtr.Load(), seg.TableSize(), bucket, hash, b)
	if match != nil {
		return Handle{n: match}, nil
	}

	n, err := d.arena.AllocateNode(hash, b)
	if err != nil {
		return Handle{}, ErrOutOfMemory
	}
	n.StoreNext(next)
	if prev != nil {
		prev.StoreNext(n)
	} else {
		headPtr.Store(n)
	}
	d.size++
	d.recorder.RecordInsert()

	if d.size >= seg.TableSize() {
		if _, err := d.table.Grow(); err != nil {
			debug.DropOnce(&d.growthGate, "intern", "table stopped growing: "+err.Error())
		} else {
			d.recorder.RecordGrowth()
		}
	}

	return Handle{n: n}, nil
}

// lockFreeFind performs the read-path search of spec.md §4.5 step 1-2:
// snapshot the current segment, locate the owning bucket, and walk it.
// It never blocks and never mutates.
func (d *Dictionary) lockFreeFind(hash uint32, content []byte) (Handle, bool) {
	seg := d.table.Snapshot()
	if seg == nil {
		return Handle{}, false
	}
	bucket := sol.BucketOf(hash, seg.TableSize())
	headPtr := segtable.Locate(seg, bucket)
	if headPtr == nil {
		return Handle{}, false
	}
	if n := sol.Find(headPtr.Load(), seg.TableSize(), bucket, hash, content); n != nil {
		return Handle{n: n}, true
	}
	return Handle{}, false
}
