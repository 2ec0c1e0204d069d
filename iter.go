// ════════════════════════════════════════════════════════════════════════════════════════════════
// Iterator (C7)
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Concurrent Interning Dictionary
// Component: Snapshot Traversal
//
// Description:
//   Iterator walks every node reachable from a single segment snapshot taken at Iterate() time,
//   bucket by bucket, mirroring ticksoa.go's "shared index across parallel state" style — Position
//   exposes the bucket cursor and BucketPosition the offset within it, the way ticksoa exposes its
//   row cursor. Because the snapshot is a *segtable.Segment held for the iterator's lifetime,
//   growth that happens on another goroutine after Iterate() returns is simply not observed — an
//   acceptable staleness window given no iteration-ordering guarantee is made.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package intern

import (
	"github.com/kestrelsys/intern/arena"
	"github.com/kestrelsys/intern/segtable"
)

// Iterator walks the dictionary's interned handles as of the moment
// Iterate was called. It is not safe for concurrent use by multiple
// goroutines, and it is not safe to use after the Dictionary it was
// created from becomes unreachable.
type Iterator struct {
	seg            *segtable.Segment
	bucket         uint32
	cur            *arena.Node
	bucketPosition uint32
}

// Iterate returns an Iterator over every handle interned as of this
// call.
func (d *Dictionary) Iterate() *Iterator {
	seg := d.table.Snapshot()
	it := &Iterator{seg: seg}
	if seg != nil {
		it.cur = segtable.Locate(seg, 0).Load()
	}
	return it
}

// Next advances the iterator and returns the next handle, or ok == false
// once every bucket in the snapshotted table has been exhausted.
func (it *Iterator) Next() (Handle, bool) {
	if it.seg == nil {
		return Handle{}, false
	}
	tableSize := it.seg.TableSize()
	for {
		for it.cur == nil {
			it.bucket++
			if it.bucket >= tableSize {
				return Handle{}, false
			}
			it.bucketPosition = 0
			it.cur = segtable.Locate(it.seg, it.bucket).Load()
		}
		// A node belongs to it.bucket only while its hash still maps
		// there under tableSize; once the walk crosses into the next
		// bucket's span, treat this bucket as exhausted rather than
		// double-counting a node that a later bucket's head will also
		// reach.
		if it.cur.Hash()%tableSize != it.bucket {
			it.cur = nil
			continue
		}
		n := it.cur
		it.cur = n.Next()
		it.bucketPosition++
		return Handle{n: n}, true
	}
}

// Position returns the index of the bucket the iterator is currently
// walking, within the snapshotted table.
func (it *Iterator) Position() uint32 { return it.bucket }

// BucketPosition returns the number of handles yielded from the current
// bucket so far, resetting to zero each time the iterator advances into
// a new bucket.
func (it *Iterator) BucketPosition() uint32 { return it.bucketPosition }
