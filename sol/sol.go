// ════════════════════════════════════════════════════════════════════════════════════════════════
// Split-Ordered List Helpers
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Concurrent Interning Dictionary
// Component: Bit-Reversed-Order Traversal & Splice
//
// Description:
//   Pure functions over the single global linked list of arena.Node values that every bucket head
//   threads through: bucket membership, lock-free search, and the prev/next splice points an
//   insertion needs. Ordering the list by bit-reversed hash (internhash.BitReverse32) makes every
//   hash-mod-T bucket a contiguous run, which is what lets growth add new heads into the middle of
//   the list without ever relinking an existing node — see SplitPoint below.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package sol

import (
	"bytes"

	"github.com/kestrelsys/intern/arena"
	"github.com/kestrelsys/intern/internhash"
)

// BucketOf returns the logical bucket a hash belongs to under a table of
// the given size: hash mod tableSize.
//
//go:nosplit
//go:inline
func BucketOf(hash, tableSize uint32) uint32 {
	return hash % tableSize
}

// inBucket reports whether n still belongs to bucket under tableSize —
// the termination test every bucket-local walk uses to detect that it
// has crossed into the next bucket's span.
//
//go:nosplit
//go:inline
func inBucket(n *arena.Node, tableSize, bucket uint32) bool {
	return n != nil && BucketOf(n.Hash(), tableSize) == bucket
}

// contentEqual reports whether n's stored content equals want.
//
//go:nosplit
//go:inline
func contentEqual(n *arena.Node, want []byte) bool {
	return n.Size() == uint32(len(want)) && bytes.Equal(n.Content(), want)
}

// Find performs the lock-free search of spec.md §4.5: walk from head,
// stop at a content match (return it) or at the first node that has
// left this bucket's span (return nil). It performs only the acquire
// loads implied by Node.Next; it never blocks and never mutates.
func Find(head *arena.Node, tableSize, bucket, hash uint32, content []byte) *arena.Node {
	for cur := head; inBucket(cur, tableSize, bucket); cur = cur.Next() {
		if cur.Hash() == hash && contentEqual(cur, content) {
			return cur
		}
	}
	return nil
}

// FindSplice walks bucket looking for an existing node with equal
// content (match, if any) and otherwise the prev/next splice points a
// new node for hash/content would be inserted between, ordered by
// bit-reversed hash. prev is nil when the new node would become the
// bucket head; next may belong to a different bucket when the new node
// would land at the tail of this bucket's span — that's fine, the list
// stays correctly threaded either way.
func FindSplice(head *arena.Node, tableSize, bucket, hash uint32, content []byte) (prev, match, next *arena.Node) {
	key := internhash.BitReverse32(hash)
	var p *arena.Node
	cur := head
	for inBucket(cur, tableSize, bucket) {
		if cur.Hash() == hash && contentEqual(cur, content) {
			return p, cur, cur.Next()
		}
		if internhash.BitReverse32(cur.Hash()) > key {
			break
		}
		p = cur
		cur = cur.Next()
	}
	return p, nil, cur
}

// SplitPoint implements the growth step of spec.md §4.6: given the head
// of an old bucket (under oldTableSize) that is splitting into oldBucket
// and oldBucket+oldTableSize under newTableSize, returns the first node
// that belongs to the new sibling bucket — the value the new bucket's
// head should be initialized with — or nil if the sibling bucket would
// be empty. No node is moved or relinked; SplitPoint only locates where
// an existing run of the list should be entered from a second head.
func SplitPoint(oldHead *arena.Node, oldTableSize, newTableSize, oldBucket uint32) *arena.Node {
	newBucket := oldBucket + oldTableSize
	for cur := oldHead; inBucket(cur, oldTableSize, oldBucket); cur = cur.Next() {
		if BucketOf(cur.Hash(), newTableSize) == newBucket {
			return cur
		}
	}
	return nil
}
