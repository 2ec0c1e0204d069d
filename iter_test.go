package intern

import (
	"testing"

	"github.com/kestrelsys/intern/segtable"
)

func TestIterateEmptyDictionary(t *testing.T) {
	d := New()
	it := d.Iterate()
	if _, ok := it.Next(); ok {
		t.Error("Next() on an empty dictionary should return ok == false")
	}
}

func TestIteratePositionCounters(t *testing.T) {
	d := New()
	want := []string{"one", "two", "three"}
	for _, s := range want {
		if _, err := d.Intern([]byte(s)); err != nil {
			t.Fatalf("Intern(%q): %v", s, err)
		}
	}

	it := d.Iterate()
	tableSize := it.seg.TableSize()
	seen := map[string]bool{}
	for {
		h, ok := it.Next()
		if !ok {
			break
		}
		seen[h.String()] = true
		if it.Position() != h.n.Hash()%tableSize {
			t.Errorf("Position() = %d, want %d (the bucket %q's hash maps to)", it.Position(), h.n.Hash()%tableSize, h.String())
		}
		if it.Position() >= tableSize {
			t.Errorf("Position() = %d out of range for a table of size %d", it.Position(), tableSize)
		}
	}
	if len(seen) != len(want) {
		t.Fatalf("iterated %d distinct handles, want %d", len(seen), len(want))
	}
	for _, s := range want {
		if !seen[s] {
			t.Errorf("iteration never yielded %q", s)
		}
	}
}

// TestIteratorPositionTracksBucketCursor plants nodes in known, sparse
// buckets and checks that Position() reports exactly which bucket is
// currently being walked — not a running count of yielded handles, which
// would have coincided with the bucket index by accident in the simpler
// test above whenever every bucket holds at most one node.
func TestIteratorPositionTracksBucketCursor(t *testing.T) {
	d := New()
	seg := d.table.InitFirstSegment()
	tableSize := seg.TableSize()

	n0, err := d.arena.AllocateNode(0, []byte("b0"))
	if err != nil {
		t.Fatalf("AllocateNode: %v", err)
	}
	n2, err := d.arena.AllocateNode(2, []byte("b2"))
	if err != nil {
		t.Fatalf("AllocateNode: %v", err)
	}
	n5a, err := d.arena.AllocateNode(5, []byte("b5a"))
	if err != nil {
		t.Fatalf("AllocateNode: %v", err)
	}
	n5b, err := d.arena.AllocateNode(5+tableSize, []byte("b5b"))
	if err != nil {
		t.Fatalf("AllocateNode: %v", err)
	}
	n5a.StoreNext(n5b)

	segtable.Locate(seg, 0).Store(n0)
	segtable.Locate(seg, 2).Store(n2)
	segtable.Locate(seg, 5).Store(n5a)

	it := d.Iterate()
	wantBucket := []uint32{0, 2, 5, 5}
	wantContent := []string{"b0", "b2", "b5a", "b5b"}
	for i, wantB := range wantBucket {
		h, ok := it.Next()
		if !ok {
			t.Fatalf("Next() ended early at i=%d", i)
		}
		if it.Position() != wantB {
			t.Errorf("i=%d: Position() = %d, want %d", i, it.Position(), wantB)
		}
		if h.String() != wantContent[i] {
			t.Errorf("i=%d: content = %q, want %q", i, h.String(), wantContent[i])
		}
	}
	if _, ok := it.Next(); ok {
		t.Error("expected iteration to end after the last planted node")
	}
}

// TestIterateSnapshotIgnoresLaterGrowth verifies that an Iterator keeps
// using the segment (and therefore the table size) captured at Iterate()
// time even if the dictionary grows afterward — the traversal must not
// switch to the newer, larger segment mid-walk.
func TestIterateSnapshotIgnoresLaterGrowth(t *testing.T) {
	d := New()
	if _, err := d.Intern([]byte("before")); err != nil {
		t.Fatalf("Intern: %v", err)
	}
	it := d.Iterate()
	snapshotSize := it.seg.TableSize()

	if _, err := d.table.Grow(); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if d.table.Snapshot().TableSize() == snapshotSize {
		t.Fatal("test setup: Grow should have changed the dictionary's current table size")
	}

	found := false
	for {
		h, ok := it.Next()
		if !ok {
			break
		}
		if h.String() == "before" {
			found = true
		}
	}
	if !found {
		t.Error("iterator lost a handle that was already interned when Iterate() was called")
	}
	if it.seg.TableSize() != snapshotSize {
		t.Error("iterator's segment snapshot should not change after a concurrent Grow")
	}
}
