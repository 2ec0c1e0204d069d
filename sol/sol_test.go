package sol

import (
	"testing"

	"github.com/kestrelsys/intern/arena"
)

func node(t *testing.T, a *arena.Arena, hash uint32, content string) *arena.Node {
	t.Helper()
	n, err := a.AllocateNode(hash, []byte(content))
	if err != nil {
		t.Fatalf("AllocateNode: %v", err)
	}
	return n
}

// chain links nodes in the given order via StoreNext and returns the head.
func chain(nodes ...*arena.Node) *arena.Node {
	for i := 0; i+1 < len(nodes); i++ {
		nodes[i].StoreNext(nodes[i+1])
	}
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func TestBucketOf(t *testing.T) {
	if got := BucketOf(10, 8); got != 2 {
		t.Errorf("BucketOf(10,8) = %d, want 2", got)
	}
	if got := BucketOf(0, 8); got != 0 {
		t.Errorf("BucketOf(0,8) = %d, want 0", got)
	}
}

func TestFindHitAndMiss(t *testing.T) {
	var a arena.Arena
	// Table size 8, bucket 1: hashes 1, 9, 17 all land in bucket 1.
	n1 := node(t, &a, 1, "a")
	n2 := node(t, &a, 9, "b")
	n3 := node(t, &a, 17, "c")
	// A node from a different bucket terminates the walk.
	other := node(t, &a, 2, "z")
	head := chain(n1, n2, n3, other)

	if got := Find(head, 8, 1, 9, []byte("b")); got != n2 {
		t.Errorf("Find hit: got %v, want n2", got)
	}
	if got := Find(head, 8, 1, 9, []byte("wrong-content")); got != nil {
		t.Errorf("Find with wrong content should miss, got %v", got)
	}
	if got := Find(head, 8, 1, 25, []byte("nope")); got != nil {
		t.Errorf("Find miss should return nil, got %v", got)
	}
}

func TestFindStopsAtBucketBoundary(t *testing.T) {
	var a arena.Arena
	n1 := node(t, &a, 1, "a")
	other := node(t, &a, 2, "target") // different bucket, same-looking content coincidence avoided
	head := chain(n1, other)

	// "target" lives in bucket 2, not bucket 1 — Find must not walk past
	// the bucket-1 span to find it.
	if got := Find(head, 8, 1, 2, []byte("target")); got != nil {
		t.Errorf("Find crossed bucket boundary, got %v", got)
	}
}

func TestFindSpliceOrdersByBitReversedHash(t *testing.T) {
	var a arena.Arena
	// All three hashes land in bucket 0 under T=8. Their bit-reversed
	// order is 0 < reversed(16) < reversed(8), so inserting hash 16
	// between the two must place it between lo and hi.
	lo := node(t, &a, 0, "lo")
	hi := node(t, &a, 8, "hi")
	head := chain(lo, hi)

	prev, match, next := FindSplice(head, 8, 0, 16, []byte("mid"))
	if match != nil {
		t.Fatalf("expected no match, got %v", match)
	}
	if prev != lo {
		t.Fatalf("prev = %v, want lo", prev)
	}
	if next != hi {
		t.Fatalf("next = %v, want hi", next)
	}
}

func TestFindSpliceReturnsMatch(t *testing.T) {
	var a arena.Arena
	n1 := node(t, &a, 1, "a")
	n2 := node(t, &a, 9, "b")
	head := chain(n1, n2)

	prev, match, next := FindSplice(head, 8, 1, 9, []byte("b"))
	if match != n2 {
		t.Fatalf("expected match n2, got %v", match)
	}
	if prev != n1 {
		t.Fatalf("expected prev n1, got %v", prev)
	}
	if next != nil {
		t.Fatalf("expected next nil, got %v", next)
	}
}

func TestSplitPoint(t *testing.T) {
	var a arena.Arena
	// Old table size 4, bucket 0 holds hashes 0,4,8,... New table size 8
	// splits bucket 0 into {0 mod 8} and {4 mod 8}.
	n0 := node(t, &a, 0, "n0") // 0%4=0, 0%8=0 -> stays in bucket 0
	n4 := node(t, &a, 4, "n4") // 4%4=0, 4%8=4 -> moves to sibling bucket 4
	n8 := node(t, &a, 8, "n8") // 8%4=0, 8%8=0 -> stays in bucket 0
	head := chain(n0, n4, n8)

	split := SplitPoint(head, 4, 8, 0)
	if split != n4 {
		t.Fatalf("SplitPoint = %v, want n4", split)
	}
}

func TestSplitPointEmptySibling(t *testing.T) {
	var a arena.Arena
	n0 := node(t, &a, 0, "n0")
	head := chain(n0)

	split := SplitPoint(head, 4, 8, 0)
	if split != nil {
		t.Fatalf("SplitPoint = %v, want nil (no sibling)", split)
	}
}
