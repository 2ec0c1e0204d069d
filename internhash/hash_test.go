package internhash

import "testing"

func TestSum32Deterministic(t *testing.T) {
	a := Sum32([]byte("foo"))
	b := Sum32([]byte("foo"))
	if a != b {
		t.Fatalf("Sum32 not deterministic within a process: %d != %d", a, b)
	}
}

func TestSum32DistinguishesContent(t *testing.T) {
	inputs := [][]byte{[]byte("foo"), []byte("bar"), []byte("baz"), []byte("")}
	seen := map[uint32]string{}
	for _, in := range inputs {
		h := Sum32(in)
		if prev, ok := seen[h]; ok {
			t.Fatalf("hash collision between %q and %q: both %d", prev, in, h)
		}
		seen[h] = string(in)
	}
}

func TestBitReverse32Involution(t *testing.T) {
	vals := []uint32{0, 1, 2, 0xFFFFFFFF, 0x80000000, 0x12345678}
	for _, v := range vals {
		if got := BitReverse32(BitReverse32(v)); got != v {
			t.Errorf("BitReverse32(BitReverse32(%#x)) = %#x, want %#x", v, got, v)
		}
	}
}

func TestBitReverse32KnownValues(t *testing.T) {
	if got := BitReverse32(1); got != 0x80000000 {
		t.Errorf("BitReverse32(1) = %#x, want 0x80000000", got)
	}
	if got := BitReverse32(0); got != 0 {
		t.Errorf("BitReverse32(0) = %#x, want 0", got)
	}
}
