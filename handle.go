// ════════════════════════════════════════════════════════════════════════════════════════════════
// Handle (C6)
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Concurrent Interning Dictionary
// Component: Address-Identity String Handle
//
// Description:
//   Handle is a small value type wrapping a pointer to an interned arena.Node — the value-type
//   discipline ring24 applies to its slots, carrying pairidx's pointer-identity-as-key idea into a
//   type safe to use directly as a map key. The zero Handle resolves lazily to arena.Empty, so
//   "default construction" and "interned empty string" are the same observable value.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package intern

import (
	"bytes"
	"io"
	"unsafe"

	"github.com/kestrelsys/intern/arena"
)

// Handle identifies one interned byte string. Two handles compare equal
// with == (and with Equal) if and only if they were interned from equal
// content — Handle is safe to use directly as a map key or in a struct
// compared with ==.
type Handle struct {
	n *arena.Node
}

// node resolves the zero Handle to the shared empty sentinel, so every
// accessor below works correctly on a Handle that was never assigned by
// Intern.
//
//go:nosplit
//go:inline
func (h Handle) node() *arena.Node {
	if h.n == nil {
		return arena.Empty
	}
	return h.n
}

// Data returns the handle's NUL-terminated byte payload.
func (h Handle) Data() []byte { return h.node().Data() }

// Size returns the length of the interned content, in bytes.
func (h Handle) Size() uint32 { return h.node().Size() }

// Hash returns the 32-bit hash computed at intern time.
func (h Handle) Hash() uint32 { return h.node().Hash() }

// Empty reports whether this handle refers to the zero-length interned
// string.
func (h Handle) Empty() bool { return h.node().Size() == 0 }

// String returns the interned content as a string, without copying the
// underlying bytes.
func (h Handle) String() string {
	content := h.node().Content()
	return unsafe.String(unsafe.SliceData(content), len(content))
}

// Equal reports whether h and o were interned from equal content. Because
// interning guarantees at most one node per distinct byte string, this is
// equivalent to pointer identity and just as cheap as ==.
//
//go:nosplit
//go:inline
func (h Handle) Equal(o Handle) bool { return h.node() == o.node() }

// Less orders handles by the byte-lexicographic order of their content,
// for callers that need a total order (e.g. sorting a slice of handles)
// rather than the identity relation Equal provides.
func (h Handle) Less(o Handle) bool {
	return bytes.Compare(h.node().Content(), o.node().Content()) < 0
}

// WriteTo streams the handle's content (excluding the trailing NUL) to
// w, satisfying io.WriterTo for callers assembling output without an
// intermediate copy.
func (h Handle) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h.node().Content())
	return int64(n), err
}
