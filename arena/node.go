// ════════════════════════════════════════════════════════════════════════════════════════════════
// Interned Node
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Concurrent Interning Dictionary
// Component: Arena-Backed String Node
//
// Description:
//   Node is the immutable record the split-ordered list threads together: a 32-bit hash, a size,
//   an atomic next-link, and an inline NUL-terminated byte payload allocated in the same arena
//   block as the header. Once published, a node's address and byte content never change; only its
//   next-link is ever rewritten, and only under the engine's insertion lock.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package arena

import (
	"sync/atomic"
	"unsafe"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// LAYOUT
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Node is the fixed-size header placed at the start of every node
// allocation. The payload bytes — size+1 of them, the extra byte holding
// a trailing NUL — immediately follow this header in the same block, so
// one pointer (to the header) locates both.
type Node struct {
	hash uint32
	size uint32
	next atomic.Pointer[Node]
}

// HeaderSize is the number of bytes a Node's header occupies; payload
// bytes for a node begin at this offset past the Node pointer.
const HeaderSize = unsafe.Sizeof(Node{})

// Align is the alignment the arena must honor when carving out space for
// a Node — the Node header itself, not just its payload, must land on
// this boundary so the embedded atomic.Pointer is naturally aligned.
const Align = unsafe.Alignof(Node{})

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// ACCESSORS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Hash returns the node's stored 32-bit hash.
//
//go:nosplit
//go:inline
func (n *Node) Hash() uint32 { return n.hash }

// Size returns the byte length of the node's content, excluding the
// trailing NUL.
//
//go:nosplit
//go:inline
func (n *Node) Size() uint32 { return n.size }

// Next performs an acquire-load of the node's next-link, matching the
// release-store used to publish it (§4.2).
//
//go:nosplit
//go:inline
func (n *Node) Next() *Node { return n.next.Load() }

// StoreNext performs a release-store of next, publishing it and
// everything the caller wrote before calling StoreNext to any reader
// that later observes it via Next. Called only under the engine's
// insertion lock.
//
//go:nosplit
//go:inline
func (n *Node) StoreNext(next *Node) { n.next.Store(next) }

// bytesWithNUL returns the node's full payload, including the trailing
// NUL byte at index Size().
//
//go:nosplit
//go:inline
func (n *Node) bytesWithNUL() []byte {
	p := unsafe.Add(unsafe.Pointer(n), HeaderSize)
	return unsafe.Slice((*byte)(p), int(n.size)+1)
}

// Data returns the node's NUL-terminated byte payload: Data()[:Size()]
// is the interned content, and Data()[Size()] == 0.
//
//go:nosplit
//go:inline
func (n *Node) Data() []byte { return n.bytesWithNUL() }

// Content returns just the interned bytes, excluding the trailing NUL.
//
//go:nosplit
//go:inline
func (n *Node) Content() []byte { return n.bytesWithNUL()[:n.size] }

// write fills in hash, size, and the payload bytes (with trailing NUL)
// of a freshly allocated node. Must complete before the node is spliced
// into the list — StoreNext / a bucket-head store is the publication
// point readers synchronize on.
func (n *Node) write(hash uint32, content []byte) {
	n.hash = hash
	n.size = uint32(len(content))
	dst := n.bytesWithNUL()
	copy(dst, content)
	dst[len(content)] = 0
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// EMPTY SENTINEL
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// emptySentinel embeds a Node immediately followed by a single NUL byte,
// giving the zero-length sentinel its own valid payload region without
// going through the arena. It is never linked into any split-ordered
// list.
var emptySentinel struct {
	Node
	nul byte
}

// Empty is the statically allocated, zero-length sentinel node that
// default-constructed handles point at.
var Empty = &emptySentinel.Node
