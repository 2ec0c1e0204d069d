// ════════════════════════════════════════════════════════════════════════════════════════════════
// Bump-Pointer Page Allocator
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Concurrent Interning Dictionary
// Component: Address-Stable Node Storage
//
// Description:
//   Hands out address-stable byte regions for node headers plus payload. Each region is bump-
//   allocated from a fixed-size page; pages are never reused or individually freed, and a node's
//   address is therefore stable for the arena's lifetime, exactly the address stability the
//   interning contract depends on. Modeled on PooledQuantumQueue's externally-managed shared pool:
//   one big backing allocation, indexed rather than churned through the general-purpose allocator
//   per node.
//
// Concurrency:
//   Used only under the interning engine's insertion mutex — Arena itself does no locking.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package arena

import (
	"errors"
	"unsafe"

	"github.com/kestrelsys/intern/constants"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// ERRORS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// ErrOutOfMemory is returned when the underlying Go allocator refuses a
// new page. Dictionary invariants hold when this happens: no partial
// publication occurs, because allocation always precedes any store a
// reader could observe.
var ErrOutOfMemory = errors.New("arena: out of memory")

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// PAGE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// payloadSize is the bump-allocatable portion of one page: a full
// ChunkSize minus the intrusive next-page link at the front. Left as the
// uintptr unsafe.Sizeof naturally produces so it composes directly with
// the uintptr arithmetic Allocate does, without a mismatched-type
// conversion at every comparison site.
const payloadSize = constants.ChunkSize - unsafe.Sizeof((*page)(nil))

// page is one fixed-size chunk. next links pages into a singly linked
// list for teardown; buf is bump-allocated by the owning Arena.
type page struct {
	next *page
	buf  [payloadSize]byte
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// ARENA
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Arena is a bump-pointer allocator over fixed-size pages. The zero
// value is ready to use.
type Arena struct {
	current *page  // page currently being bumped into
	pages   *page  // head of the full page list, for teardown
	offset  uintptr // next free byte within current.buf
}

// alignUp rounds p up to the next multiple of align (align must be a
// power of two).
//
//go:nosplit
//go:inline
func alignUp(p, align uintptr) uintptr {
	return (p + align - 1) &^ (align - 1)
}

// newPage allocates and links a fresh page, converting a Go allocation
// failure into ErrOutOfMemory instead of propagating a fatal runtime
// panic — an actual out-of-memory condition on most platforms is not
// recoverable, but this keeps the contract honest for allocator-imposed
// limits (e.g. a memory-limited GOMEMLIMIT deployment) that do panic
// recoverably.
func (a *Arena) newPage() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrOutOfMemory
		}
	}()
	p := new(page)
	p.next = a.pages
	a.pages = p
	a.current = p
	a.offset = 0
	return nil
}

// Allocate hands out an address-stable region of size bytes aligned to
// align, acquiring a fresh page when the current one lacks room. size
// exceeding a page's entire payload capacity can never be satisfied by
// any page this arena will ever hand out, so that case fails fast with
// ErrOutOfMemory instead of spinning through newPage forever.
func (a *Arena) Allocate(size uintptr, align uintptr) (unsafe.Pointer, error) {
	if size > payloadSize {
		return nil, ErrOutOfMemory
	}
	if a.current == nil {
		if err := a.newPage(); err != nil {
			return nil, err
		}
	}
	for {
		start := alignUp(a.offset, align)
		end := start + size
		if end <= payloadSize {
			a.offset = end
			return unsafe.Add(unsafe.Pointer(&a.current.buf[0]), start), nil
		}
		if err := a.newPage(); err != nil {
			return nil, err
		}
	}
}

// AllocateNode carves out and initializes a Node holding content, ready
// to be spliced into the split-ordered list. The node is fully written —
// hash, size, and NUL-terminated bytes — before AllocateNode returns; the
// caller publishes it via a release-store (StoreNext or a bucket head).
func (a *Arena) AllocateNode(hash uint32, content []byte) (*Node, error) {
	total := HeaderSize + uintptr(len(content)) + 1
	p, err := a.Allocate(total, Align)
	if err != nil {
		return nil, err
	}
	n := (*Node)(p)
	n.write(hash, content)
	return n, nil
}

// Close drops the arena's references to every page it holds. Go's
// garbage collector reclaims the underlying memory once nothing else
// references it — the "release every page in one pass" spec.md
// describes, expressed as one pointer clear rather than a manual free
// loop.
func (a *Arena) Close() {
	a.pages = nil
	a.current = nil
	a.offset = 0
}
