// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go — Global dictionary tunables
//
// Purpose:
//   - Defines the compile-time sizing for the interning dictionary's arena,
//     segmented bucket array, and node layout.
//
// Notes:
//   - Sizes are chosen so segment 0 of the bucket array fills exactly one
//     arena chunk's worth of atomic head pointers, keeping the common case
//     (small-to-medium dictionaries) to a single chunk of bookkeeping.
//
// ⚠️ No runtime logic here — all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

import "unsafe"

// ───────────────────────────── Arena sizing ────────────────────────────────

const (
	// ChunkSize is the size, in bytes, of one arena page. Node storage is
	// bump-allocated out of successive chunks of this size; chunks are
	// never freed individually, only released in one pass at dictionary
	// destruction.
	ChunkSize = 65536

	// pointerWidth is the width of one atomic bucket head pointer, used
	// only to derive InitialTableSize below.
	pointerWidth = int(unsafe.Sizeof(uintptr(0)))

	// InitialTableSize is the logical bucket count of segment 0: one
	// ChunkSize-sized array of head pointers. 65536/8 = 8192 on 64-bit.
	// Table sizes are carried as uint32 throughout the engine since the
	// hash itself is 32-bit.
	InitialTableSize = uint32(ChunkSize / pointerWidth)

	// MaxSegments bounds the segmented bucket array (S_max in the design).
	// Segment k has table_size = InitialTableSize * 2^k, so the table
	// stops growing once InitialTableSize*2^(MaxSegments-1) buckets are
	// installed; load factor climbs past that point instead of failing.
	MaxSegments = 16
)

// ───────────────────────────── Node sizing ─────────────────────────────────

const (
	// nodeHeaderSize accounts for a node's hash, size, and next-pointer
	// fields, which precede the inline byte payload in the same
	// allocation.
	nodeHeaderSize = 4 + 4 + int(unsafe.Sizeof(uintptr(0)))

	// pageHeaderSize accounts for the intrusive next-page link at the
	// front of every arena chunk.
	pageHeaderSize = int(unsafe.Sizeof(uintptr(0)))

	// MaxStringSize is the largest byte sequence Intern will accept.
	// Anything larger cannot fit in a single arena chunk alongside its
	// own node header, the page's header, and the trailing NUL byte
	// AllocateNode always appends after the content — the "- 1" reserves
	// that byte so a string of exactly MaxStringSize bytes still fits on
	// a single fresh page.
	MaxStringSize = ChunkSize - pageHeaderSize - nodeHeaderSize - 1
)
