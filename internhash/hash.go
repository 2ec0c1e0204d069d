// ════════════════════════════════════════════════════════════════════════════════════════════════
// Stable 32-Bit Content Hash
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Concurrent Interning Dictionary
// Component: Bucket-Assignment Hash
//
// Description:
//   Produces the 32-bit hash the interning engine uses for bucket assignment and node identity
//   comparison. The digest itself comes from SHA3-256; only the low bits actually drive bucket
//   selection (hash mod table_size), so the digest is folded through an xxHash-style avalanche
//   mix before the low 32 bits are kept, the same finishing step pairidx.xxhMix64 applies to its
//   own 64-bit mix, so a truncated cryptographic digest doesn't leave the low bits correlated.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package internhash

import (
	"crypto/rand"
	"encoding/binary"
	"math/bits"

	"golang.org/x/crypto/sha3"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// PROCESS-LOCAL SEED
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// seed randomizes the digest across process runs so that two runs of the
// same program don't collide on the same adversarial input. It is drawn
// once at package init and never changes; hashing within one process
// remains fully deterministic, which is all spec.md §9 requires.
var seed [8]byte

func init() {
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable on any real
		// platform; fall back to a fixed seed rather than leaving hashing
		// undefined. Determinism, not unpredictability, is the actual
		// contract here.
		binary.LittleEndian.PutUint64(seed[:], 0x9E3779B185EBCA87)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// MIX
// ═══════════════════════════════════════════════════════════════════════════════════════════════

const (
	prime64_1 = 0x9E3779B185EBCA87
	prime64_2 = 0xC2B2AE3D27D4EB4F
)

// avalanche finishes a 64-bit value the way pairidx.xxhMix64 finishes its
// own mix, so consumers of the low bits (bucket = hash mod T) see a well
// distributed value even when the input to this function is a truncated
// digest rather than a full 256-bit hash.
//
//go:nosplit
//go:inline
func avalanche(h uint64) uint64 {
	h ^= h >> 33
	h *= prime64_2
	h ^= h >> 29
	h *= prime64_1
	h ^= h >> 32
	return h
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// PUBLIC API
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Sum32 computes a stable 32-bit hash of b. Two calls with equal content,
// within the same process, always return the same value; spec.md §9
// requires no more than that. The top bit carries no special meaning —
// ordering of interned nodes is computed separately via bit-reversal of
// the full 32-bit value.
func Sum32(b []byte) uint32 {
	digest := sha3.Sum256(b)
	seeded := binary.LittleEndian.Uint64(digest[:8]) ^ binary.LittleEndian.Uint64(seed[:])
	mixed := avalanche(seeded)
	return uint32(mixed)
}

// BitReverse32 reverses the bits of v, used to order the split-ordered
// list so that every hash-mod-T bucket forms a contiguous span (spec.md
// §4.5, "why bit-reversed order").
//
//go:nosplit
//go:inline
func BitReverse32(v uint32) uint32 {
	return bits.Reverse32(v)
}
