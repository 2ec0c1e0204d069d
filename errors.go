// ════════════════════════════════════════════════════════════════════════════════════════════════
// Package intern — Sentinel Errors
// ════════════════════════════════════════════════════════════════════════════════════════════════

package intern

import "errors"

// ErrTooLarge is returned by Intern when the input exceeds
// constants.MaxStringSize.
var ErrTooLarge = errors.New("intern: string exceeds maximum size")

// ErrOutOfMemory is returned by Intern when the underlying arena cannot
// satisfy an allocation.
var ErrOutOfMemory = errors.New("intern: out of memory")
