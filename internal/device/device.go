// Package device stands in for the parallel backend's runtime API surface:
// memory-info queries and the error strings a real device driver would
// report. The real hardware backing this surface is treated as an external
// collaborator; this package is the thin, simulated adapter the core plans
// and dispatches against.
package device

import (
	"fmt"
)

// bookSize is the code-book's share of the fixed per-operation memory a
// compression call needs regardless of device budget; the rest is the input
// buffer and the offset array (4 bytes per input byte plus one).
const bookSize = 256 * (1 + 191 + 255) // Len + Fast + Tail per byte, TailNeeded is negligible

// SafetyMarginBytes is subtracted from free device memory before any of it
// is offered to the planner as a per-kernel budget.
const SafetyMarginBytes = 10 * 1024 * 1024

// MinRequiredBytes is the smallest amount of headroom (beyond the fixed memory)
// the host will proceed with; below this, ResourceError is returned before
// any allocation happens.
const MinRequiredBytes = 50 * 1024 * 1024

// maxCounter mirrors offsetplan's 32-bit ceiling, duplicated here (rather
// than imported) so this package has no dependency on the planner: it only
// needs to know the bit width being protected.
const maxCounter = uint64(1)<<32 - 1

// overflowMargin is the +255 headroom the budget check reserves for the
// longest single code that could straddle a boundary.
const overflowMargin = 255

// Info describes a (simulated) device's memory state.
type Info struct {
	// FreeBytes is the amount of device memory currently unallocated.
	FreeBytes int64
	// TotalBytes is the device's total memory, informational only.
	TotalBytes int64
	Name       string
}

// Simulated returns a plausible default device: no real hardware is probed.
// Callers (notably the CLI's --free-mem flag) can override FreeBytes to
// deterministically exercise the chunk/overflow scenarios.
func Simulated() Info {
	return Info{
		Name:       "simulated-device",
		TotalBytes: 8 << 30,
		FreeBytes:  2 << 30,
	}
}

// ResourceError is returned when the device does not report enough free
// memory to proceed, before any device allocation is attempted.
type ResourceError struct {
	Free     int64
	Required int64
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("device: insufficient memory: have %d bytes free, need at least %d", e.Free, e.Required)
}

// Budget is the outcome of the per-operation memory arithmetic: the
// per-kernel bit budget M, the number of kernel runs K it implies, and
// whether the overflow scenario O must be armed.
type Budget struct {
	M uint64
	K int
	O bool
}

// PlanBudget determines the per-kernel memory window M, the resulting
// kernel run count K, and whether the 32-bit overflow guard O must be
// armed, given the device's reported free memory and the operation's known
// input size and total (unpadded) bit count. K and O are computed from that
// count rounded up to a multiple of 8.
func PlanBudget(info Info, inputLen int, totalBits uint64) (Budget, error) {
	totalBits = (totalBits + 7) &^ 7
	fixed := uint64(inputLen) + 4*uint64(inputLen+1) + uint64(bookSize)

	free := uint64(0)
	if info.FreeBytes > 0 {
		free = uint64(info.FreeBytes)
	}
	if free < fixed || free-fixed < MinRequiredBytes {
		required := fixed + MinRequiredBytes
		return Budget{}, &ResourceError{Free: int64(free), Required: int64(required)}
	}

	m := free - fixed - SafetyMarginBytes

	k := 1
	if m > 0 {
		k = int((totalBits + m - 1) / m)
		if k < 1 {
			k = 1
		}
	}

	o := m+overflowMargin > maxCounter || totalBits+overflowMargin > maxCounter

	return Budget{M: m, K: k, O: o}, nil
}
