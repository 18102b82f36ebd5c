// Package offsetplan computes, in a single O(N) host-side pass, the bit
// position at which every input byte's Huffman code begins. It tracks two
// independent boundary systems — device-memory chunk boundaries and 32-bit
// counter overflow boundaries — and exposes the result as a sequence of
// Segments that the kernel package processes uniformly, regardless of which
// of the four boundary scenarios produced them.
package offsetplan

import "math"

// SafetyMargin (S) is the headroom subtracted from the 32-bit counter's
// ceiling before a wrap is declared, so no in-flight code addition can
// actually carry past 2^32-1.
const SafetyMargin uint64 = 10240

// maxCounter is the largest value the (simulated) 32-bit offset counter can
// hold before wrapping.
const maxCounter = uint64(math.MaxUint32)

// boundary records one restart of the active bit-offset counter. Bits is
// the padded local bit length of the segment this boundary closes off —
// the size the kernel allocates a scratch buffer for.
type boundary struct {
	Index int
	Pad   bool
	Chunk bool // true for a memory-chunk boundary, false for overflow
	Bits  uint32
}

// Plan is the full offset plan for one input.
type Plan struct {
	// Pos[i] is the bit offset, local to whichever segment owns byte i, at
	// which byte i's code begins. Unlike a running total this is never
	// reinterpreted across a boundary: every entry means exactly the same
	// thing for every byte.
	Pos []uint32

	// TotalBits is the padded local bit length of the final segment.
	TotalBits uint32

	OverflowIdx []int
	OverflowPad []bool

	ChunkIdx []int  // len 2K, pairs (start, end_exclusive)
	ChunkPad []bool // len K

	boundaries []boundary // union of the above, in index order
}

// K is the number of kernel runs (chunks) the plan produced.
func (p *Plan) K() int { return len(p.ChunkIdx) / 2 }

// Overflowed reports whether any overflow boundary was recorded.
func (p *Plan) Overflowed() bool { return len(p.OverflowIdx) > 0 }

// Segment is a maximal run between two boundaries, tagged with the padding
// flag of its start boundary (false for the very first segment, which
// starts at input index 0 and is always byte-aligned) and the segment's own
// padded local bit length.
type Segment struct {
	Start, End int
	Pad        bool
	Bits       uint32
}

// Segments returns the plan's boundaries as a contiguous, ordered list of
// segments. This is the view the kernel package actually iterates: it does
// not need to know whether a given split came from a memory-chunk trigger
// or an overflow trigger, only where it is, whether it is mid-byte, and how
// large its scratch buffer must be.
func (p *Plan) Segments() []Segment {
	segs := make([]Segment, 0, len(p.boundaries)+1)
	start := 0
	pad := false
	for _, b := range p.boundaries {
		segs = append(segs, Segment{Start: start, End: b.Index, Pad: pad, Bits: b.Bits})
		start = b.Index
		pad = b.Pad
	}
	segs = append(segs, Segment{Start: start, End: len(p.Pos), Pad: pad, Bits: p.TotalBits})
	return segs
}

// Build computes the offset plan for input, given the per-byte code length
// table produced by the codebook package.
//
// memBudget is the per-kernel memory budget in bit-slots (the scratch
// buffer is one byte per bit, so this doubles as a byte budget); zero means
// unlimited, collapsing the memory-chunk trigger and yielding K=1.
// enableOverflow toggles the 32-bit wrap check entirely; when false the
// plan never restarts the counter for overflow, only (optionally) for
// memory chunks.
//
// The two triggers are evaluated in that order at every byte — memory
// first, then overflow — so they are mutually exclusive at a given index,
// matching the K>1,O=1 scenario's rule.
func Build(input []byte, lens *[256]uint8, memBudget uint64, enableOverflow bool) *Plan {
	n := len(input)
	p := &Plan{
		Pos:      make([]uint32, n),
		ChunkIdx: []int{0},
		ChunkPad: []bool{false},
	}

	var local uint64  // bit offset within the currently active segment
	var memUsed uint64 // bit-slots used since the chunk's start, carried remainder included,
	// deliberately NOT reset by an overflow restart within the same chunk

	for i := 0; i < n; i++ {
		l := uint64(lens[input[i]])
		memUsed += l

		chunkTrigger := memBudget > 0 && memUsed > memBudget
		overflowTrigger := false
		if !chunkTrigger && enableOverflow && local+l+SafetyMargin > maxCounter {
			overflowTrigger = true
		}

		if !chunkTrigger && !overflowTrigger {
			p.Pos[i] = uint32(local)
			local += l
			continue
		}

		remainder := local % 8
		pad := remainder != 0
		closedBits := local
		if pad {
			closedBits = local + (8 - remainder)
		}

		if chunkTrigger {
			p.ChunkPad = append(p.ChunkPad, pad)
			p.ChunkIdx = append(p.ChunkIdx, i, i)
			p.boundaries = append(p.boundaries, boundary{Index: i, Pad: pad, Chunk: true, Bits: uint32(closedBits)})
			memUsed = remainder + l
		} else {
			p.OverflowIdx = append(p.OverflowIdx, i)
			p.OverflowPad = append(p.OverflowPad, pad)
			p.boundaries = append(p.boundaries, boundary{Index: i, Pad: pad, Chunk: false, Bits: uint32(closedBits)})
		}

		// The trigger byte becomes the first byte of the new segment: its
		// code starts right after the carried remainder.
		p.Pos[i] = uint32(remainder)
		local = remainder + l
	}

	if r := local % 8; r != 0 {
		local += 8 - r
	}
	p.TotalBits = uint32(local)
	p.ChunkIdx = append(p.ChunkIdx, n)

	return p
}
