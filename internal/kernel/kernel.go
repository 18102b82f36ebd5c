// Package kernel implements the parallel encode-and-pack stage: for each
// segment the offset planner produced, scatter every byte's Huffman code
// into a bit-granular scratch buffer, synchronize, then pack the scratch
// buffer into output bytes. A single segment processor serves every
// chunk/overflow combination the planner can produce; what varies is only
// how many segments the plan produced and whether any of them carries the
// overflow tag.
package kernel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vladFlux/CUDA-Compression/internal/codebook"
	"github.com/vladFlux/CUDA-Compression/internal/offsetplan"
)

// Workers (W) is the width of the simulated cooperative thread block: the
// number of goroutines striding over each phase.
const Workers = 1024

// scratch is the bit-granular buffer Phase 1 scatters into: one byte per
// bit, holding only the values 0 or 1.
type scratch []byte

// Result is one segment's packed output, ready for the stitcher.
type Result struct {
	Bytes []byte
	Pad   bool // whether this segment's own start boundary was mid-byte
}

// Run executes every segment of plan in order (segment order is load-bearing:
// the stitcher needs them in stream order) and returns their packed bytes.
// Segments are otherwise independent and could be launched concurrently
// with each other, but kernel launches are serialized on the host, so Run
// does too — only the work *within* a segment (Phase 1 and Phase 2 over up
// to Workers goroutines) runs in parallel.
func Run(ctx context.Context, book *codebook.Book, input []byte, plan *offsetplan.Plan) ([]Result, error) {
	segs := plan.Segments()
	results := make([]Result, len(segs))

	for idx, seg := range segs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		buf := make(scratch, seg.Bits)

		if err := scatter(ctx, book, input, plan, seg, buf); err != nil {
			return nil, err
		}

		packed, err := pack(ctx, buf)
		if err != nil {
			return nil, err
		}

		results[idx] = Result{Bytes: packed, Pad: seg.Pad}
	}
	return results, nil
}

// scatter is Phase 1: W workers stride over [seg.Start, seg.End), each
// writing its byte's code bits into buf at the pre-planned offset. When the
// segment's start boundary is mid-byte, it also performs the boundary
// carry-in: a redundant, clipped write of the straddling code from the
// previous segment so the stitcher's OR-merge has matching bits to combine.
func scatter(ctx context.Context, book *codebook.Book, input []byte, plan *offsetplan.Plan, seg offsetplan.Segment, buf scratch) error {
	if seg.Pad && seg.Start > 0 {
		carryIn(book, input, plan, seg, buf)
	}

	g, gctx := errgroup.WithContext(ctx)
	n := seg.End - seg.Start
	workers := Workers
	if workers > n {
		workers = n
	}
	for t := 0; t < workers; t++ {
		t := t
		g.Go(func() error {
			for i := seg.Start + t; i < seg.End; i += Workers {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				b := input[i]
				length := int(book.Len[b])
				pos := plan.Pos[i]
				if !book.TailNeeded {
					copy(buf[int(pos):int(pos)+length], book.Fast[b][:length])
					continue
				}
				for j := 0; j < length; j++ {
					buf[int(pos)+j] = book.Bit(b, j)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// carryIn duplicates the last `r` bits of the code of input[seg.Start-1] —
// the last code the previous segment wrote before its byte-alignment
// padding — into this segment's leading r bit-slots (all of that code's
// bits, ending at slot r, when it is shorter than r). r is exactly
// plan.Pos[seg.Start], the carried remainder the planner recorded.
func carryIn(book *codebook.Book, input []byte, plan *offsetplan.Plan, seg offsetplan.Segment, buf scratch) {
	r := int(plan.Pos[seg.Start])
	if r == 0 {
		return
	}
	prev := input[seg.Start-1]
	length := int(book.Len[prev])
	for j := length - r; j < length; j++ {
		if j < 0 {
			continue
		}
		dst := j - (length - r)
		buf[dst] = book.Bit(prev, j)
	}
}

// pack is Phase 2: W workers stride over 8-bit groups of buf, each
// assembling one MSB-first output byte.
func pack(ctx context.Context, buf scratch) ([]byte, error) {
	nbytes := len(buf) / 8
	out := make([]byte, nbytes)

	g, gctx := errgroup.WithContext(ctx)
	workers := Workers
	if workers > nbytes {
		workers = nbytes
	}
	if workers == 0 {
		return out, nil
	}
	for t := 0; t < workers; t++ {
		t := t
		g.Go(func() error {
			for grp := t; grp < nbytes; grp += Workers {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				var v byte
				base := grp * 8
				for k := 0; k < 8; k++ {
					v = (v << 1) | buf[base+k]
				}
				out[grp] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
