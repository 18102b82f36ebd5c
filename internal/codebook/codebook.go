// Package codebook derives the per-byte bit codes from a Huffman tree and
// lays them out for the parallel encoder: a fast region held in
// broadcast-visible memory and an optional tail region for the rare code
// longer than the fast region can hold.
package codebook

import "github.com/vladFlux/CUDA-Compression/internal/tree"

// FastBits (F) is the number of leading code bits kept in the always-present
// fast region. It is sized to fit real block-shared-memory budgets on the
// parallel backend this design targets.
const FastBits = 191

// MaxCodeBits is the longest code the tail region can hold. A tree over at
// most 256 leaves has at most 255 internal nodes, so even the worst
// (perfectly unbalanced) case has no root-to-leaf path longer than 255
// edges; 255 covers every possible code and fits Book.Len's uint8.
const MaxCodeBits = 255

// Book is the compiled code-book for one compression or decompression call.
type Book struct {
	// Len[b] is the bit length of b's code, or 0 if b never appears.
	Len [256]uint8
	// Fast[b][0:min(Len[b],FastBits)] holds the leading bits as 0/1 bytes.
	Fast [256][FastBits]byte
	// Tail[b][0:Len[b]] holds the complete code, only populated when
	// Len[b] > FastBits.
	Tail [256][MaxCodeBits]byte
	// TailNeeded is set if any byte's code overflows the fast region.
	TailNeeded bool
}

// Build walks t depth-first (0 on the left edge, 1 on the right) and
// records each leaf's code.
func Build(t *tree.Tree) *Book {
	b := &Book{}
	if t.Leaves == 0 {
		return b
	}
	if t.Leaves == 1 {
		leaf := t.Pool[t.Root]
		b.Len[leaf.Byte] = 1
		b.Fast[leaf.Byte][0] = 0
		return b
	}

	var path [MaxCodeBits]byte
	var walk func(idx int32, depth int)
	walk = func(idx int32, depth int) {
		n := t.Pool[idx]
		if n.IsLeaf() {
			b.Len[n.Byte] = uint8(depth)
			if depth <= FastBits {
				copy(b.Fast[n.Byte][:depth], path[:depth])
			} else {
				copy(b.Fast[n.Byte][:], path[:FastBits])
				copy(b.Tail[n.Byte][:depth], path[:depth])
				b.TailNeeded = true
			}
			return
		}
		path[depth] = 0
		walk(n.Left, depth+1)
		path[depth] = 1
		walk(n.Right, depth+1)
	}
	walk(t.Root, 0)
	return b
}

// Bit returns the j-th bit (0 or 1) of b's code, reading from the fast or
// tail region as appropriate. j must be < Len[b].
func (bk *Book) Bit(b byte, j int) byte {
	if j < FastBits {
		return bk.Fast[b][j]
	}
	return bk.Tail[b][j]
}
