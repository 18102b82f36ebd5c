// Package tree builds the canonical, deterministic Huffman tree that both
// the compressor's code-book generator and the decompressor's bit walker
// rely on. The tree lives in a flat, index-addressed arena rather than a
// pointer graph: it is scoped to a single compression or decompression
// call and needs no ownership tracking.
package tree

import "github.com/vladFlux/CUDA-Compression/internal/histogram"

// PoolSize is the largest arena a tree over 256 distinct byte values can
// require: 256 leaves plus 255 internal nodes.
const PoolSize = 512

// noChild marks a Node with no child on that side, i.e. a leaf.
const noChild = -1

// Node is one slot of the arena. Leaves have Left == Right == noChild.
type Node struct {
	Byte        byte
	Count       uint32
	Left, Right int32
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool { return n.Left == noChild && n.Right == noChild }

// Tree is the arena plus the index of its root.
type Tree struct {
	Pool   []Node
	Root   int32
	Leaves int // L, the number of distinct byte values
}

// Build constructs the canonical Huffman tree over h. It is deterministic:
// given the same histogram it always produces the same arena layout, which
// is what lets the decompressor rebuild an identical tree from the
// container's frequency table alone.
func Build(h histogram.Table) *Tree {
	t := &Tree{Pool: make([]Node, 0, PoolSize)}

	for b := 0; b < 256; b++ {
		if h[b] == 0 {
			continue
		}
		t.Pool = append(t.Pool, Node{
			Byte:  byte(b),
			Count: h[b],
			Left:  noChild,
			Right: noChild,
		})
	}
	t.Leaves = len(t.Pool)

	if t.Leaves == 0 {
		return t
	}
	if t.Leaves == 1 {
		t.Root = 0
		return t
	}

	l := t.Leaves
	for i := 0; i < l-1; i++ {
		base := 2 * i
		insertionSortByCount(t.Pool[base : l+i])

		left := int32(base)
		right := int32(base + 1)
		t.Pool = append(t.Pool, Node{
			Count: t.Pool[left].Count + t.Pool[right].Count,
			Left:  left,
			Right: right,
		})
		t.Root = int32(len(t.Pool) - 1)
	}
	return t
}

// insertionSortByCount stably sorts s by Count ascending. Insertion sort is
// intentional here, not an oversight: the algorithm this mirrors picks the
// two smallest nodes out of a shrinking active window on every iteration,
// and a stable sort over that window is the simplest way to keep the
// existing slot order (and therefore the whole build) deterministic.
func insertionSortByCount(s []Node) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && s[j].Count > v.Count {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}
