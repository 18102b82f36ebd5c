package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladFlux/CUDA-Compression/internal/histogram"
)

func TestBuildSingleLeaf(t *testing.T) {
	h := histogram.Scan([]byte("aaaa"))
	tr := Build(h)
	require.Equal(t, 1, tr.Leaves)
	require.Equal(t, int32(0), tr.Root)
	require.True(t, tr.Pool[tr.Root].IsLeaf())
	require.Equal(t, byte('a'), tr.Pool[tr.Root].Byte)
}

func TestBuildTwoLeaves(t *testing.T) {
	h := histogram.Scan([]byte("ab"))
	tr := Build(h)
	require.Equal(t, 2, tr.Leaves)
	root := tr.Pool[tr.Root]
	require.False(t, root.IsLeaf())
	left := tr.Pool[root.Left]
	right := tr.Pool[root.Right]
	require.True(t, left.IsLeaf())
	require.True(t, right.IsLeaf())
	// Ascending byte-value leaf order means 'a' sorts into slot 0 first.
	require.Equal(t, byte('a'), left.Byte)
	require.Equal(t, byte('b'), right.Byte)
}

func TestBuildDeterministic(t *testing.T) {
	h := histogram.Scan([]byte("abracadabra"))
	t1 := Build(h)
	t2 := Build(h)
	require.Equal(t, t1.Pool, t2.Pool)
	require.Equal(t, t1.Root, t2.Root)
}

func TestBuildAllDistinct(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}
	h := histogram.Scan(src)
	tr := Build(h)
	require.Equal(t, 256, tr.Leaves)
	require.Len(t, tr.Pool, 256+255)
}
