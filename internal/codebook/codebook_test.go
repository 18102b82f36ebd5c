package codebook

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladFlux/CUDA-Compression/internal/histogram"
	"github.com/vladFlux/CUDA-Compression/internal/tree"
)

func build(s string) (*tree.Tree, *Book) {
	h := histogram.Scan([]byte(s))
	t := tree.Build(h)
	return t, Build(t)
}

func TestBuildSingleLeaf(t *testing.T) {
	_, b := build("aaaa")
	require.Equal(t, uint8(1), b.Len['a'])
	require.False(t, b.TailNeeded)
	require.Equal(t, byte(0), b.Bit('a', 0))
}

func TestBuildPrefixProperty(t *testing.T) {
	tr, b := build("abracadabra")
	for byteVal := 0; byteVal < 256; byteVal++ {
		l := b.Len[byteVal]
		if l == 0 {
			continue
		}
		for other := 0; other < 256; other++ {
			if other == byteVal || b.Len[other] == 0 {
				continue
			}
			ol := b.Len[other]
			minLen := l
			if ol < minLen {
				minLen = ol
			}
			differs := false
			for j := 0; j < int(minLen); j++ {
				if b.Bit(byte(byteVal), j) != b.Bit(byte(other), j) {
					differs = true
					break
				}
			}
			require.True(t, differs, "codes for %d and %d share a prefix", byteVal, other)
		}
	}
	require.NotNil(t, tr)
}

func TestBuildNoTailForSmallAlphabet(t *testing.T) {
	_, b := build("abracadabra")
	require.False(t, b.TailNeeded)
}

func TestBitMatchesFastAndTail(t *testing.T) {
	_, b := build("abracadabra")
	for byteVal := 0; byteVal < 256; byteVal++ {
		l := int(b.Len[byteVal])
		if l == 0 {
			continue
		}
		for j := 0; j < l; j++ {
			got := b.Bit(byte(byteVal), j)
			require.True(t, got == 0 || got == 1)
			var want byte
			if j < FastBits {
				want = b.Fast[byteVal][j]
			} else {
				want = b.Tail[byteVal][j]
			}
			require.Equal(t, want, got)
		}
	}
}
