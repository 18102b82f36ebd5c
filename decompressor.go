package compress

import (
	"bytes"

	"github.com/icza/bitio"

	"github.com/vladFlux/CUDA-Compression/internal/container"
	"github.com/vladFlux/CUDA-Compression/internal/tree"
)

// Decompress reconstructs the original byte slice from a container produced
// by Compress. It reads the frequency table, rebuilds the identical
// canonical Huffman tree, and walks the packed payload bit by bit, MSB
// first, until it has emitted exactly N bytes.
//
// If the payload runs out before N bytes are decoded, the partial result is
// returned alongside a *TruncationWarning rather than a hard error.
func Decompress(data []byte) ([]byte, error) {
	n, hist, payload, err := container.Read(data)
	if err != nil {
		log.Error("corrupt container", "err", err)
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	t := tree.Build(hist)
	out := make([]byte, 0, n)

	if t.Leaves == 1 {
		b := t.Pool[t.Root].Byte
		for i := uint32(0); i < n; i++ {
			out = append(out, b)
		}
		return out, nil
	}

	r := bitio.NewReader(bytes.NewReader(payload))
	for uint32(len(out)) < n {
		idx := t.Root
		for !t.Pool[idx].IsLeaf() {
			bit, err := r.ReadBool()
			if err != nil {
				log.Warn("truncated payload", "want", n, "got", len(out))
				return out, &TruncationWarning{Want: int(n), Got: len(out)}
			}
			if bit {
				idx = t.Pool[idx].Right
			} else {
				idx = t.Pool[idx].Left
			}
		}
		out = append(out, t.Pool[idx].Byte)
	}
	return out, nil
}
