package histogram

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	h := Scan([]byte("aaab"))
	require.Equal(t, uint32(3), h['a'])
	require.Equal(t, uint32(1), h['b'])
	require.Equal(t, 2, h.Distinct())
}

func TestScanEmpty(t *testing.T) {
	h := Scan(nil)
	require.Equal(t, 0, h.Distinct())
}

func TestTotalBits(t *testing.T) {
	h := Scan([]byte("aaab"))
	var lens [256]uint8
	lens['a'] = 1
	lens['b'] = 3
	require.Equal(t, uint64(3*1+1*3), h.TotalBits(&lens))
}
