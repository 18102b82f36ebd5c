package container

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladFlux/CUDA-Compression/internal/histogram"
)

func TestWriteReadRoundTrip(t *testing.T) {
	h := histogram.Scan([]byte("aaab"))
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, 4, h, payload))
	require.Equal(t, HeaderSize+len(payload), buf.Len())

	n, gotHist, gotPayload, err := Read(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint32(4), n)
	require.Equal(t, h, gotHist)
	require.Equal(t, payload, gotPayload)
}

func TestReadTruncatedHeader(t *testing.T) {
	_, _, _, err := Read(make([]byte, HeaderSize-1))
	require.Error(t, err)
	var corrupt *CorruptInputError
	require.ErrorAs(t, err, &corrupt)
}

func TestReadEmptyPayloadForNonzeroLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, 4, histogram.Table{}, nil))

	_, _, _, err := Read(buf.Bytes())
	require.Error(t, err)
	var corrupt *CorruptInputError
	require.ErrorAs(t, err, &corrupt)
}

func TestReadZeroLengthAllowsEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, 0, histogram.Table{}, nil))

	n, _, payload, err := Read(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint32(0), n)
	require.Empty(t, payload)
}
