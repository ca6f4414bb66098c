package fastcdc_test

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalbasit/cdc"
	"github.com/kalbasit/cdc/fastcdc"
)

func randomData(seed int64, n int) []byte {
	buf := make([]byte, n)
	rng := rand.New(rand.NewSource(seed))
	rng.Read(buf) //nolint:errcheck

	return buf
}

// TestSplitFinderReconstructsSourceThroughStream drives fastcdc's native
// Gear fast path through cdc.Stream exactly like any chunker preset,
// asserting the stream's general contract (concatenated chunk data
// equals the source, no chunk exceeds the configured max).
func TestSplitFinderReconstructsSourceThroughStream(t *testing.T) {
	t.Parallel()

	sizes, err := cdc.NewChunkSizes(4*1024, 16*1024, 64*1024)
	require.NoError(t, err)

	finder, err := fastcdc.NewSplitFinder(sizes, 2)
	require.NoError(t, err)

	data := randomData(7, 1024*1024)
	stream := cdc.NewStream(bytes.NewReader(data), finder, sizes)

	var reconstructed []byte

	for {
		chunk, err := stream.Next()
		if err == io.EOF {
			break
		}

		require.NoError(t, err)
		assert.LessOrEqualf(t, uint64(chunk.Length), sizes.Max, "chunk length must not exceed Max")

		reconstructed = append(reconstructed, chunk.Data...)
	}

	assert.Equal(t, data, reconstructed)
}

// TestSplitFinderIsDeterministic asserts the SplitFinder contract
// (spec.md §4.2): identical (buf, sizes) sequences always yield
// identical boundaries, across independently constructed instances.
func TestSplitFinderIsDeterministic(t *testing.T) {
	t.Parallel()

	sizes, err := cdc.NewChunkSizes(4*1024, 16*1024, 64*1024)
	require.NoError(t, err)

	data := randomData(11, 512*1024)

	offsetsFor := func() [][2]uint64 {
		finder, err := fastcdc.NewSplitFinder(sizes, 2)
		require.NoError(t, err)

		stream := cdc.NewStream(bytes.NewReader(data), finder, sizes)

		var got [][2]uint64

		for {
			chunk, err := stream.Next()
			if err == io.EOF {
				break
			}

			require.NoError(t, err)
			got = append(got, [2]uint64{chunk.Offset, uint64(chunk.Length)})
		}

		return got
	}

	first := offsetsFor()
	second := offsetsFor()
	assert.Equal(t, first, second)
}

// TestSplitFinderNeverCutsBelowMin asserts the min/max bounds directly
// on one SplitFinder.FindSplit call over a maxSize-long input,
// independent of the Stream-level guard in stream_test.go.
func TestSplitFinderNeverCutsBelowMin(t *testing.T) {
	t.Parallel()

	sizes, err := cdc.NewChunkSizes(4*1024, 16*1024, 64*1024)
	require.NoError(t, err)

	finder, err := fastcdc.NewSplitFinder(sizes, 2)
	require.NoError(t, err)

	data := randomData(13, int(sizes.Max))
	boundary := finder.FindSplit(data, sizes)

	assert.GreaterOrEqual(t, uint64(boundary), sizes.Min)
	assert.LessOrEqual(t, uint64(boundary), sizes.Max)
}
