package cdc

import "github.com/pkg/errors"

// ChunkSizes is the immutable (min, avg, max) bound triple every
// split-point finder is built against: 0 < min <= avg <= max. It is
// built once per run and passed by value — cheap to copy, and shared
// safely across goroutines since nothing about it ever mutates.
// Grounded on original_source/src/chunk_sizes.rs.
type ChunkSizes struct {
	Min uint64
	Avg uint64
	Max uint64
}

// NewChunkSizes validates and returns a ChunkSizes triple.
func NewChunkSizes(minSize, avgSize, maxSize uint64) (ChunkSizes, error) {
	sizes := ChunkSizes{Min: minSize, Avg: avgSize, Max: maxSize}
	if err := sizes.validate(); err != nil {
		return ChunkSizes{}, err
	}

	return sizes, nil
}

func (s ChunkSizes) validate() error {
	if s.Min == 0 {
		return errors.Wrap(ErrImplementation, "chunk sizes: min must be greater than 0")
	}

	if s.Min > s.Avg {
		return errors.Wrapf(ErrImplementation, "chunk sizes: min (%d) must be <= avg (%d)", s.Min, s.Avg)
	}

	if s.Avg > s.Max {
		return errors.Wrapf(ErrImplementation, "chunk sizes: avg (%d) must be <= max (%d)", s.Avg, s.Max)
	}

	return nil
}

// StandardProfiles returns the nine published (min, avg, max) triples
// for a given target average, each attributed to the CDC algorithm
// family that popularized it. Grounded on original_source/src/benchmark/mod.rs.
func StandardProfiles(avg uint64) []ChunkSizes {
	scale := func(num, den uint64) uint64 { return avg * num / den }

	return []ChunkSizes{
		{Min: avg / 2, Avg: avg, Max: 2 * avg},
		{Min: avg / 2, Avg: avg, Max: 3 * avg},
		{Min: avg / 2, Avg: avg, Max: 4 * avg}, // ronomon
		{Min: avg / 4, Avg: avg, Max: 4 * avg}, // casync
		{Min: avg / 2, Avg: avg, Max: scale(5, 4)}, // RC4, 1.25x
		{Min: avg / 2, Avg: avg, Max: scale(3, 2)}, // RC4, 1.5x
		{Min: avg / 2, Avg: avg, Max: scale(7, 4)}, // RC4, 1.75x
		{Min: avg / 2, Avg: avg, Max: 5 * avg},
		{Min: avg / 2, Avg: avg, Max: 8 * avg}, // restic
	}
}

// ExtraProfile is the additional (0.75*avg, avg, 1.5*avg) triple
// spec.md §4.6 allows beyond the standard nine.
func ExtraProfile(avg uint64) ChunkSizes {
	return ChunkSizes{Min: avg * 3 / 4, Avg: avg, Max: avg * 3 / 2}
}

// CasyncProfile is Casync's own published size profile, the same
// (avg/4, avg, 4*avg) triple as the "casync" entry in StandardProfiles,
// which Casync pairs with a Ronomon-style chunker. See SPEC_FULL.md §3 for why
// Casync is a size profile rather than a distinct algorithm.
func CasyncProfile(avg uint64) ChunkSizes {
	return ChunkSizes{Min: avg / 4, Avg: avg, Max: 4 * avg}
}

// StadiaProfile is Google Stadia's published size profile, paired with
// the FastCDC2020 preset. See SPEC_FULL.md §3.
func StadiaProfile(avg uint64) ChunkSizes {
	return ChunkSizes{Min: avg / 2, Avg: avg, Max: 8 * avg}
}
