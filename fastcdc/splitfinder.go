package fastcdc

import "github.com/kalbasit/cdc"

// SplitFinder adapts ChunkerCore's unrolled, allocation-free Gear search
// to cdc.SplitFinder, so this package's fast path can be driven through
// cdc.Stream exactly like any chunker.NormalizedChunker preset — the
// same size profiles, the same AlgorithmResult accumulation, the same
// driver loop. Without this adapter the fast path could only ever be
// exercised through its own standalone Chunker/ChunkerCore API, never
// through the rest of the module's domain machinery.
type SplitFinder struct {
	core *ChunkerCore
}

// NewSplitFinder builds a SplitFinder whose ChunkerCore is configured
// once from sizes and normLevel, then reused (and Reset between calls)
// across every FindSplit — the same table-reuse discipline ChunkerPool
// applies across whole chunkers.
func NewSplitFinder(sizes cdc.ChunkSizes, normLevel uint8) (*SplitFinder, error) {
	core, err := NewChunkerCore(
		WithMinSize(uint32(sizes.Min)),     //nolint:gosec // G115
		WithTargetSize(uint32(sizes.Avg)),  //nolint:gosec // G115
		WithMaxSize(uint32(sizes.Max)),     //nolint:gosec // G115
		WithNormalization(normLevel),
	)
	if err != nil {
		return nil, err
	}

	return &SplitFinder{core: core}, nil
}

// FindSplit implements cdc.SplitFinder. The sizes argument is ignored:
// cdc.Stream never changes sizes mid-run, and the bound ChunkerCore was
// already configured from the same triple in NewSplitFinder.
func (f *SplitFinder) FindSplit(buf []byte, _ cdc.ChunkSizes) int {
	f.core.Reset()

	boundary, _, found := f.core.FindBoundary(buf)
	if !found {
		return len(buf)
	}

	return boundary
}
