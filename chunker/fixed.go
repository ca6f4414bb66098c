package chunker

import "github.com/kalbasit/cdc"

// fixedFinder is the non-CDC baseline: every non-final chunk has length
// exactly min(avg, remaining), ignoring content entirely. Grounded on
// original_source/src/chunkers/fixed_size.rs.
type fixedFinder struct{}

// Fixed returns the fixed-size baseline cdc.SplitFinder.
func Fixed() cdc.SplitFinder { return fixedFinder{} }

func (fixedFinder) FindSplit(buf []byte, sizes cdc.ChunkSizes) int {
	if uint64(len(buf)) < sizes.Avg {
		return len(buf)
	}

	return int(sizes.Avg)
}
