package cdc

import (
	"crypto/sha256"
	"math"
	"time"
)

// AlgorithmResult is a per-run accumulator: it tracks which chunks have
// been seen (keyed by a 256-bit cryptographic digest, per spec.md §4.7's
// "collision-free digest is assumed"), running totals, and wall time.
// Chunks are treated as a multiset keyed by digest; ordering of Append
// calls does not affect the final statistics. Grounded on
// original_source/src/benchmark/benchmark_result.rs, minus the
// interval-duplicate tracking fields — see DESIGN.md Open Question 3.
type AlgorithmResult struct {
	Name  string
	Sizes ChunkSizes

	chunks map[[32]byte]uint32 // digest -> first-seen length

	totalSize  uint64
	chunkCount uint64

	start    time.Time
	duration time.Duration
}

// NewAlgorithmResult starts a new accumulator for the named algorithm
// run under the given size profile.
func NewAlgorithmResult(name string, sizes ChunkSizes) *AlgorithmResult {
	return &AlgorithmResult{
		Name:   name,
		Sizes:  sizes,
		chunks: make(map[[32]byte]uint32),
		start:  time.Now(),
	}
}

// Append records one chunk: its length always counts toward TotalSize;
// its length counts toward DedupSize only the first time its digest is
// seen.
func (r *AlgorithmResult) Append(chunk Chunk) {
	digest := sha256.Sum256(chunk.Data)

	r.totalSize += uint64(chunk.Length)
	r.chunkCount++

	if _, seen := r.chunks[digest]; !seen {
		r.chunks[digest] = chunk.Length
	}
}

// Finalize stops the wall-clock timer. Call it once, after the last
// Append.
func (r *AlgorithmResult) Finalize() {
	r.duration = time.Since(r.start)
}

// TotalSize is the sum of every chunk's length, duplicates included.
func (r *AlgorithmResult) TotalSize() uint64 { return r.totalSize }

// ChunkCount is the number of chunks appended, duplicates included.
func (r *AlgorithmResult) ChunkCount() uint64 { return r.chunkCount }

// DedupSize is the sum of lengths of unique (by digest) chunks only.
func (r *AlgorithmResult) DedupSize() uint64 {
	var sum uint64
	for _, length := range r.chunks {
		sum += uint64(length)
	}

	return sum
}

// DedupRatio is (TotalSize-DedupSize)/TotalSize, expressed as a
// percentage. It is 0 when TotalSize is 0.
func (r *AlgorithmResult) DedupRatio() float64 {
	if r.totalSize == 0 {
		return 0
	}

	return float64(r.totalSize-r.DedupSize()) / float64(r.totalSize) * 100
}

// UniqueChunkCount is the number of distinct digests seen.
func (r *AlgorithmResult) UniqueChunkCount() int { return len(r.chunks) }

// DurationSeconds is the wall-clock time between construction and
// Finalize, in seconds.
func (r *AlgorithmResult) DurationSeconds() float64 { return r.duration.Seconds() }

// ChunkSizeAvg, ChunkSizeStd, MinChunkSize and MaxChunkSize summarize
// the distribution of unique chunk lengths only (matching the original
// benchmark_result.rs, which computes these statistics over the dedup
// set, not the raw stream).
func (r *AlgorithmResult) ChunkSizeAvg() float64 {
	if len(r.chunks) == 0 {
		return 0
	}

	var sum uint64
	for _, length := range r.chunks {
		sum += uint64(length)
	}

	return float64(sum) / float64(len(r.chunks))
}

func (r *AlgorithmResult) ChunkSizeStd() float64 {
	n := len(r.chunks)
	if n == 0 {
		return 0
	}

	mean := r.ChunkSizeAvg()

	var sumSq float64
	for _, length := range r.chunks {
		d := float64(length) - mean
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(n))
}

func (r *AlgorithmResult) MinChunkSize() uint32 {
	var min uint32

	first := true
	for _, length := range r.chunks {
		if first || length < min {
			min = length
			first = false
		}
	}

	return min
}

func (r *AlgorithmResult) MaxChunkSize() uint32 {
	var max uint32
	for _, length := range r.chunks {
		if length > max {
			max = length
		}
	}

	return max
}
