// Package hash implements the rolling-hash family the normalized
// chunker is built from: BuzHash, left/right Gear, Adler32, the PCI
// popcount hash, and the Polynomial (Rabin) hash used by the restic
// preset. Each maintains a digest over a moving byte window and updates
// it in O(1) per byte; windowed hashes additionally track a ring buffer
// of the most recent window_size bytes, non-windowed ones (the Gear
// family) do not.
package hash

// RollingHash owns a digest of the algorithm's integer width and, for
// windowed hashes, the window state needed to cancel a byte sliding out
// of view. It is constructed once per split-point search and discarded;
// no instance outlives a single NormalizedChunker.FindSplit call.
type RollingHash[T any] interface {
	// Roll folds the next byte into the digest, evicting the oldest
	// windowed byte first if the hash is windowed.
	Roll(b byte)

	// Digest returns the current digest value.
	Digest() T
}

// RollingHashBuilder constructs a RollingHash primed from the
// PrepareBytesCount() bytes immediately preceding the search window.
// Builders are immutable after construction (typically just a byte
// table) and may be shared across goroutines.
type RollingHashBuilder[T any] interface {
	New(prepare []byte) RollingHash[T]
	PrepareBytesCount() int
}
