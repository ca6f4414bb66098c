package cdc

import (
	"io"

	"github.com/pkg/errors"
)

// SplitFinder is the general split-point-finder contract (spec.md
// §4.2): given a buffer whose length is in [sizes.Min+1, sizes.Max] and
// the active ChunkSizes, return an index i in [sizes.Min, len(buf)]
// marking the first byte not in the current chunk. A SplitFinder must
// be pure — identical (buf, sizes) always yields identical i — and
// carries no state of its own between calls; any rolling-hash state
// lives inside the call.
type SplitFinder interface {
	FindSplit(buf []byte, sizes ChunkSizes) int
}

// Stream turns a blocking byte source into a sequence of Chunks using a
// SplitFinder. It owns a buffer of sizes.Max bytes; after each chunk is
// cut, the trailing unconsumed bytes are shifted down to the front of
// the buffer (simple, O(max), matching the teacher's chunker.go and the
// original chunk_stream.rs). Grounded on
// original_source/src/chunkers/chunk_stream.rs and the teacher's
// fastcdc.Chunker.
type Stream struct {
	finder SplitFinder
	sizes  ChunkSizes

	source io.Reader
	buf    []byte
	length int
	eof    bool

	processed uint64
}

// NewStream creates a Stream reading from source, using finder to
// decide chunk boundaries, honoring sizes.
func NewStream(source io.Reader, finder SplitFinder, sizes ChunkSizes) *Stream {
	return &Stream{
		finder: finder,
		sizes:  sizes,
		source: source,
		buf:    make([]byte, sizes.Max),
	}
}

// fillBuffer tops the buffer up to sizes.Max bytes, issuing reads until
// EOF or the buffer is full.
func (s *Stream) fillBuffer() error {
	for !s.eof && uint64(s.length) < s.sizes.Max {
		n, err := s.source.Read(s.buf[s.length:])
		if n > 0 {
			s.length += n
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				s.eof = true
				break
			}

			s.eof = true
			s.length = 0

			return NewSourceIOError(err)
		}

		if n == 0 {
			s.eof = true
		}
	}

	return nil
}

// Next returns the next chunk, or io.EOF once the source is exhausted.
// The algorithm (spec.md §4.1):
//  1. Refill the buffer from the source.
//  2. If the remaining bytes are <= Min, the whole remainder is the
//     final (possibly short) chunk.
//  3. Otherwise ask the finder for a split point.
//  4. Validate the finder's answer and cut the chunk.
func (s *Stream) Next() (Chunk, error) {
	if err := s.fillBuffer(); err != nil {
		return Chunk{}, err
	}

	if s.length == 0 {
		return Chunk{}, io.EOF
	}

	var chunkLength int
	if uint64(s.length) <= s.sizes.Min {
		chunkLength = s.length
	} else {
		chunkLength = s.finder.FindSplit(s.buf[:s.length], s.sizes)
	}

	if chunkLength > s.length {
		return Chunk{}, errors.Wrapf(ErrImplementation,
			"split finder returned index %d beyond buffered length %d", chunkLength, s.length)
	}

	if uint64(chunkLength) < s.sizes.Min && uint64(s.length) > s.sizes.Min {
		return Chunk{}, errors.Wrapf(ErrImplementation,
			"split finder returned index %d below min size %d", chunkLength, s.sizes.Min)
	}

	data := make([]byte, chunkLength)
	copy(data, s.buf[:chunkLength])

	offset := s.processed
	s.processed += uint64(chunkLength)

	copy(s.buf, s.buf[chunkLength:s.length])
	s.length -= chunkLength

	return Chunk{Offset: offset, Length: uint32(chunkLength), Data: data}, nil
}

// Offset returns the number of bytes emitted as chunks so far.
func (s *Stream) Offset() uint64 { return s.processed }
