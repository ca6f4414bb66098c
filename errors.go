package cdc

import "github.com/pkg/errors"

// The core recognizes exactly three error kinds at its boundary. None of
// them is retried internally: SourceIOError surfaces once per read
// failure and the stream then stops; ErrImplementation and
// polynomial.ErrIrreducibilityExhausted are programming-bug-class
// conditions.

// ErrImplementation marks an invariant violation inside the core itself
// — a split-point finder returning an index outside [min, buf.len()], or
// a ChunkSizes triple that breaks 0 < min <= avg <= max. Polynomial
// overflow does not use it: polynomial.Pol.Mul panics instead. Wrap this with errors.Wrap/Wrapf to add the offending
// value; never swallow it, since it means a SplitFinder or caller broke
// its contract.
var ErrImplementation = errors.New("cdc: implementation invariant violated")

// SourceIOError wraps a read failure from the byte source feeding a
// Stream. It is returned exactly once, on the call that encountered it;
// the stream does not attempt to recover and subsequent calls return
// io.EOF-equivalent termination.
type SourceIOError struct {
	cause error
}

func (e *SourceIOError) Error() string { return "cdc: source read failed: " + e.cause.Error() }

func (e *SourceIOError) Unwrap() error { return e.cause }

// NewSourceIOError wraps err as a SourceIOError.
func NewSourceIOError(err error) error {
	return &SourceIOError{cause: err}
}
