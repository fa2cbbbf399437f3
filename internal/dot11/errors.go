package dot11

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated          = errors.New("dot11: truncated frame")
	ErrUnsupportedVersion = errors.New("dot11: unsupported protocol version")
	ErrInvalidAddress     = errors.New("dot11: invalid hardware address")
	// ErrInconsistentLength is a truncation caused by flag-dependent header
	// fields: the buffer holds the mandatory fields but the flags asked for more.
	// errors.Is matches ErrTruncated too.
	ErrInconsistentLength = fmt.Errorf("dot11: header overruns integrity field: %w", ErrTruncated)

	errBitWidth   = errors.New("dot11: bit width out of range")
	errMisaligned = errors.New("dot11: cursor not byte aligned")
)

// DecodeError carries the failure kind, the byte offset where decoding stopped
// and the last state the assembler reached.
type DecodeError struct {
	Err    error
	Offset int
	State  State
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v (state=%s offset=%d)", e.Err, e.State, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Reason maps a decode failure onto a short stable label for counters and logs.
// ErrInconsistentLength is checked first so it keeps its own label even though
// it also matches ErrTruncated.
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInconsistentLength):
		return "inconsistent_length"
	case errors.Is(err, ErrTruncated):
		return "truncated"
	case errors.Is(err, ErrUnsupportedVersion):
		return "unsupported_version"
	case errors.Is(err, ErrInvalidAddress):
		return "invalid_address"
	default:
		return "internal"
	}
}

// Offset reports the byte offset recorded in a decode failure, or -1.
func Offset(err error) int {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Offset
	}
	return -1
}
