package encio

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error handling in encio is designed to make bad data easy to tell apart from misuse.
// Every failure wraps one of a small set of sentinel errors, with the cursor position
// attached by IOError, so callers can check with
//
//	if errors.Is(err, encio.ErrBufferUnderrun) {
//		// truncated input
//	}
//
// Panics are only used when there is a clear misuse of the library; programmer error.
var (
	// ErrBufferUnderrun is returned when a read would go past the end of the buffer.
	ErrBufferUnderrun = errors.New("buffer underrun")

	// ErrInvalidVarint is returned when a variable-length integer is longer than 5 bytes,
	// or carries bits beyond 32.
	ErrInvalidVarint = errors.New("invalid varint")

	// ErrInvalidUTF8 is returned when a decoded string is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8")

	// ErrMalformed is returned when the read data is impossible to decode.
	ErrMalformed = errors.New("malformed")

	// ErrBadType is returned when a value handed to a codec is not something it can represent.
	ErrBadType = errors.New("bad type")
)

// NewIOError returns an IOError wrapping err at the given buffer position.
// message has extra information about the error and may be empty.
func NewIOError(err error, pos int, message string) error {
	if err == nil {
		panic("encio: NewIOError called with nil error")
	}

	return errors.WithStack(IOError{
		Err:     err,
		Pos:     pos,
		Message: message,
	})
}

// IOError is returned when reading or writing the buffer fails, or when read data is malformed.
type IOError struct {
	Err     error
	Pos     int
	Message string
}

// Error implements error
func (e IOError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v at position %v: %v", e.Err, e.Pos, e.Message)
	}
	return fmt.Sprintf("%v at position %v", e.Err, e.Pos)
}

// Unwrap implements errors's Unwrap()
func (e IOError) Unwrap() error {
	return e.Err
}
