package serializer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/abi"
)

var (
	// ErrUnknownType is returned when a type is neither a codec, an alias, a struct nor a variant.
	ErrUnknownType = errors.New("unknown type")

	// ErrUnknownVariantMember is returned when a variant tag or member name isn't in the variant.
	ErrUnknownVariantMember = errors.New("unknown variant member")

	// ErrInvalidStructShape is returned when a value doesn't have the shape its type needs,
	// e.g. a struct given something that isn't an object, or an array given something that isn't a list.
	ErrInvalidStructShape = errors.New("invalid struct shape")

	// ErrMaxDepthExceeded is returned when values nest deeper than MaxDepth.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")

	// ErrCircularTypeReference is returned when a default value would be infinitely large.
	ErrCircularTypeReference = errors.New("circular type reference")

	// ErrMissingValue is returned when a struct field that isn't optional has no value.
	ErrMissingValue = errors.New("missing value")
)

// PathFrame is one step of a coding path.
// Field is the struct field name, or empty for array elements, which use Index.
type PathFrame struct {
	Field string
	Index int
	Type  *abi.ResolvedType
}

func (f PathFrame) String() string {
	if f.Field == "" {
		return strconv.Itoa(f.Index)
	}
	if f.Type == nil {
		return f.Field
	}
	return fmt.Sprintf("%v<%v>", f.Field, f.Type.TypeName())
}

// FormatPath renders frames as e.g. root<transfer>.actions<action[]>.3.data<bytes>.
func FormatPath(frames []PathFrame) string {
	parts := make([]string, len(frames))
	for i, f := range frames {
		parts[i] = f.String()
	}
	return strings.Join(parts, ".")
}

// DecodingError is returned by Decode and FromObject.
// It carries where in the value the failure happened.
type DecodingError struct {
	Path []PathFrame
	Err  error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decoding error at %v: %v", FormatPath(e.Path), e.Err)
}

// Unwrap implements errors's Unwrap().
func (e *DecodingError) Unwrap() error { return e.Err }

// Cause implements github.com/pkg/errors's causer.
func (e *DecodingError) Cause() error { return e.Err }

// EncodingError is returned by Encode and ToObject.
// It carries where in the value the failure happened.
type EncodingError struct {
	Path []PathFrame
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error at %v: %v", FormatPath(e.Path), e.Err)
}

// Unwrap implements errors's Unwrap().
func (e *EncodingError) Unwrap() error { return e.Err }

// Cause implements github.com/pkg/errors's causer.
func (e *EncodingError) Cause() error { return e.Err }

// wrapDecoding wraps err once. Errors that already carry a path, from a codec calling back into the serializer, are kept.
func wrapDecoding(ctx *Context, err error) error {
	if err == nil {
		return nil
	}
	var de *DecodingError
	if errors.As(err, &de) {
		return err
	}
	return &DecodingError{Path: ctx.Frames(), Err: err}
}

func wrapEncoding(ctx *Context, err error) error {
	if err == nil {
		return nil
	}
	var ee *EncodingError
	if errors.As(err, &ee) {
		return err
	}
	return &EncodingError{Path: ctx.Frames(), Err: err}
}
