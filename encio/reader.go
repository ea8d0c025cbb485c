package encio

import (
	"fmt"
	"math"
	"unicode/utf8"

	"go.uber.org/zap"
)

// NewReader returns a Reader positioned at the start of buff.
// The Reader never modifies buff.
func NewReader(buff []byte) *Reader {
	return &Reader{buff: buff}
}

// Reader is a cursor over an immutable byte span.
// Every read is bounds checked and advances the cursor; a failed read leaves the cursor where it was.
type Reader struct {
	buff []byte
	pos  int

	// AllowInvalidUTF8 makes ReadString return invalid sequences as they are, with a warning,
	// instead of failing with ErrInvalidUTF8.
	AllowInvalidUTF8 bool

	// Logger receives warnings. If nil, they go to Warnings.
	Logger *zap.Logger
}

func (r *Reader) logger() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return Warnings
}

// Position returns the current cursor position.
func (r *Reader) Position() int {
	return r.pos
}

// SetPosition moves the cursor to pos, which must lie within the buffer.
// It is used for lookahead tricks, reading ahead and then rewinding.
func (r *Reader) SetPosition(pos int) error {
	if pos < 0 || pos > len(r.buff) {
		return NewIOError(ErrBufferUnderrun, r.pos, fmt.Sprintf("cannot set position to %v in %v byte buffer", pos, len(r.buff)))
	}
	r.pos = pos
	return nil
}

// Advance moves the cursor forward by n bytes.
func (r *Reader) Advance(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// CanRead reports whether any bytes remain.
func (r *Reader) CanRead() bool {
	return r.pos < len(r.buff)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buff) - r.pos
}

func (r *Reader) need(n int) error {
	if n < 0 || n > len(r.buff)-r.pos {
		return NewIOError(ErrBufferUnderrun, r.pos, fmt.Sprintf("want %v bytes but only %v remain", n, len(r.buff)-r.pos))
	}
	return nil
}

// ReadByte implements io.ByteReader
func (r *Reader) ReadByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.buff[r.pos]
	r.pos++
	return b, nil
}

// ReadArray returns the next n bytes.
// The returned slice aliases the underlying buffer; copy it if it must outlive the buffer.
func (r *Reader) ReadArray(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buff[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint16 reads a little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadArray(2)
	if err != nil {
		return 0, err
	}
	return DecodeUint16(b), nil
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadArray(4)
	if err != nil {
		return 0, err
	}
	return DecodeUint32(b), nil
}

// ReadUint64 reads a little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadArray(8)
	if err != nil {
		return 0, err
	}
	return DecodeUint64(b), nil
}

// ReadVaruint32 reads a LEB128 encoded uint32.
func (r *Reader) ReadVaruint32() (uint32, error) {
	n, size, err := DecodeVaruint32(r.buff[r.pos:])
	if err != nil {
		return 0, NewIOError(err, r.pos, "")
	}
	r.pos += size
	return n, nil
}

// ReadVarint32 reads a zig-zag, LEB128 encoded int32.
func (r *Reader) ReadVarint32() (int32, error) {
	n, err := r.ReadVaruint32()
	if err != nil {
		return 0, err
	}
	return ZigZagDecode(n), nil
}

// ReadFloat32 reads a little-endian IEEE-754 single.
func (r *Reader) ReadFloat32() (float32, error) {
	n, err := r.ReadUint32()
	return math.Float32frombits(n), err
}

// ReadFloat64 reads a little-endian IEEE-754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	n, err := r.ReadUint64()
	return math.Float64frombits(n), err
}

// ReadBytes reads a varuint32 length prefix followed by that many raw bytes.
// The returned slice is a copy.
func (r *Reader) ReadBytes() ([]byte, error) {
	start := r.pos
	l, err := r.ReadVaruint32()
	if err != nil {
		return nil, err
	}
	if l > TooBig {
		r.pos = start
		return nil, NewIOError(ErrMalformed, start, fmt.Sprintf("length %v is too big", l))
	}
	b, err := r.ReadArray(int(l))
	if err != nil {
		r.pos = start
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadString reads a varuint32 length prefix followed by that many bytes of UTF-8.
func (r *Reader) ReadString() (string, error) {
	start := r.pos
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		if !r.AllowInvalidUTF8 {
			r.pos = start
			return "", NewIOError(ErrInvalidUTF8, start, fmt.Sprintf("%v byte string", len(b)))
		}
		r.logger().Warn("tolerating invalid utf-8 in decoded string",
			zap.Int("position", start),
			zap.Int("length", len(b)),
		)
	}

	return string(b), nil
}
