package encio

import (
	"math"
)

// NewWriter returns a Writer with room for size bytes before it must grow.
func NewWriter(size int) *Writer {
	return &Writer{
		buff: make([]byte, 0, size),
	}
}

// Writer is a growable buffer that the serializer appends encoded data to.
// The zero value is ready to use.
type Writer struct {
	buff []byte
}

// Bytes returns the written data. It aliases the Writer's buffer until the next write.
func (w *Writer) Bytes() []byte {
	return w.buff
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buff)
}

// Reset discards all written data, keeping the allocated buffer.
func (w *Writer) Reset() {
	w.buff = w.buff[:0]
}

// grow extends the buffer by n bytes, returning the offset they start at.
func (w *Writer) grow(n int) int {
	l := len(w.buff)
	if l+n <= cap(w.buff) {
		w.buff = w.buff[:l+n]
		return l
	}

	// must allocate, double so appends stay amortised O(1)
	nb := make([]byte, l+n, cap(w.buff)*2+n)
	copy(nb, w.buff)
	w.buff = nb
	return l
}

// Write implements io.Writer. It never fails.
func (w *Writer) Write(buff []byte) (int, error) {
	return copy(w.buff[w.grow(len(buff)):], buff), nil
}

// WriteByte implements io.ByteWriter. It never fails.
func (w *Writer) WriteByte(b byte) error {
	w.buff[w.grow(1)] = b
	return nil
}

// WriteArray appends buff as-is, with no length prefix.
func (w *Writer) WriteArray(buff []byte) {
	copy(w.buff[w.grow(len(buff)):], buff)
}

// WriteUint16 appends n in little-endian order.
func (w *Writer) WriteUint16(n uint16) {
	EncodeUint16(w.buff[w.grow(2):], n)
}

// WriteUint32 appends n in little-endian order.
func (w *Writer) WriteUint32(n uint32) {
	EncodeUint32(w.buff[w.grow(4):], n)
}

// WriteUint64 appends n in little-endian order.
func (w *Writer) WriteUint64(n uint64) {
	EncodeUint64(w.buff[w.grow(8):], n)
}

// WriteVaruint32 appends n in LEB128 format.
func (w *Writer) WriteVaruint32(n uint32) {
	var buff [MaxVaruint32Len]byte
	l := EncodeVaruint32(buff[:], n)
	w.WriteArray(buff[:l])
}

// WriteVarint32 appends n zig-zag encoded in LEB128 format.
func (w *Writer) WriteVarint32(n int32) {
	w.WriteVaruint32(ZigZagEncode(n))
}

// WriteFloat32 appends an IEEE-754 single in little-endian order.
func (w *Writer) WriteFloat32(f float32) {
	w.WriteUint32(math.Float32bits(f))
}

// WriteFloat64 appends an IEEE-754 double in little-endian order.
func (w *Writer) WriteFloat64(f float64) {
	w.WriteUint64(math.Float64bits(f))
}

// WriteBytes appends a varuint32 length prefix followed by buff.
func (w *Writer) WriteBytes(buff []byte) {
	w.WriteVaruint32(uint32(len(buff)))
	w.WriteArray(buff)
}

// WriteString appends a varuint32 length prefix followed by the bytes of s.
func (w *Writer) WriteString(s string) {
	w.WriteVaruint32(uint32(len(s)))
	copy(w.buff[w.grow(len(s)):], s)
}
