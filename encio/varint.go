package encio

const (
	// MaxVaruint32Len is the longest a LEB128 encoded uint32 can be.
	MaxVaruint32Len = 5
)

// EncodeVaruint32 encodes n in LEB128 format to buff: 7 bits per byte, least significant group first,
// with the high bit set on every byte but the last. It returns the encoded length.
//
// Buff must be large enough to write the int, as a general rule, it should be MaxVaruint32Len bytes large.
func EncodeVaruint32(buff []byte, n uint32) int {
	i := 0
	for n >= 0x80 {
		buff[i] = byte(n) | 0x80
		n >>= 7
		i++
	}
	buff[i] = byte(n)
	return i + 1
}

// DecodeVaruint32 decodes a LEB128 encoded uint32 from the start of buff,
// returning it and the number of bytes it used.
//
// It returns ErrBufferUnderrun if buff ends before the final byte,
// and ErrInvalidVarint if the encoding runs past 5 bytes or sets bits beyond 32.
func DecodeVaruint32(buff []byte) (n uint32, size int, err error) {
	var shift uint
	for i := 0; i < MaxVaruint32Len; i++ {
		if i >= len(buff) {
			return 0, 0, ErrBufferUnderrun
		}
		b := buff[i]
		if i == MaxVaruint32Len-1 && b > 0x0f {
			return 0, 0, ErrInvalidVarint
		}
		n |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return n, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrInvalidVarint
}

// ZigZagEncode maps signed integers onto unsigned ones so small magnitudes stay small;
// 0, -1, 1, -2 become 0, 1, 2, 3.
func ZigZagEncode(n int32) uint32 {
	return uint32(n<<1) ^ uint32(n>>31)
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(n uint32) int32 {
	return int32(n>>1) ^ -int32(n&1)
}
