package encio_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Wire-Network/sdk-core-sub000/encio"
)

func TestWriterGrowth(t *testing.T) {
	w := encio.NewWriter(1)
	for i := 0; i < 1000; i++ {
		require.NoError(t, w.WriteByte(byte(i)))
	}
	require.Equal(t, 1000, w.Len())
	for i, b := range w.Bytes() {
		require.Equal(t, byte(i), b)
	}

	w.Reset()
	assert.Equal(t, 0, w.Len())
}

func TestReaderWriterRoundTrip(t *testing.T) {
	w := new(encio.Writer)
	w.WriteUint16(0xbeef)
	w.WriteUint32(0xdeadbeef)
	w.WriteUint64(math.MaxUint64 - 1)
	w.WriteFloat32(1.5)
	w.WriteFloat64(-math.Pi)
	w.WriteString("hello, 世界")
	w.WriteBytes([]byte{1, 2, 3})
	w.WriteArray([]byte{9, 8})

	r := encio.NewReader(w.Bytes())

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xbeef), u16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64-1), u64)

	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f32)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, -math.Pi, f64)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "hello, 世界", s)

	b, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	raw, err := r.ReadArray(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8}, raw)

	assert.False(t, r.CanRead())
	assert.Equal(t, 0, r.Remaining())
}

func TestReaderUnderrun(t *testing.T) {
	r := encio.NewReader([]byte{1, 2, 3})

	_, err := r.ReadArray(4)
	require.True(t, errors.Is(err, encio.ErrBufferUnderrun), "got %v", err)
	assert.Equal(t, 0, r.Position())

	_, err = r.ReadUint64()
	require.True(t, errors.Is(err, encio.ErrBufferUnderrun))

	require.NoError(t, r.Advance(3))
	_, err = r.ReadByte()
	require.True(t, errors.Is(err, encio.ErrBufferUnderrun))

	var ioErr encio.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, 3, ioErr.Pos)
}

func TestReaderPosition(t *testing.T) {
	r := encio.NewReader([]byte{1, 2, 3, 4})
	require.NoError(t, r.Advance(2))
	assert.Equal(t, 2, r.Position())

	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(3), b)

	require.NoError(t, r.SetPosition(0))
	b, err = r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(1), b)

	assert.Error(t, r.SetPosition(5))
	assert.Error(t, r.Advance(10))
	assert.Equal(t, 1, r.Position())
}

func TestReadStringUTF8(t *testing.T) {
	data := []byte{2, 0xff, 0xfe}

	r := encio.NewReader(data)
	_, err := r.ReadString()
	require.True(t, errors.Is(err, encio.ErrInvalidUTF8), "got %v", err)
	assert.Equal(t, 0, r.Position())

	core, logs := observer.New(zapcore.WarnLevel)
	r = encio.NewReader(data)
	r.AllowInvalidUTF8 = true
	r.Logger = zap.New(core)
	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "\xff\xfe", s)
	assert.Equal(t, 1, logs.FilterMessage("tolerating invalid utf-8 in decoded string").Len())
}

func TestReadStringTruncated(t *testing.T) {
	r := encio.NewReader([]byte{5, 'a', 'b'})
	_, err := r.ReadString()
	require.True(t, errors.Is(err, encio.ErrBufferUnderrun))
	assert.Equal(t, 0, r.Position())
}

func TestHex(t *testing.T) {
	assert.Equal(t, "", encio.HexEncode(nil))
	assert.Equal(t, "00ff10ab", encio.HexEncode([]byte{0x00, 0xff, 0x10, 0xab}))

	b, err := encio.HexDecode("00FF10ab")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x10, 0xab}, b)

	_, err = encio.HexDecode("abc")
	assert.True(t, errors.Is(err, encio.ErrMalformed))

	_, err = encio.HexDecode("zz")
	assert.True(t, errors.Is(err, encio.ErrMalformed))
}
