package serializer_test

import (
	"reflect"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serializer "github.com/Wire-Network/sdk-core-sub000"
	"github.com/Wire-Network/sdk-core-sub000/abi"
	"github.com/Wire-Network/sdk-core-sub000/encio"
	"github.com/Wire-Network/sdk-core-sub000/encode"
)

type transfer struct {
	Amount uint64
	Memo   string
}

func (transfer) ABIName() string { return "transfer" }

type circle struct {
	Radius uint32
}

func (circle) ABIName() string { return "circle" }

type shape struct {
	Value interface{}
}

func (shape) ABIName() string { return "shape" }

func (shape) ABIVariant() []interface{} {
	return []interface{}{circle{}, ""}
}

type meta struct {
	ID uint64 `abi:"id"`
}

func (meta) ABIName() string { return "meta" }

type drawing struct {
	meta
	Owner  encode.Name
	Shapes []shape
	Note   *string
	Scale  []uint16 `abi:",extension"`
}

func (drawing) ABIName() string { return "drawing" }

func TestEncodeNative(t *testing.T) {
	data, err := serializer.EncodeNative(transfer{Amount: 5, Memo: "hi"}, nil)
	require.NoError(t, err)
	td.Cmp(t, data, []byte{0x05, 0, 0, 0, 0, 0, 0, 0, 0x02, 0x68, 0x69})

	// Native and schema-driven encoding agree.
	viaABI, err := serializer.Encode(serializer.EncodeArgs{Value: transfer{Amount: 5, Memo: "hi"}, ABI: testABI, Type: "transfer"})
	require.NoError(t, err)
	td.Cmp(t, viaABI, data)

	var out transfer
	require.NoError(t, serializer.DecodeNative(data, &out, nil))
	td.Cmp(t, out, transfer{Amount: 5, Memo: "hi"})
}

func TestNativeRoundTrip(t *testing.T) {
	note := "sketch"
	testCases := []struct {
		desc string
		in   drawing
	}{
		{
			desc: "full",
			in: drawing{
				meta:   meta{ID: 42},
				Owner:  encode.MustName("alice"),
				Shapes: []shape{{Value: circle{Radius: 3}}, {Value: "square"}},
				Note:   &note,
				Scale:  []uint16{1, 2},
			},
		},
		{
			desc: "empty",
			in: drawing{
				Owner:  encode.MustName("bob"),
				Shapes: []shape{},
			},
		},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			data, err := serializer.EncodeNative(tC.in, nil)
			require.NoError(t, err)

			var out drawing
			require.NoError(t, serializer.DecodeNative(data, &out, nil))
			td.Cmp(t, out, tC.in)
		})
	}
}

func TestNativeTypes(t *testing.T) {
	native, err := serializer.RegisterNative(transfer{})
	require.NoError(t, err)
	td.Cmp(t, native["transfer"], reflect.TypeOf(transfer{}))

	v, err := serializer.Decode(serializer.DecodeArgs{
		Data:   []byte{0x05, 0, 0, 0, 0, 0, 0, 0, 0x02, 0x68, 0x69},
		ABI:    testABI,
		Type:   "transfer",
		Config: &serializer.Config{NativeTypes: native},
	})
	require.NoError(t, err)
	td.Cmp(t, v, transfer{Amount: 5, Memo: "hi"})

	v, err = serializer.FromObject(serializer.ObjectArgs{
		Object: map[string]interface{}{"amount": "5", "memo": "hi"},
		ABI:    testABI,
		Type:   "transfer",
		Config: &serializer.Config{NativeTypes: native},
	})
	require.NoError(t, err)
	td.Cmp(t, v, transfer{Amount: 5, Memo: "hi"})
}

func TestRegisterErrors(t *testing.T) {
	native := make(serializer.NativeTypes)
	require.NoError(t, native.Register(&circle{}))
	td.Cmp(t, native["circle"], reflect.TypeOf(circle{}))

	assert.Error(t, native.Register(nil))
	assert.Error(t, native.Register(struct{ A int }{}))
}

func TestDecodeNativeErrors(t *testing.T) {
	var out transfer
	err := serializer.DecodeNative([]byte{1}, out, nil)
	assert.True(t, errors.Is(err, encio.ErrBadType), "got %v", err)

	err = serializer.DecodeNative([]byte{1}, &out, nil)
	assert.True(t, errors.Is(err, encio.ErrBufferUnderrun), "got %v", err)

	var small struct {
		Amount uint8
		Memo   string
	}
	err = serializer.DecodeNative([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0}, &small, nil)
	assert.Error(t, err)
}

func TestNativeErrorsAreWrapped(t *testing.T) {
	var encErr *serializer.EncodingError
	var decErr *serializer.DecodingError

	_, err := serializer.EncodeNative(nil, nil)
	assert.True(t, errors.As(err, &encErr), "got %T", err)
	assert.True(t, errors.Is(err, encio.ErrBadType), "got %v", err)

	_, err = serializer.EncodeNative(make(chan int), nil)
	assert.True(t, errors.As(err, &encErr), "got %T", err)
	assert.True(t, errors.Is(err, abi.ErrUnsupportedType), "got %v", err)

	var out transfer
	err = serializer.DecodeNative([]byte{1}, out, nil)
	assert.True(t, errors.As(err, &decErr), "got %T", err)

	var ch chan int
	err = serializer.DecodeNative(nil, &ch, nil)
	assert.True(t, errors.As(err, &decErr), "got %T", err)
	assert.True(t, errors.Is(err, abi.ErrUnsupportedType), "got %v", err)
}
