// Package encio provides the low-level byte cursor primitives used by the ABI serializer,
// as well as error types.
//
// Reader and Writer know nothing about schemas. They read and write single bytes, raw spans,
// LEB128 variable-length integers, IEEE floats and length-prefixed UTF-8 strings, all little-endian,
// exactly as the chain's C++ implementation lays them out.
package encio

var (
	// TooBig is a count used for simple sanity checking before things like allocation and iteration with numbers decoded from readers.
	// ErrMalformed is returned if a decoded length exceeds this.
	//
	// By default it is 32MB on 32bit machines, and 128MB on 64bit machines.
	// Feel free to change it.
	TooBig = uint32(1 << (25 + ((^uint(0) >> 32) & 2)))
)
