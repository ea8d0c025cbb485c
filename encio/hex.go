package encio

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

const hexDigits = "0123456789abcdef"

var (
	hexOnce sync.Once
	// hexEncodeTable maps a byte to its two lowercase digits.
	hexEncodeTable [256][2]byte
	// hexDecodeTable maps an ASCII character to its nibble value, or 0xff if it isn't a hex digit.
	hexDecodeTable [256]byte
)

func buildHexTables() {
	for i := 0; i < 256; i++ {
		hexEncodeTable[i] = [2]byte{hexDigits[i>>4], hexDigits[i&0x0f]}
		hexDecodeTable[i] = 0xff
	}
	for i := 0; i < 16; i++ {
		hexDecodeTable[hexDigits[i]] = byte(i)
	}
	for c := 'A'; c <= 'F'; c++ {
		hexDecodeTable[c] = byte(c-'A') + 10
	}
}

// HexEncode returns the lowercase hexadecimal form of buff.
func HexEncode(buff []byte) string {
	hexOnce.Do(buildHexTables)

	out := make([]byte, len(buff)*2)
	for i, b := range buff {
		out[i*2] = hexEncodeTable[b][0]
		out[i*2+1] = hexEncodeTable[b][1]
	}
	return string(out)
}

// HexDecode parses a hexadecimal string of either case.
func HexDecode(s string) ([]byte, error) {
	hexOnce.Do(buildHexTables)

	if len(s)%2 != 0 {
		return nil, errors.Wrapf(ErrMalformed, "odd length hex string (%v characters)", len(s))
	}

	out := make([]byte, len(s)/2)
	for i := range out {
		hi, lo := hexDecodeTable[s[i*2]], hexDecodeTable[s[i*2+1]]
		if hi == 0xff || lo == 0xff {
			return nil, errors.Wrap(ErrMalformed, fmt.Sprintf("invalid hex character near offset %v", i*2))
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}
