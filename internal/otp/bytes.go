package otp

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// Width is the size in bytes of a guess, a salt and a code.
const Width = 3

// MaxValue is the largest integer representable in Width bytes.
const MaxValue = 1<<(8*Width) - 1

// toBytes3 encodes n big-endian, silently dropping anything above MaxValue.
func toBytes3(n uint32) [Width]byte {
	return [Width]byte{byte(n >> 16), byte(n >> 8), byte(n)}
}

func fromBytes3(b [Width]byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func xor(a, b [Width]byte) [Width]byte {
	var c [Width]byte
	for i := range c {
		c[i] = a[i] ^ b[i]
	}
	return c
}

func encodeHex(b [Width]byte) string {
	return hex.EncodeToString(b[:])
}

// decodeHex parses exactly 2*Width hex characters.
func decodeHex(s string) ([Width]byte, error) {
	var b [Width]byte
	if len(s) != 2*Width {
		return b, errors.Wrapf(ErrInvalidFormat, "expected %d hex characters, got %d", 2*Width, len(s))
	}
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return b, errors.Wrapf(ErrInvalidFormat, "%q: %v", s, err)
	}
	return b, nil
}
