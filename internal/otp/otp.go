// Package otp masks a small integer under a public key and a random salt so
// that it can be shown and stored as a six character code, and recovered later
// by anyone who knows the same key (and extra secret, if one was used).
//
// It is obfuscation, not encryption: keys are guessable names and the guess
// domain is tiny.
package otp

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// ErrInvalidFormat is returned when a code or salt is not exactly six hex
// characters.
var ErrInvalidFormat = errors.New("invalid code format")

// Sealed is what callers persist: both fields are required to decode.
type Sealed struct {
	Salt string `json:"salt"`
	Code string `json:"code"`
}

// Codec seals guesses under fresh salts drawn from its entropy source.
type Codec struct {
	entropy io.Reader
}

// New returns a Codec drawing salts from entropy, or from crypto/rand when
// entropy is nil.
func New(entropy io.Reader) *Codec {
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Codec{entropy: entropy}
}

// NewSalt returns Width random bytes as lowercase hex.
func (c *Codec) NewSalt() (string, error) {
	var b [Width]byte
	if _, err := io.ReadFull(c.entropy, b[:]); err != nil {
		return "", errors.Wrap(err, "unable to read salt entropy")
	}
	return encodeHex(b), nil
}

// Encode masks n under key with a fresh salt.
func (c *Codec) Encode(n uint32, key string) (Sealed, error) {
	salt, err := c.NewSalt()
	if err != nil {
		return Sealed{}, err
	}
	return Seal(n, Basic{Key: key, SaltHex: salt})
}

// EncodeExtended masks n under key and extra with a fresh salt.
func (c *Codec) EncodeExtended(n uint32, key, extra string) (Sealed, error) {
	salt, err := c.NewSalt()
	if err != nil {
		return Sealed{}, err
	}
	return Seal(n, Extended{Key: key, SaltHex: salt, Extra: extra})
}

// Seal masks n with the salt carried by in. Values of n above MaxValue are
// truncated to their low Width bytes.
func Seal(n uint32, in MaskInput) (Sealed, error) {
	if _, err := decodeHex(in.Salt()); err != nil {
		return Sealed{}, errors.Wrap(err, "salt")
	}
	mask := Derive(in)
	return Sealed{
		Salt: in.Salt(),
		Code: encodeHex(xor(toBytes3(n), [Width]byte(mask))),
	}, nil
}

// Decode reverses Seal. A wrong key or extra does not fail: it yields some
// other integer in [0, MaxValue], and range checks are left to the caller.
func Decode(code string, in MaskInput) (uint32, error) {
	ct, err := decodeHex(code)
	if err != nil {
		return 0, errors.Wrap(err, "code")
	}
	if _, err := decodeHex(in.Salt()); err != nil {
		return 0, errors.Wrap(err, "salt")
	}
	return fromBytes3(xor(ct, [Width]byte(Derive(in)))), nil
}
