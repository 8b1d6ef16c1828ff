package otp

import "crypto/sha256"

// Mask is the pseudorandom pad XORed with a guess.
type Mask [Width]byte

// MaskInput is the material a mask is derived from. It is either Basic or
// Extended; no other implementations exist.
type MaskInput interface {
	// Salt returns the hex salt the mask is bound to.
	Salt() string
	material() []byte
}

// Basic binds a mask to a key and a salt.
type Basic struct {
	Key     string
	SaltHex string
}

func (b Basic) Salt() string { return b.SaltHex }

func (b Basic) material() []byte {
	return []byte(b.Key + b.SaltHex)
}

// Extended additionally binds a mask to an extra secret the participant keeps
// in memory. It is never persisted.
type Extended struct {
	Key     string
	SaltHex string
	Extra   string
}

func (e Extended) Salt() string { return e.SaltHex }

func (e Extended) material() []byte {
	return []byte(e.Key + e.SaltHex + e.Extra)
}

// Input returns Extended when extra is non-empty and Basic otherwise.
func Input(key, salt, extra string) MaskInput {
	if extra == "" {
		return Basic{Key: key, SaltHex: salt}
	}
	return Extended{Key: key, SaltHex: salt, Extra: extra}
}

// Derive hashes key, salt and extra (in that order, no separator) with
// SHA-256 and keeps the first Width bytes of the digest.
func Derive(in MaskInput) Mask {
	sum := sha256.Sum256(in.material())
	var m Mask
	copy(m[:], sum[:Width])
	return m
}
