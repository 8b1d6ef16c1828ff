package otp

import (
	"bytes"
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeal_KnownValues(t *testing.T) {
	testCases := []struct {
		name string
		in   MaskInput
		code string
	}{
		// sha256("TestPolitician000000")[:3] = 219c14, 0x00007b ^ 219c14
		{"zero salt", Basic{Key: "TestPolitician", SaltHex: "000000"}, "219c6f"},
		// sha256("TestPolitician0a1b2c")[:3] = ed03ac
		{"basic", Basic{Key: "TestPolitician", SaltHex: "0a1b2c"}, "ed03d7"},
		// sha256("TestPolitician0a1b2c4242")[:3] = 58b803
		{"extended", Extended{Key: "TestPolitician", SaltHex: "0a1b2c", Extra: "4242"}, "58b878"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sealed, err := Seal(123, tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.in.Salt(), sealed.Salt)
			assert.Equal(t, tc.code, sealed.Code)

			n, err := Decode(sealed.Code, tc.in)
			require.NoError(t, err)
			assert.Equal(t, uint32(123), n)
		})
	}
}

func TestDecode_WrongPolitician(t *testing.T) {
	codec := New(nil)
	sealed, err := codec.Encode(123, "TestPolitician")
	require.NoError(t, err)
	require.Len(t, sealed.Salt, 6)
	require.Len(t, sealed.Code, 6)

	n, err := Decode(sealed.Code, Basic{Key: "TestPolitician", SaltHex: sealed.Salt})
	require.NoError(t, err)
	assert.Equal(t, uint32(123), n)

	// sha256("WrongPolitician0a1b2c")[:3] = 623969
	wrong, err := Decode("ed03d7", Basic{Key: "WrongPolitician", SaltHex: "0a1b2c"})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x8f3abe), wrong)
	assert.NotEqual(t, uint32(123), wrong)
}

func TestProperty_RoundTrip(t *testing.T) {
	codec := New(nil)
	f := func(n uint16, key string) bool {
		if key == "" {
			return true
		}
		guess := uint32(n) % 501
		sealed, err := codec.Encode(guess, key)
		if err != nil {
			return false
		}
		got, err := Decode(sealed.Code, Basic{Key: key, SaltHex: sealed.Salt})
		return err == nil && got == guess
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 500}))
}

func TestProperty_RoundTripFullWidth(t *testing.T) {
	f := func(n uint32, key string, salt [Width]byte) bool {
		n &= MaxValue
		in := Basic{Key: key, SaltHex: encodeHex(salt)}
		sealed, err := Seal(n, in)
		if err != nil {
			return false
		}
		got, err := Decode(sealed.Code, in)
		return err == nil && got == n
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 500}))
}

func TestSeal_TruncatesAboveMaxValue(t *testing.T) {
	in := Basic{Key: "TestPolitician", SaltHex: "0a1b2c"}
	over, err := Seal(MaxValue+1+123, in)
	require.NoError(t, err)
	exact, err := Seal(123, in)
	require.NoError(t, err)
	assert.Equal(t, exact.Code, over.Code)
}

func TestDerive_Deterministic(t *testing.T) {
	f := func(key, salt, extra string) bool {
		return Derive(Basic{key, salt}) == Derive(Basic{key, salt}) &&
			Derive(Extended{key, salt, extra}) == Derive(Extended{key, salt, extra})
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestDerive_ConcatenationOrder(t *testing.T) {
	// no separator: the boundary between key and salt is not part of the input
	assert.Equal(t,
		Derive(Basic{Key: "TestPolitician0a", SaltHex: "1b2c"}),
		Derive(Basic{Key: "TestPolitician", SaltHex: "0a1b2c"}),
	)
	assert.Equal(t,
		Derive(Extended{Key: "TestPolitician", SaltHex: "0a1b2c", Extra: "4242"}),
		Derive(Basic{Key: "TestPolitician", SaltHex: "0a1b2c4242"}),
	)
	assert.NotEqual(t,
		Derive(Extended{Key: "TestPolitician", SaltHex: "0a1b2c", Extra: "4242"}),
		Derive(Basic{Key: "TestPolitician", SaltHex: "0a1b2c"}),
	)
}

func TestEncode_KeySensitivity(t *testing.T) {
	pairs := [][2]string{
		{"Alice", "Bob"},
		{"Carol", "Dave"},
		{"TestPolitician", "WrongPolitician"},
		{"ณัฐพงษ์ เรืองปัญญาวุฒิ", "ศิริกัญญา ตันสกุล"},
	}
	for _, p := range pairs {
		a, err := Seal(123, Basic{Key: p[0], SaltHex: "0a1b2c"})
		require.NoError(t, err)
		b, err := Seal(123, Basic{Key: p[1], SaltHex: "0a1b2c"})
		require.NoError(t, err)
		assert.NotEqual(t, a.Code, b.Code, "%q vs %q", p[0], p[1])
	}
}

func TestDecode_WrongKeyDoesNotRecoverGuess(t *testing.T) {
	codec := New(nil)
	wrongKeys := []string{"Alice", "Bob", "Carol", "Dave", "WrongPolitician", "testpolitician"}
	for n := uint32(0); n <= 500; n += 50 {
		sealed, err := codec.Encode(n, "TestPolitician")
		require.NoError(t, err)
		mismatches := 0
		for _, k := range wrongKeys {
			got, err := Decode(sealed.Code, Basic{Key: k, SaltHex: sealed.Salt})
			require.NoError(t, err)
			assert.LessOrEqual(t, got, uint32(MaxValue))
			if got != n {
				mismatches++
			}
		}
		// a collision needs the 24-bit masks to match; allow at most one
		assert.GreaterOrEqual(t, mismatches, len(wrongKeys)-1)
	}
}

func TestDecode_InvalidFormat(t *testing.T) {
	in := Basic{Key: "TestPolitician", SaltHex: "0a1b2c"}
	for _, code := range []string{"", "abc", "abcdefa", "zzzzzz", "12345g", "0x1234"} {
		_, err := Decode(code, in)
		require.Error(t, err, code)
		assert.Equal(t, ErrInvalidFormat, errors.Cause(err), code)
	}

	for _, salt := range []string{"", "abc", "zzzzzz", "0a1b2c3d"} {
		_, err := Decode("ed03d7", Basic{Key: "TestPolitician", SaltHex: salt})
		require.Error(t, err, salt)
		assert.Equal(t, ErrInvalidFormat, errors.Cause(err), salt)

		_, err = Seal(123, Basic{Key: "TestPolitician", SaltHex: salt})
		assert.Equal(t, ErrInvalidFormat, errors.Cause(err), salt)
	}
}

func TestDecode_UppercaseCode(t *testing.T) {
	n, err := Decode("ED03D7", Basic{Key: "TestPolitician", SaltHex: "0a1b2c"})
	require.NoError(t, err)
	assert.Equal(t, uint32(123), n)
}

func TestEncode_SaltUniqueness(t *testing.T) {
	codec := New(nil)
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		sealed, err := codec.Encode(123, "TestPolitician")
		require.NoError(t, err)
		require.Regexp(t, "^[0-9a-f]{6}$", sealed.Salt)
		require.False(t, seen[sealed.Salt], "duplicate salt %s", sealed.Salt)
		seen[sealed.Salt] = true
	}
}

func TestEncode_InjectedEntropy(t *testing.T) {
	codec := New(bytes.NewReader([]byte{0x0a, 0x1b, 0x2c, 0x00, 0x00, 0x00}))

	first, err := codec.Encode(123, "TestPolitician")
	require.NoError(t, err)
	assert.Equal(t, Sealed{Salt: "0a1b2c", Code: "ed03d7"}, first)

	second, err := codec.Encode(123, "TestPolitician")
	require.NoError(t, err)
	assert.Equal(t, Sealed{Salt: "000000", Code: "219c6f"}, second)

	_, err = codec.Encode(123, "TestPolitician")
	require.Error(t, err, "exhausted entropy")
}

func TestEncodeExtended_ExtraBinding(t *testing.T) {
	codec := New(bytes.NewReader([]byte{0x0a, 0x1b, 0x2c}))
	sealed, err := codec.EncodeExtended(123, "TestPolitician", "4242")
	require.NoError(t, err)
	assert.Equal(t, "58b878", sealed.Code)

	n, err := Decode(sealed.Code, Extended{Key: "TestPolitician", SaltHex: sealed.Salt, Extra: "4242"})
	require.NoError(t, err)
	assert.Equal(t, uint32(123), n)

	// sha256("TestPolitician0a1b2c9999")[:3] = af6cef
	n, err = Decode(sealed.Code, Extended{Key: "TestPolitician", SaltHex: sealed.Salt, Extra: "9999"})
	require.NoError(t, err)
	assert.Equal(t, uint32(0xf7d497), n)

	n, err = Decode(sealed.Code, Basic{Key: "TestPolitician", SaltHex: sealed.Salt})
	require.NoError(t, err)
	assert.NotEqual(t, uint32(123), n)
}

func TestInput(t *testing.T) {
	assert.Equal(t, Basic{Key: "k", SaltHex: "0a1b2c"}, Input("k", "0a1b2c", ""))
	assert.Equal(t, Extended{Key: "k", SaltHex: "0a1b2c", Extra: "1"}, Input("k", "0a1b2c", "1"))
}

func TestByteTransform(t *testing.T) {
	assert.Equal(t, [Width]byte{0x00, 0x01, 0xf4}, toBytes3(500))
	assert.Equal(t, [Width]byte{0xff, 0xff, 0xff}, toBytes3(MaxValue))
	assert.Equal(t, uint32(500), fromBytes3([Width]byte{0x00, 0x01, 0xf4}))
	assert.Equal(t, [Width]byte{0xff, 0x00, 0x0f}, xor([Width]byte{0xf0, 0x0f, 0x00}, [Width]byte{0x0f, 0x0f, 0x0f}))

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		var b [Width]byte
		r.Read(b[:])
		got, err := decodeHex(encodeHex(b))
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
}
