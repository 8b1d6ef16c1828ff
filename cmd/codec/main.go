package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-cafe/seat-guess/internal/otp"

	"github.com/rs/zerolog"
)

func main() {
	var (
		n        = flag.Uint("n", 123, "guess to seal")
		key      = flag.String("key", "ศิริกัญญา ตันสกุล", "masking key, the chosen candidate")
		salt     = flag.String("salt", "", "six hex character salt, random when empty")
		extra    = flag.String("extra", "", "optional numeric extra secret")
		decode   = flag.String("decode", "", "decode this code instead of sealing -n")
		wrongKey = flag.String("wrong-key", "", "also decode with this key to show what a wrong candidate yields")
	)
	flag.Parse()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *decode != "" {
		if *salt == "" {
			log.Fatal("-salt is required with -decode")
		}
		v, err := otp.Decode(*decode, otp.Input(*key, *salt, *extra))
		if err != nil {
			log.Fatalf("unable to decode %s: %v", *decode, err)
		}
		fmt.Println(v)
		return
	}

	codec := otp.New(nil)
	var sealed otp.Sealed
	var err error
	switch {
	case *salt != "":
		sealed, err = otp.Seal(uint32(*n), otp.Input(*key, *salt, *extra))
	case *extra != "":
		sealed, err = codec.EncodeExtended(uint32(*n), *key, *extra)
	default:
		sealed, err = codec.Encode(uint32(*n), *key)
	}
	if err != nil {
		log.Fatalf("unable to seal %d: %v", *n, err)
	}
	mask := otp.Derive(otp.Input(*key, sealed.Salt, *extra))
	logger.Info().
		Uint("guess", *n).
		Str("salt", sealed.Salt).
		Hex("mask", mask[:]).
		Str("code", sealed.Code).
		Msg("sealed")

	back, err := otp.Decode(sealed.Code, otp.Input(*key, sealed.Salt, *extra))
	if err != nil {
		log.Fatalf("unable to decode %s: %v", sealed.Code, err)
	}
	logger.Info().Uint32("guess", back).Bool("match", back == uint32(*n)).Msg("decoded with the same key")

	if *wrongKey != "" {
		wrong, err := otp.Decode(sealed.Code, otp.Input(*wrongKey, sealed.Salt, *extra))
		if err != nil {
			log.Fatalf("unable to decode %s: %v", sealed.Code, err)
		}
		logger.Info().Str("key", *wrongKey).Uint32("guess", wrong).Msg("decoded with the wrong key")
	}
	fmt.Println(sealed.Salt, sealed.Code)
}
