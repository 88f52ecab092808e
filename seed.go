package aggsig

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// SeedSize is the size of a nonce generation seed.
const SeedSize = 32

// DeriveSeed derives a 32-byte nonce generation seed from caller-held
// secret material with HKDF-SHA256. The secret must be high entropy, for
// example the output of a system random source or an established shared
// secret. The optional salt and the context string separate seeds derived
// from the same secret for different sessions and purposes; two sessions
// must never sign with the same seed.
func DeriveSeed(secret, salt []byte, context string) (*[SeedSize]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("seed derivation secret is required")
	}

	seed := new([SeedSize]byte)
	reader := hkdf.New(sha256.New, secret, salt, []byte(context))
	if _, err := io.ReadFull(reader, seed[:]); err != nil {
		return nil, fmt.Errorf("seed derivation failed: [%v]", err)
	}

	return seed, nil
}
