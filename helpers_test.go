package aggsig

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// repeat32 returns a 32-byte slice filled with the given byte.
func repeat32(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

// seed32 returns a seed filled with the given byte.
func seed32(b byte) *[SeedSize]byte {
	var seed [SeedSize]byte
	for i := range seed {
		seed[i] = b
	}
	return &seed
}

// createCosigners derives the public keys for the given secret keys.
func createCosigners(t *testing.T, secKeys ...[]byte) []*secp256k1.PublicKey {
	pubKeys := make([]*secp256k1.PublicKey, len(secKeys))
	for i, secKey := range secKeys {
		_, pubKey := btcec.PrivKeyFromBytes(secKey)
		pubKeys[i] = pubKey
	}
	return pubKeys
}

// signAggregate executes the full happy-path aggregate signing flow: one
// session, a nonce per cosigner, a partial signature per cosigner, and the
// final combine.
func signAggregate(
	t *testing.T,
	secKeys [][]byte,
	pubKeys []*secp256k1.PublicKey,
	seed *[SeedSize]byte,
	msgHash []byte,
) (*Session, *Signature) {
	session, err := NewSession(pubKeys, seed)
	if err != nil {
		t.Fatalf("unexpected session creation error: [%v]", err)
	}

	for i := range pubKeys {
		if err := session.GenerateNonce(i); err != nil {
			t.Fatalf("unexpected nonce generation error for [%d]: [%v]", i, err)
		}
	}

	partials := make([]*PartialSignature, len(secKeys))
	for i, secKey := range secKeys {
		partial, err := session.PartialSign(i, msgHash, secKey)
		if err != nil {
			t.Fatalf("unexpected partial signing error for [%d]: [%v]", i, err)
		}
		partials[i] = partial
	}

	signature, err := session.Combine(partials)
	if err != nil {
		t.Fatalf("unexpected combine error: [%v]", err)
	}

	return session, signature
}
