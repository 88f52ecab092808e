package aggsig_test

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"threshold.network/aggsig"
)

// Example_aggregateSigning walks through a three-cosigner signing session.
// In a real deployment each cosigner runs its own session instance and the
// public nonces and partial signatures travel between them out of band; a
// single session stands in for all three here.
func Example_aggregateSigning() {
	secKeys := [][]byte{
		bytes.Repeat([]byte{0x11}, 32),
		bytes.Repeat([]byte{0x22}, 32),
		bytes.Repeat([]byte{0x33}, 32),
	}
	pubKeys := make([]*secp256k1.PublicKey, len(secKeys))
	for i, secKey := range secKeys {
		_, pubKeys[i] = btcec.PrivKeyFromBytes(secKey)
	}

	msgHash := bytes.Repeat([]byte{0xbb}, 32)

	seed, err := aggsig.DeriveSeed(
		bytes.Repeat([]byte{0x42}, 32),
		nil,
		"example signing session",
	)
	if err != nil {
		panic(err)
	}

	session, err := aggsig.NewSession(pubKeys, seed)
	if err != nil {
		panic(err)
	}
	defer session.Destroy()

	for i := range pubKeys {
		if err := session.GenerateNonce(i); err != nil {
			panic(err)
		}
	}

	partials := make([]*aggsig.PartialSignature, len(secKeys))
	for i, secKey := range secKeys {
		partials[i], err = session.PartialSign(i, msgHash, secKey)
		if err != nil {
			panic(err)
		}
	}

	signature, err := session.Combine(partials)
	if err != nil {
		panic(err)
	}

	scratch := aggsig.NewScratch(len(pubKeys))
	valid, err := aggsig.VerifyAggregate(scratch, signature, msgHash, pubKeys)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(signature.Serialize()), valid)
	// Output: 64 true
}
