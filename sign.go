package aggsig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"threshold.network/aggsig/rfc6979"
)

// SignSingle signs the 32-byte message hash with the 32-byte big endian
// secret key without any session state, for the one-cosigner case.
//
// When secNonce is nil a fresh nonce is generated deterministically from the
// seed, which is then required. When secNonce is provided it is used as the
// secret nonce; its sign is free, the function negates it as needed so the
// resulting public nonce has a quadratic-residue Y coordinate.
//
// When pubNonce is non-nil the challenge is computed over it instead of the
// signature's own nonce. This supports externally coordinated protocols
// where the challenge must commit to a combined nonce; VerifySingle must
// then be given the same pubNonce.
//
// All secret intermediates are wiped before returning.
func SignSingle(
	msgHash []byte,
	secKey []byte,
	secNonce []byte,
	pubNonce *secp256k1.PublicKey,
	seed *[SeedSize]byte,
) (*Signature, error) {
	if len(msgHash) != MessageHashSize {
		return nil, fmt.Errorf(
			"unexpected message hash length: [%d] bytes instead of [%d]",
			len(msgHash),
			MessageHashSize,
		)
	}
	if len(secKey) != scalarSize {
		return nil, fmt.Errorf(
			"unexpected secret key length: [%d] bytes instead of [%d]",
			len(secKey),
			scalarSize,
		)
	}

	var k secp256k1.ModNScalar
	var noncePoint secp256k1.JacobianPoint

	if secNonce == nil {
		if seed == nil {
			return nil, fmt.Errorf("nonce generation seed is required")
		}
		rng := rfc6979.New(seed[:])
		generateNonce(rng, &k, &noncePoint)
		rng.Wipe()
	} else {
		if len(secNonce) != scalarSize {
			return nil, fmt.Errorf(
				"unexpected secret nonce length: [%d] bytes instead of [%d]",
				len(secNonce),
				scalarSize,
			)
		}
		k.SetByteSlice(secNonce)
		secp256k1.ScalarBaseMultNonConst(&k, &noncePoint)
		if !hasQuadYVar(&noncePoint) {
			k.Negate()
			negateYVar(&noncePoint)
		}
	}

	// Recheck the nonce sign on the affine form used for the challenge.
	// The nonce already has a quadratic-residue Y at this point, so the
	// branch does not fire; deployed signers perform both checks.
	var nonceAffine secp256k1.JacobianPoint
	nonceAffine.Set(&noncePoint)
	nonceAffine.ToAffine()
	if !hasQuadYVar(&noncePoint) {
		k.Negate()
		negateYVar(&nonceAffine)
	}
	nonceAffine.X.Normalize()
	nonceAffine.Y.Normalize()

	var e *secp256k1.ModNScalar
	var err error
	if pubNonce != nil {
		e, err = singleSighash(pubNonce, msgHash)
	} else {
		e, err = singleSighash(
			secp256k1.NewPublicKey(&nonceAffine.X, &nonceAffine.Y),
			msgHash,
		)
	}
	if err != nil {
		k.Zero()
		return nil, err
	}

	var sec secp256k1.ModNScalar
	if overflow := sec.SetByteSlice(secKey); overflow {
		sec.Zero()
		k.Zero()
		return nil, fmt.Errorf("secret key is not a canonical scalar")
	}

	var s secp256k1.ModNScalar
	s.Mul2(&sec, e).Add(&k)

	var final secp256k1.JacobianPoint
	final.Set(&noncePoint)
	final.ToAffine()
	final.X.Normalize()

	sig := NewSignature(&s, &final.X)

	sec.Zero()
	k.Zero()
	s.Zero()

	return sig, nil
}

// ExportSecretNonce generates a secret nonce deterministically from the seed
// and exports it as a 32-byte big endian scalar, for signing flows where the
// nonce participates in an externally coordinated exchange before being fed
// back into SignSingle. The exported nonce corresponds to a public nonce
// with a quadratic-residue Y coordinate and is never zero.
func ExportSecretNonce(seed *[SeedSize]byte) ([]byte, error) {
	if seed == nil {
		return nil, fmt.Errorf("nonce generation seed is required")
	}

	rng := rfc6979.New(seed[:])
	defer rng.Wipe()

	var k secp256k1.ModNScalar
	var pubNonce secp256k1.JacobianPoint
	generateNonce(rng, &k, &pubNonce)

	out := make([]byte, scalarSize)
	k.PutBytesUnchecked(out)
	k.Zero()

	return out, nil
}
