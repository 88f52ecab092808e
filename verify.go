package aggsig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// VerifyAggregate verifies the signature over the 32-byte message hash
// against the ordered cosigner key list. The key list and its order must be
// exactly the ones the signing session was created with.
//
// Verification recovers
//
//	Q = s·G − Σ eᵢ·Pᵢ
//
// with a single multi-scalar multiplication and accepts only when Q matches
// the X coordinate committed in the signature and the Y coordinate of Q is a
// quadratic residue modulo the field prime. The residue check pins down the
// implicit sign of the combined nonce and must not be skipped.
//
// The scratch arena is borrowed for the duration of the call; see Scratch.
// The function returns false and a describing error when the signature is
// invalid.
func VerifyAggregate(
	scratch *Scratch,
	sig *Signature,
	msgHash []byte,
	pubKeys []*secp256k1.PublicKey,
) (bool, error) {
	if scratch == nil {
		return false, fmt.Errorf("scratch space is required")
	}
	if sig == nil {
		return false, fmt.Errorf("signature is required")
	}
	if len(msgHash) != MessageHashSize {
		return false, fmt.Errorf(
			"unexpected message hash length: [%d] bytes instead of [%d]",
			len(msgHash),
			MessageHashSize,
		)
	}
	if len(pubKeys) == 0 {
		return false, fmt.Errorf("at least one cosigner public key is required")
	}

	keys := make([]secp256k1.PublicKey, len(pubKeys))
	for i, pubKey := range pubKeys {
		if pubKey == nil {
			return false, fmt.Errorf("public key at position [%d] is nil", i)
		}
		keys[i] = *pubKey
	}

	prehash := computePrehash(keys, &sig.nonceX, msgHash)

	var q secp256k1.JacobianPoint
	err := multiScalarMult(
		scratch,
		&sig.s,
		func(i int) (*secp256k1.ModNScalar, *secp256k1.JacobianPoint, error) {
			e, err := indexedSighash(prehash[:], i)
			if err != nil {
				return nil, nil, err
			}
			e.Negate()

			var point secp256k1.JacobianPoint
			keys[i].AsJacobian(&point)
			return e, &point, nil
		},
		len(keys),
		&q,
	)
	if err != nil {
		return false, err
	}

	return checkRecoveredNonce(&q, &sig.nonceX)
}

// VerifyAggregateAlloc verifies like VerifyAggregate with a throwaway
// scratch arena allocated for the call. Callers verifying repeatedly should
// hold on to their own arena instead.
func VerifyAggregateAlloc(
	sig *Signature,
	msgHash []byte,
	pubKeys []*secp256k1.PublicKey,
) (bool, error) {
	return VerifyAggregate(NewScratch(defaultScratchPoints), sig, msgHash, pubKeys)
}

// VerifySingle verifies a signature produced by the single-party path
// against one public key.
//
// When pubNonce is non-nil the challenge is computed over it, matching a
// signature produced with an associated public nonce; this is the
// externally coordinated flow where the signature commits to a nonce other
// than its own. When pubNonce is nil the public nonce is reconstructed from
// the X coordinate committed in the signature, choosing the Y coordinate
// that is a quadratic residue.
func VerifySingle(
	sig *Signature,
	msgHash []byte,
	pubNonce *secp256k1.PublicKey,
	pubKey *secp256k1.PublicKey,
) (bool, error) {
	if sig == nil {
		return false, fmt.Errorf("signature is required")
	}
	if len(msgHash) != MessageHashSize {
		return false, fmt.Errorf(
			"unexpected message hash length: [%d] bytes instead of [%d]",
			len(msgHash),
			MessageHashSize,
		)
	}
	if pubKey == nil {
		return false, fmt.Errorf("public key is required")
	}

	var e *secp256k1.ModNScalar
	var err error
	if pubNonce != nil {
		e, err = singleSighash(pubNonce, msgHash)
	} else {
		nonceX := sig.nonceX
		y, ok := setXQuadVar(&nonceX)
		if !ok {
			return false, fmt.Errorf("signature nonce x is not on the curve")
		}
		e, err = singleSighash(secp256k1.NewPublicKey(&nonceX, y), msgHash)
	}
	if err != nil {
		return false, err
	}
	e.Negate()

	var q secp256k1.JacobianPoint
	err = multiScalarMult(
		NewScratch(1),
		&sig.s,
		func(int) (*secp256k1.ModNScalar, *secp256k1.JacobianPoint, error) {
			var point secp256k1.JacobianPoint
			pubKey.AsJacobian(&point)
			return e, &point, nil
		},
		1,
		&q,
	)
	if err != nil {
		return false, err
	}

	return checkRecoveredNonce(&q, &sig.nonceX)
}

// checkRecoveredNonce accepts the recovered point Q as the signature's
// combined nonce when its X coordinate equals the committed one and its Y
// coordinate is a quadratic residue.
func checkRecoveredNonce(q *secp256k1.JacobianPoint, nonceX *secp256k1.FieldVal) (bool, error) {
	if !hasQuadYVar(q) {
		return false, fmt.Errorf("recovered nonce y is not a quadratic residue")
	}

	q.ToAffine()
	q.X.Normalize()
	if !q.X.Equals(nonceX) {
		return false, fmt.Errorf("recovered nonce does not match the signature")
	}

	return true, nil
}
