package aggsig

import (
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"threshold.network/aggsig/rfc6979"
)

// singleSighash computes the challenge scalar for a plain single-key
// signature:
//
//	e = SHA256(compressed(R) ‖ m)
//
// interpreted as a big endian integer. The derivation fails when the digest
// is not a canonical scalar; callers return that failure as is. Reaching
// that branch requires a SHA-256 output exceeding the group order, so it is
// cryptographically unreachable.
func singleSighash(pubNonce *secp256k1.PublicKey, msgHash []byte) (*secp256k1.ModNScalar, error) {
	hasher := sha256.New()
	hasher.Write(pubNonce.SerializeCompressed())
	hasher.Write(msgHash)

	var e secp256k1.ModNScalar
	if overflow := e.SetByteSlice(hasher.Sum(nil)); overflow {
		return nil, fmt.Errorf("challenge hash is not a canonical scalar")
	}

	return &e, nil
}

// computePrehash computes the digest every cosigner commits to: the ordered
// compressed cosigner keys, the X coordinate of the combined public nonce,
// and the message hash. The digest is computed once per signing or
// verification pass and customized per signer index by indexedSighash.
//
// nonceX must be normalized.
func computePrehash(
	pubKeys []secp256k1.PublicKey,
	nonceX *secp256k1.FieldVal,
	msgHash []byte,
) [32]byte {
	hasher := sha256.New()
	for i := range pubKeys {
		hasher.Write(pubKeys[i].SerializeCompressed())
	}

	var nonceXBytes [32]byte
	nonceX.PutBytes(&nonceXBytes)
	hasher.Write(nonceXBytes[:])
	hasher.Write(msgHash)

	var prehash [32]byte
	hasher.Sum(prehash[:0])
	return prehash
}

// indexedSighash customizes the prehash for the cosigner at the given index:
//
//	eᵢ = SHA256(varint7(i) ‖ prehash)
//
// where varint7 emits the successive low 7-bit limbs of i as single bytes,
// low limb first, until i reaches zero. Index 0 therefore contributes no
// prefix at all, and e₀ = SHA256(prehash). Existing signatures depend on
// this exact encoding.
func indexedSighash(prehash []byte, index int) (*secp256k1.ModNScalar, error) {
	hasher := sha256.New()
	for i := index; i > 0; i >>= 7 {
		hasher.Write([]byte{byte(i & 0x7f)})
	}
	hasher.Write(prehash)

	var e secp256k1.ModNScalar
	if overflow := e.SetByteSlice(hasher.Sum(nil)); overflow {
		return nil, fmt.Errorf(
			"challenge hash for signer [%d] is not a canonical scalar",
			index,
		)
	}

	return &e, nil
}

// generateNonce draws a fresh secret nonce from the generator and computes
// the matching public nonce.
//
// The returned secret nonce is never zero and the public nonce always has a
// Y coordinate that is a quadratic residue modulo the field prime; the
// secret nonce is negated when needed to establish that. Draws producing a
// zero or non-canonical scalar are retried.
func generateNonce(
	rng *rfc6979.Generator,
	secNonce *secp256k1.ModNScalar,
	pubNonce *secp256k1.JacobianPoint,
) {
	var buf [32]byte
	for {
		rng.Generate(buf[:])
		overflow := secNonce.SetBytes(&buf)
		if overflow == 0 && !secNonce.IsZero() {
			break
		}
	}
	zeroSlice(buf[:])

	secp256k1.ScalarBaseMultNonConst(secNonce, pubNonce)
	if !hasQuadYVar(pubNonce) {
		secNonce.Negate()
		negateYVar(pubNonce)
	}
}

// zeroSlice zeroes the memory of a byte slice holding secret material.
func zeroSlice(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
