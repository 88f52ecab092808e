package aggsig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// SignatureSize is the size of a serialized aggregate signature.
	SignatureSize = 64

	// PartialSignatureSize is the size of a serialized partial signature.
	PartialSignatureSize = 32

	// MessageHashSize is the size of the message hash being signed.
	MessageHashSize = 32

	// scalarSize is the size of an encoded big endian scalar.
	scalarSize = 32
)

// Signature is an aggregate signature over a cosigner set, or a plain
// signature over a single key when produced by the single-party path.
//
// The serialized form is exactly 64 bytes: the scalar s encoded big endian,
// followed by the X coordinate of the combined public nonce R encoded big
// endian. The Y coordinate of R is implicit; it is the unique Y that is a
// quadratic residue modulo the field prime.
type Signature struct {
	s      secp256k1.ModNScalar
	nonceX secp256k1.FieldVal
}

// NewSignature instantiates a signature from the scalar s and the X
// coordinate of the combined public nonce.
func NewSignature(s *secp256k1.ModNScalar, nonceX *secp256k1.FieldVal) *Signature {
	var sig Signature
	sig.s.Set(s)
	sig.nonceX.Set(nonceX)
	sig.nonceX.Normalize()
	return &sig
}

// ParseSignature parses the 64-byte serialized form of a signature. The s
// component must be a canonical scalar and the nonce X coordinate must be a
// canonical field element; non-canonical encodings are rejected.
func ParseSignature(raw []byte) (*Signature, error) {
	if len(raw) != SignatureSize {
		return nil, fmt.Errorf(
			"malformed signature: [%d] bytes instead of [%d]",
			len(raw),
			SignatureSize,
		)
	}

	var sig Signature
	if overflow := sig.s.SetByteSlice(raw[0:32]); overflow {
		return nil, fmt.Errorf(
			"malformed signature: s is not a canonical scalar",
		)
	}
	if overflow := sig.nonceX.SetByteSlice(raw[32:64]); overflow {
		return nil, fmt.Errorf(
			"malformed signature: nonce x is not a canonical field element",
		)
	}

	return &sig, nil
}

// Serialize returns the 64-byte serialized form of the signature.
func (sig *Signature) Serialize() []byte {
	out := make([]byte, SignatureSize)
	sig.s.PutBytesUnchecked(out[0:32])
	sig.nonceX.PutBytesUnchecked(out[32:64])
	return out
}

// PartialSignature is a single cosigner's scalar share of an aggregate
// signature. The serialized form is the 32-byte big endian scalar.
type PartialSignature struct {
	s secp256k1.ModNScalar
}

// ParsePartialSignature parses the 32-byte serialized form of a partial
// signature, rejecting non-canonical scalar encodings.
func ParsePartialSignature(raw []byte) (*PartialSignature, error) {
	if len(raw) != PartialSignatureSize {
		return nil, fmt.Errorf(
			"malformed partial signature: [%d] bytes instead of [%d]",
			len(raw),
			PartialSignatureSize,
		)
	}

	var partial PartialSignature
	if overflow := partial.s.SetByteSlice(raw); overflow {
		return nil, fmt.Errorf(
			"malformed partial signature: not a canonical scalar",
		)
	}

	return &partial, nil
}

// Serialize returns the 32-byte serialized form of the partial signature.
func (partial *PartialSignature) Serialize() []byte {
	out := make([]byte, PartialSignatureSize)
	partial.s.PutBytesUnchecked(out)
	return out
}
