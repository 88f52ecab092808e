package aggsig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"threshold.network/aggsig/rfc6979"
)

// nonceState tracks the lifecycle of one cosigner slot's nonce.
type nonceState uint8

const (
	// nonceUnknown means no nonce has been recorded for the slot.
	nonceUnknown nonceState = iota

	// nonceOther is reserved for public nonces contributed by another
	// party. No operation transitions into this state yet; the value is
	// kept so the numbering stays stable for future protocol extensions.
	nonceOther

	// nonceOurs means the slot holds a nonce we generated and have not
	// signed with yet.
	nonceOurs

	// nonceSigned means the slot's nonce has been spent on a partial
	// signature. An attempt to use it again fails.
	nonceSigned
)

// Session holds the state of one aggregate signing session: the ordered,
// immutable cosigner key list, the per-slot nonce lifecycle, our secret
// nonces, and the running sum of all contributed public nonces.
//
// The combined nonce sum equals the sum of the public nonces of every slot
// that has left the unknown state, except that Combine may negate it in
// place once all signing is complete. No nonce must be generated on a
// session after Combine has been called on it.
//
// A Session is not safe for concurrent use. Independent sessions may run in
// parallel.
type Session struct {
	pubKeys   []secp256k1.PublicKey
	states    []nonceState
	secNonces []secp256k1.ModNScalar
	nonceSum  secp256k1.JacobianPoint
	rng       *rfc6979.Generator
}

// NewSession creates a signing session for the given ordered cosigner key
// list. The keys are copied; the caller keeps ownership of the slice. The
// 32-byte seed drives the session's deterministic nonce generator and must
// be uniformly random or derived safely, for example with DeriveSeed.
func NewSession(pubKeys []*secp256k1.PublicKey, seed *[SeedSize]byte) (*Session, error) {
	if len(pubKeys) == 0 {
		return nil, fmt.Errorf("at least one cosigner public key is required")
	}
	if seed == nil {
		return nil, fmt.Errorf("nonce generation seed is required")
	}

	session := &Session{
		pubKeys:   make([]secp256k1.PublicKey, len(pubKeys)),
		states:    make([]nonceState, len(pubKeys)),
		secNonces: make([]secp256k1.ModNScalar, len(pubKeys)),
		rng:       rfc6979.New(seed[:]),
	}
	for i, pubKey := range pubKeys {
		if pubKey == nil {
			session.Destroy()
			return nil, fmt.Errorf("public key at position [%d] is nil", i)
		}
		session.pubKeys[i] = *pubKey
	}

	return session, nil
}

// GenerateNonce generates the nonce for the cosigner slot at the given
// index, adds the public nonce into the session's combined nonce sum, and
// records the secret nonce for the later PartialSign call. The slot must not
// have a nonce recorded yet.
func (s *Session) GenerateNonce(index int) error {
	if index < 0 || index >= len(s.states) {
		return fmt.Errorf("cosigner index [%d] is out of range", index)
	}
	if s.states[index] != nonceUnknown {
		return fmt.Errorf("nonce for cosigner [%d] already recorded", index)
	}

	var pubNonce secp256k1.JacobianPoint
	generateNonce(s.rng, &s.secNonces[index], &pubNonce)

	var sum secp256k1.JacobianPoint
	secp256k1.AddNonConst(&s.nonceSum, &pubNonce, &sum)
	s.nonceSum.Set(&sum)

	s.states[index] = nonceOurs
	return nil
}

// PartialSign produces this cosigner's scalar share
//
//	sᵢ = skᵢ·eᵢ + kᵢ  (mod n)
//
// over the 32-byte message hash with the 32-byte big endian secret key. The
// slot at the given index must hold our unspent nonce and every other slot
// must have a nonce recorded, so that the combined nonce sum is final. The
// slot transitions to the signed state and its nonce can never be used
// again.
//
// When the combined nonce sum has a Y coordinate that is not a quadratic
// residue, the secret nonce sign is flipped before signing. Every cosigner
// makes the same adjustment independently and Combine negates the combined
// nonce itself to match.
func (s *Session) PartialSign(index int, msgHash, secKey []byte) (*PartialSignature, error) {
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
	if index < 0 || index >= len(s.states) {
		return nil, fmt.Errorf("cosigner index [%d] is out of range", index)
	}
	for i, state := range s.states {
		if state == nonceUnknown {
			return nil, fmt.Errorf(
				"cosigner [%d] has not contributed a nonce yet", i,
			)
		}
	}
	if s.states[index] != nonceOurs {
		return nil, fmt.Errorf(
			"no unspent nonce held for cosigner [%d]", index,
		)
	}

	var sum secp256k1.JacobianPoint
	sum.Set(&s.nonceSum)
	sum.ToAffine()
	sum.X.Normalize()

	prehash := computePrehash(s.pubKeys, &sum.X, msgHash)
	e, err := indexedSighash(prehash[:], index)
	if err != nil {
		return nil, err
	}

	var sec secp256k1.ModNScalar
	if overflow := sec.SetByteSlice(secKey); overflow {
		sec.Zero()
		return nil, fmt.Errorf("secret key is not a canonical scalar")
	}

	// The sign flip comes after every step that can fail, so a failed call
	// leaves the stored secret nonce untouched. Negating the nonce sum does
	// not change its X coordinate, so the challenge above is unaffected.
	if !hasQuadYVar(&s.nonceSum) {
		s.secNonces[index].Negate()
	}

	var partial PartialSignature
	partial.s.Mul2(&sec, e).Add(&s.secNonces[index])
	sec.Zero()

	s.states[index] = nonceSigned
	return &partial, nil
}

// Combine sums the given partial signatures into the final 64-byte
// signature. Exactly one partial per cosigner is required; the order does
// not matter because scalar addition commutes.
//
// When the combined nonce sum has a Y coordinate that is not a quadratic
// residue it is negated in place here; the cosigners already absorbed the
// matching sign flip into their secret nonces during PartialSign.
func (s *Session) Combine(partials []*PartialSignature) (*Signature, error) {
	if len(partials) != len(s.pubKeys) {
		return nil, fmt.Errorf(
			"unexpected number of partial signatures: [%d] instead of [%d]",
			len(partials),
			len(s.pubKeys),
		)
	}

	var sum secp256k1.ModNScalar
	for i, partial := range partials {
		if partial == nil {
			return nil, fmt.Errorf(
				"partial signature at position [%d] is nil", i,
			)
		}
		sum.Add(&partial.s)
	}

	if !hasQuadYVar(&s.nonceSum) {
		negateYVar(&s.nonceSum)
	}

	var final secp256k1.JacobianPoint
	final.Set(&s.nonceSum)
	final.ToAffine()
	final.X.Normalize()

	return NewSignature(&sum, &final.X), nil
}

// Destroy wipes all secret material held by the session: secret nonces, the
// nonce generator state, and the cosigner key copies. The session must not
// be used afterwards.
func (s *Session) Destroy() {
	for i := range s.secNonces {
		s.secNonces[i].Zero()
	}
	for i := range s.pubKeys {
		s.pubKeys[i] = secp256k1.PublicKey{}
	}
	for i := range s.states {
		s.states[i] = nonceUnknown
	}
	s.nonceSum = secp256k1.JacobianPoint{}
	if s.rng != nil {
		s.rng.Wipe()
		s.rng = nil
	}
	s.pubKeys = nil
	s.states = nil
	s.secNonces = nil
}
