// Package rfc6979 implements the deterministic random bit generator from
// [RFC6979] section 3.2, instantiated with HMAC-SHA256.
//
// The generator is the streaming form used for nonce generation: a single
// instance seeded once produces an arbitrarily long byte stream across
// repeated Generate calls, with the generator re-keying itself between
// calls as the RFC prescribes for rejected candidates. Two calls of 32
// bytes therefore do not produce the same stream as one call of 64 bytes;
// existing signers depend on the exact call-boundary behavior.
//
// [RFC6979]
//
//	Pornin, T., "Deterministic Usage of the Digital Signature Algorithm
//	(DSA) and Elliptic Curve Digital Signature Algorithm (ECDSA)",
//	RFC 6979, DOI 10.17487/RFC6979, August 2013,
//	<https://doi.org/10.17487/RFC6979>.
package rfc6979

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Generator is a deterministic HMAC-SHA256 byte stream generator. It holds
// secret state and must be wiped with Wipe when no longer needed. A
// Generator is not safe for concurrent use.
type Generator struct {
	v     [sha256.Size]byte
	k     [sha256.Size]byte
	retry bool
}

// New creates a generator seeded with the given secret seed, following the
// K/V initialization of [RFC6979] section 3.2 steps b through f.
func New(seed []byte) *Generator {
	g := &Generator{}

	// V = 0x01 repeated, K = 0x00 repeated.
	for i := range g.v {
		g.v[i] = 0x01
	}

	// K = HMAC_K(V ‖ 0x00 ‖ seed), V = HMAC_K(V).
	g.rekey(seed, 0x00)
	// K = HMAC_K(V ‖ 0x01 ‖ seed), V = HMAC_K(V).
	g.rekey(seed, 0x01)

	return g
}

// Generate fills out with the next bytes of the stream. Between calls the
// generator performs the re-key step of [RFC6979] section 3.2 step h.3, so
// every call starts a fresh candidate.
func (g *Generator) Generate(out []byte) {
	if g.retry {
		g.rekey(nil, 0x00)
	}

	for len(out) > 0 {
		g.updateV()
		n := copy(out, g.v[:])
		out = out[n:]
	}

	g.retry = true
}

// Wipe clears the generator's secret state. The generator must not be used
// afterwards.
func (g *Generator) Wipe() {
	for i := range g.v {
		g.v[i] = 0
	}
	for i := range g.k {
		g.k[i] = 0
	}
	g.retry = false
}

// rekey sets K = HMAC_K(V ‖ sep ‖ data) followed by V = HMAC_K(V). A nil
// data contributes nothing after the separator byte.
func (g *Generator) rekey(data []byte, sep byte) {
	mac := hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	mac.Write([]byte{sep})
	mac.Write(data)
	mac.Sum(g.k[:0])
	g.updateV()
}

// updateV sets V = HMAC_K(V).
func (g *Generator) updateV() {
	mac := hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	mac.Sum(g.v[:0])
}
