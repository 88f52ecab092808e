// Package aggsig implements single-party and multi-party aggregate
// Schnorr-style signatures over the secp256k1 elliptic curve.
//
// N cosigners collaboratively produce a single 64-byte signature that
// verifies against the ordered list of their N public keys and a 32-byte
// message hash. Each cosigner contributes a public nonce, the nonces are
// summed into a combined nonce R, and each cosigner then produces a 32-byte
// partial signature bound to its own index in the cosigner list. Summing the
// partials yields the final signature s ‖ R.x. Verification recovers
// s·G − Σ eᵢ·Pᵢ with a batched multi-scalar multiplication and compares the
// result against R.
//
// The sign of R's Y coordinate is never transmitted. Instead, every produced
// signature commits to the unique Y that is a quadratic residue modulo the
// field prime: nonce generation negates secret nonces as needed, partial
// signing and combining split the matching adjustment of the combined nonce
// between them, and verification rejects any candidate point whose Y is not
// a residue.
//
// A Session tracks the per-cosigner nonce lifecycle and refuses to reuse a
// nonce once it has been spent on a partial signature. Sessions are not safe
// for concurrent use; independent sessions may run in parallel. Secret
// nonces, secret keys, and generator state are wiped on every exit path and
// on Session.Destroy.
//
// The signature scheme predates [BIP0340] and is not compatible with it:
// challenges here are plain SHA-256 hashes binding the full cosigner set and
// the signer index rather than tagged hashes over an aggregated key.
//
// [RFC6979]
//
//	Pornin, T., "Deterministic Usage of the Digital Signature Algorithm
//	(DSA) and Elliptic Curve Digital Signature Algorithm (ECDSA)",
//	RFC 6979, DOI 10.17487/RFC6979, August 2013,
//	<https://doi.org/10.17487/RFC6979>.
//
// [SEC1]
//
//	Certicom Research, "SEC 1: Elliptic Curve Cryptography", Version 2.0,
//	May 2009, <https://www.secg.org/sec1-v2.pdf>.
//
// [BIP0340]
//
//	Wuille, P., Nick, J., and Ruffing, T, "Schnorr Signatures for
//	secp256k1", 19 January 2020,
//	<https://github.com/bitcoin/bips/blob/master/bip-0340.mediawiki>.
package aggsig
