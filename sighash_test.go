package aggsig

import (
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"threshold.network/aggsig/internal/testutils"
)

// TestIndexedSighash_IndexEncoding pins the signer index encoding: the
// successive low 7-bit limbs of the index are hashed as single bytes, low
// limb first, and index 0 contributes no bytes at all. Signatures produced
// by existing deployments depend on this exact encoding.
func TestIndexedSighash_IndexEncoding(t *testing.T) {
	prehash := repeat32(0x5a)

	tests := map[string]struct {
		index  int
		prefix []byte
	}{
		"index 0":   {index: 0, prefix: nil},
		"index 1":   {index: 1, prefix: []byte{0x01}},
		"index 127": {index: 127, prefix: []byte{0x7f}},
		"index 128": {index: 128, prefix: []byte{0x00, 0x01}},
		"index 300": {index: 300, prefix: []byte{0x2c, 0x02}},
	}

	for testName, test := range tests {
		t.Run(testName, func(t *testing.T) {
			actual, err := indexedSighash(prehash, test.index)
			if err != nil {
				t.Fatalf("unexpected derivation error: [%v]", err)
			}

			digest := sha256.Sum256(append(test.prefix, prehash...))
			var expected secp256k1.ModNScalar
			if overflow := expected.SetBytes(&digest); overflow != 0 {
				t.Fatalf("test digest is not a canonical scalar")
			}

			testutils.AssertBoolsEqual(
				t,
				"challenge scalar equality",
				true,
				expected.Equals(actual),
			)
		})
	}
}

// TestIndexedSighash_ZeroIndexDigest asserts that the challenge for index 0
// is the plain hash of the prehash, with no prefix.
func TestIndexedSighash_ZeroIndexDigest(t *testing.T) {
	prehash := repeat32(0x0f)

	e, err := indexedSighash(prehash, 0)
	if err != nil {
		t.Fatalf("unexpected derivation error: [%v]", err)
	}

	digest := sha256.Sum256(prehash)
	var expected secp256k1.ModNScalar
	expected.SetBytes(&digest)

	testutils.AssertBoolsEqual(
		t,
		"challenge scalar equality",
		true,
		expected.Equals(e),
	)
}

func TestComputePrehash(t *testing.T) {
	secKeys := [][]byte{repeat32(0x11), repeat32(0x22)}
	pubKeys := createCosigners(t, secKeys...)
	msgHash := repeat32(0xbb)

	var nonceX secp256k1.FieldVal
	nonceX.SetByteSlice(repeat32(0x07))
	nonceX.Normalize()

	hasher := sha256.New()
	hasher.Write(pubKeys[0].SerializeCompressed())
	hasher.Write(pubKeys[1].SerializeCompressed())
	hasher.Write(repeat32(0x07))
	hasher.Write(msgHash)
	expected := hasher.Sum(nil)

	keys := []secp256k1.PublicKey{*pubKeys[0], *pubKeys[1]}
	actual := computePrehash(keys, &nonceX, msgHash)

	testutils.AssertBytesEqual(t, expected, actual[:])
}

// TestComputePrehash_KeyOrder asserts that the prehash binds the order of
// the cosigner key list.
func TestComputePrehash_KeyOrder(t *testing.T) {
	secKeys := [][]byte{repeat32(0x11), repeat32(0x22)}
	pubKeys := createCosigners(t, secKeys...)
	msgHash := repeat32(0xbb)

	var nonceX secp256k1.FieldVal
	nonceX.SetByteSlice(repeat32(0x07))
	nonceX.Normalize()

	straight := computePrehash(
		[]secp256k1.PublicKey{*pubKeys[0], *pubKeys[1]}, &nonceX, msgHash,
	)
	swapped := computePrehash(
		[]secp256k1.PublicKey{*pubKeys[1], *pubKeys[0]}, &nonceX, msgHash,
	)

	testutils.AssertBytesNotEqual(t, straight[:], swapped[:])
}

func TestSingleSighash(t *testing.T) {
	pubKeys := createCosigners(t, repeat32(0x11))
	msgHash := repeat32(0xbb)

	e, err := singleSighash(pubKeys[0], msgHash)
	if err != nil {
		t.Fatalf("unexpected derivation error: [%v]", err)
	}

	hasher := sha256.New()
	hasher.Write(pubKeys[0].SerializeCompressed())
	hasher.Write(msgHash)
	var digest [32]byte
	hasher.Sum(digest[:0])

	var expected secp256k1.ModNScalar
	expected.SetBytes(&digest)

	testutils.AssertBoolsEqual(
		t,
		"challenge scalar equality",
		true,
		expected.Equals(e),
	)
}
