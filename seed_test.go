package aggsig

import (
	"testing"

	"threshold.network/aggsig/internal/testutils"
)

func TestDeriveSeed(t *testing.T) {
	secret := repeat32(0x42)

	seed, err := DeriveSeed(secret, nil, "signing session 1")
	if err != nil {
		t.Fatalf("unexpected derivation error: [%v]", err)
	}

	// Derivation is deterministic.
	again, err := DeriveSeed(secret, nil, "signing session 1")
	if err != nil {
		t.Fatalf("unexpected derivation error: [%v]", err)
	}
	testutils.AssertBytesEqual(t, seed[:], again[:])

	// Different contexts, salts, and secrets separate the seeds.
	otherContext, err := DeriveSeed(secret, nil, "signing session 2")
	if err != nil {
		t.Fatalf("unexpected derivation error: [%v]", err)
	}
	testutils.AssertBytesNotEqual(t, seed[:], otherContext[:])

	salted, err := DeriveSeed(secret, []byte{0x01}, "signing session 1")
	if err != nil {
		t.Fatalf("unexpected derivation error: [%v]", err)
	}
	testutils.AssertBytesNotEqual(t, seed[:], salted[:])

	otherSecret, err := DeriveSeed(repeat32(0x43), nil, "signing session 1")
	if err != nil {
		t.Fatalf("unexpected derivation error: [%v]", err)
	}
	testutils.AssertBytesNotEqual(t, seed[:], otherSecret[:])
}

func TestDeriveSeed_RequiresSecret(t *testing.T) {
	_, err := DeriveSeed(nil, nil, "signing session 1")
	if err == nil {
		t.Fatalf("expected a non-nil error")
	}
	testutils.AssertStringsEqual(
		t,
		"derivation error",
		"seed derivation secret is required",
		err.Error(),
	)
}
