package aggsig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Scratch is a preallocated arena the multi-scalar multiplication batches
// intermediate points through. The caller owns it and may reuse it across
// verifications; it must not be shared between concurrent verifications.
type Scratch struct {
	points []secp256k1.JacobianPoint
}

// defaultScratchPoints sizes the throwaway arenas allocated by the
// convenience verification entry points.
const defaultScratchPoints = 1024

// NewScratch creates a scratch arena with capacity for the given number of
// points. Capacities below one are raised to one; a larger arena processes
// more multiplication terms per batch.
func NewScratch(nPoints int) *Scratch {
	if nPoints < 1 {
		nPoints = 1
	}
	return &Scratch{points: make([]secp256k1.JacobianPoint, nPoints)}
}

// termFunc supplies the i-th scalar/point pair of a multi-scalar
// multiplication. It is invoked once for every index in an unspecified
// order; returning an error aborts the whole multiplication.
type termFunc func(i int) (*secp256k1.ModNScalar, *secp256k1.JacobianPoint, error)

// multiScalarMult computes
//
//	result = sG·G + Σ kᵢ·Pᵢ for i in [0, n)
//
// streaming the (kᵢ, Pᵢ) pairs from the term callback so the caller never
// materializes the full pair list. Per-term products are staged in the
// scratch arena and folded into the accumulator batch by batch.
func multiScalarMult(
	scratch *Scratch,
	sG *secp256k1.ModNScalar,
	term termFunc,
	n int,
	result *secp256k1.JacobianPoint,
) error {
	if scratch == nil {
		return fmt.Errorf("scratch space is required")
	}
	if n < 0 {
		return fmt.Errorf("negative number of multiplication terms [%d]", n)
	}

	var acc secp256k1.JacobianPoint
	if sG != nil && !sG.IsZero() {
		secp256k1.ScalarBaseMultNonConst(sG, &acc)
	}

	for done := 0; done < n; {
		batch := min(len(scratch.points), n-done)
		for j := 0; j < batch; j++ {
			k, point, err := term(done + j)
			if err != nil {
				return err
			}
			secp256k1.ScalarMultNonConst(k, point, &scratch.points[j])
		}
		for j := 0; j < batch; j++ {
			var sum secp256k1.JacobianPoint
			secp256k1.AddNonConst(&acc, &scratch.points[j], &sum)
			acc.Set(&sum)
		}
		done += batch
	}

	result.Set(&acc)
	return nil
}
