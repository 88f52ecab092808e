package aggsig

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// hasQuadYVar reports whether the Y coordinate of the given point is a
// quadratic residue modulo the field prime.
//
// For a point in Jacobian coordinates the affine Y coordinate is Y/Z³.
// Squares form a multiplicative subgroup of the field, so Y/Z³ is a residue
// exactly when Y·Z is, which avoids the field inversion of a full affine
// conversion.
//
// The point at infinity has no Y coordinate and is never a residue.
//
// This function is not constant time; it must only ever see public values.
func hasQuadYVar(p *secp256k1.JacobianPoint) bool {
	if (p.X.IsZero() && p.Y.IsZero()) || p.Z.IsZero() {
		return false
	}

	var y, z, yz, root secp256k1.FieldVal
	y.Set(&p.Y).Normalize()
	z.Set(&p.Z).Normalize()
	yz.Mul2(&y, &z).Normalize()
	return root.SquareRootVal(&yz)
}

// negateYVar negates the given point in place.
func negateYVar(p *secp256k1.JacobianPoint) {
	p.Y.Normalize().Negate(1).Normalize()
}

// setXQuadVar recovers the Y coordinate of the curve point with the given
// normalized X coordinate, choosing the Y that is a quadratic residue modulo
// the field prime. The second return value is false when no curve point has
// the given X coordinate.
func setXQuadVar(x *secp256k1.FieldVal) (*secp256k1.FieldVal, bool) {
	// y² = x³ + 7
	var rhs, y secp256k1.FieldVal
	rhs.SquareVal(x).Mul(x).AddInt(7).Normalize()
	if !y.SquareRootVal(&rhs) {
		return nil, false
	}

	// The square root y = rhs^((p+1)/4) is itself a square because the
	// exponent is even, so no sign adjustment is needed here.
	y.Normalize()
	return &y, true
}
