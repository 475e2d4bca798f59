package tetrad

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// cell centers never coincide with the axis on a valid mesh
func sinTheta(theta float64) (st float64) {
	st = math.Sin(theta)
	if st == 0 {
		panic("tetrad evaluated on the polar axis")
	}
	return
}

// ParityOp selects the boundary-specific sign flip applied to the
// coordinate-frame direction between the ghost and active contractions
type ParityOp uint8

const (
	// ReflectX1..ReflectX3 negate the single component normal to a
	// reflecting face
	ReflectX1 ParityOp = iota
	ReflectX2
	ReflectX3
	// PolarFlip negates both transverse components, combining the
	// latitudinal flip with the point inversion through the pole
	PolarFlip
)

// Apply flips the affected components of a coordinate-frame 4-vector
func (op ParityOp) Apply(n *[4]float64) {
	switch op {
	case ReflectX1:
		n[1] *= -1.0
	case ReflectX2:
		n[2] *= -1.0
	case ReflectX3:
		n[3] *= -1.0
	case PolarFlip:
		n[2] *= -1.0
		n[3] *= -1.0
	}
}

// ReflectForFace returns the parity operation for a reflecting wall on
// the given spatial axis (1, 2 or 3)
func ReflectForFace(axis int) ParityOp {
	switch axis {
	case 1:
		return ReflectX1
	case 2:
		return ReflectX2
	case 3:
		return ReflectX3
	}
	panic("no reflecting parity for axis")
}

// TransformDirection carries a bin-center direction from the ghost
// point's frame to the active point's frame:
// contract with the ghost contravariant tetrad into the coordinate
// frame, apply the parity flip, contract with the active covariant
// tetrad back into an orthonormal frame, then restore the sign
// convention of the homogeneous time component and recover spherical
// angles. The acos argument is clamped against round-off and a
// degenerate time component.
func TransformDirection(eGhost, eCovActive *mat.Dense, nhGhost [4]float64,
	op ParityOp) (zeta, psi float64) {
	var nCoord [4]float64
	for n := 0; n < 4; n++ {
		for p := 0; p < 4; p++ {
			nCoord[n] += eGhost.At(p, n) * nhGhost[p]
		}
	}
	op.Apply(&nCoord)
	var nhActive [4]float64
	for n := 0; n < 4; n++ {
		for p := 0; p < 4; p++ {
			nhActive[n] += eCovActive.At(n, p) * nCoord[p]
		}
	}
	nhActive[0] *= -1.0

	ratio := nhActive[3] / nhActive[0]
	switch {
	case math.IsNaN(ratio):
		ratio = 1.0 // zero direction; degenerate frame input
	case ratio > 1.0:
		ratio = 1.0
	case ratio < -1.0:
		ratio = -1.0
	}
	zeta = math.Acos(ratio)
	psi = math.Atan2(nhActive[2], nhActive[1])
	if psi < 0.0 {
		psi += 2.0 * math.Pi
	}
	return
}
