// Package tetrad supplies local orthonormal frames at mesh points and
// the frame-to-frame direction transform used when a boundary pairs a
// ghost point with an active point.
package tetrad

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gorad/utils"
)

// Coordinates produces the local tetrad at an arbitrary spatial point.
// The contravariant basis e is indexed At(p, n) with p the frame index
// and n the coordinate index; the covariant basis eCov is indexed
// At(n, p) with n the frame index. They satisfy mutual orthonormality
// under the local metric signature. The connection coefficients omega
// (4x4x4) are part of the interface contract but unused by the remap
// construction.
type Coordinates interface {
	Tetrad(x1, x2, x3 float64) (e, eCov *mat.Dense, omega *utils.Arena[float64])
}

// Minkowski is flat space in Cartesian-like coordinates: the tetrad is
// the identity up to the metric signature on the time row.
type Minkowski struct{}

func (Minkowski) Tetrad(x1, x2, x3 float64) (e, eCov *mat.Dense, omega *utils.Arena[float64]) {
	e = mat.NewDense(4, 4, nil)
	eCov = mat.NewDense(4, 4, nil)
	for n := 0; n < 4; n++ {
		e.Set(n, n, 1.0)
		eCov.Set(n, n, 1.0)
	}
	eCov.Set(0, 0, -1.0) // index lowering with signature (-,+,+,+)
	omega = utils.NewArena[float64](4, 4, 4)
	return
}

// SphericalPolar is flat space in spherical coordinates (r, theta, phi),
// metric diag(-1, 1, r^2, r^2 sin^2 theta). The tetrad varies from point
// to point, so reflected directions generally fall between grid bins.
type SphericalPolar struct{}

func (SphericalPolar) Tetrad(x1, x2, x3 float64) (e, eCov *mat.Dense, omega *utils.Arena[float64]) {
	var (
		r  = x1
		st = sinTheta(x2)
	)
	e = mat.NewDense(4, 4, nil)
	eCov = mat.NewDense(4, 4, nil)
	e.Set(0, 0, 1.0)
	e.Set(1, 1, 1.0)
	e.Set(2, 2, 1.0/r)
	e.Set(3, 3, 1.0/(r*st))
	eCov.Set(0, 0, -1.0)
	eCov.Set(1, 1, 1.0)
	eCov.Set(2, 2, r)
	eCov.Set(3, 3, r*st)
	// TODO populate the rotation coefficients when a consumer of the
	// connection terms (angular flux transport) lands in this module
	omega = utils.NewArena[float64](4, 4, 4)
	return
}
