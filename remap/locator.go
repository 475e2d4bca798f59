// Package remap builds and serves the per-ghost-cell angular remap
// tables used by reflecting and polar radiation boundaries: for every
// source direction bin at a ghost point, the four destination bins at
// the paired active point and their bilinear weights.
package remap

import (
	"fmt"

	"github.com/notargets/gorad/angles"
)

// Bracket is the 2x2 bin-center neighborhood enclosing a destination
// direction: (L-1, L) x (M-1, M) with fractional position inside the
// bracketing cell on each axis
type Bracket struct {
	L, M         int
	FracL, FracM float64
}

// Locator performs the ordered search over the non-uniform bin-center
// arrays, ghost margins included
type Locator struct {
	Grid *angles.AngularGrid
}

// fracTol absorbs round-off at bracket edges; anything further out is a
// genuine bracketing failure
const fracTol = 1.0e-12

// scanTol biases the ordered scan so a destination angle within
// round-off of a bin center brackets upward, where its fraction is zero.
// Bracketing downward from one ulp below a center would put the
// fraction far above 1 near the poles, where center spacing exceeds the
// face width.
const scanTol = 1.0e-12

// Locate finds the bracketing bin centers for a destination direction.
// A direction that escapes the searchable range means the angular ghost
// margin is too narrow for this geometry, which is a configuration
// error, not a numeric one.
func (lc *Locator) Locate(zeta, psi float64) (br Bracket, err error) {
	var (
		ag = lc.Grid
		l  = ag.ZS - 1
		m  = ag.PS - 1
	)
	for ; l <= ag.ZE+1; l++ {
		if ag.Zetav[l] > zeta+scanTol {
			break
		}
	}
	for ; m <= ag.PE+1; m++ {
		if ag.Psiv[m] > psi+scanTol {
			break
		}
	}
	if l-1 < 0 || l >= len(ag.Zetav) {
		err = fmt.Errorf(
			"zeta = %g not bracketed by bin centers: angular ghost margin %d too narrow",
			zeta, ag.NGhost)
		return
	}
	if m-1 < 0 || m >= len(ag.Psiv) {
		err = fmt.Errorf(
			"psi = %g not bracketed by bin centers: angular ghost margin %d too narrow",
			psi, ag.NGhost)
		return
	}
	fracL := (zeta - ag.Zetav[l-1]) / ag.Dzetaf[l-1]
	fracM := (psi - ag.Psiv[m-1]) / ag.Dpsif[m-1]
	if fracL < -fracTol || fracL > 1.0+fracTol {
		err = fmt.Errorf("zeta = %g: fractional position %g outside [0,1]", zeta, fracL)
		return
	}
	if fracM < -fracTol || fracM > 1.0+fracTol {
		err = fmt.Errorf("psi = %g: fractional position %g outside [0,1]", psi, fracM)
		return
	}
	br = Bracket{
		L: l, M: m,
		FracL: clamp01(fracL),
		FracM: clamp01(fracM),
	}
	return
}

func clamp01(f float64) float64 {
	switch {
	case f < 0.0:
		return 0.0
	case f > 1.0:
		return 1.0
	}
	return f
}

// Weights returns the four bilinear weights of the bracket, ordered
// (L-1,M-1), (L-1,M), (L,M-1), (L,M)
func (br Bracket) Weights() (w [4]float64) {
	w[0] = (1.0 - br.FracL) * (1.0 - br.FracM)
	w[1] = (1.0 - br.FracL) * br.FracM
	w[2] = br.FracL * (1.0 - br.FracM)
	w[3] = br.FracL * br.FracM
	return
}
