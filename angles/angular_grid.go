// Package angles builds the discrete-ordinate angular grid: polar bins
// equally spaced in cosine, azimuthal bins equally spaced in angle, with
// ghost margins continuing the grid through the poles and around the
// periodic seam.
package angles

import (
	"fmt"
	"math"
)

// AngularGrid holds the face coordinates, solid-angle-weighted bin
// centers and bin widths of the (zeta, psi) direction discretization,
// including NGhost ghost bins on each side of both axes.
type AngularGrid struct {
	NZeta, NPsi int // interior bin counts
	NGhost      int // angular ghost margin width
	ZS, ZE      int // first/last interior polar bin index
	PS, PE      int // first/last interior azimuthal bin index
	NAng        int // total bins including ghost margins

	Zetaf  []float64 // polar face angles, len NZeta+2*NGhost+1
	Zetav  []float64 // polar bin centers, len NZeta+2*NGhost
	Dzetaf []float64 // polar bin widths
	Psif   []float64 // azimuthal face angles, len NPsi+2*NGhost+1
	Psiv   []float64 // azimuthal bin centers
	Dpsif  []float64 // azimuthal bin widths
}

func NewAngularGrid(nzeta, npsi, nghost int) (ag *AngularGrid, err error) {
	if nzeta < 1 || npsi < 1 {
		err = fmt.Errorf("degenerate angular grid: nzeta = %d, npsi = %d", nzeta, npsi)
		return
	}
	if nghost < 1 {
		err = fmt.Errorf("angular ghost margin must be >= 1, got %d", nghost)
		return
	}
	var (
		G  = nghost
		zs = G
		ze = nzeta + G - 1
		ps = G
		pe = npsi + G - 1
	)
	ag = &AngularGrid{
		NZeta:  nzeta,
		NPsi:   npsi,
		NGhost: G,
		ZS:     zs,
		ZE:     ze,
		PS:     ps,
		PE:     pe,
		NAng:   (nzeta + 2*G) * (npsi + 2*G),
		Zetaf:  make([]float64, nzeta+2*G+1),
		Zetav:  make([]float64, nzeta+2*G),
		Dzetaf: make([]float64, nzeta+2*G),
		Psif:   make([]float64, npsi+2*G+1),
		Psiv:   make([]float64, npsi+2*G),
		Dpsif:  make([]float64, npsi+2*G),
	}

	// Polar faces, equally spaced in cosine; poles set exactly to avoid
	// round-off at the singular points
	dczeta := -2.0 / float64(nzeta)
	ag.Zetaf[zs] = 0.0
	ag.Zetaf[ze+1] = math.Pi
	for l := zs + 1; l <= (nzeta-1)/2+G; l++ {
		czeta := 1.0 + float64(l-G)*dczeta
		zeta := math.Acos(czeta)
		ag.Zetaf[l] = zeta                    // northern active faces
		ag.Zetaf[ze+G+1-l] = math.Pi - zeta   // southern active faces
	}
	if nzeta%2 == 0 {
		ag.Zetaf[nzeta/2+G] = math.Pi / 2.0 // equator exact if present
	}
	// Ghost faces continue the grid through each pole by point reflection
	for l := zs - G; l <= zs-1; l++ {
		ag.Zetaf[l] = -ag.Zetaf[2*G-l]
		ag.Zetaf[ze+G+1-l] = 2.0*math.Pi - ag.Zetaf[nzeta+l]
	}
	// Bin centers are the solid-angle centroids, not the midpoints:
	// integrating z*sin(z) over the bin gives (z cos z - sin z) at the faces
	for l := zs - G; l <= ze+G; l++ {
		ag.Zetav[l] = (ag.Zetaf[l+1]*math.Cos(ag.Zetaf[l+1]) - math.Sin(ag.Zetaf[l+1]) -
			ag.Zetaf[l]*math.Cos(ag.Zetaf[l]) + math.Sin(ag.Zetaf[l])) /
			(math.Cos(ag.Zetaf[l+1]) - math.Cos(ag.Zetaf[l]))
		ag.Dzetaf[l] = ag.Zetaf[l+1] - ag.Zetaf[l]
	}

	// Azimuthal faces, equally spaced over one full turn
	dpsi := 2.0 * math.Pi / float64(npsi)
	ag.Psif[ps] = 0.0
	ag.Psif[pe+1] = 2.0 * math.Pi
	for m := ps + 1; m <= pe; m++ {
		ag.Psif[m] = float64(m-G) * dpsi
	}
	// Ghost faces wrap by a full turn rather than reflecting
	for m := ps - G; m <= ps-1; m++ {
		ag.Psif[m] = ag.Psif[npsi+m] - 2.0*math.Pi
		ag.Psif[pe+G+1-m] = ag.Psif[2*G-m] + 2.0*math.Pi
	}
	for m := ps - G; m <= pe+G; m++ {
		ag.Psiv[m] = 0.5 * (ag.Psif[m] + ag.Psif[m+1])
		ag.Dpsif[m] = ag.Psif[m+1] - ag.Psif[m]
	}
	return
}

// AngleInd folds a (polar, azimuthal) bin index pair into the linear bin
// index used by intensity storage and the remap tables
func (ag *AngularGrid) AngleInd(l, m int) int {
	return l*(ag.NPsi+2*ag.NGhost) + m
}

// NZetaTotal returns the polar bin count including ghost bins
func (ag *AngularGrid) NZetaTotal() int {
	return ag.NZeta + 2*ag.NGhost
}

// NPsiTotal returns the azimuthal bin count including ghost bins
func (ag *AngularGrid) NPsiTotal() int {
	return ag.NPsi + 2*ag.NGhost
}

// Validate performs consistency checks on the constructed grid
func (ag *AngularGrid) Validate() error {
	for l := 0; l < len(ag.Zetaf)-1; l++ {
		if ag.Zetaf[l+1] <= ag.Zetaf[l] {
			return fmt.Errorf("zetaf not strictly increasing at face %d: %g <= %g",
				l, ag.Zetaf[l+1], ag.Zetaf[l])
		}
	}
	for m := 0; m < len(ag.Psif)-1; m++ {
		if ag.Psif[m+1] <= ag.Psif[m] {
			return fmt.Errorf("psif not strictly increasing at face %d: %g <= %g",
				m, ag.Psif[m+1], ag.Psif[m])
		}
	}
	for l, d := range ag.Dzetaf {
		if d <= 0 {
			return fmt.Errorf("dzetaf[%d] = %g not positive", l, d)
		}
	}
	for m, d := range ag.Dpsif {
		if d <= 0 {
			return fmt.Errorf("dpsif[%d] = %g not positive", m, d)
		}
	}
	return nil
}
