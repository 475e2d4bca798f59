// Package mesh holds the minimal mesh block geometry the remap
// construction needs: uniform cell-center coordinates with ghost zones,
// index bounds and the per-face boundary kinds.
package mesh

import (
	"fmt"

	"github.com/notargets/gorad/utils"
)

type Block struct {
	Nx1, Nx2, Nx3 int // interior cell counts
	NGhost        int // spatial ghost width

	// First/last interior cell index per axis
	IS, IE, JS, JE, KS, KE int
	// Transverse sweep bounds including ghost zones; collapsed axes
	// (single cell) carry no ghosts
	IL, IU, JL, JU, KL, KU int

	X1v, X2v, X3v []float64 // cell centers including ghost zones

	x3Min, x3Max float64

	BCs [utils.NumFaces]utils.BCType
}

func NewBlock(nx1, nx2, nx3, nghost int,
	x1min, x1max, x2min, x2max, x3min, x3max float64,
	bcs [utils.NumFaces]utils.BCType) (blk *Block, err error) {
	if nx1 < 1 || nx2 < 1 || nx3 < 1 {
		err = fmt.Errorf("mesh block needs >= 1 cell per axis: %d %d %d", nx1, nx2, nx3)
		return
	}
	if nghost < 1 {
		err = fmt.Errorf("spatial ghost width must be >= 1, got %d", nghost)
		return
	}
	if x1max <= x1min || x2max <= x2min || x3max <= x3min {
		err = fmt.Errorf("inverted mesh extents")
		return
	}
	for f := utils.InnerX1; f < utils.NumFaces; f++ {
		if bcs[f] == utils.BCPolar && f.Axis() != 2 {
			err = fmt.Errorf("polar boundary on non-latitudinal face %v", f)
			return
		}
	}
	blk = &Block{
		Nx1: nx1, Nx2: nx2, Nx3: nx3,
		NGhost: nghost,
		IS:     nghost, IE: nghost + nx1 - 1,
		JS: nghost, JE: nghost + nx2 - 1,
		KS: nghost, KE: nghost + nx3 - 1,
		x3Min: x3min, x3Max: x3max,
		BCs:   bcs,
	}
	blk.IL, blk.IU = blk.IS-nghost, blk.IE+nghost
	blk.JL, blk.JU = blk.JS-nghost, blk.JE+nghost
	blk.KL, blk.KU = blk.KS-nghost, blk.KE+nghost
	if blk.JS == blk.JE {
		blk.JL, blk.JU = blk.JS, blk.JE
	}
	if blk.KS == blk.KE {
		blk.KL, blk.KU = blk.KS, blk.KE
	}
	blk.X1v = centers(nx1, nghost, x1min, x1max)
	blk.X2v = centers(nx2, nghost, x2min, x2max)
	blk.X3v = centers(nx3, nghost, x3min, x3max)
	return
}

// centers lays out uniform cell centers; ghost centers extrapolate the
// uniform spacing beyond the domain
func centers(n, nghost int, min, max float64) (xv []float64) {
	var (
		dx = (max - min) / float64(n)
	)
	xv = make([]float64, n+2*nghost)
	for i := range xv {
		xv[i] = min + (float64(i-nghost)+0.5)*dx
	}
	return
}

// NCells1 returns the total cell count along x1 including ghosts
func (blk *Block) NCells1() int { return len(blk.X1v) }
func (blk *Block) NCells2() int { return len(blk.X2v) }
func (blk *Block) NCells3() int { return len(blk.X3v) }

// X3Reflected returns the azimuthal coordinate point-reflected through
// the pole: shifted by half the x3 extent and wrapped back into range.
// Used to place the active point of a polar ghost pairing.
func (blk *Block) X3Reflected(x3 float64) (x3r float64) {
	var (
		span = blk.x3Max - blk.x3Min
	)
	x3r = x3 + 0.5*span
	if x3r >= blk.x3Max {
		x3r -= span
	}
	return
}
