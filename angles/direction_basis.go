package angles

import (
	"math"

	"github.com/notargets/gorad/utils"
)

// singleBandFactor is sqrt(2/3): with a single latitudinal band spanning
// the whole sphere, the solid-angle average of the horizontal projection
// is smaller than sin(zetav) at the band center by exactly this factor.
// Closed form, not tunable.
const singleBandFactor = 0.816496580927726

// DirectionBasis holds the unit propagation-direction 4-vector
// (1, nx, ny, nz) of every angular bin center, expressed in the local
// orthonormal frame
type DirectionBasis struct {
	Grid *AngularGrid
	nh   *utils.Arena[float64] // (4, NAng)
}

func NewDirectionBasis(ag *AngularGrid) (db *DirectionBasis) {
	db = &DirectionBasis{
		Grid: ag,
		nh:   utils.NewArena[float64](4, ag.NAng),
	}
	for l := ag.ZS - ag.NGhost; l <= ag.ZE+ag.NGhost; l++ {
		for m := ag.PS - ag.NGhost; m <= ag.PE+ag.NGhost; m++ {
			var (
				lm = ag.AngleInd(l, m)
				sz = math.Sin(ag.Zetav[l])
			)
			nx := sz * math.Cos(ag.Psiv[m])
			ny := sz * math.Sin(ag.Psiv[m])
			if ag.NZeta == 1 {
				nx *= singleBandFactor
				ny *= singleBandFactor
			}
			db.nh.Set(1.0, 0, lm)
			db.nh.Set(nx, 1, lm)
			db.nh.Set(ny, 2, lm)
			db.nh.Set(math.Cos(ag.Zetav[l]), 3, lm)
		}
	}
	return
}

// At returns component comp (0..3) of the direction vector of linear bin lm
func (db *DirectionBasis) At(comp, lm int) float64 {
	return db.nh.At(comp, lm)
}

// Direction returns the full 4-component direction vector of linear bin lm
func (db *DirectionBasis) Direction(lm int) (nh [4]float64) {
	for n := 0; n < 4; n++ {
		nh[n] = db.nh.At(n, lm)
	}
	return
}
