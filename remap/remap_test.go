package remap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gorad/angles"
	"github.com/notargets/gorad/mesh"
	"github.com/notargets/gorad/tetrad"
	"github.com/notargets/gorad/utils"
)

const wtol = 1.0e-12

func newSetup(t *testing.T, nzeta, npsi, nghostAng int,
	bcs [utils.NumFaces]utils.BCType, coords tetrad.Coordinates,
	x2min, x2max, x3min, x3max float64) (b *Builder) {
	ag, err := angles.NewAngularGrid(nzeta, npsi, nghostAng)
	assert.NoError(t, err)
	blk, err := mesh.NewBlock(4, 4, 4, 2, 1, 2, x2min, x2max, x3min, x3max, bcs)
	assert.NoError(t, err)
	b = &Builder{
		Block:          blk,
		Grid:           ag,
		Basis:          angles.NewDirectionBasis(ag),
		Coords:         coords,
		ParallelDegree: 2,
	}
	return
}

func allReflect() (bcs [utils.NumFaces]utils.BCType) {
	for f := range bcs {
		bcs[f] = utils.BCReflect
	}
	return
}

// singleCorner returns the corner index carrying weight 1, or -1 when
// the entry is a genuine four-point interpolation
func singleCorner(e Entry) int {
	for c := 0; c < 4; c++ {
		if math.Abs(e.Wgt[c]-1.0) <= wtol {
			return c
		}
	}
	return -1
}

// interiorBinAt finds the interior bin whose center matches the given
// angles exactly
func interiorBinAt(ag *angles.AngularGrid, zeta, psi float64) int {
	for l := ag.ZS; l <= ag.ZE; l++ {
		for m := ag.PS; m <= ag.PE; m++ {
			if math.Abs(ag.Zetav[l]-zeta) < 1e-12 && math.Abs(ag.Psiv[m]-psi) < 1e-12 {
				return ag.AngleInd(l, m)
			}
		}
	}
	return -1
}

func wrap2Pi(psi float64) float64 {
	for psi < 0 {
		psi += 2 * math.Pi
	}
	for psi >= 2*math.Pi {
		psi -= 2 * math.Pi
	}
	return psi
}

func TestReflectIdentityExactHits(t *testing.T) {
	b := newSetup(t, 4, 4, 1, allReflect(), tetrad.Minkowski{}, -1, 1, -1, 1)
	bt, err := b.BuildAll()
	assert.NoError(t, err)
	assert.NoError(t, bt.Validate())

	var (
		ag  = b.Grid
		blk = b.Block
		tb  = bt.Reflect[utils.InnerX1]
	)
	assert.NotNil(t, tb)

	// With identity frames every reflected bin center lands exactly on
	// a bin center: weight 1 on a single corner
	for lm := 0; lm < ag.NAng; lm++ {
		e := tb.Lookup(0, blk.KS, blk.JS, lm)
		assert.True(t, singleCorner(e) >= 0, "bin %d not an exact hit", lm)
	}

	// Interior bins map to their psi-mirrored image at unchanged zeta
	for l := ag.ZS; l <= ag.ZE; l++ {
		for m := ag.PS; m <= ag.PE; m++ {
			var (
				lm   = ag.AngleInd(l, m)
				e    = tb.Lookup(0, blk.KS, blk.JS, lm)
				c    = singleCorner(e)
				want = interiorBinAt(ag, ag.Zetav[l], wrap2Pi(math.Pi-ag.Psiv[m]))
			)
			assert.True(t, c >= 0)
			assert.Equal(t, int32(want), e.Ind[c])
		}
	}
}

func TestReflectionInvolution(t *testing.T) {
	// Reflecting twice through the same wall returns every interior bin
	// to itself
	b := newSetup(t, 4, 4, 1, allReflect(), tetrad.Minkowski{}, -1, 1, -1, 1)
	bt, err := b.BuildAll()
	assert.NoError(t, err)

	var (
		ag  = b.Grid
		blk = b.Block
		tb  = bt.Reflect[utils.OuterX3]
	)
	assert.NotNil(t, tb)
	for l := ag.ZS; l <= ag.ZE; l++ {
		for m := ag.PS; m <= ag.PE; m++ {
			lm := ag.AngleInd(l, m)
			e := tb.Lookup(0, blk.JS+1, blk.IS+2, lm)
			c := singleCorner(e)
			assert.True(t, c >= 0)
			e2 := tb.Lookup(0, blk.JS+1, blk.IS+2, int(e.Ind[c]))
			c2 := singleCorner(e2)
			assert.True(t, c2 >= 0)
			assert.Equal(t, int32(lm), e2.Ind[c2])
		}
	}
}

func TestPolarIdentityExactHits(t *testing.T) {
	var bcs [utils.NumFaces]utils.BCType
	for f := range bcs {
		bcs[f] = utils.BCOutflow
	}
	bcs[utils.InnerX2] = utils.BCPolar
	bcs[utils.OuterX2] = utils.BCPolar
	b := newSetup(t, 4, 4, 1, bcs, tetrad.Minkowski{}, 0, math.Pi, 0, 2*math.Pi)
	bt, err := b.BuildAll()
	assert.NoError(t, err)
	assert.NoError(t, bt.Validate())

	var (
		ag  = b.Grid
		blk = b.Block
		tb  = bt.Polar[utils.InnerX2]
	)
	assert.NotNil(t, tb)
	assert.Nil(t, bt.Reflect[utils.InnerX2])

	// Polar transport flips both transverse components: zeta mirrors,
	// psi reverses
	for l := ag.ZS; l <= ag.ZE; l++ {
		for m := ag.PS; m <= ag.PE; m++ {
			var (
				lm   = ag.AngleInd(l, m)
				e    = tb.Lookup(0, blk.KS, blk.IS, lm)
				c    = singleCorner(e)
				want = interiorBinAt(ag, math.Pi-ag.Zetav[l], wrap2Pi(2*math.Pi-ag.Psiv[m]))
			)
			assert.True(t, c >= 0, "bin %d not an exact hit", lm)
			assert.Equal(t, int32(want), e.Ind[c])
		}
	}
}

func TestOuterX3GatedOnOwnFlag(t *testing.T) {
	// The south x3 table must key on outer-x3's own boundary kind, with
	// no cross-talk from outer-x2
	var bcs [utils.NumFaces]utils.BCType
	for f := range bcs {
		bcs[f] = utils.BCOutflow
	}
	bcs[utils.OuterX3] = utils.BCReflect
	b := newSetup(t, 4, 4, 1, bcs, tetrad.Minkowski{}, -1, 1, -1, 1)
	bt, err := b.BuildAll()
	assert.NoError(t, err)
	assert.NotNil(t, bt.Reflect[utils.OuterX3])
	assert.Nil(t, bt.Reflect[utils.OuterX2])

	for f := range bcs {
		bcs[f] = utils.BCOutflow
	}
	bcs[utils.OuterX2] = utils.BCReflect
	b = newSetup(t, 4, 4, 1, bcs, tetrad.Minkowski{}, -1, 1, -1, 1)
	bt, err = b.BuildAll()
	assert.NoError(t, err)
	assert.Nil(t, bt.Reflect[utils.OuterX3])
	assert.NotNil(t, bt.Reflect[utils.OuterX2])
}

func TestSphericalFramesBuild(t *testing.T) {
	// Curvilinear frames: reflected directions genuinely fall between
	// bin centers, polar transport still lands exactly
	var bcs [utils.NumFaces]utils.BCType
	for f := range bcs {
		bcs[f] = utils.BCOutflow
	}
	bcs[utils.OuterX1] = utils.BCReflect
	bcs[utils.InnerX2] = utils.BCPolar
	bcs[utils.OuterX2] = utils.BCPolar
	b := newSetup(t, 4, 4, 1, bcs, tetrad.SphericalPolar{}, 0, math.Pi, 0, 2*math.Pi)
	bt, err := b.BuildAll()
	assert.NoError(t, err)
	assert.NoError(t, bt.Validate())

	var (
		ag    = b.Grid
		blk   = b.Block
		tb    = bt.Reflect[utils.OuterX1]
		mixed int
	)
	for lm := 0; lm < ag.NAng; lm++ {
		e := tb.Lookup(0, blk.KS, blk.JS, lm)
		var sum float64
		for c := 0; c < 4; c++ {
			assert.True(t, e.Wgt[c] >= 0)
			sum += e.Wgt[c]
		}
		assert.InDelta(t, 1.0, sum, wtol)
		if singleCorner(e) < 0 {
			mixed++
		}
	}
	assert.True(t, mixed > 0, "expected genuine four-point interpolation in curved frames")
}

func TestParallelDeterminism(t *testing.T) {
	var bcs [utils.NumFaces]utils.BCType
	for f := range bcs {
		bcs[f] = utils.BCOutflow
	}
	bcs[utils.OuterX1] = utils.BCReflect
	b1 := newSetup(t, 4, 4, 1, bcs, tetrad.SphericalPolar{}, 0, math.Pi, 0, 2*math.Pi)
	b1.ParallelDegree = 1
	b4 := newSetup(t, 4, 4, 1, bcs, tetrad.SphericalPolar{}, 0, math.Pi, 0, 2*math.Pi)
	b4.ParallelDegree = 4

	bt1, err := b1.BuildAll()
	assert.NoError(t, err)
	bt4, err := b4.BuildAll()
	assert.NoError(t, err)

	var (
		t1 = bt1.Reflect[utils.OuterX1]
		t4 = bt4.Reflect[utils.OuterX1]
	)
	for d := 0; d < t1.NG; d++ {
		for i1 := 0; i1 < t1.N1; i1++ {
			for i2 := 0; i2 < t1.N2; i2++ {
				for lm := 0; lm < t1.NAng; lm++ {
					e1 := t1.Lookup(d, i1+t1.T1Off, i2+t1.T2Off, lm)
					e4 := t4.Lookup(d, i1+t4.T1Off, i2+t4.T2Off, lm)
					assert.Equal(t, e1, e4)
				}
			}
		}
	}
}

func TestRemapCellConsumption(t *testing.T) {
	b := newSetup(t, 4, 4, 1, allReflect(), tetrad.Minkowski{}, -1, 1, -1, 1)
	bt, err := b.BuildAll()
	assert.NoError(t, err)

	var (
		ag  = b.Grid
		blk = b.Block
		tb  = bt.Table(utils.InnerX1)
		src = make([]float64, ag.NAng)
		dst = make([]float64, ag.NAng)
	)
	// Isotropic intensity is preserved exactly: weights sum to 1
	for i := range src {
		src[i] = 2.5
	}
	tb.RemapCell(0, blk.KS, blk.JS, src, dst)
	for lm := range dst {
		assert.InDelta(t, 2.5, dst[lm], wtol)
	}

	// Exact-hit tables permute: ghost intensity equals the mirrored
	// source bin's intensity
	for i := range src {
		src[i] = float64(i) * 0.01
	}
	tb.RemapCell(0, blk.KS, blk.JS, src, dst)
	for l := ag.ZS; l <= ag.ZE; l++ {
		for m := ag.PS; m <= ag.PE; m++ {
			var (
				lm   = ag.AngleInd(l, m)
				e    = tb.Lookup(0, blk.KS, blk.JS, lm)
				c    = singleCorner(e)
			)
			assert.InDelta(t, src[e.Ind[c]], dst[lm], wtol)
		}
	}

	// Lookup through the owning table set serves the same entries
	e := bt.Lookup(utils.InnerX1, 0, blk.KS, blk.JS, 0)
	assert.Equal(t, tb.Lookup(0, blk.KS, blk.JS, 0), e)
	assert.Panics(t, func() {
		var none BoundaryTables
		none.Lookup(utils.InnerX1, 0, 0, 0, 0)
	})
}

func TestCouplingMatrixRowSums(t *testing.T) {
	b := newSetup(t, 4, 4, 1, allReflect(), tetrad.Minkowski{}, -1, 1, -1, 1)
	bt, err := b.BuildAll()
	assert.NoError(t, err)

	var (
		ag  = b.Grid
		blk = b.Block
		C   = bt.Reflect[utils.OuterX2].CouplingMatrix(1, blk.KS+1, blk.IS)
	)
	r, c := C.Dims()
	assert.Equal(t, ag.NAng, r)
	assert.Equal(t, ag.NAng, c)
	for i := 0; i < r; i++ {
		var sum float64
		for j := 0; j < c; j++ {
			sum += C.At(i, j)
		}
		assert.InDelta(t, 1.0, sum, wtol)
	}
}

func TestLocatorBracketFailures(t *testing.T) {
	ag, err := angles.NewAngularGrid(4, 4, 1)
	assert.NoError(t, err)
	lc := Locator{Grid: ag}

	// Below the extended center range: fatal, not clamped
	_, err = lc.Locate(-1.0, 0.5)
	assert.Error(t, err)

	// Inside the near-pole gap where the center spacing exceeds the
	// face width the fractional position leaves [0,1]: configuration
	// error, the angular ghost margin cannot bracket this direction
	_, err = lc.Locate(0.5, ag.Psiv[ag.PS])
	assert.Error(t, err)

	// A bin center locates onto itself with zero fractions
	br, err := lc.Locate(ag.Zetav[2], ag.Psiv[2])
	assert.NoError(t, err)
	assert.Equal(t, 3, br.L)
	assert.Equal(t, 3, br.M)
	assert.InDelta(t, 0.0, br.FracL, wtol)
	assert.InDelta(t, 0.0, br.FracM, wtol)
	w := br.Weights()
	assert.InDelta(t, 1.0, w[0], wtol)
	assert.InDelta(t, 0.0, w[1]+w[2]+w[3], wtol)
}

func TestStats(t *testing.T) {
	b := newSetup(t, 4, 4, 1, allReflect(), tetrad.Minkowski{}, -1, 1, -1, 1)
	bt, err := b.BuildAll()
	assert.NoError(t, err)
	stats := bt.Stats()
	assert.Len(t, stats, 6)
	s := stats[utils.InnerX1.String()]
	// Identity frames: every entry is an exact hit
	assert.Equal(t, s["entries"], s["exact_hits"])
	assert.Equal(t, b.Block.NGhost*8*8*b.Grid.NAng, s["entries"])
}
