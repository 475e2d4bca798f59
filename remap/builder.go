package remap

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/notargets/gorad/angles"
	"github.com/notargets/gorad/mesh"
	"github.com/notargets/gorad/tetrad"
	"github.com/notargets/gorad/utils"
)

// Builder runs the one-time geometric precomputation for a mesh block.
// Every entry is a pure function of (grid geometry, ghost point, active
// point, source bin), so the sweep is split across workers with no
// shared mutable state and a single barrier before publication.
type Builder struct {
	Block  *mesh.Block
	Grid   *angles.AngularGrid
	Basis  *angles.DirectionBasis
	Coords tetrad.Coordinates
	// ParallelDegree caps the worker count; <= 0 uses NumCPU
	ParallelDegree int
}

// BoundaryTables is the per-face optional-table set owned by one mesh
// block. A face whose boundary kind needs no angular remap holds nil.
// Read-only after construction; rebuild from scratch when the block
// geometry or boundary assignment changes.
type BoundaryTables struct {
	Reflect [utils.NumFaces]*Table
	Polar   [utils.NumFaces]*Table // latitudinal faces only
}

// faceSweep parameterizes one face's table construction: the parity
// operation, the transverse index bounds, and the ghost/active point
// pairing at each ghost depth
type faceSweep struct {
	face                   utils.BoundaryFace
	bc                     utils.BCType
	op                     tetrad.ParityOp
	n1Lo, n1Hi, n2Lo, n2Hi int // inclusive
	point                  func(d, t1, t2 int) (g, a [3]float64)
}

// BuildAll constructs the remap tables for every face whose boundary
// kind requires one. Each face is gated on its own flag.
func (b *Builder) BuildAll() (bt *BoundaryTables, err error) {
	bt = &BoundaryTables{}
	for f := utils.InnerX1; f < utils.NumFaces; f++ {
		switch b.Block.BCs[f] {
		case utils.BCReflect:
			if bt.Reflect[f], err = b.buildFace(b.reflectSweep(f)); err != nil {
				return nil, err
			}
		case utils.BCPolar:
			if bt.Polar[f], err = b.buildFace(b.polarSweep(f)); err != nil {
				return nil, err
			}
		}
	}
	return
}

func (b *Builder) reflectSweep(f utils.BoundaryFace) (sw faceSweep) {
	var (
		blk = b.Block
	)
	sw = faceSweep{
		face: f,
		bc:   utils.BCReflect,
		op:   tetrad.ReflectForFace(f.Axis()),
	}
	switch f.Axis() {
	case 1:
		sw.n1Lo, sw.n1Hi, sw.n2Lo, sw.n2Hi = blk.KL, blk.KU, blk.JL, blk.JU
		sw.point = func(d, t1, t2 int) (g, a [3]float64) {
			iG, iA := mirrorPair(f, blk.IS, blk.IE, blk.NGhost, d)
			g = [3]float64{blk.X1v[iG], blk.X2v[t2], blk.X3v[t1]}
			a = [3]float64{blk.X1v[iA], blk.X2v[t2], blk.X3v[t1]}
			return
		}
	case 2:
		sw.n1Lo, sw.n1Hi, sw.n2Lo, sw.n2Hi = blk.KL, blk.KU, blk.IL, blk.IU
		sw.point = func(d, t1, t2 int) (g, a [3]float64) {
			jG, jA := mirrorPair(f, blk.JS, blk.JE, blk.NGhost, d)
			g = [3]float64{blk.X1v[t2], blk.X2v[jG], blk.X3v[t1]}
			a = [3]float64{blk.X1v[t2], blk.X2v[jA], blk.X3v[t1]}
			return
		}
	case 3:
		sw.n1Lo, sw.n1Hi, sw.n2Lo, sw.n2Hi = blk.JL, blk.JU, blk.IL, blk.IU
		sw.point = func(d, t1, t2 int) (g, a [3]float64) {
			kG, kA := mirrorPair(f, blk.KS, blk.KE, blk.NGhost, d)
			g = [3]float64{blk.X1v[t2], blk.X2v[t1], blk.X3v[kG]}
			a = [3]float64{blk.X1v[t2], blk.X2v[t1], blk.X3v[kA]}
			return
		}
	}
	return
}

func (b *Builder) polarSweep(f utils.BoundaryFace) (sw faceSweep) {
	var (
		blk = b.Block
	)
	// The active point sits at the mirrored latitude with the azimuth
	// point-reflected through the pole
	sw = faceSweep{
		face: f,
		bc:   utils.BCPolar,
		op:   tetrad.PolarFlip,
		n1Lo: blk.KL, n1Hi: blk.KU, n2Lo: blk.IL, n2Hi: blk.IU,
	}
	sw.point = func(d, t1, t2 int) (g, a [3]float64) {
		jG, jA := mirrorPair(f, blk.JS, blk.JE, blk.NGhost, d)
		g = [3]float64{blk.X1v[t2], blk.X2v[jG], blk.X3v[t1]}
		a = [3]float64{blk.X1v[t2], blk.X2v[jA], blk.X3Reflected(blk.X3v[t1])}
		return
	}
	return
}

// mirrorPair returns the ghost and active cell indices along the face
// normal for ghost depth d: mirrored across the face plane
func mirrorPair(f utils.BoundaryFace, lo, hi, nghost, d int) (ig, ia int) {
	if f.Inner() {
		ig = lo - nghost + d
		ia = lo + nghost - 1 - d
	} else {
		ig = hi + 1 + d
		ia = hi - d
	}
	return
}

func (b *Builder) buildFace(sw faceSweep) (tb *Table, err error) {
	var (
		blk   = b.Block
		ag    = b.Grid
		n1    = sw.n1Hi - sw.n1Lo + 1
		n2    = sw.n2Hi - sw.n2Lo + 1
		ncell = blk.NGhost * n1 * n2
		np    = b.ParallelDegree
	)
	if np <= 0 {
		np = runtime.NumCPU()
	}
	tb = newTable(sw.face, sw.bc, blk.NGhost, n1, n2, sw.n1Lo, sw.n2Lo, ag.NAng)

	var (
		pm   = utils.NewPartitionMap(np, ncell)
		errs = make([]error, pm.ParallelDegree)
		wg   sync.WaitGroup
	)
	for n := 0; n < pm.ParallelDegree; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cMin, cMax := pm.GetBucketRange(n)
			errs[n] = b.buildCells(tb, sw, n1, n2, cMin, cMax)
		}(n)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return nil, fmt.Errorf("%v table: %w", sw.face, e)
		}
	}
	return
}

// buildCells computes every entry of the flattened spatial cell range
// [cMin, cMax)
func (b *Builder) buildCells(tb *Table, sw faceSweep, n1, n2, cMin, cMax int) error {
	var (
		lc = Locator{Grid: b.Grid}
	)
	for c := cMin; c < cMax; c++ {
		var (
			d  = c / (n1 * n2)
			r  = c % (n1 * n2)
			t1 = sw.n1Lo + r/n2
			t2 = sw.n2Lo + r%n2
		)
		g, a := sw.point(d, t1, t2)
		eG, _, _ := b.Coords.Tetrad(g[0], g[1], g[2])
		_, eCovA, _ := b.Coords.Tetrad(a[0], a[1], a[2])
		for lm := 0; lm < b.Grid.NAng; lm++ {
			zeta, psi := tetrad.TransformDirection(eG, eCovA, b.Basis.Direction(lm), sw.op)
			br, err := lc.Locate(zeta, psi)
			if err != nil {
				return fmt.Errorf("ghost depth %d, transverse (%d,%d), bin %d: %w",
					d, t1, t2, lm, err)
			}
			tb.set(d, t1, t2, lm, Entry{
				Ind: [4]int32{
					int32(b.Grid.AngleInd(br.L-1, br.M-1)),
					int32(b.Grid.AngleInd(br.L-1, br.M)),
					int32(b.Grid.AngleInd(br.L, br.M-1)),
					int32(b.Grid.AngleInd(br.L, br.M)),
				},
				Wgt: br.Weights(),
			})
		}
	}
	return nil
}

// Table returns the table held for a face, regardless of kind, or nil
func (bt *BoundaryTables) Table(f utils.BoundaryFace) *Table {
	if bt.Reflect[f] != nil {
		return bt.Reflect[f]
	}
	return bt.Polar[f]
}

// Lookup serves the boundary-fill consumer; it is an error to ask a
// face that holds no table
func (bt *BoundaryTables) Lookup(f utils.BoundaryFace, ghostDepth, t1, t2, sourceBin int) Entry {
	tb := bt.Table(f)
	if tb == nil {
		panic(fmt.Sprintf("no remap table for face %v", f))
	}
	return tb.Lookup(ghostDepth, t1, t2, sourceBin)
}

// Validate checks every held table
func (bt *BoundaryTables) Validate() error {
	for f := utils.InnerX1; f < utils.NumFaces; f++ {
		if tb := bt.Table(f); tb != nil {
			if err := tb.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats aggregates per-face table statistics keyed by face name
func (bt *BoundaryTables) Stats() map[string]map[string]int {
	stats := make(map[string]map[string]int)
	for f := utils.InnerX1; f < utils.NumFaces; f++ {
		if tb := bt.Table(f); tb != nil {
			stats[f.String()] = tb.Stats()
		}
	}
	return stats
}
