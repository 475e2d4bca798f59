package remap

import (
	"fmt"

	"github.com/notargets/gorad/utils"
)

// Entry is one remap record: four destination linear bin indices and
// the four bilinear weights pairing with them
type Entry struct {
	Ind [4]int32
	Wgt [4]float64
}

// Table holds every Entry of one boundary face as two flat arenas
// dimensioned (ghost depth, transverse 1, transverse 2, source bin,
// corner). Immutable once published by the builder.
type Table struct {
	Face utils.BoundaryFace
	BC   utils.BCType // BCReflect or BCPolar

	NG     int // ghost depths
	N1, N2 int // transverse extents in storage order
	// Global mesh index of the first transverse sweep position, so
	// consumers address the table with mesh indices
	T1Off, T2Off int
	NAng         int

	ind *utils.Arena[int32]
	wgt *utils.Arena[float64]
}

func newTable(face utils.BoundaryFace, bc utils.BCType,
	ng, n1, n2, t1Off, t2Off, nang int) (tb *Table) {
	tb = &Table{
		Face: face, BC: bc,
		NG: ng, N1: n1, N2: n2,
		T1Off: t1Off, T2Off: t2Off,
		NAng: nang,
		ind:  utils.NewArena[int32](ng, n1, n2, nang, 4),
		wgt:  utils.NewArena[float64](ng, n1, n2, nang, 4),
	}
	return
}

func (tb *Table) set(d, t1, t2, lm int, e Entry) {
	for c := 0; c < 4; c++ {
		tb.ind.Set(e.Ind[c], d, t1-tb.T1Off, t2-tb.T2Off, lm, c)
		tb.wgt.Set(e.Wgt[c], d, t1-tb.T1Off, t2-tb.T2Off, lm, c)
	}
}

// Lookup returns the remap entry for a ghost depth, a transverse mesh
// index pair (in the table's storage order) and a source bin
func (tb *Table) Lookup(ghostDepth, t1, t2, sourceBin int) (e Entry) {
	for c := 0; c < 4; c++ {
		e.Ind[c] = tb.ind.At(ghostDepth, t1-tb.T1Off, t2-tb.T2Off, sourceBin, c)
		e.Wgt[c] = tb.wgt.At(ghostDepth, t1-tb.T1Off, t2-tb.T2Off, sourceBin, c)
	}
	return
}

// RemapCell fills dst, the ghost-cell intensities over all source bins,
// as the weighted sum of active-cell intensities src at the four
// destination bins of each entry
func (tb *Table) RemapCell(ghostDepth, t1, t2 int, src, dst []float64) {
	if len(src) != tb.NAng || len(dst) != tb.NAng {
		panic(fmt.Sprintf("intensity slice length %d/%d, table has %d bins",
			len(src), len(dst), tb.NAng))
	}
	for lm := 0; lm < tb.NAng; lm++ {
		e := tb.Lookup(ghostDepth, t1, t2, lm)
		var sum float64
		for c := 0; c < 4; c++ {
			sum += e.Wgt[c] * src[e.Ind[c]]
		}
		dst[lm] = sum
	}
}

// Validate checks every stored entry: weights non-negative summing to 1
// within tolerance, indices within the extended bin range
func (tb *Table) Validate() error {
	const tol = 1.0e-12
	for d := 0; d < tb.NG; d++ {
		for i1 := 0; i1 < tb.N1; i1++ {
			for i2 := 0; i2 < tb.N2; i2++ {
				for lm := 0; lm < tb.NAng; lm++ {
					e := tb.Lookup(d, i1+tb.T1Off, i2+tb.T2Off, lm)
					var sum float64
					for c := 0; c < 4; c++ {
						if e.Wgt[c] < 0 {
							return fmt.Errorf("%v: negative weight %g at (%d,%d,%d,%d)",
								tb.Face, e.Wgt[c], d, i1, i2, lm)
						}
						if e.Ind[c] < 0 || int(e.Ind[c]) >= tb.NAng {
							return fmt.Errorf("%v: bin index %d out of range at (%d,%d,%d,%d)",
								tb.Face, e.Ind[c], d, i1, i2, lm)
						}
						sum += e.Wgt[c]
					}
					if sum < 1.0-tol || sum > 1.0+tol {
						return fmt.Errorf("%v: weights sum to %g at (%d,%d,%d,%d)",
							tb.Face, sum, d, i1, i2, lm)
					}
				}
			}
		}
	}
	return nil
}

// Stats summarizes a table for validation output
func (tb *Table) Stats() map[string]int {
	stats := map[string]int{
		"entries":    tb.NG * tb.N1 * tb.N2 * tb.NAng,
		"exact_hits": 0,
	}
	const tol = 1.0e-12
	for d := 0; d < tb.NG; d++ {
		for i1 := 0; i1 < tb.N1; i1++ {
			for i2 := 0; i2 < tb.N2; i2++ {
				for lm := 0; lm < tb.NAng; lm++ {
					e := tb.Lookup(d, i1+tb.T1Off, i2+tb.T2Off, lm)
					for c := 0; c < 4; c++ {
						if e.Wgt[c] > 1.0-tol {
							stats["exact_hits"]++
							break
						}
					}
				}
			}
		}
	}
	return stats
}
