package remap

import "github.com/james-bowman/sparse"

// CouplingMatrix exports the angular source-to-destination coupling of
// one ghost cell as an NAng x NAng sparse CSR matrix with four nonzeros
// per row, for inspection of the boundary coupling structure. The flat
// arenas remain the authoritative storage.
func (tb *Table) CouplingMatrix(ghostDepth, t1, t2 int) (C *sparse.CSR) {
	W := sparse.NewDOK(tb.NAng, tb.NAng)
	for lm := 0; lm < tb.NAng; lm++ {
		e := tb.Lookup(ghostDepth, t1, t2, lm)
		for c := 0; c < 4; c++ {
			W.Set(lm, int(e.Ind[c]), e.Wgt[c])
		}
	}
	C = W.ToCSR()
	return
}
