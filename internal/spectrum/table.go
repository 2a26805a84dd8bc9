package spectrum

import "fmt"

// Table is a computed shear power spectrum: one row per multipole, one column
// per redshift bin pair, stored row-major in a flat buffer. Pairs records the
// (i,j) bin pair behind each column, in enumeration order.
type Table struct {
	Ell   []float64
	Pairs [][2]int
	Data  []float64
}

func newTable(ell []float64, pairs [][2]int) *Table {
	return &Table{
		Ell:   ell,
		Pairs: pairs,
		Data:  make([]float64, len(ell)*len(pairs)),
	}
}

// NumEll returns the number of multipole rows.
func (t *Table) NumEll() int { return len(t.Ell) }

// NumPairs returns the number of bin-pair columns.
func (t *Table) NumPairs() int { return len(t.Pairs) }

// At returns the spectrum value for multipole row l and pair column p.
func (t *Table) At(l, p int) float64 {
	if l < 0 || l >= len(t.Ell) || p < 0 || p >= len(t.Pairs) {
		panic(fmt.Sprintf("spectrum: index (%d,%d) out of table %dx%d", l, p, len(t.Ell), len(t.Pairs)))
	}
	return t.Data[l*len(t.Pairs)+p]
}

// Row returns the slice of pair values at multipole row l. It is a view into
// the flat buffer.
func (t *Table) Row(l int) []float64 {
	nz := len(t.Pairs)
	return t.Data[l*nz : (l+1)*nz]
}
