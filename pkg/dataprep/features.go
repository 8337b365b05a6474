package dataprep

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"creditrisk/pkg/frame"
)

// DefaultPolyColumns are the external credit scores expanded into polynomial terms.
var DefaultPolyColumns = []string{
	"EXT_SOURCE_1",
	"EXT_SOURCE_2",
	"EXT_SOURCE_3",
}

// PolyFeatures appends every monomial of the configured columns up to Degree,
// bias term included. Output columns are named 1, x0, x1, x0^2, x0 x1, ...
// A term that involves a missing input is missing.
type PolyFeatures struct {
	Degree  int
	Columns []string

	powers [][]int
}

// NewPolyFeatures expands the given columns, or DefaultPolyColumns when none are given.
func NewPolyFeatures(degree int, columns ...string) *PolyFeatures {
	if len(columns) == 0 {
		columns = DefaultPolyColumns
	}
	return &PolyFeatures{Degree: degree, Columns: append([]string(nil), columns...)}
}

// Fit checks the inputs exist and lists the monomials to build.
func (p *PolyFeatures) Fit(X *frame.Frame, _ []float64) error {
	if p.Degree < 0 {
		return fmt.Errorf("dataprep: polynomial degree must be >= 0, got %d", p.Degree)
	}
	for _, name := range p.Columns {
		if _, err := X.NumericCol(name); err != nil {
			return err
		}
	}
	p.powers = powers(len(p.Columns), p.Degree)
	return nil
}

// Transform appends (or overwrites) one column per monomial.
func (p *PolyFeatures) Transform(X *frame.Frame) (*frame.Frame, error) {
	if p.powers == nil {
		return nil, ErrNotFitted
	}
	inputs := make([][]float64, len(p.Columns))
	for j, name := range p.Columns {
		col, err := X.NumericCol(name)
		if err != nil {
			return nil, err
		}
		inputs[j] = col
	}

	out := X.Copy()
	names := p.FeatureNames(nil)
	rows := X.NumRows()
	for t, pw := range p.powers {
		col := make([]frame.Value, rows)
		for i := 0; i < rows; i++ {
			v := 1.0
			for j, e := range pw {
				if e > 0 {
					v *= math.Pow(inputs[j][i], float64(e))
				}
			}
			col[i] = frame.Num(v)
		}
		if err := out.SetCol(names[t], col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FeatureNames names the output terms using inputNames, or x0, x1, ... when nil.
func (p *PolyFeatures) FeatureNames(inputNames []string) []string {
	if inputNames == nil {
		inputNames = make([]string, len(p.Columns))
		for j := range inputNames {
			inputNames[j] = "x" + strconv.Itoa(j)
		}
	}
	pw := p.powers
	if pw == nil {
		pw = powers(len(p.Columns), p.Degree)
	}
	names := make([]string, len(pw))
	for t, row := range pw {
		var parts []string
		for j, e := range row {
			switch {
			case e == 1:
				parts = append(parts, inputNames[j])
			case e > 1:
				parts = append(parts, inputNames[j]+"^"+strconv.Itoa(e))
			}
		}
		if len(parts) == 0 {
			names[t] = "1"
		} else {
			names[t] = strings.Join(parts, " ")
		}
	}
	return names
}

// powers lists exponent vectors for all combinations with replacement of
// nFeatures inputs, degree 0 first, lexicographic within a degree.
func powers(nFeatures, degree int) [][]int {
	var out [][]int
	var rec func(start, left int, acc []int)
	rec = func(start, left int, acc []int) {
		if left == 0 {
			out = append(out, append([]int(nil), acc...))
			return
		}
		for j := start; j < nFeatures; j++ {
			acc[j]++
			rec(j, left-1, acc)
			acc[j]--
		}
	}
	for d := 0; d <= degree; d++ {
		rec(0, d, make([]int, nFeatures))
	}
	return out
}
