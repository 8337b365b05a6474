package dataprep

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"creditrisk/pkg/frame"
	"creditrisk/pkg/stats"
)

var (
	ErrNotFitted      = errors.New("dataprep: transformer is not fitted")
	ErrUnseenLabel    = errors.New("dataprep: unseen label")
	ErrTargetRequired = errors.New("dataprep: target values are required")
	ErrNoObservations = errors.New("dataprep: column has no observed values")
)

// DefaultBinaryColumns are the two-valued categorical columns of the credit dataset.
var DefaultBinaryColumns = []string{
	"CODE_GENDER",
	"NAME_CONTRACT_TYPE",
	"FLAG_OWN_CAR",
	"FLAG_OWN_REALTY",
	"EMERGENCYSTATE_MODE",
}

// DefaultCategoricalColumns are the many-valued categorical columns that get target encoded.
var DefaultCategoricalColumns = []string{
	"NAME_TYPE_SUITE",
	"NAME_INCOME_TYPE",
	"NAME_EDUCATION_TYPE",
	"NAME_FAMILY_STATUS",
	"NAME_HOUSING_TYPE",
	"OCCUPATION_TYPE",
	"WEEKDAY_APPR_PROCESS_START",
	"ORGANIZATION_TYPE",
	"FONDKAPREMONT_MODE",
	"HOUSETYPE_MODE",
	"WALLSMATERIAL_MODE",
}

// observed splits a column into its non-missing cells and their row positions.
func observed(col []frame.Value) (vals []frame.Value, rows []int) {
	for i, v := range col {
		if !v.IsMissing() {
			vals = append(vals, v)
			rows = append(rows, i)
		}
	}
	return vals, rows
}

// LabelEncoder encodes categories as integers in sorted class order.
type LabelEncoder struct {
	Classes []frame.Value
	index   map[string]int
}

// Fit learns the sorted distinct non-missing values.
func (e *LabelEncoder) Fit(values []frame.Value) error {
	unique := map[string]frame.Value{}
	for _, v := range values {
		if v.IsMissing() {
			return errors.New("dataprep: label encoder cannot fit missing values")
		}
		unique[v.Key()] = v
	}
	e.Classes = make([]frame.Value, 0, len(unique))
	for _, v := range unique {
		e.Classes = append(e.Classes, v)
	}
	sort.Slice(e.Classes, func(i, j int) bool { return frame.Less(e.Classes[i], e.Classes[j]) })
	e.index = make(map[string]int, len(e.Classes))
	for i, v := range e.Classes {
		e.index[v.Key()] = i
	}
	return nil
}

// Transform maps each value to its class position.
func (e *LabelEncoder) Transform(values []frame.Value) ([]int, error) {
	if e.index == nil {
		return nil, ErrNotFitted
	}
	out := make([]int, len(values))
	for i, v := range values {
		code, ok := e.index[v.Key()]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnseenLabel, v.String())
		}
		out[i] = code
	}
	return out, nil
}

// InverseTransform maps codes back to the original values.
func (e *LabelEncoder) InverseTransform(codes []int) ([]frame.Value, error) {
	if e.index == nil {
		return nil, ErrNotFitted
	}
	out := make([]frame.Value, len(codes))
	for i, c := range codes {
		if c < 0 || c >= len(e.Classes) {
			return nil, fmt.Errorf("%w: code %d", ErrUnseenLabel, c)
		}
		out[i] = e.Classes[c]
	}
	return out, nil
}

// BinaryLabelEncoder label encodes a fixed set of columns.
// Missing cells are left missing.
type BinaryLabelEncoder struct {
	Columns []string
	fitted  map[string]*LabelEncoder
}

// NewBinaryLabelEncoder encodes the given columns, or DefaultBinaryColumns when none are given.
func NewBinaryLabelEncoder(columns ...string) *BinaryLabelEncoder {
	if len(columns) == 0 {
		columns = DefaultBinaryColumns
	}
	return &BinaryLabelEncoder{Columns: append([]string(nil), columns...)}
}

// Fit learns one LabelEncoder per column from its non-missing cells. y is unused.
func (b *BinaryLabelEncoder) Fit(X *frame.Frame, _ []float64) error {
	fitted := make(map[string]*LabelEncoder, len(b.Columns))
	for _, name := range b.Columns {
		col, err := X.Col(name)
		if err != nil {
			return err
		}
		vals, _ := observed(col)
		le := &LabelEncoder{}
		if err := le.Fit(vals); err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		fitted[name] = le
	}
	b.fitted = fitted
	return nil
}

// Transform returns a copy with each encoded column replaced by its codes.
// Missing cells stay missing.
func (b *BinaryLabelEncoder) Transform(X *frame.Frame) (*frame.Frame, error) {
	if b.fitted == nil {
		return nil, ErrNotFitted
	}
	out := X.Copy()
	for _, name := range b.Columns {
		col, err := out.Col(name)
		if err != nil {
			return nil, err
		}
		vals, rows := observed(col)
		codes, err := b.fitted[name].Transform(vals)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		for k, r := range rows {
			col[r] = frame.Num(float64(codes[k]))
		}
		if err := out.SetCol(name, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Encoder returns the fitted encoder for a column.
func (b *BinaryLabelEncoder) Encoder(name string) (*LabelEncoder, bool) {
	le, ok := b.fitted[name]
	return le, ok
}

// TargetEncoder replaces each category with a smoothed mean of the target.
// Categories seen only once, and categories never seen, take the prior.
type TargetEncoder struct {
	MinSamplesLeaf float64
	Smoothing      float64
	prior          float64
	mapping        map[string]float64
}

// NewTargetEncoder uses min_samples_leaf 1 and smoothing 1.
func NewTargetEncoder() *TargetEncoder {
	return &TargetEncoder{MinSamplesLeaf: 1, Smoothing: 1}
}

// Fit learns the prior and the smoothed mean target per category.
// values and y are aligned; callers drop missing cells first.
func (t *TargetEncoder) Fit(values []frame.Value, y []float64) error {
	if len(values) != len(y) {
		return fmt.Errorf("%w: %d values, %d targets", frame.ErrLengthMismatch, len(values), len(y))
	}
	if len(y) == 0 {
		return ErrNoObservations
	}
	if t.Smoothing <= 0 {
		return fmt.Errorf("dataprep: smoothing must be positive, got %v", t.Smoothing)
	}
	t.prior = stats.Mean(y)

	sums := map[string]float64{}
	counts := map[string]float64{}
	for i, v := range values {
		k := v.Key()
		sums[k] += y[i]
		counts[k]++
	}
	t.mapping = make(map[string]float64, len(counts))
	for k, n := range counts {
		if n == 1 {
			t.mapping[k] = t.prior
			continue
		}
		s := 1 / (1 + math.Exp(-(n-t.MinSamplesLeaf)/t.Smoothing))
		t.mapping[k] = t.prior*(1-s) + sums[k]/n*s
	}
	return nil
}

// Transform maps each category to its encoding; unseen categories get the prior.
func (t *TargetEncoder) Transform(values []frame.Value) ([]float64, error) {
	if t.mapping == nil {
		return nil, ErrNotFitted
	}
	out := make([]float64, len(values))
	for i, v := range values {
		enc, ok := t.mapping[v.Key()]
		if !ok {
			enc = t.prior
		}
		out[i] = enc
	}
	return out, nil
}

// Prior is the mean target seen at fit time.
func (t *TargetEncoder) Prior() float64 { return t.prior }

// MultipleLabelEncoding target encodes a fixed set of many-valued columns.
// Missing cells are left missing and do not take part in fitting.
type MultipleLabelEncoding struct {
	Columns []string
	fitted  map[string]*TargetEncoder
}

// NewMultipleLabelEncoding target-encodes the given columns, or
// DefaultCategoricalColumns when none are given.
func NewMultipleLabelEncoding(columns ...string) *MultipleLabelEncoding {
	if len(columns) == 0 {
		columns = DefaultCategoricalColumns
	}
	return &MultipleLabelEncoding{Columns: append([]string(nil), columns...)}
}

// Fit needs y with one label per row.
func (m *MultipleLabelEncoding) Fit(X *frame.Frame, y []float64) error {
	if y == nil {
		return ErrTargetRequired
	}
	if len(y) != X.NumRows() {
		return fmt.Errorf("%w: %d rows, %d targets", frame.ErrLengthMismatch, X.NumRows(), len(y))
	}
	fitted := make(map[string]*TargetEncoder, len(m.Columns))
	for _, name := range m.Columns {
		col, err := X.Col(name)
		if err != nil {
			return err
		}
		vals, rows := observed(col)
		ys := make([]float64, len(rows))
		for k, r := range rows {
			ys[k] = y[r]
		}
		te := NewTargetEncoder()
		if err := te.Fit(vals, ys); err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		fitted[name] = te
	}
	m.fitted = fitted
	return nil
}

// Transform replaces observed cells with their encodings. Missing cells stay missing.
func (m *MultipleLabelEncoding) Transform(X *frame.Frame) (*frame.Frame, error) {
	if m.fitted == nil {
		return nil, ErrNotFitted
	}
	out := X.Copy()
	for _, name := range m.Columns {
		col, err := out.Col(name)
		if err != nil {
			return nil, err
		}
		vals, rows := observed(col)
		enc, err := m.fitted[name].Transform(vals)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		for k, r := range rows {
			col[r] = frame.Num(enc[k])
		}
		if err := out.SetCol(name, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}
