package dataprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditrisk/pkg/frame"
)

func applicants(t *testing.T) (*frame.Frame, []float64) {
	t.Helper()
	f, err := frame.New(
		[]string{"CODE_GENDER", "FLAG_OWN_CAR", "OCCUPATION_TYPE", "AMT_CREDIT"},
		[][]frame.Value{
			{frame.Str("M"), frame.Str("F"), frame.Str("F"), frame.NA(), frame.Str("M")},
			{frame.Str("Y"), frame.Str("N"), frame.NA(), frame.Str("N"), frame.Str("Y")},
			{frame.Str("Laborers"), frame.Str("Laborers"), frame.Str("Drivers"), frame.NA(), frame.Str("Laborers")},
			{frame.Num(1), frame.Num(2), frame.Num(3), frame.Num(4), frame.Num(5)},
		},
	)
	require.NoError(t, err)
	require.NoError(t, f.SetIndex([]int{10, 11, 12, 13, 14}))
	return f, []float64{1, 0, 0, 1, 1}
}

func TestLabelEncoderSortsClasses(t *testing.T) {
	le := &LabelEncoder{}
	require.NoError(t, le.Fit([]frame.Value{frame.Str("Y"), frame.Str("N"), frame.Str("Y")}))

	codes, err := le.Transform([]frame.Value{frame.Str("N"), frame.Str("Y")})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, codes)

	back, err := le.InverseTransform(codes)
	require.NoError(t, err)
	assert.Equal(t, "N", back[0].Str)

	_, err = le.Transform([]frame.Value{frame.Str("XNA")})
	assert.ErrorIs(t, err, ErrUnseenLabel)
}

func TestLabelEncoderNumericOrder(t *testing.T) {
	le := &LabelEncoder{}
	require.NoError(t, le.Fit([]frame.Value{frame.Num(10), frame.Num(2)}))
	codes, err := le.Transform([]frame.Value{frame.Num(2), frame.Num(10)})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, codes)
}

func TestBinaryLabelEncoder(t *testing.T) {
	X, _ := applicants(t)
	enc := NewBinaryLabelEncoder("CODE_GENDER", "FLAG_OWN_CAR")

	_, err := enc.Transform(X)
	assert.ErrorIs(t, err, ErrNotFitted)

	require.NoError(t, enc.Fit(X, nil))
	out, err := enc.Transform(X)
	require.NoError(t, err)

	assert.Equal(t, X.NumRows(), out.NumRows())
	assert.Equal(t, X.Index(), out.Index())

	gender, err := out.Col("CODE_GENDER")
	require.NoError(t, err)
	assert.Equal(t, frame.Num(1), gender[0])
	assert.Equal(t, frame.Num(0), gender[1])
	assert.True(t, gender[3].IsMissing())

	// input untouched
	orig, err := X.Col("CODE_GENDER")
	require.NoError(t, err)
	assert.Equal(t, "M", orig[0].Str)
}

func TestBinaryLabelEncoderMissingColumn(t *testing.T) {
	X, _ := applicants(t)
	err := NewBinaryLabelEncoder().Fit(X, nil)
	assert.ErrorIs(t, err, frame.ErrMissingColumn)
}

func TestTargetEncoderSmoothing(t *testing.T) {
	te := NewTargetEncoder()
	values := []frame.Value{frame.Str("a"), frame.Str("a"), frame.Str("a"), frame.Str("b")}
	y := []float64{1, 1, 0, 0}
	require.NoError(t, te.Fit(values, y))

	prior := 0.5
	assert.InDelta(t, prior, te.Prior(), 1e-12)

	s := 1 / (1 + math.Exp(-(3.0-1.0)/1.0))
	want := prior*(1-s) + (2.0/3.0)*s

	got, err := te.Transform([]frame.Value{frame.Str("a"), frame.Str("b"), frame.Str("unseen")})
	require.NoError(t, err)
	assert.InDelta(t, want, got[0], 1e-12)
	assert.InDelta(t, prior, got[1], 1e-12)
	assert.InDelta(t, prior, got[2], 1e-12)
}

func TestMultipleLabelEncoding(t *testing.T) {
	X, y := applicants(t)
	enc := NewMultipleLabelEncoding("OCCUPATION_TYPE")

	assert.ErrorIs(t, enc.Fit(X, nil), ErrTargetRequired)
	assert.ErrorIs(t, enc.Fit(X, y[:2]), frame.ErrLengthMismatch)

	require.NoError(t, enc.Fit(X, y))
	out, err := enc.Transform(X)
	require.NoError(t, err)
	assert.Equal(t, X.Index(), out.Index())

	occ, err := out.Col("OCCUPATION_TYPE")
	require.NoError(t, err)
	assert.Equal(t, frame.Number, occ[0].Kind)
	assert.Equal(t, occ[0], occ[1])
	assert.True(t, occ[3].IsMissing())

	// the prior is the mean over rows where the column is observed
	assert.InDelta(t, 0.5, occ[2].Num, 1e-12)
}
