package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedProba scores each row by its first feature.
type fixedProba struct {
	fitErr error
	fitted bool
}

func (f *fixedProba) Fit(X [][]float64, y []float64) error {
	f.fitted = true
	return f.fitErr
}

func (f *fixedProba) PredictProba(X [][]float64) ([]float64, error) {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = row[0]
	}
	return out, nil
}

func TestClassifierThresholdIsStrict(t *testing.T) {
	c := NewClassifier(&fixedProba{}, DefaultThreshold)
	X := [][]float64{{0.149}, {0.150}, {0.151}, {0.9}}

	_, err := c.Predict(X)
	assert.ErrorIs(t, err, ErrNotFitted)

	require.NoError(t, c.Fit(X, []float64{0, 0, 1, 1}))
	got, err := c.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, got)

	proba, err := c.PredictProba(X)
	require.NoError(t, err)
	for i, p := range proba {
		assert.Equal(t, p > c.Threshold, got[i] == 1)
	}
}

func TestClassifierFitErrors(t *testing.T) {
	boom := errors.New("boom")
	c := NewClassifier(&fixedProba{fitErr: boom}, 0.5)
	assert.ErrorIs(t, c.Fit(nil, nil), boom)
	_, err := c.Predict([][]float64{{1}})
	assert.ErrorIs(t, err, ErrNotFitted)

	assert.Error(t, NewClassifier(nil, 0.5).Fit(nil, nil))
	assert.Error(t, NewClassifier(&fixedProba{}, 1.5).Fit(nil, nil))
}

func TestClassifierWithLogisticRegression(t *testing.T) {
	X, y := separable(200)
	c := NewClassifier(NewLogisticRegression(0.5, 200, 16, 1), DefaultThreshold)
	require.NoError(t, c.Fit(X, y))

	pred, err := c.Predict(X)
	require.NoError(t, err)
	assert.Len(t, pred, len(X))
	for _, p := range pred {
		assert.Contains(t, []int{0, 1}, p)
	}
	_, rec, _, err := PrecisionRecallF1(Labels(y), pred)
	require.NoError(t, err)
	assert.Greater(t, rec, 0.9)
}
