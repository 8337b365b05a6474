package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfusionAndF1(t *testing.T) {
	yTrue := []int{1, 1, 1, 0, 0}
	yPred := []int{1, 0, 1, 1, 0}
	c, err := ConfusionCounts(yTrue, yPred)
	require.NoError(t, err)
	assert.Equal(t, Confusion{TP: 2, FP: 1, TN: 1, FN: 1}, c)

	prec, rec, f1, err := PrecisionRecallF1(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3, prec, 1e-12)
	assert.InDelta(t, 2.0/3, rec, 1e-12)
	assert.InDelta(t, 2.0/3, f1, 1e-12)

	acc, err := AccuracyInt(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, acc, 1e-12)
}

func TestMetricsRejectMismatchedLengths(t *testing.T) {
	yTrue := []int{1, 0, 1}
	yPred := []int{1, 0}

	_, err := ConfusionCounts(yTrue, yPred)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, _, _, err = PrecisionRecallF1(yTrue, yPred)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = FBeta(yTrue, yPred, 3)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = AccuracyInt(yPred, yTrue)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestFBetaWeighsRecall(t *testing.T) {
	yTrue := []int{1, 1, 0, 0}
	yPred := []int{1, 1, 1, 1}
	p, r := 2.0/4, 1.0
	want := 10 * p * r / (9*p + r)
	f3, err := FBeta(yTrue, yPred, 3)
	require.NoError(t, err)
	assert.InDelta(t, want, f3, 1e-12)

	_, _, f1, err := PrecisionRecallF1(yTrue, yPred)
	require.NoError(t, err)
	same, err := FBeta(yTrue, yPred, 1)
	require.NoError(t, err)
	assert.InDelta(t, f1, same, 1e-12)

	none, err := FBeta([]int{0, 0}, []int{0, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, none)
}

func TestThresholds(t *testing.T) {
	ts, err := Thresholds(0.1, 0.5, 0.1)
	require.NoError(t, err)
	require.Len(t, ts, 4)
	assert.InDelta(t, 0.4, ts[3], 1e-12)

	_, err = Thresholds(0, 1, 0)
	assert.Error(t, err)
}

func TestThresholdSweepAndBest(t *testing.T) {
	yTrue := []int{1, 0, 1, 0}
	proba := []float64{0.8, 0.3, 0.4, 0.1}
	thresholds := []float64{0.05, 0.35, 0.5}

	scores, err := ThresholdSweep(yTrue, proba, thresholds, 3)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.InDelta(t, 1.0, scores[1], 1e-12)

	best, score, err := BestThreshold(thresholds, scores)
	require.NoError(t, err)
	assert.Equal(t, 0.35, best)
	assert.Equal(t, 1.0, score)

	_, err = ThresholdSweep(yTrue, proba[:2], thresholds, 3)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, _, err = BestThreshold(nil, nil)
	assert.Error(t, err)
}
