package loader

import (
	"fmt"
	"math/rand"
)

// SplitIndices shuffles 0..n-1 and cuts off testRatio of them as the test set.
func SplitIndices(n int, testRatio float64, rng *rand.Rand) (train, test []int, err error) {
	if testRatio < 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("loader: test ratio must be in [0,1), got %v", testRatio)
	}
	indices := rng.Perm(n)
	nTest := int(float64(n) * testRatio)
	return indices[nTest:], indices[:nTest], nil
}

// TrainTestSplit splits X, Y into train and test sets by ratio.
func TrainTestSplit(X [][]float64, Y []float64, testRatio float64, rng *rand.Rand) (XTrain, XTest [][]float64, YTrain, YTest []float64, err error) {
	train, test, err := SplitIndices(len(X), testRatio, rng)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	for _, i := range train {
		XTrain = append(XTrain, X[i])
		YTrain = append(YTrain, Y[i])
	}
	for _, i := range test {
		XTest = append(XTest, X[i])
		YTest = append(YTest, Y[i])
	}
	return XTrain, XTest, YTrain, YTest, nil
}

// ShuffleData shuffles X and Y in unison.
func ShuffleData(X [][]float64, Y []float64, rng *rand.Rand) ([][]float64, []float64) {
	n := len(X)
	indices := rng.Perm(n)
	XShuf := make([][]float64, n)
	YShuf := make([]float64, n)
	for i, idx := range indices {
		XShuf[i] = X[idx]
		YShuf[i] = Y[idx]
	}
	return XShuf, YShuf
}

// Take returns y at the given positions.
func Take(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
