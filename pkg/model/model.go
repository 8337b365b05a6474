package model

import "errors"

var (
	ErrNotFitted       = errors.New("model: not fitted")
	ErrFeatureMismatch = errors.New("model: feature count mismatch")
	ErrLengthMismatch  = errors.New("model: label and prediction lengths differ")
)

// ProbabilisticClassifier is a binary learner that scores P(y=1) per row.
type ProbabilisticClassifier interface {
	Fit(X [][]float64, y []float64) error
	PredictProba(X [][]float64) ([]float64, error)
}
