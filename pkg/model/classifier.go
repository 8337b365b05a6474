package model

import (
	"errors"
	"fmt"
)

// DefaultThreshold is the decision threshold tuned for the credit default data,
// where positives are rare and recall is weighted above precision.
const DefaultThreshold = 0.150

// Classifier wraps a probabilistic base learner and labels a row positive
// when its probability is strictly above Threshold.
type Classifier struct {
	Base      ProbabilisticClassifier
	Threshold float64
	fitted    bool
}

// NewClassifier wraps base with a decision threshold.
func NewClassifier(base ProbabilisticClassifier, threshold float64) *Classifier {
	return &Classifier{Base: base, Threshold: threshold}
}

// Fit checks the threshold and trains the base learner.
func (c *Classifier) Fit(X [][]float64, y []float64) error {
	if c.Base == nil {
		return errors.New("model: classifier has no base learner")
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("model: threshold must be in [0,1], got %v", c.Threshold)
	}
	if err := c.Base.Fit(X, y); err != nil {
		return err
	}
	c.fitted = true
	return nil
}

// PredictProba returns the base learner's P(y=1) per row.
func (c *Classifier) PredictProba(X [][]float64) ([]float64, error) {
	if !c.fitted {
		return nil, ErrNotFitted
	}
	return c.Base.PredictProba(X)
}

// Predict labels a row 1 when its probability is strictly above Threshold.
func (c *Classifier) Predict(X [][]float64) ([]int, error) {
	proba, err := c.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return BinaryPredFromProba(proba, c.Threshold), nil
}
