package model

import (
	"fmt"

	"creditrisk/pkg/stats"
)

// BinaryPredFromProba labels a row 1 when its probability is strictly above threshold.
func BinaryPredFromProba(proba []float64, threshold float64) []int {
	out := make([]int, len(proba))
	for i, p := range proba {
		if p > threshold {
			out[i] = 1
		}
	}
	return out
}

// Classification metrics (binary, labels 0/1)
func AccuracyInt(yTrue []int, yPred []int) (float64, error) {
	if err := sameLength(yTrue, yPred); err != nil {
		return 0, err
	}
	if len(yTrue) == 0 {
		return 0, nil
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue)), nil
}

func sameLength(yTrue, yPred []int) error {
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("%w: %d labels, %d predictions", ErrLengthMismatch, len(yTrue), len(yPred))
	}
	return nil
}

// Confusion holds binary confusion matrix counts.
type Confusion struct {
	TP, FP, TN, FN int
}

// ConfusionCounts tallies predictions against labels; both slices must have the same length.
func ConfusionCounts(yTrue []int, yPred []int) (Confusion, error) {
	var c Confusion
	if err := sameLength(yTrue, yPred); err != nil {
		return c, err
	}
	for i := range yTrue {
		switch {
		case yPred[i] == 1 && yTrue[i] == 1:
			c.TP++
		case yPred[i] == 1 && yTrue[i] == 0:
			c.FP++
		case yPred[i] == 0 && yTrue[i] == 1:
			c.FN++
		default:
			c.TN++
		}
	}
	return c, nil
}

// PrecisionRecallF1 reports 0 for any score whose denominator is empty.
func PrecisionRecallF1(yTrue []int, yPred []int) (prec, rec, f1 float64, err error) {
	c, err := ConfusionCounts(yTrue, yPred)
	if err != nil {
		return 0, 0, 0, err
	}
	if c.TP+c.FP > 0 {
		prec = float64(c.TP) / float64(c.TP+c.FP)
	}
	if c.TP+c.FN > 0 {
		rec = float64(c.TP) / float64(c.TP+c.FN)
	}
	if prec+rec > 0 {
		f1 = 2 * prec * rec / (prec + rec)
	}
	return prec, rec, f1, nil
}

// FBeta weighs recall beta times as much as precision. Undefined scores are 0.
func FBeta(yTrue []int, yPred []int, beta float64) (float64, error) {
	prec, rec, _, err := PrecisionRecallF1(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	b2 := beta * beta
	denom := b2*prec + rec
	if denom == 0 {
		return 0, nil
	}
	return (1 + b2) * prec * rec / denom, nil
}

// Thresholds returns start, start+step, ... below stop.
func Thresholds(start, stop, step float64) ([]float64, error) {
	if step <= 0 {
		return nil, fmt.Errorf("model: threshold step must be positive, got %v", step)
	}
	var out []float64
	for i := 0; ; i++ {
		t := start + float64(i)*step
		if t >= stop {
			break
		}
		out = append(out, t)
	}
	return out, nil
}

// ThresholdSweep scores each threshold with F-beta using the same rule as Classifier.Predict.
func ThresholdSweep(yTrue []int, proba []float64, thresholds []float64, beta float64) ([]float64, error) {
	if len(yTrue) != len(proba) {
		return nil, fmt.Errorf("%w: %d labels, %d probabilities", ErrLengthMismatch, len(yTrue), len(proba))
	}
	scores := make([]float64, len(thresholds))
	for i, t := range thresholds {
		score, err := FBeta(yTrue, BinaryPredFromProba(proba, t), beta)
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}
	return scores, nil
}

// BestThreshold returns the threshold with the highest score; ties go to the first.
func BestThreshold(thresholds, scores []float64) (threshold, score float64, err error) {
	if len(thresholds) != len(scores) {
		return 0, 0, fmt.Errorf("model: %d thresholds, %d scores", len(thresholds), len(scores))
	}
	i := stats.Argmax(scores)
	if i < 0 {
		return 0, 0, fmt.Errorf("model: no scores to choose from")
	}
	return thresholds[i], scores[i], nil
}

// Labels converts 0/1 float labels to ints.
func Labels(y []float64) []int {
	out := make([]int, len(y))
	for i, v := range y {
		if v == 1 {
			out[i] = 1
		}
	}
	return out
}
