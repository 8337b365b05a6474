package NeuralNetwork

import "math"

// Sigmoid maps a logit to a probability. Large negative inputs are folded
// through exp(x) to avoid overflow.
func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}
