package optim

// SGD is plain stochastic gradient descent with a fixed learning rate.
type SGD struct{ LearningRate float64 }

func NewSGD(lr float64) *SGD { return &SGD{LearningRate: lr} }

// Step updates weights in place.
func (o *SGD) Step(weights, grads []float64) {
	for i := range weights {
		weights[i] -= o.LearningRate * grads[i]
	}
}

// StepScalar returns the updated value of a single parameter such as a bias.
func (o *SGD) StepScalar(w, grad float64) float64 { return w - o.LearningRate*grad }
