package model

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"creditrisk/pkg/NeuralNetwork"
	"creditrisk/pkg/data"
	"creditrisk/pkg/loader"
	"creditrisk/pkg/optim"
)

// LogisticRegression (binary) with sigmoid, trained by mini-batch SGD.
type LogisticRegression struct {
	W         []float64 // weights
	b         float64   // bias
	Lr        float64
	Epochs    int
	BatchSize int
	Seed      int64
	fitted    bool
}

// NewLogisticRegression returns an unfitted model; seed fixes the weight init and
// the per-epoch shuffles.
func NewLogisticRegression(lr float64, epochs int, batchSize int, seed int64) *LogisticRegression {
	return &LogisticRegression{
		Lr:        lr,
		Epochs:    epochs,
		BatchSize: batchSize,
		Seed:      seed,
	}
}

// Bias returns the learned intercept.
func (m *LogisticRegression) Bias() float64 { return m.b }

// PredictProba returns P(y=1) for each row of X, spread over GOMAXPROCS workers.
func (m *LogisticRegression) PredictProba(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	for i, row := range X {
		if len(row) != len(m.W) {
			return nil, fmt.Errorf("%w: row %d has %d features, model has %d", ErrFeatureMismatch, i, len(row), len(m.W))
		}
	}
	return m.proba(X), nil
}

func (m *LogisticRegression) proba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	if len(X) == 0 {
		return out
	}
	var wg sync.WaitGroup

	// one contiguous block of rows per worker
	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(X) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, len(X))
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				sum := m.b
				for j, v := range X[i] {
					sum += m.W[j] * v
				}
				out[i] = NeuralNetwork.Sigmoid(sum)
			}
		}(start, end)
	}
	wg.Wait()
	return out
}

// Fit shuffles the data every epoch and streams it through data.Batcher.
func (m *LogisticRegression) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("model: cannot fit on empty data")
	}
	if len(X) != len(y) {
		return fmt.Errorf("model: %d rows, %d labels", len(X), len(y))
	}
	// every row must have the same width
	nFeatures := len(X[0])
	for i, row := range X {
		if len(row) != nFeatures {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrFeatureMismatch, i, len(row), nFeatures)
		}
	}

	rng := rand.New(rand.NewSource(m.Seed))
	m.W = make([]float64, nFeatures)
	// small random weights break symmetry
	for i := range m.W {
		m.W[i] = rng.NormFloat64() * 0.01
	}
	m.b = 0

	for ep := 0; ep < m.Epochs; ep++ {
		// fresh order and a fresh producer each epoch; FitBatches drains it
		XS, YS := loader.ShuffleData(X, y, rng)
		batches := make(chan data.Batch)
		data.Batcher(data.StreamRows(XS, YS, nil), m.BatchSize, batches)
		m.FitBatches(batches)
	}
	m.fitted = true
	return nil
}

// FitBatches runs one gradient step per batch until the channel closes.
// Weights must already be sized to the batch feature count.
func (m *LogisticRegression) FitBatches(batches <-chan data.Batch) {
	opt := optim.NewSGD(m.Lr)
	gW := make([]float64, len(m.W))

	for batch := range batches {
		// forward pass and BCE gradient w.r.t. the probabilities
		p := m.proba(batch.X)
		_, dy := NeuralNetwork.BCE(batch.Y, p)

		// accumulate weight and bias gradients over the batch
		clear(gW)
		gb := 0.0
		for i, row := range batch.X {
			d := dy[i]
			for j, xij := range row {
				gW[j] += d * xij
			}
			gb += d
		}

		// update parameters
		opt.Step(m.W, gW)
		m.b = opt.StepScalar(m.b, gb)
	}
}
