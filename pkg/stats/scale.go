package stats

import (
	"errors"
	"fmt"
	"math"
)

var ErrNotFitted = errors.New("stats: scaler is not fitted")

// MinMaxScaler scales each column to [0, 1] using the range seen at fit time.
// NaN cells are ignored when fitting and passed through unchanged.
type MinMaxScaler struct {
	Min []float64
	Max []float64
	fit bool
}

func NewMinMaxScaler() *MinMaxScaler { return &MinMaxScaler{} }

func (s *MinMaxScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("stats: cannot fit scaler on empty data")
	}
	c := len(X[0])
	s.Min = make([]float64, c)
	s.Max = make([]float64, c)
	for j := 0; j < c; j++ {
		s.Min[j], s.Max[j] = MinMax(Column(X, j))
	}
	s.fit = true
	return nil
}

func (s *MinMaxScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.fit {
		return nil, ErrNotFitted
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.Min) {
			return nil, fmt.Errorf("stats: row %d has %d features, scaler was fit on %d", i, len(row), len(s.Min))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			span := s.Max[j] - s.Min[j]
			switch {
			case math.IsNaN(v):
				scaled[j] = v
			case math.IsNaN(span):
				// column was never observed
				scaled[j] = math.NaN()
			case span == 0:
				scaled[j] = v - s.Min[j]
			default:
				scaled[j] = (v - s.Min[j]) / span
			}
		}
		out[i] = scaled
	}
	return out, nil
}

func (s *MinMaxScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
