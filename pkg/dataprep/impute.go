package dataprep

import (
	"fmt"
	"math"
	"slices"

	"creditrisk/pkg/frame"
	"creditrisk/pkg/stats"
)

// Strategy selects the statistic used to fill missing values.
type Strategy string

const (
	StrategyMean         Strategy = "mean"
	StrategyMedian       Strategy = "median"
	StrategyMostFrequent Strategy = "most_frequent"
	StrategyConstant     Strategy = "constant"
)

// Imputer fills missing cells of every column of a numeric frame.
type Imputer struct {
	Strategy  Strategy
	FillValue float64

	columns    []string
	statistics []float64
}

// NewImputer returns a mean imputer.
func NewImputer() *Imputer { return &Imputer{Strategy: StrategyMean} }

// Fit learns one fill value per column.
func (m *Imputer) Fit(X *frame.Frame, _ []float64) error {
	data, err := X.Numeric()
	if err != nil {
		return err
	}
	names := X.Columns()
	statistics := make([]float64, len(names))
	for j, name := range names {
		obs := stats.Observed(stats.Column(data, j))
		if m.Strategy == StrategyConstant {
			statistics[j] = m.FillValue
			continue
		}
		if len(obs) == 0 {
			return fmt.Errorf("%w: %q", ErrNoObservations, name)
		}
		switch m.Strategy {
		case StrategyMean, "":
			statistics[j] = stats.Mean(obs)
		case StrategyMedian:
			statistics[j] = stats.Median(obs)
		case StrategyMostFrequent:
			statistics[j] = stats.Mode(obs)
		default:
			return fmt.Errorf("dataprep: unknown imputation strategy %q", m.Strategy)
		}
	}
	m.columns = names
	m.statistics = statistics
	return nil
}

// Transform fills missing cells. X must have the columns seen at fit time, in order.
func (m *Imputer) Transform(X *frame.Frame) (*frame.Frame, error) {
	if m.statistics == nil {
		return nil, ErrNotFitted
	}
	if names := X.Columns(); !slices.Equal(names, m.columns) {
		return nil, fmt.Errorf("dataprep: imputer fit on %d columns, got %d with different names", len(m.columns), len(names))
	}
	data, err := X.Numeric()
	if err != nil {
		return nil, err
	}
	for _, row := range data {
		for j, v := range row {
			if math.IsNaN(v) {
				row[j] = m.statistics[j]
			}
		}
	}
	return frame.FromMatrix(X.Index(), m.columns, data)
}

// Statistics returns the fill value learned for each column.
func (m *Imputer) Statistics() map[string]float64 {
	out := make(map[string]float64, len(m.columns))
	for j, name := range m.columns {
		out[name] = m.statistics[j]
	}
	return out
}
