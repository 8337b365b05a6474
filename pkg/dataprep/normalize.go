package dataprep

import (
	"fmt"
	"slices"

	"creditrisk/pkg/frame"
	"creditrisk/pkg/stats"
)

// Normalization min-max scales every column of a numeric frame.
type Normalization struct {
	scaler  *stats.MinMaxScaler
	columns []string
}

// NewNormalization min-max scales every column.
func NewNormalization() *Normalization {
	return &Normalization{scaler: stats.NewMinMaxScaler()}
}

// Fit learns per-column bounds.
func (n *Normalization) Fit(X *frame.Frame, _ []float64) error {
	data, err := X.Numeric()
	if err != nil {
		return err
	}
	if err := n.scaler.Fit(data); err != nil {
		return err
	}
	n.columns = X.Columns()
	return nil
}

// Transform scales into [0,1] relative to the fitted bounds.
func (n *Normalization) Transform(X *frame.Frame) (*frame.Frame, error) {
	if n.columns == nil {
		return nil, ErrNotFitted
	}
	if names := X.Columns(); !slices.Equal(names, n.columns) {
		return nil, fmt.Errorf("dataprep: normalization fit on %d columns, got %d with different names", len(n.columns), len(names))
	}
	data, err := X.Numeric()
	if err != nil {
		return nil, err
	}
	scaled, err := n.scaler.Transform(data)
	if err != nil {
		return nil, err
	}
	return frame.FromMatrix(X.Index(), n.columns, scaled)
}
