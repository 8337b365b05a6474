package dataprep

import (
	"fmt"

	"creditrisk/pkg/frame"
)

// ColumnDropper removes columns that cannot feed a numeric model: any column
// still holding text after encoding, any column never observed, and any
// column whose missing fraction exceeds MaxMissing.
type ColumnDropper struct {
	MaxMissing float64
	Keep       []string

	dropped []string
	fitted  bool
}

// NewColumnDropper keeps sparse columns unless they are entirely missing.
func NewColumnDropper() *ColumnDropper { return &ColumnDropper{MaxMissing: 1} }

// Fit decides which columns to drop. Columns listed in Keep are never dropped.
func (d *ColumnDropper) Fit(X *frame.Frame, _ []float64) error {
	if d.MaxMissing < 0 || d.MaxMissing > 1 {
		return fmt.Errorf("dataprep: missing threshold must be in [0,1], got %v", d.MaxMissing)
	}
	keep := make(map[string]struct{}, len(d.Keep))
	for _, k := range d.Keep {
		keep[k] = struct{}{}
	}
	rows := X.NumRows()
	var dropped []string
	for _, name := range X.Columns() {
		if _, ok := keep[name]; ok {
			continue
		}
		col, err := X.Col(name)
		if err != nil {
			return err
		}
		missing, text := 0, false
		for _, v := range col {
			switch v.Kind {
			case frame.Missing:
				missing++
			case frame.Text:
				text = true
			}
		}
		ratio := 0.0
		if rows > 0 {
			ratio = float64(missing) / float64(rows)
		}
		if text || missing == rows || ratio > d.MaxMissing {
			dropped = append(dropped, name)
		}
	}
	d.dropped = dropped
	d.fitted = true
	return nil
}

// Transform removes the columns chosen at fit time; absent ones are ignored.
func (d *ColumnDropper) Transform(X *frame.Frame) (*frame.Frame, error) {
	if !d.fitted {
		return nil, ErrNotFitted
	}
	return X.Drop(d.dropped...), nil
}

// Dropped lists the columns removed at fit time.
func (d *ColumnDropper) Dropped() []string { return append([]string(nil), d.dropped...) }
