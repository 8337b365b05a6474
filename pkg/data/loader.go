package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"creditrisk/pkg/frame"
)

// isMissing reports whether a raw CSV cell is a missing marker.
func isMissing(s string) bool {
	return s == "" || s == "NA" || s == "NaN"
}

func parseCell(s string) frame.Value {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return frame.NA()
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return frame.Num(v)
	}
	return frame.Str(s)
}

// ReadFrame parses CSV with a header row. Numeric cells become numbers,
// missing markers become missing, anything else stays text.
func ReadFrame(r io.Reader) (*frame.Frame, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("data: empty CSV")
	}
	if err != nil {
		return nil, fmt.Errorf("data: read header: %w", err)
	}
	names := append([]string(nil), header...)
	cols := make([][]frame.Value, len(names))

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("data: line %d: %w", line, err)
		}
		for j, s := range rec {
			cols[j] = append(cols[j], parseCell(s))
		}
	}
	for j := range cols {
		if cols[j] == nil {
			cols[j] = []frame.Value{}
		}
	}
	return frame.New(names, cols)
}

// LoadCSV reads a frame from a CSV file on disk.
func LoadCSV(path string) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadFrame(file)
}

// WriteCSV writes the frame with a header row. Missing cells are written empty.
func WriteCSV(w io.Writer, f *frame.Frame) error {
	writer := csv.NewWriter(w)
	names := f.Columns()
	if err := writer.Write(names); err != nil {
		return err
	}
	cols := make([][]frame.Value, len(names))
	for j, name := range names {
		col, err := f.Col(name)
		if err != nil {
			return err
		}
		cols[j] = col
	}
	rec := make([]string, len(names))
	for i := 0; i < f.NumRows(); i++ {
		for j := range cols {
			rec[j] = cols[j][i].String()
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// SplitTarget removes the binary label column and returns it as 0/1 values.
func SplitTarget(f *frame.Frame, target string) (*frame.Frame, []float64, error) {
	col, err := f.Col(target)
	if err != nil {
		return nil, nil, err
	}
	index := f.Index()
	y := make([]float64, len(col))
	for i, v := range col {
		if v.Kind != frame.Number || (v.Num != 0 && v.Num != 1) {
			return nil, nil, fmt.Errorf("data: target %q row %d is %q, want 0 or 1", target, index[i], v.String())
		}
		y[i] = v.Num
	}
	return f.Drop(target), y, nil
}
