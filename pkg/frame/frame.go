package frame

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrMissingColumn   = errors.New("frame: column not found")
	ErrDuplicateColumn = errors.New("frame: duplicate column")
	ErrLengthMismatch  = errors.New("frame: length mismatch")
	ErrNonNumeric      = errors.New("frame: non-numeric value")
)

// Kind tags what a cell holds.
type Kind uint8

const (
	Missing Kind = iota
	Number
	Text
)

// Value is a single table cell.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// Num returns a numeric cell. NaN is stored as missing.
func Num(v float64) Value {
	if math.IsNaN(v) {
		return Value{}
	}
	return Value{Kind: Number, Num: v}
}

func Str(s string) Value { return Value{Kind: Text, Str: s} }

func NA() Value { return Value{} }

func (v Value) IsMissing() bool { return v.Kind == Missing }

// Float returns the numeric content, NaN for missing cells and false for text.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case Number:
		return v.Num, true
	case Missing:
		return math.NaN(), true
	}
	return 0, false
}

func (v Value) String() string {
	switch v.Kind {
	case Number:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case Text:
		return v.Str
	}
	return ""
}

// Key identifies a category. Numbers and text never collide.
func (v Value) Key() string {
	switch v.Kind {
	case Number:
		return "n:" + v.String()
	case Text:
		return "s:" + v.Str
	}
	return ""
}

// Less orders numbers before text, numbers by value and text lexically.
func Less(a, b Value) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Kind == Number {
		return a.Num < b.Num
	}
	return a.Str < b.Str
}

// Frame is a table of named columns sharing one row index.
type Frame struct {
	index []int
	names []string
	pos   map[string]int
	cols  [][]Value
}

// New builds a frame with the default index 0..n-1.
func New(names []string, cols [][]Value) (*Frame, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrLengthMismatch, len(names), len(cols))
	}
	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0])
	}
	f := &Frame{
		index: make([]int, rows),
		pos:   make(map[string]int, len(names)),
	}
	for i := 0; i < rows; i++ {
		f.index[i] = i
	}
	for i, name := range names {
		if err := f.addCol(name, cols[i]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// FromMatrix builds a numeric frame; NaN cells become missing.
func FromMatrix(index []int, names []string, X [][]float64) (*Frame, error) {
	if len(index) != len(X) {
		return nil, fmt.Errorf("%w: index has %d rows, matrix has %d", ErrLengthMismatch, len(index), len(X))
	}
	cols := make([][]Value, len(names))
	for j := range names {
		cols[j] = make([]Value, len(X))
	}
	for i, row := range X {
		if len(row) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d columns", ErrLengthMismatch, i, len(row), len(names))
		}
		for j, v := range row {
			cols[j][i] = Num(v)
		}
	}
	f, err := New(names, cols)
	if err != nil {
		return nil, err
	}
	f.index = append(f.index[:0], index...)
	return f, nil
}

func (f *Frame) addCol(name string, vals []Value) error {
	if _, ok := f.pos[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if len(vals) != len(f.index) {
		return fmt.Errorf("%w: column %q has %d rows, frame has %d", ErrLengthMismatch, name, len(vals), len(f.index))
	}
	f.pos[name] = len(f.names)
	f.names = append(f.names, name)
	f.cols = append(f.cols, vals)
	return nil
}

func (f *Frame) NumRows() int { return len(f.index) }

func (f *Frame) NumCols() int { return len(f.names) }

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string { return append([]string(nil), f.names...) }

// Index returns a copy of the row labels.
func (f *Frame) Index() []int { return append([]int(nil), f.index...) }

// SetIndex relabels the rows.
func (f *Frame) SetIndex(index []int) error {
	if len(index) != len(f.index) {
		return fmt.Errorf("%w: index has %d labels, frame has %d rows", ErrLengthMismatch, len(index), len(f.index))
	}
	copy(f.index, index)
	return nil
}

func (f *Frame) HasCol(name string) bool {
	_, ok := f.pos[name]
	return ok
}

// Col returns a copy of the named column.
func (f *Frame) Col(name string) ([]Value, error) {
	j, ok := f.pos[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return append([]Value(nil), f.cols[j]...), nil
}

// SetCol replaces the named column, or appends it when absent.
func (f *Frame) SetCol(name string, vals []Value) error {
	if len(vals) != len(f.index) {
		return fmt.Errorf("%w: column %q has %d rows, frame has %d", ErrLengthMismatch, name, len(vals), len(f.index))
	}
	cp := append([]Value(nil), vals...)
	if j, ok := f.pos[name]; ok {
		f.cols[j] = cp
		return nil
	}
	return f.addCol(name, cp)
}

// Copy returns a deep copy.
func (f *Frame) Copy() *Frame {
	out := &Frame{
		index: f.Index(),
		names: f.Columns(),
		pos:   make(map[string]int, len(f.names)),
		cols:  make([][]Value, len(f.cols)),
	}
	for j, name := range f.names {
		out.pos[name] = j
		out.cols[j] = append([]Value(nil), f.cols[j]...)
	}
	return out
}

// Select returns a new frame with only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := &Frame{index: f.Index(), pos: make(map[string]int, len(names))}
	for _, name := range names {
		col, err := f.Col(name)
		if err != nil {
			return nil, err
		}
		if err := out.addCol(name, col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Drop returns a copy without the named columns. Unknown names are ignored.
func (f *Frame) Drop(names ...string) *Frame {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	out := &Frame{index: f.Index(), pos: make(map[string]int, len(f.names))}
	for j, name := range f.names {
		if _, ok := skip[name]; ok {
			continue
		}
		out.pos[name] = len(out.names)
		out.names = append(out.names, name)
		out.cols = append(out.cols, append([]Value(nil), f.cols[j]...))
	}
	return out
}

// TakeRows returns the given row positions, keeping their index labels.
func (f *Frame) TakeRows(rows []int) (*Frame, error) {
	out := &Frame{
		index: make([]int, len(rows)),
		names: f.Columns(),
		pos:   make(map[string]int, len(f.names)),
		cols:  make([][]Value, len(f.cols)),
	}
	for i, r := range rows {
		if r < 0 || r >= len(f.index) {
			return nil, fmt.Errorf("frame: row %d out of range [0,%d)", r, len(f.index))
		}
		out.index[i] = f.index[r]
	}
	for j, name := range f.names {
		out.pos[name] = j
		col := make([]Value, len(rows))
		for i, r := range rows {
			col[i] = f.cols[j][r]
		}
		out.cols[j] = col
	}
	return out, nil
}

// Numeric returns the frame as a row-major matrix with NaN for missing cells.
func (f *Frame) Numeric() ([][]float64, error) {
	X := make([][]float64, len(f.index))
	for i := range X {
		X[i] = make([]float64, len(f.names))
	}
	for j, col := range f.cols {
		for i, v := range col {
			x, ok := v.Float()
			if !ok {
				return nil, fmt.Errorf("%w: column %q row %d holds %q", ErrNonNumeric, f.names[j], f.index[i], v.Str)
			}
			X[i][j] = x
		}
	}
	return X, nil
}

// NumericCol returns one column as floats with NaN for missing cells.
func (f *Frame) NumericCol(name string) ([]float64, error) {
	j, ok := f.pos[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	out := make([]float64, len(f.index))
	for i, v := range f.cols[j] {
		x, ok := v.Float()
		if !ok {
			return nil, fmt.Errorf("%w: column %q row %d holds %q", ErrNonNumeric, name, f.index[i], v.Str)
		}
		out[i] = x
	}
	return out, nil
}
