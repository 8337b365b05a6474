package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Frame {
	t.Helper()
	f, err := New(
		[]string{"AMT_INCOME", "CODE_GENDER"},
		[][]Value{
			{Num(100), NA(), Num(250)},
			{Str("M"), Str("F"), NA()},
		},
	)
	require.NoError(t, err)
	return f
}

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]Value{{Num(1)}, {Num(1), Num(2)}})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = New([]string{"a", "a"}, [][]Value{{Num(1)}, {Num(2)}})
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestCopyIsDeep(t *testing.T) {
	f := sample(t)
	cp := f.Copy()
	require.NoError(t, cp.SetCol("AMT_INCOME", []Value{Num(1), Num(2), Num(3)}))

	orig, err := f.Col("AMT_INCOME")
	require.NoError(t, err)
	assert.Equal(t, 100.0, orig[0].Num)
}

func TestSetColAppendsAndReplaces(t *testing.T) {
	f := sample(t)
	require.NoError(t, f.SetCol("x0", []Value{Num(1), Num(2), Num(3)}))
	assert.Equal(t, []string{"AMT_INCOME", "CODE_GENDER", "x0"}, f.Columns())

	require.NoError(t, f.SetCol("x0", []Value{Num(4), Num(5), Num(6)}))
	assert.Equal(t, 3, f.NumCols())

	err := f.SetCol("x1", []Value{Num(1)})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestColMissing(t *testing.T) {
	_, err := sample(t).Col("TARGET")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestNumeric(t *testing.T) {
	f := sample(t)
	_, err := f.Numeric()
	assert.ErrorIs(t, err, ErrNonNumeric)

	X, err := f.Drop("CODE_GENDER").Numeric()
	require.NoError(t, err)
	require.Len(t, X, 3)
	assert.Equal(t, 100.0, X[0][0])
	assert.True(t, math.IsNaN(X[1][0]))
}

func TestFromMatrixKeepsIndex(t *testing.T) {
	f, err := FromMatrix([]int{7, 3}, []string{"a", "b"}, [][]float64{{1, math.NaN()}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 3}, f.Index())

	b, err := f.Col("b")
	require.NoError(t, err)
	assert.True(t, b[0].IsMissing())
	assert.Equal(t, 4.0, b[1].Num)
}

func TestTakeRowsAndSelect(t *testing.T) {
	f := sample(t)
	sub, err := f.TakeRows([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, sub.Index())

	sel, err := sub.Select("CODE_GENDER")
	require.NoError(t, err)
	col, err := sel.Col("CODE_GENDER")
	require.NoError(t, err)
	assert.True(t, col[0].IsMissing())
	assert.Equal(t, "M", col[1].Str)

	_, err = f.TakeRows([]int{5})
	assert.Error(t, err)
}

func TestLessOrdersNumbersBeforeText(t *testing.T) {
	assert.True(t, Less(Num(10), Str("1")))
	assert.True(t, Less(Num(2), Num(10)))
	assert.True(t, Less(Str("F"), Str("M")))
	assert.NotEqual(t, Num(1).Key(), Str("1").Key())
}
