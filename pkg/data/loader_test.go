package data

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditrisk/pkg/frame"
)

const applicationCSV = `SK_ID_CURR,TARGET,CODE_GENDER,AMT_CREDIT,EXT_SOURCE_1
100002,1,M,406597.5,0.083
100003,0,F,1293502.5,
100004,0,NA,135000,NaN
`

func TestReadFrame(t *testing.T) {
	f, err := ReadFrame(strings.NewReader(applicationCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, f.NumRows())
	assert.Equal(t, []string{"SK_ID_CURR", "TARGET", "CODE_GENDER", "AMT_CREDIT", "EXT_SOURCE_1"}, f.Columns())

	gender, err := f.Col("CODE_GENDER")
	require.NoError(t, err)
	assert.Equal(t, frame.Str("M"), gender[0])
	assert.True(t, gender[2].IsMissing())

	ext, err := f.Col("EXT_SOURCE_1")
	require.NoError(t, err)
	assert.InDelta(t, 0.083, ext[0].Num, 1e-12)
	assert.True(t, ext[1].IsMissing())
	assert.True(t, ext[2].IsMissing())
}

func TestReadFrameErrors(t *testing.T) {
	_, err := ReadFrame(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadFrame(strings.NewReader("a,b\n1\n"))
	assert.Error(t, err)
}

func TestLoadCSVAndWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application_train.csv")
	require.NoError(t, os.WriteFile(path, []byte(applicationCSV), 0o644))

	f, err := LoadCSV(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, f.Drop("AMT_CREDIT")))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "SK_ID_CURR,TARGET,CODE_GENDER,EXT_SOURCE_1", lines[0])
	assert.Equal(t, "100003,0,F,", lines[2])

	_, err = LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestSplitTarget(t *testing.T) {
	f, err := ReadFrame(strings.NewReader(applicationCSV))
	require.NoError(t, err)

	X, y, err := SplitTarget(f, "TARGET")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, y)
	assert.False(t, X.HasCol("TARGET"))

	_, _, err = SplitTarget(f, "CODE_GENDER")
	assert.Error(t, err)

	_, _, err = SplitTarget(f, "DEFAULT")
	assert.ErrorIs(t, err, frame.ErrMissingColumn)
}

func TestBatcher(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}, {5}}
	Y := []float64{0, 1, 0, 1, 1}

	batches := make(chan Batch)
	Batcher(StreamRows(X, Y, nil), 2, batches)

	var sizes []int
	var seen []float64
	for b := range batches {
		sizes = append(sizes, len(b.Y))
		for _, row := range b.X {
			seen = append(seen, row[0])
		}
	}
	assert.Equal(t, []int{2, 2, 1}, sizes)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, seen)
}

func TestBatcherStopsEarly(t *testing.T) {
	X := make([][]float64, 100)
	Y := make([]float64, 100)
	for i := range X {
		X[i] = []float64{float64(i)}
	}

	stop := make(chan struct{})
	batches := make(chan Batch)
	done := Batcher(StreamRows(X, Y, stop), 10, batches)

	<-batches
	close(done)
	close(stop)
	for range batches {
	}
}
