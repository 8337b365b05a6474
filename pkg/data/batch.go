package data

// Sample represents a single data point.
type Sample struct {
	X []float64
	Y float64
}

// Batch represents a collection of data points.
type Batch struct {
	X [][]float64
	Y []float64
}

// StreamRows sends each row of X with its label until done is closed.
// The returned channel is closed when all rows are sent or on early stop.
func StreamRows(X [][]float64, Y []float64, done <-chan struct{}) <-chan Sample {
	out := make(chan Sample)
	go func() {
		defer close(out)
		for i, row := range X {
			select {
			case <-done:
				return
			case out <- Sample{X: row, Y: Y[i]}:
			}
		}
	}()
	return out
}

// Batcher reads from a Sample channel and emits mini-batches of batchSize.
// The final batch may be short. Close the returned done chan to stop early.
func Batcher(in <-chan Sample, batchSize int, out chan<- Batch) (done chan struct{}) {
	done = make(chan struct{})
	if batchSize < 1 {
		batchSize = 1
	}

	go func() {
		defer close(out)

		// current partial batch
		var X [][]float64
		var Y []float64
		for {
			select {
			case <-done:
				return
			case s, ok := <-in:
				if !ok {
					// input drained: flush the short tail
					if len(Y) > 0 {
						select {
						case out <- Batch{X: X, Y: Y}:
						case <-done:
						}
					}
					return
				}
				X = append(X, s.X)
				Y = append(Y, s.Y)
				if len(Y) == batchSize {
					select {
					case out <- Batch{X: X, Y: Y}:
					case <-done:
						return
					}
					// start a new slice so the sent batch is not overwritten
					X = nil
					Y = nil
				}
			}
		}
	}()

	return done
}
