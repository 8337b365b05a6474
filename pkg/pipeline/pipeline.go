package pipeline

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"creditrisk/pkg/dataprep"
	"creditrisk/pkg/frame"
)

// Transformer is the fit/transform contract every preprocessing step follows.
// y may be nil for steps that do not use the target.
type Transformer interface {
	Fit(X *frame.Frame, y []float64) error
	Transform(X *frame.Frame) (*frame.Frame, error)
}

// Step is a named transformer.
type Step struct {
	Name string
	Transformer
}

// Pipeline chains multiple transformers.
type Pipeline struct {
	steps []Step
	log   zerolog.Logger
}

func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps, log: zerolog.Nop()}
}

// WithLogger reports per-step timing and shape at debug level.
func (p *Pipeline) WithLogger(log zerolog.Logger) *Pipeline {
	p.log = log
	return p
}

func (p *Pipeline) Steps() []Step { return append([]Step(nil), p.steps...) }

// Fit fits each step on the output of the previous one.
func (p *Pipeline) Fit(X *frame.Frame, y []float64) error {
	_, err := p.FitTransform(X, y)
	return err
}

// FitTransform fits every step and returns the fully transformed frame.
func (p *Pipeline) FitTransform(X *frame.Frame, y []float64) (*frame.Frame, error) {
	for _, step := range p.steps {
		start := time.Now()
		if err := step.Fit(X, y); err != nil {
			return nil, fmt.Errorf("pipeline: fit %s: %w", step.Name, err)
		}
		out, err := step.Transform(X)
		if err != nil {
			return nil, fmt.Errorf("pipeline: transform %s: %w", step.Name, err)
		}
		X = out
		p.log.Debug().
			Str("step", step.Name).
			Int("rows", X.NumRows()).
			Int("cols", X.NumCols()).
			Dur("elapsed", time.Since(start)).
			Msg("fitted step")
	}
	return X, nil
}

// Transform runs already fitted steps in order.
func (p *Pipeline) Transform(X *frame.Frame) (*frame.Frame, error) {
	for _, step := range p.steps {
		out, err := step.Transform(X)
		if err != nil {
			return nil, fmt.Errorf("pipeline: transform %s: %w", step.Name, err)
		}
		X = out
	}
	return X, nil
}

// Preprocessing builds the credit-default chain: label encode binary columns,
// target encode categorical ones, drop whatever cannot be made numeric,
// impute, add polynomial terms and min-max scale. Polynomial inputs are never
// dropped, so an empty one fails at the imputer under its own name.
func Preprocessing(s Schema) *Pipeline {
	dropper := dataprep.NewColumnDropper()
	dropper.Keep = append([]string(nil), s.PolyColumns...)
	return NewPipeline(
		Step{Name: "binary_label_encoder", Transformer: dataprep.NewBinaryLabelEncoder(s.BinaryColumns...)},
		Step{Name: "multiple_label_encoding", Transformer: dataprep.NewMultipleLabelEncoding(s.CategoricalColumns...)},
		Step{Name: "column_dropper", Transformer: dropper},
		Step{Name: "imputer", Transformer: dataprep.NewImputer()},
		Step{Name: "poly_features", Transformer: dataprep.NewPolyFeatures(s.PolyDegree, s.PolyColumns...)},
		Step{Name: "normalization", Transformer: dataprep.NewNormalization()},
	)
}
