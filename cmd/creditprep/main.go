package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"creditrisk/pkg/config"
	"creditrisk/pkg/data"
	"creditrisk/pkg/dataprep"
	"creditrisk/pkg/frame"
	"creditrisk/pkg/loader"
	"creditrisk/pkg/logger"
	"creditrisk/pkg/model"
	"creditrisk/pkg/pipeline"
	"creditrisk/pkg/report"
)

//
// ---------------------- CLI FLAGS ----------------------
//
// --input       : training CSV with a header row (application_train.csv)
// --schema      : optional YAML overriding the column lists
// --target      : binary label column
// --test-ratio  : fraction of rows held out for threshold tuning
// --threshold   : decision threshold used for the final predictions
// --poly-degree : degree of the EXT_SOURCE polynomial expansion
// --beta        : beta of the F-score swept over thresholds (3 = F3)
// --plot        : where to save the F-score vs threshold chart
// --output      : optional CSV of held-out probabilities and predictions
//
// Every flag defaults to its CREDIT_* environment variable. --target and
// --poly-degree (or their env variables) override the schema file only when set.
//
// Example:
//   go run ./cmd/creditprep --input application_train.csv --plot f3.png --output preds.csv
//
// -------------------------------------------------------
//

func main() {
	logger.SetupLogging()
	log := logger.NewLogger("creditprep").With().Str("run_id", uuid.NewString()).Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	bindFlags(&cfg)
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "target":
			cfg.TargetSet = true
		case "poly-degree":
			cfg.PolyDegreeSet = true
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func bindFlags(cfg *config.Config) {
	flag.StringVar(&cfg.Input, "input", cfg.Input, "Path to input CSV file")
	flag.StringVar(&cfg.SchemaPath, "schema", cfg.SchemaPath, "YAML file with column lists")
	flag.StringVar(&cfg.Target, "target", cfg.Target, "Binary label column")
	flag.Float64Var(&cfg.TestRatio, "test-ratio", cfg.TestRatio, "Held-out fraction")
	flag.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "Decision threshold")
	flag.IntVar(&cfg.PolyDegree, "poly-degree", cfg.PolyDegree, "Polynomial feature degree")
	flag.Float64Var(&cfg.Beta, "beta", cfg.Beta, "Beta of the swept F-score")
	flag.StringVar(&cfg.PlotPath, "plot", cfg.PlotPath, "Output image for the threshold sweep")
	flag.StringVar(&cfg.Output, "output", cfg.Output, "CSV of held-out predictions")
	flag.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "Training epochs")
	flag.Float64Var(&cfg.LearningRate, "lr", cfg.LearningRate, "Learning rate")
	flag.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Mini-batch size")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for split and training")
}

// resolveSchema loads the column schema and applies the target and degree
// settings that were given explicitly.
func resolveSchema(cfg config.Config) (pipeline.Schema, error) {
	schema := pipeline.DefaultSchema()
	if cfg.SchemaPath != "" {
		s, err := pipeline.LoadSchema(cfg.SchemaPath)
		if err != nil {
			return pipeline.Schema{}, err
		}
		schema = s
	}
	if cfg.TargetSet {
		schema.Target = cfg.Target
	}
	if cfg.PolyDegreeSet {
		schema.PolyDegree = cfg.PolyDegree
	}
	if err := schema.Validate(); err != nil {
		return pipeline.Schema{}, err
	}
	return schema, nil
}

func run(cfg config.Config, log zerolog.Logger) error {
	schema, err := resolveSchema(cfg)
	if err != nil {
		return err
	}
	log.Debug().Str("target", schema.Target).Int("poly_degree", schema.PolyDegree).Msg("resolved schema")

	raw, err := data.LoadCSV(cfg.Input)
	if err != nil {
		return err
	}
	log.Info().Str("input", cfg.Input).Int("rows", raw.NumRows()).Int("cols", raw.NumCols()).Msg("loaded data")

	X, y, err := data.SplitTarget(raw, schema.Target)
	if err != nil {
		return err
	}
	X = X.Drop(schema.IDColumns...)

	rng := rand.New(rand.NewSource(cfg.Seed))
	trainIdx, testIdx, err := loader.SplitIndices(X.NumRows(), cfg.TestRatio, rng)
	if err != nil {
		return err
	}
	XTrain, err := X.TakeRows(trainIdx)
	if err != nil {
		return err
	}
	XTest, err := X.TakeRows(testIdx)
	if err != nil {
		return err
	}
	yTrain, yTest := loader.Take(y, trainIdx), loader.Take(y, testIdx)

	prep := pipeline.Preprocessing(schema).WithLogger(log)
	trainFeatures, err := prep.FitTransform(XTrain, yTrain)
	if err != nil {
		return err
	}
	for _, step := range prep.Steps() {
		if d, ok := step.Transformer.(*dataprep.ColumnDropper); ok && len(d.Dropped()) > 0 {
			log.Info().Strs("columns", d.Dropped()).Msg("dropped non-numeric or empty columns")
		}
	}
	testFeatures, err := prep.Transform(XTest)
	if err != nil {
		return err
	}
	log.Info().Int("train_rows", trainFeatures.NumRows()).Int("test_rows", testFeatures.NumRows()).
		Int("features", trainFeatures.NumCols()).Msg("preprocessed")

	MTrain, err := trainFeatures.Numeric()
	if err != nil {
		return err
	}
	MTest, err := testFeatures.Numeric()
	if err != nil {
		return err
	}

	clf := model.NewClassifier(
		model.NewLogisticRegression(cfg.LearningRate, cfg.Epochs, cfg.BatchSize, cfg.Seed),
		cfg.Threshold,
	)
	if err := clf.Fit(MTrain, yTrain); err != nil {
		return err
	}
	proba, err := clf.PredictProba(MTest)
	if err != nil {
		return err
	}
	pred, err := clf.Predict(MTest)
	if err != nil {
		return err
	}

	labels := model.Labels(yTest)
	prec, rec, _, err := model.PrecisionRecallF1(labels, pred)
	if err != nil {
		return err
	}
	fbeta, err := model.FBeta(labels, pred, cfg.Beta)
	if err != nil {
		return err
	}
	log.Info().Float64("threshold", cfg.Threshold).Float64("precision", prec).Float64("recall", rec).
		Float64(cfg.ScoreLabel(), fbeta).Msg("held-out scores")

	thresholds, err := model.Thresholds(cfg.SweepStart, cfg.SweepStop, cfg.SweepStep)
	if err != nil {
		return err
	}
	scores, err := model.ThresholdSweep(labels, proba, thresholds, cfg.Beta)
	if err != nil {
		return err
	}
	best, score, err := model.BestThreshold(thresholds, scores)
	if err != nil {
		return err
	}
	log.Info().Float64("best_threshold", best).Float64(cfg.ScoreLabel(), score).Msg("threshold sweep")

	if cfg.PlotPath != "" {
		opts := report.DefaultPlotOptions()
		opts.YLabel = cfg.ScoreLabel()
		if err := report.PlotFScore(thresholds, scores, cfg.PlotPath, opts); err != nil {
			return err
		}
		log.Info().Str("path", cfg.PlotPath).Msg("saved threshold plot")
	}

	if cfg.Output != "" {
		if err := writePredictions(cfg.Output, testFeatures.Index(), proba, pred, yTest); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Output).Msg("saved predictions")
	}
	return nil
}

func writePredictions(path string, index []int, proba []float64, pred []int, y []float64) error {
	cols := [][]frame.Value{
		make([]frame.Value, len(index)),
		make([]frame.Value, len(index)),
		make([]frame.Value, len(index)),
		make([]frame.Value, len(index)),
	}
	for i, row := range index {
		cols[0][i] = frame.Num(float64(row))
		cols[1][i] = frame.Num(proba[i])
		cols[2][i] = frame.Num(float64(pred[i]))
		cols[3][i] = frame.Num(y[i])
	}
	out, err := frame.New([]string{"row", "proba", "prediction", "target"}, cols)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := data.WriteCSV(file, out); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
