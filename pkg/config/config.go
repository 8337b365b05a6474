package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the run settings. Every field can be set from the environment;
// command line flags override these values.
type Config struct {
	Input      string `envconfig:"CREDIT_INPUT" default:"application_train.csv"`
	SchemaPath string `envconfig:"CREDIT_SCHEMA"`
	Target     string `envconfig:"CREDIT_TARGET" default:"TARGET"`
	Output     string `envconfig:"CREDIT_OUTPUT"`
	PlotPath   string `envconfig:"CREDIT_PLOT" default:"f3_score.png"`

	Threshold  float64 `envconfig:"CREDIT_THRESHOLD" default:"0.15"`
	PolyDegree int     `envconfig:"CREDIT_POLY_DEGREE" default:"3"`
	Beta       float64 `envconfig:"CREDIT_BETA" default:"3"`
	TestRatio  float64 `envconfig:"CREDIT_TEST_RATIO" default:"0.2"`

	SweepStart float64 `envconfig:"CREDIT_SWEEP_START" default:"0.01"`
	SweepStop  float64 `envconfig:"CREDIT_SWEEP_STOP" default:"0.5"`
	SweepStep  float64 `envconfig:"CREDIT_SWEEP_STEP" default:"0.005"`

	Epochs       int     `envconfig:"CREDIT_EPOCHS" default:"20"`
	LearningRate float64 `envconfig:"CREDIT_LEARNING_RATE" default:"0.5"`
	BatchSize    int     `envconfig:"CREDIT_BATCH_SIZE" default:"256"`
	Seed         int64   `envconfig:"CREDIT_SEED" default:"42"`

	// TargetSet and PolyDegreeSet record an explicit env or flag value,
	// which then wins over the schema file.
	TargetSet     bool `ignored:"true"`
	PolyDegreeSet bool `ignored:"true"`
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	_, c.TargetSet = os.LookupEnv("CREDIT_TARGET")
	_, c.PolyDegreeSet = os.LookupEnv("CREDIT_POLY_DEGREE")
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Input == "":
		return fmt.Errorf("config: input path is required")
	case c.Target == "":
		return fmt.Errorf("config: target column is required")
	case c.Threshold < 0 || c.Threshold > 1:
		return fmt.Errorf("config: threshold must be in [0,1], got %v", c.Threshold)
	case c.PolyDegree < 0:
		return fmt.Errorf("config: polynomial degree must be >= 0, got %d", c.PolyDegree)
	case c.Beta <= 0:
		return fmt.Errorf("config: beta must be positive, got %v", c.Beta)
	case c.TestRatio <= 0 || c.TestRatio >= 1:
		return fmt.Errorf("config: test ratio must be in (0,1), got %v", c.TestRatio)
	case c.SweepStep <= 0 || c.SweepStart >= c.SweepStop:
		return fmt.Errorf("config: bad threshold sweep [%v,%v) step %v", c.SweepStart, c.SweepStop, c.SweepStep)
	case c.Epochs < 1 || c.BatchSize < 1 || c.LearningRate <= 0:
		return fmt.Errorf("config: epochs, batch size and learning rate must be positive")
	}
	return nil
}

// ScoreLabel names the F-beta score, e.g. "F3-score".
func (c Config) ScoreLabel() string {
	return fmt.Sprintf("F%g-score", c.Beta)
}
