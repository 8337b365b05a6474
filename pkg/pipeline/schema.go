package pipeline

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"creditrisk/pkg/dataprep"
)

// Schema names the columns each preprocessing step works on.
type Schema struct {
	Target             string   `yaml:"target"`
	IDColumns          []string `yaml:"id_columns"`
	BinaryColumns      []string `yaml:"binary_columns"`
	CategoricalColumns []string `yaml:"categorical_columns"`
	PolyColumns        []string `yaml:"poly_columns"`
	PolyDegree         int      `yaml:"poly_degree"`
}

func DefaultSchema() Schema {
	return Schema{
		Target:             "TARGET",
		IDColumns:          []string{"SK_ID_CURR"},
		BinaryColumns:      append([]string(nil), dataprep.DefaultBinaryColumns...),
		CategoricalColumns: append([]string(nil), dataprep.DefaultCategoricalColumns...),
		PolyColumns:        append([]string(nil), dataprep.DefaultPolyColumns...),
		PolyDegree:         3,
	}
}

// ParseSchema overlays YAML onto the default schema; keys left out keep their defaults.
func ParseSchema(raw []byte) (Schema, error) {
	s := DefaultSchema()
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Schema{}, fmt.Errorf("pipeline: parse schema: %w", err)
	}
	return s, s.Validate()
}

func LoadSchema(path string) (Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, err
	}
	return ParseSchema(raw)
}

// Validate rejects schemas where a column would be handled twice.
func (s Schema) Validate() error {
	if s.Target == "" {
		return errors.New("pipeline: schema has no target column")
	}
	if s.PolyDegree < 0 {
		return fmt.Errorf("pipeline: polynomial degree must be >= 0, got %d", s.PolyDegree)
	}
	seen := map[string]string{s.Target: "target"}
	groups := []struct {
		name string
		cols []string
	}{
		{"id_columns", s.IDColumns},
		{"binary_columns", s.BinaryColumns},
		{"categorical_columns", s.CategoricalColumns},
	}
	for _, g := range groups {
		for _, c := range g.cols {
			if prev, ok := seen[c]; ok {
				return fmt.Errorf("pipeline: column %q listed in both %s and %s", c, prev, g.name)
			}
			seen[c] = g.name
		}
	}
	for _, c := range s.PolyColumns {
		if c == s.Target {
			return fmt.Errorf("pipeline: target %q cannot be a polynomial input", c)
		}
	}
	return nil
}
