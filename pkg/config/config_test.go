package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.15, c.Threshold)
	assert.Equal(t, 3, c.PolyDegree)
	assert.Equal(t, "TARGET", c.Target)
	assert.Equal(t, "F3-score", c.ScoreLabel())
	assert.False(t, c.TargetSet)
	assert.False(t, c.PolyDegreeSet)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CREDIT_THRESHOLD", "0.3")
	t.Setenv("CREDIT_POLY_DEGREE", "2")
	t.Setenv("CREDIT_BETA", "2")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.3, c.Threshold)
	assert.Equal(t, 2, c.PolyDegree)
	assert.Equal(t, "F2-score", c.ScoreLabel())
	assert.True(t, c.PolyDegreeSet)
	assert.False(t, c.TargetSet)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("CREDIT_THRESHOLD", "1.5")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnparsable(t *testing.T) {
	t.Setenv("CREDIT_EPOCHS", "many")
	_, err := Load()
	assert.Error(t, err)
}
