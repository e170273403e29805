package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRandIsDeterministic(t *testing.T) {
	a := NewRand(99)
	b := NewRand(99)

	for range 100 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestUniformStaysInRange(t *testing.T) {
	rng := NewRand(1)
	for range 10000 {
		v := Uniform(rng, -3, 7)
		assert.True(t, v >= -3 && v < 7, "v=%v", v)
	}
}

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Size  int     `validate:"min=2"`
		Ratio float64 `validate:"min=0,max=1"`
		Mode  string  `validate:"oneof=a b"`
	}

	assert.NoError(t, ValidateStruct(sample{Size: 2, Ratio: 0.5, Mode: "a"}))

	err := ValidateStruct(sample{Size: 1, Ratio: 0.5, Mode: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Size")

	err = ValidateStruct(sample{Size: 2, Ratio: 0.5, Mode: "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mode")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, "warn", "json")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = NewLogger(&buf, "loud", "text")
	assert.Error(t, err)

	_, err = NewLogger(&buf, "info", "xml")
	assert.Error(t, err)
}
