package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitPolynomialRecoversCubic(t *testing.T) {
	want := []float64{1, -2, 0.5, 3}

	xs := make([]float64, 20)
	ys := make([]float64, 20)
	for i := range xs {
		xs[i] = float64(i) / 19
		ys[i] = EvalPolynomial(want, xs[i])
	}

	got, err := FitPolynomial(xs, ys, 3)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.InDeltaSlice(t, want, got, 1e-6)
}

func TestFitPolynomialConstant(t *testing.T) {
	got, err := FitPolynomial([]float64{0, 1, 2}, []float64{5, 5, 5}, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5}, got, 1e-9)
}

func TestFitPolynomialRejectsBadInput(t *testing.T) {
	_, err := FitPolynomial([]float64{1, 2, 3}, []float64{1, 2, 3}, 3)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = FitPolynomial([]float64{1, 2}, []float64{1}, 1)
	assert.Error(t, err)

	_, err = FitPolynomial([]float64{1, 2}, []float64{1, 2}, -1)
	assert.Error(t, err)
}

func TestEvalPolynomial(t *testing.T) {
	// 2 + 3x + x^2
	coef := []float64{2, 3, 1}
	assert.Equal(t, 2.0, EvalPolynomial(coef, 0))
	assert.Equal(t, 6.0, EvalPolynomial(coef, 1))
	assert.Equal(t, 12.0, EvalPolynomial(coef, 2))
	assert.Equal(t, 0.0, EvalPolynomial(nil, 3))
}
