package ml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogisticRegressionPredict(t *testing.T) {
	model, err := NewLogisticRegression([]float64{1, -2}, 0.5, nil)
	require.NoError(t, err)

	p, err := model.PredictProbability([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-0.5)), p, 1e-12)

	p, err = model.PredictProbability([]float64{2, 1.25})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)
}

func TestLogisticRegressionExtremeScores(t *testing.T) {
	model, err := NewLogisticRegression([]float64{1}, 0, nil)
	require.NoError(t, err)

	p, err := model.PredictProbability([]float64{-1e6})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(p))
	assert.GreaterOrEqual(t, p, 0.0)

	p, err = model.PredictProbability([]float64{1e6})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestLogisticRegressionValidation(t *testing.T) {
	_, err := NewLogisticRegression(nil, 0, nil)
	assert.Error(t, err)

	_, err = NewLogisticRegression([]float64{1, 2}, 0, []string{"a"})
	assert.Error(t, err)

	_, err = NewLogisticRegression([]float64{math.NaN()}, 0, nil)
	assert.Error(t, err)

	model, err := NewLogisticRegression([]float64{1, 2}, 0, nil)
	require.NoError(t, err)
	_, err = model.PredictProbability([]float64{1})
	assert.Error(t, err)
}
