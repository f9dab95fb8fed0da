package ml

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

const TypeLogisticRegression = "logistic_regression"

// LogisticRegression scores p = 1 / (1 + exp(-(w·x + b))).
type LogisticRegression struct {
	coefficients []float64
	intercept    float64
	featureNames []string
}

type logisticArtifact struct {
	Artifact
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func NewLogisticRegression(coefficients []float64, intercept float64, featureNames []string) (*LogisticRegression, error) {
	if len(coefficients) == 0 {
		return nil, errors.New("logistic regression has no coefficients")
	}
	if len(featureNames) > 0 && len(featureNames) != len(coefficients) {
		return nil, fmt.Errorf("%d coefficients for %d feature names", len(coefficients), len(featureNames))
	}
	for i, c := range coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("coefficient %d is not finite", i)
		}
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, errors.New("intercept is not finite")
	}
	return &LogisticRegression{
		coefficients: slices.Clone(coefficients),
		intercept:    intercept,
		featureNames: slices.Clone(featureNames),
	}, nil
}

func (lr *LogisticRegression) PredictProbability(features []float64) (float64, error) {
	if len(features) != len(lr.coefficients) {
		return 0, fmt.Errorf("X has %d features, but LogisticRegression is expecting %d features as input", len(features), len(lr.coefficients))
	}
	z := lr.intercept
	for i, w := range lr.coefficients {
		z += w * features[i]
	}
	return sigmoid(z), nil
}

func (lr *LogisticRegression) NumFeatures() int {
	return len(lr.coefficients)
}

func (lr *LogisticRegression) FeatureNames() []string {
	return slices.Clone(lr.featureNames)
}

// sigmoid avoids overflow of exp for large |z|.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
