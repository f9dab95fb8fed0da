package inference

import "math"

// Threshold is the calibrated operating point of the stroke model. A
// probability at or above it is a positive prediction.
const Threshold = 0.35

type Result struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
}

// Decide applies Threshold to the raw probability. The reported probability is
// rounded to 3 decimals, halves away from zero; the decision uses the raw value.
func Decide(p float64) Result {
	prediction := 0
	if p >= Threshold {
		prediction = 1
	}
	return Result{
		Prediction:  prediction,
		Probability: round3(p),
	}
}

func round3(p float64) float64 {
	return math.Round(p*1000) / 1000
}
