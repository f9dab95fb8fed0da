package inference

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"strokerisk/ml"
)

// Payload is a decoded request body: feature name to raw JSON value.
type Payload map[string]any

// Normalizer turns payloads into feature vectors ordered by a FeatureSpec.
type Normalizer struct {
	spec ml.FeatureSpec
}

func NewNormalizer(spec ml.FeatureSpec) *Normalizer {
	return &Normalizer{spec: spec}
}

// Vector reports every missing feature at once before looking at any value.
// Keys outside the spec are ignored.
func (n *Normalizer) Vector(payload Payload) ([]float64, error) {
	names := n.spec.Names()
	missing := lo.Filter(names, func(name string, _ int) bool {
		_, ok := payload[name]
		return !ok
	})
	if len(missing) > 0 {
		return nil, missingFeatures(missing)
	}

	vector := make([]float64, len(names))
	for i, name := range names {
		value, err := toFloat(payload[name])
		if err != nil {
			return nil, invalidValue(name, payload[name], err)
		}
		vector[i] = value
	}
	return vector, nil
}

var (
	errNotFinite   = errors.New("value is not finite")
	errUnsupported = errors.New("not a number")
)

func toFloat(value any) (float64, error) {
	var f float64
	switch v := value.(type) {
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case bool:
		if v {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, errors.Unwrap(err)
		}
		f = parsed
	default:
		return 0, errUnsupported
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}
