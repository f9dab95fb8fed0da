package inference

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strokerisk/ml"
)

func fullPayload() Payload {
	payload := Payload{}
	for i, name := range ml.StrokeFeatures().Names() {
		payload[name] = json.Number(strconv.Itoa(i + 1))
	}
	return payload
}

func TestNormalizerOrdersBySpec(t *testing.T) {
	n := NewNormalizer(ml.StrokeFeatures())

	vector, err := n.Vector(fullPayload())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, vector)
}

func TestNormalizerIgnoresExtraKeys(t *testing.T) {
	n := NewNormalizer(ml.StrokeFeatures())
	payload := fullPayload()
	payload["Unknown"] = "whatever"
	payload["Hospital"] = nil

	vector, err := n.Vector(payload)
	require.NoError(t, err)
	assert.Len(t, vector, 12)
}

func TestNormalizerCollectsAllMissing(t *testing.T) {
	n := NewNormalizer(ml.StrokeFeatures())
	payload := fullPayload()
	delete(payload, "UICC TNM Tumor Stage Code_T3b")
	delete(payload, "Diagnosis Age")
	delete(payload, "Disease Free (Months)")
	// A bad value must not hide the missing features.
	payload["Karnofsky Performance Score"] = "high"

	_, err := n.Vector(payload)
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindMissingFeatures, perr.Kind)
	assert.Equal(t, []string{"Disease Free (Months)", "Diagnosis Age", "UICC TNM Tumor Stage Code_T3b"}, perr.Missing)
	assert.Equal(t,
		"Champs manquants : ['Disease Free (Months)', 'Diagnosis Age', 'UICC TNM Tumor Stage Code_T3b']",
		perr.Error())
}

func TestNormalizerEmptyPayload(t *testing.T) {
	n := NewNormalizer(ml.StrokeFeatures())

	_, err := n.Vector(Payload{})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ml.StrokeFeatures().Names(), perr.Missing)
}

func TestNormalizerCoercion(t *testing.T) {
	n := NewNormalizer(ml.StrokeFeatures())

	payload := fullPayload()
	payload["Diagnosis Age"] = "61.5"
	payload["Person Neoplasm Status_WITH TUMOR"] = true
	payload["Person Neoplasm Status_TUMOR FREE"] = false
	payload["Disease Free (Months)"] = 12.25

	vector, err := n.Vector(payload)
	require.NoError(t, err)
	assert.Equal(t, 12.25, vector[0])
	assert.Equal(t, 1.0, vector[1])
	assert.Equal(t, 0.0, vector[2])
	assert.Equal(t, 61.5, vector[4])
}

func TestNormalizerInvalidValue(t *testing.T) {
	n := NewNormalizer(ml.StrokeFeatures())

	for name, value := range map[string]any{
		"word":   "abc",
		"null":   nil,
		"object": map[string]any{"a": 1},
		"array":  []any{json.Number("1")},
		"nan":    "NaN",
	} {
		t.Run(name, func(t *testing.T) {
			payload := fullPayload()
			payload["Diagnosis Age"] = value

			_, err := n.Vector(payload)
			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, KindInvalidValue, perr.Kind)
			assert.Equal(t, "Diagnosis Age", perr.Feature)
			assert.Contains(t, perr.Error(), "'Diagnosis Age'")
		})
	}
}

func TestPyList(t *testing.T) {
	assert.Equal(t, "[]", pyList(nil))
	assert.Equal(t, "['a']", pyList([]string{"a"}))
	assert.Equal(t, `["it's", 'b']`, pyList([]string{"it's", "b"}))
}
