package ml

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// FeatureSpec is the ordered list of feature names a model consumes.
// Position i of a feature vector holds the value of Names()[i].
type FeatureSpec struct {
	names []string
}

var strokeFeatureNames = []string{
	"Disease Free (Months)",
	"Person Neoplasm Status_WITH TUMOR",
	"Person Neoplasm Status_TUMOR FREE",
	"New Neoplasm Event Post Initial Therapy Indicator_NO",
	"Diagnosis Age",
	"New Neoplasm Event Post Initial Therapy Indicator_YES",
	"Patient Smoking History Category",
	"UICC TNM Tumor Stage Code_T2a",
	"Karnofsky Performance Score",
	"UICC TNM Tumor Stage Code_T2",
	"Prior Cancer Diagnosis Occurence_No",
	"UICC TNM Tumor Stage Code_T3b",
}

// StrokeFeatures returns the 12-feature contract of the post-operative stroke model.
func StrokeFeatures() FeatureSpec {
	spec, err := NewFeatureSpec(strokeFeatureNames)
	if err != nil {
		panic(err)
	}
	return spec
}

func NewFeatureSpec(names []string) (FeatureSpec, error) {
	if len(names) == 0 {
		return FeatureSpec{}, errors.New("feature spec is empty")
	}
	for i, name := range names {
		if name == "" {
			return FeatureSpec{}, fmt.Errorf("feature %d has an empty name", i)
		}
	}
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return FeatureSpec{}, fmt.Errorf("duplicate feature names: %v", dups)
	}
	return FeatureSpec{names: slices.Clone(names)}, nil
}

// Names returns a copy, so callers cannot reorder the contract.
func (s FeatureSpec) Names() []string {
	return slices.Clone(s.names)
}

func (s FeatureSpec) Len() int {
	return len(s.names)
}

func (s FeatureSpec) Name(i int) string {
	return s.names[i]
}

func (s FeatureSpec) Equal(names []string) bool {
	return slices.Equal(s.names, names)
}
