package ml

// Classifier is a trained binary classifier. PredictProbability returns the
// probability of the positive class for a single sample. Implementations are
// read-only after loading and may be shared between goroutines.
type Classifier interface {
	PredictProbability(features []float64) (float64, error)
	NumFeatures() int
}

// Artifact is the common header of every serialized model.
type Artifact struct {
	Type         string   `json:"type"`
	FeatureNames []string `json:"feature_names,omitempty"`
}

// NamedClassifier is implemented by models whose artifact declared the
// feature names they were trained on.
type NamedClassifier interface {
	Classifier
	FeatureNames() []string
}
