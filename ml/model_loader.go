package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// LoadModel reads a JSON model artifact. An empty modelType accepts whatever
// type the artifact declares.
func LoadModel(modelType, path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	model, err := DecodeModel(payload)
	if err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	if modelType != "" && ModelType(model) != modelType {
		return nil, fmt.Errorf("model artifact %s is a %s, configured model type is %s", path, ModelType(model), modelType)
	}
	return model, nil
}

func DecodeModel(payload []byte) (Classifier, error) {
	var header Artifact
	if err := json.Unmarshal(payload, &header); err != nil {
		return nil, err
	}

	switch header.Type {
	case TypeLogisticRegression:
		var artifact logisticArtifact
		if err := json.Unmarshal(payload, &artifact); err != nil {
			return nil, err
		}
		return NewLogisticRegression(artifact.Coefficients, artifact.Intercept, artifact.FeatureNames)
	case TypeDecisionTree:
		var artifact decisionTreeArtifact
		if err := json.Unmarshal(payload, &artifact); err != nil {
			return nil, err
		}
		return NewDecisionTree(artifact.Nodes, artifact.NumFeatures, artifact.FeatureNames)
	case TypeRandomForest:
		var artifact randomForestArtifact
		if err := json.Unmarshal(payload, &artifact); err != nil {
			return nil, err
		}
		trees := make([]*DecisionTree, 0, len(artifact.Trees))
		for i, t := range artifact.Trees {
			tree, err := NewDecisionTree(t.Nodes, artifact.NumFeatures, artifact.FeatureNames)
			if err != nil {
				return nil, fmt.Errorf("tree %d: %w", i, err)
			}
			trees = append(trees, tree)
		}
		return NewRandomForest(trees, artifact.FeatureNames)
	case "":
		return nil, errors.New("model type is missing")
	default:
		return nil, fmt.Errorf("unsupported model type %q", header.Type)
	}
}

// CheckFeatureNames verifies a model against the feature contract. Models that
// did not record their feature names are only checked for input width.
func CheckFeatureNames(model Classifier, spec FeatureSpec) error {
	if model.NumFeatures() != spec.Len() {
		return fmt.Errorf("model expects %d features, feature spec has %d", model.NumFeatures(), spec.Len())
	}
	named, ok := model.(NamedClassifier)
	if !ok {
		return nil
	}
	names := named.FeatureNames()
	if len(names) == 0 {
		return nil
	}
	if !spec.Equal(names) {
		return fmt.Errorf("model feature names %q do not match feature spec %q", names, spec.Names())
	}
	return nil
}

// ModelType names the artifact type of a loaded model.
func ModelType(model Classifier) string {
	switch model.(type) {
	case *LogisticRegression:
		return TypeLogisticRegression
	case *DecisionTree:
		return TypeDecisionTree
	case *RandomForest:
		return TypeRandomForest
	default:
		return fmt.Sprintf("%T", model)
	}
}
