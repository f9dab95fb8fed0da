package ml

import (
	"errors"
	"fmt"
	"slices"
)

const TypeRandomForest = "random_forest"

// RandomForest averages the positive-class probability of its trees.
type RandomForest struct {
	trees        []*DecisionTree
	numFeatures  int
	featureNames []string
}

type randomForestArtifact struct {
	Artifact
	NumFeatures int `json:"num_features"`
	Trees       []struct {
		Nodes []TreeNode `json:"nodes"`
	} `json:"trees"`
}

func NewRandomForest(trees []*DecisionTree, featureNames []string) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, errors.New("random forest has no trees")
	}
	numFeatures := trees[0].NumFeatures()
	for i, tree := range trees[1:] {
		if tree.NumFeatures() != numFeatures {
			return nil, fmt.Errorf("tree %d expects %d features, tree 0 expects %d", i+1, tree.NumFeatures(), numFeatures)
		}
	}
	if len(featureNames) > 0 && len(featureNames) != numFeatures {
		return nil, fmt.Errorf("num_features %d does not match %d feature names", numFeatures, len(featureNames))
	}
	return &RandomForest{
		trees:        slices.Clone(trees),
		numFeatures:  numFeatures,
		featureNames: slices.Clone(featureNames),
	}, nil
}

func (rf *RandomForest) PredictProbability(features []float64) (float64, error) {
	if len(features) != rf.numFeatures {
		return 0, fmt.Errorf("X has %d features, but RandomForestClassifier is expecting %d features as input", len(features), rf.numFeatures)
	}
	var sum float64
	for i, tree := range rf.trees {
		p, err := tree.walk(features)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += p
	}
	return sum / float64(len(rf.trees)), nil
}

func (rf *RandomForest) NumFeatures() int {
	return rf.numFeatures
}

func (rf *RandomForest) FeatureNames() []string {
	return slices.Clone(rf.featureNames)
}
