package ml

import (
	"errors"
	"fmt"
	"slices"
)

const TypeDecisionTree = "decision_tree"

type DecisionTree struct {
	nodes        []TreeNode
	numFeatures  int
	featureNames []string
}

// TreeNode is one node of a flattened tree. Samples with
// features[FeatureIdx] <= Threshold follow LeftChild.
type TreeNode struct {
	FeatureIdx  int     `json:"feature_idx"`
	Threshold   float64 `json:"threshold"`
	LeftChild   int     `json:"left_child"`
	RightChild  int     `json:"right_child"`
	IsLeaf      bool    `json:"is_leaf"`
	Probability float64 `json:"probability"`
}

type decisionTreeArtifact struct {
	Artifact
	NumFeatures int        `json:"num_features"`
	Nodes       []TreeNode `json:"nodes"`
}

func NewDecisionTree(nodes []TreeNode, numFeatures int, featureNames []string) (*DecisionTree, error) {
	if len(featureNames) > 0 {
		if numFeatures == 0 {
			numFeatures = len(featureNames)
		}
		if numFeatures != len(featureNames) {
			return nil, fmt.Errorf("num_features %d does not match %d feature names", numFeatures, len(featureNames))
		}
	}
	if err := validateNodes(nodes, numFeatures); err != nil {
		return nil, err
	}
	return &DecisionTree{
		nodes:        slices.Clone(nodes),
		numFeatures:  numFeatures,
		featureNames: slices.Clone(featureNames),
	}, nil
}

func (dt *DecisionTree) PredictProbability(features []float64) (float64, error) {
	if len(dt.nodes) == 0 {
		return 0, errors.New("model not trained")
	}
	if len(features) != dt.numFeatures {
		return 0, fmt.Errorf("X has %d features, but DecisionTree is expecting %d features as input", len(features), dt.numFeatures)
	}
	return dt.walk(features)
}

func (dt *DecisionTree) walk(features []float64) (float64, error) {
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.Probability, nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx <= 0 || idx >= len(dt.nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

func (dt *DecisionTree) NumFeatures() int {
	return dt.numFeatures
}

func (dt *DecisionTree) FeatureNames() []string {
	return slices.Clone(dt.featureNames)
}

// validateNodes rejects trees that could loop or index out of range. Children
// must come after their parent, which is how pre-order exports lay them out.
func validateNodes(nodes []TreeNode, numFeatures int) error {
	if len(nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	if numFeatures <= 0 {
		return errors.New("num_features must be positive")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			if node.Probability < 0 || node.Probability > 1 {
				return fmt.Errorf("node %d: leaf probability %v outside [0,1]", i, node.Probability)
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= numFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) {
			return fmt.Errorf("node %d: left child %d out of range", i, node.LeftChild)
		}
		if node.RightChild <= i || node.RightChild >= len(nodes) {
			return fmt.Errorf("node %d: right child %d out of range", i, node.RightChild)
		}
	}
	return nil
}
