package ml

import (
	"errors"
	"fmt"
)

type DecisionTree struct {
	Encoder
	Nodes []TreeNode `json:"nodes"`
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Proba      float64 `json:"proba"`
	IsLeaf     bool    `json:"is_leaf"`
}

func (dt *DecisionTree) Kind() string {
	return KindDecisionTree
}

func (dt *DecisionTree) Predict(row Row) (int, error) {
	label, _, err := dt.PredictProba(row)
	return label, err
}

func (dt *DecisionTree) PredictProba(row Row) (int, float64, error) {
	features, err := dt.Encode(row)
	if err != nil {
		return 0, 0, err
	}
	node, err := dt.leaf(features)
	if err != nil {
		return 0, 0, err
	}
	label := 0
	if node.Proba > 0.5 {
		label = 1
	}
	return label, node.Proba, nil
}

func (dt *DecisionTree) leaf(features []float64) (TreeNode, error) {
	if len(dt.Nodes) == 0 {
		return TreeNode{}, errors.New("model not trained")
	}
	idx := 0
	// a well-formed tree reaches a leaf in fewer steps than it has nodes
	for steps := 0; steps <= len(dt.Nodes); steps++ {
		node := dt.Nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return TreeNode{}, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.Nodes) {
			return TreeNode{}, errors.New("invalid tree state")
		}
	}
	return TreeNode{}, errors.New("invalid tree state")
}

func (dt *DecisionTree) validate() error {
	if len(dt.Nodes) == 0 {
		return errors.New("decision_tree: nodes are required")
	}
	for i, node := range dt.Nodes {
		if node.IsLeaf && (node.Proba < 0 || node.Proba > 1) {
			return fmt.Errorf("decision_tree: node %d has probability %v outside [0, 1]", i, node.Proba)
		}
	}
	return nil
}
