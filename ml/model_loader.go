package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	KindLogisticRegression = "logistic_regression"
	KindDecisionTree       = "decision_tree"
	KindKMeans             = "kmeans"
)

type envelope struct {
	Kind    string `json:"kind"`
	Version string `json:"version,omitempty"`
}

// LoadModel reads a JSON artifact from disk and returns the fitted model it describes.
func LoadModel(path string) (Model, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	model, err := DecodeModel(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return model, nil
}

func DecodeModel(payload []byte) (Model, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	var model interface {
		Model
		validate() error
	}
	switch env.Kind {
	case KindLogisticRegression:
		model = &LogisticRegression{}
	case KindDecisionTree:
		model = &DecisionTree{}
	case KindKMeans:
		model = &KMeans{}
	case "":
		return nil, fmt.Errorf("artifact has no kind")
	default:
		return nil, fmt.Errorf("unsupported model kind %q", env.Kind)
	}

	if err := json.Unmarshal(payload, model); err != nil {
		return nil, fmt.Errorf("decode %s: %w", env.Kind, err)
	}
	if err := model.validate(); err != nil {
		return nil, err
	}
	return model, nil
}
