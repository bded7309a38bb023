package scoring

import (
	"path/filepath"

	"unicorn/ml"
)

const healthMessage = "API Unicorn Predictor est en ligne !"

// Engine answers scoring queries against artifacts loaded once at startup.
// It holds no mutable state and is safe for concurrent use as long as the models are.
type Engine struct {
	supervised ml.Artifact[ml.ProbabilisticModel]
	clustering ml.Artifact[ml.Model]
}

// NewEngine wraps the two artifact slots; either may be empty.
func NewEngine(supervised ml.Artifact[ml.ProbabilisticModel], clustering ml.Artifact[ml.Model]) *Engine {
	return &Engine{
		supervised: supervised,
		clustering: clustering,
	}
}

// Health reports the loaded state of both slots.
func (e *Engine) Health() Health {
	return Health{
		Message:          healthMessage,
		SupervisedLoaded: e.supervised.Loaded(),
		ClusteringLoaded: e.clustering.Loaded(),
	}
}

// Predict scores in with the supervised artifact and applies the investment policy.
func (e *Engine) Predict(in SupervisedInput) (*SupervisedResult, error) {
	model, ok := e.supervised.Get()
	if !ok {
		return nil, newArtifactMissingError(
			"Modèle supervisé non chargé. Vérifiez "+artifactName(e.supervised.Path(), "unicorn_model.json"),
			e.supervised.Err(),
		)
	}

	label, probability, err := model.PredictProba(in.Row())
	if err != nil {
		return nil, newInferenceError("predict", err)
	}

	return &SupervisedResult{
		Status:          StatusSuccess,
		IsUnicorn:       Flag(label != 0),
		ConfidenceScore: FormatConfidence(probability),
		Recommendation:  Recommend(probability),
	}, nil
}

// Cluster assigns in to a segment of the clustering artifact.
func (e *Engine) Cluster(in ClusterInput) (*ClusterResult, error) {
	model, ok := e.clustering.Get()
	if !ok {
		return nil, newArtifactMissingError(
			"Modèle de clustering non chargé. Vérifiez "+artifactName(e.clustering.Path(), "unicorn_clusters.json"),
			e.clustering.Err(),
		)
	}

	label, err := model.Predict(in.Row())
	if err != nil {
		return nil, newInferenceError("cluster", err)
	}

	return &ClusterResult{
		Status:         StatusSuccess,
		ClusterLabel:   label,
		ClusterProfile: ClusterProfile(label),
	}, nil
}

func artifactName(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return filepath.Base(path)
}
