package ml

import (
	"errors"
	"fmt"
	"math"
)

// LogisticRegression is a fitted binary linear classifier.
type LogisticRegression struct {
	Encoder
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func (m *LogisticRegression) Kind() string {
	return KindLogisticRegression
}

func (m *LogisticRegression) Predict(row Row) (int, error) {
	z, err := m.decision(row)
	if err != nil {
		return 0, err
	}
	return labelFromDecision(z), nil
}

func (m *LogisticRegression) PredictProba(row Row) (int, float64, error) {
	z, err := m.decision(row)
	if err != nil {
		return 0, 0, err
	}
	return labelFromDecision(z), sigmoid(z), nil
}

func (m *LogisticRegression) decision(row Row) (float64, error) {
	x, err := m.Encode(row)
	if err != nil {
		return 0, err
	}
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("encoded %d features, model has %d coefficients", len(x), len(m.Coefficients))
	}
	z := m.Intercept
	for i, w := range m.Coefficients {
		z += w * x[i]
	}
	return z, nil
}

func (m *LogisticRegression) validate() error {
	if len(m.Columns) == 0 {
		return errors.New("logistic_regression: columns are required")
	}
	if len(m.Coefficients) == 0 {
		return errors.New("logistic_regression: coefficients are required")
	}
	if w := m.Width(); w != len(m.Coefficients) {
		return fmt.Errorf("logistic_regression: %d coefficients for %d encoded features", len(m.Coefficients), w)
	}
	return nil
}

func labelFromDecision(z float64) int {
	if z > 0 {
		return 1
	}
	return 0
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
