package ml

import (
	"errors"
	"fmt"
	"math"
)

// KMeans assigns a row to its nearest centroid. Categorical columns are not supported.
type KMeans struct {
	Encoder
	Centroids [][]float64 `json:"centroids"`
}

func (k *KMeans) Kind() string {
	return KindKMeans
}

func (k *KMeans) Predict(row Row) (int, error) {
	x, err := k.Encode(row)
	if err != nil {
		return 0, err
	}
	best := -1
	bestDist := math.Inf(1)
	for i, centroid := range k.Centroids {
		if len(centroid) != len(x) {
			return 0, fmt.Errorf("X has %d features, centroid %d has %d", len(x), i, len(centroid))
		}
		d := squaredDistance(x, centroid)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return 0, errors.New("no centroid within reach")
	}
	return best, nil
}

func (k *KMeans) validate() error {
	if len(k.Centroids) == 0 {
		return errors.New("kmeans: centroids are required")
	}
	if len(k.Categorical) > 0 {
		return errors.New("kmeans: categorical columns are not supported")
	}
	dim := len(k.Centroids[0])
	for i, c := range k.Centroids {
		if len(c) != dim || dim == 0 {
			return fmt.Errorf("kmeans: centroid %d has %d dimensions, want %d", i, len(c), dim)
		}
	}
	if len(k.Columns) > 0 && len(k.Columns) != dim {
		return fmt.Errorf("kmeans: %d columns for %d-dimensional centroids", len(k.Columns), dim)
	}
	return nil
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
