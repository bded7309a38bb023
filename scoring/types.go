// Package scoring maps prediction requests onto the loaded artifacts and formats their answers.
package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"unicorn/ml"
)

const (
	// PriorityThreshold is the positive-class probability above which a startup is a priority.
	PriorityThreshold = 0.70

	RecommendationPriority = "Investissement prioritaire"
	RecommendationWatch    = "À surveiller"

	StatusSuccess = "success"
)

// ClusterFeatures is the positional feature order the clustering artifact was fitted on.
var ClusterFeatures = []string{
	"funding_total_usd",
	"funding_rounds",
	"relationships",
	"total_funding_usd",
	"funding_rounds_count",
	"investor_count",
}

var clusterProfiles = map[int]string{
	0: "Cluster 0 : low-probability profile (~4% historical)",
	1: "Cluster 1 : intermediate profile",
	2: "Cluster 2 : elite profile (~54% historical)",
}

// SupervisedInput is the /predict request body.
type SupervisedInput struct {
	CategoryCode    string  `json:"category_code"`
	CountryCode     string  `json:"country_code"`
	FundingTotalUSD float64 `json:"funding_total_usd"`
	Relationships   int     `json:"relationships"`
	TotalFundingUSD float64 `json:"total_funding_usd"`
	InvestorCount   int     `json:"investor_count"`
	ClusterProfile  int     `json:"cluster_profile"`
}

// UnmarshalJSON accepts whole numbers written with a fraction, such as 10.0, for the integer fields.
func (in *SupervisedInput) UnmarshalJSON(data []byte) error {
	var wire struct {
		CategoryCode    string  `json:"category_code"`
		CountryCode     string  `json:"country_code"`
		FundingTotalUSD float64 `json:"funding_total_usd"`
		Relationships   float64 `json:"relationships"`
		TotalFundingUSD float64 `json:"total_funding_usd"`
		InvestorCount   float64 `json:"investor_count"`
		ClusterProfile  float64 `json:"cluster_profile"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	relationships, err := wholeNumber("relationships", wire.Relationships)
	if err != nil {
		return err
	}
	investors, err := wholeNumber("investor_count", wire.InvestorCount)
	if err != nil {
		return err
	}
	profile, err := wholeNumber("cluster_profile", wire.ClusterProfile)
	if err != nil {
		return err
	}

	*in = SupervisedInput{
		CategoryCode:    wire.CategoryCode,
		CountryCode:     wire.CountryCode,
		FundingTotalUSD: wire.FundingTotalUSD,
		Relationships:   relationships,
		TotalFundingUSD: wire.TotalFundingUSD,
		InvestorCount:   investors,
		ClusterProfile:  profile,
	}
	return nil
}

func wholeNumber(field string, v float64) (int, error) {
	if math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, &json.UnmarshalTypeError{
			Value: "number " + strconv.FormatFloat(v, 'g', -1, 64),
			Type:  reflect.TypeOf(0),
			Field: field,
		}
	}
	return int(v), nil
}

// Row builds the single-row feature table in field declaration order.
func (in SupervisedInput) Row() ml.Row {
	return ml.Row{
		Columns: []string{
			"category_code",
			"country_code",
			"funding_total_usd",
			"relationships",
			"total_funding_usd",
			"investor_count",
			"cluster_profile",
		},
		Values: []any{
			in.CategoryCode,
			in.CountryCode,
			in.FundingTotalUSD,
			in.Relationships,
			in.TotalFundingUSD,
			in.InvestorCount,
			in.ClusterProfile,
		},
	}
}

// ClusterInput is the /cluster request body.
type ClusterInput struct {
	FundingTotalUSD    float64 `json:"funding_total_usd"`
	FundingRounds      float64 `json:"funding_rounds"`
	Relationships      float64 `json:"relationships"`
	TotalFundingUSD    float64 `json:"total_funding_usd"`
	FundingRoundsCount float64 `json:"funding_rounds_count"`
	InvestorCount      float64 `json:"investor_count"`
}

// Vector returns the features in ClusterFeatures order.
func (in ClusterInput) Vector() []float64 {
	return []float64{
		in.FundingTotalUSD,
		in.FundingRounds,
		in.Relationships,
		in.TotalFundingUSD,
		in.FundingRoundsCount,
		in.InvestorCount,
	}
}

func (in ClusterInput) Row() ml.Row {
	vector := in.Vector()
	values := make([]any, len(vector))
	for i, v := range vector {
		values[i] = v
	}
	columns := make([]string, len(ClusterFeatures))
	copy(columns, ClusterFeatures)
	return ml.Row{Columns: columns, Values: values}
}

// Flag is a boolean carried as 0 or 1 on the wire.
type Flag bool

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "1", "true":
		*f = true
	case "0", "false":
		*f = false
	default:
		return fmt.Errorf("invalid flag %s", data)
	}
	return nil
}

// SupervisedResult is the /predict success body.
type SupervisedResult struct {
	Status          string `json:"status"`
	IsUnicorn       Flag   `json:"is_unicorn"`
	ConfidenceScore string `json:"confidence_score"`
	Recommendation  string `json:"recommendation"`
}

// ClusterResult is the /cluster success body.
type ClusterResult struct {
	Status         string `json:"status"`
	ClusterLabel   int    `json:"cluster_label"`
	ClusterProfile string `json:"cluster_profile"`
}

// Health reports which artifacts are loaded.
type Health struct {
	Message          string `json:"message"`
	SupervisedLoaded bool   `json:"supervised_loaded"`
	ClusteringLoaded bool   `json:"clustering_loaded"`
}

// Recommend applies the fixed investment policy to a positive-class probability.
func Recommend(probability float64) string {
	if probability > PriorityThreshold {
		return RecommendationPriority
	}
	return RecommendationWatch
}

// FormatConfidence renders a probability as a percentage with two decimals, e.g. "73.42%".
func FormatConfidence(probability float64) string {
	return fmt.Sprintf("%.2f%%", probability*100)
}

// ClusterProfile describes a cluster label; unmapped labels get a generic "Cluster N".
func ClusterProfile(label int) string {
	if profile, ok := clusterProfiles[label]; ok {
		return profile
	}
	return fmt.Sprintf("Cluster %d", label)
}
