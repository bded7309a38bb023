package dashboard

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeCluster, ParseMode("Cluster (non supervisé)"))
	assert.Equal(t, ModeSupervised, ParseMode("Succès (supervisé)"))
	assert.Equal(t, ModeSupervised, ParseMode(""))
	assert.Equal(t, "/cluster", ModeCluster.Endpoint())
	assert.Equal(t, "/predict", ModeSupervised.Endpoint())
}

func TestDefaultForm(t *testing.T) {
	form := DefaultForm(ModeSupervised, []string{"software", "web"}, []string{"USA"})
	assert.Equal(t, 10, form.Relationships)
	assert.Equal(t, 5, form.InvestorCount)
	assert.Equal(t, 2, form.ClusterProfile)
	assert.Equal(t, 1.0, form.FundingRounds)
	assert.Equal(t, 1.0, form.FundingRoundsCount)
	assert.Equal(t, "software", form.CategoryCode)
	assert.Equal(t, "USA", form.CountryCode)
	assert.Equal(t, "Startup", form.DisplayName())
}

func TestSupervisedPayload(t *testing.T) {
	values := url.Values{
		"mode":            {string(ModeSupervised)},
		"name":            {"Acme"},
		"funding":         {"2500000"},
		"relationships":   {"12"},
		"investor_count":  {"4"},
		"category_code":   {"biotech"},
		"country_code":    {"FRA"},
		"cluster_profile": {"1"},
	}
	form, problems := ParseForm(values, []string{"software"}, []string{"USA"})
	require.Empty(t, problems)
	assert.Equal(t, "Acme", form.DisplayName())

	body, err := json.Marshal(form.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"category_code": "biotech",
		"country_code": "FRA",
		"funding_total_usd": 2500000,
		"relationships": 12,
		"total_funding_usd": 2500000,
		"investor_count": 4,
		"cluster_profile": 1
	}`, string(body))
}

func TestClusterPayload(t *testing.T) {
	values := url.Values{
		"mode":                 {string(ModeCluster)},
		"funding":              {"1000"},
		"relationships":        {"7"},
		"investor_count":       {"3"},
		"funding_rounds":       {"2"},
		"funding_rounds_count": {"2.5"},
	}
	form, problems := ParseForm(values, nil, nil)
	require.Empty(t, problems)

	body, err := json.Marshal(form.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"funding_total_usd": 1000,
		"funding_rounds": 2,
		"relationships": 7,
		"total_funding_usd": 1000,
		"funding_rounds_count": 2.5,
		"investor_count": 3
	}`, string(body))
}

func TestParseFormRejectsOutOfRange(t *testing.T) {
	values := url.Values{
		"mode":            {string(ModeSupervised)},
		"funding":         {"-1"},
		"relationships":   {"101"},
		"investor_count":  {"abc"},
		"cluster_profile": {"3"},
	}
	form, problems := ParseForm(values, nil, nil)
	assert.Len(t, problems, 4)
	assert.Equal(t, 10, form.Relationships)
	assert.Equal(t, 2, form.ClusterProfile)
}
