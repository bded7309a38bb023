package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"unicorn/scoring"
)

type Mode string

const (
	ModeSupervised Mode = "Succès (supervisé)"
	ModeCluster    Mode = "Cluster (non supervisé)"
)

var Modes = []Mode{ModeSupervised, ModeCluster}

// ParseMode falls back to the supervised mode for unknown values.
func ParseMode(s string) Mode {
	if Mode(s) == ModeCluster {
		return ModeCluster
	}
	return ModeSupervised
}

func (m Mode) Endpoint() string {
	if m == ModeCluster {
		return "/cluster"
	}
	return "/predict"
}

// Form holds the prediction form fields of both modes.
type Form struct {
	Mode               Mode
	Name               string
	Funding            float64
	Relationships      int
	InvestorCount      int
	CategoryCode       string
	CountryCode        string
	ClusterProfile     int
	FundingRounds      float64
	FundingRoundsCount float64
}

func DefaultForm(mode Mode, categories, countries []string) Form {
	form := Form{
		Mode:               mode,
		Relationships:      10,
		InvestorCount:      5,
		ClusterProfile:     2,
		FundingRounds:      1.0,
		FundingRoundsCount: 1.0,
	}
	if len(categories) > 0 {
		form.CategoryCode = categories[0]
	}
	if len(countries) > 0 {
		form.CountryCode = countries[0]
	}
	return form
}

// ParseForm reads a submitted form. Each invalid field yields one message;
// the form is only submitted when there are none.
func ParseForm(values url.Values, categories, countries []string) (Form, []string) {
	form := DefaultForm(ParseMode(values.Get("mode")), categories, countries)
	var problems []string

	form.Name = strings.TrimSpace(values.Get("name"))

	readFloat := func(key, label string, target *float64) {
		raw := strings.TrimSpace(values.Get(key))
		if raw == "" {
			return
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil || v < 0 {
			problems = append(problems, fmt.Sprintf("%s : valeur invalide %q", label, raw))
			return
		}
		*target = v
	}
	readInt := func(key, label string, lo, hi int, target *int) {
		raw := strings.TrimSpace(values.Get(key))
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < lo || (hi >= lo && v > hi) {
			problems = append(problems, fmt.Sprintf("%s : valeur invalide %q", label, raw))
			return
		}
		*target = v
	}

	readFloat("funding", "Total levé (USD)", &form.Funding)
	readInt("relationships", "Nombre de relations", 0, 100, &form.Relationships)
	readInt("investor_count", "Nombre d'investisseurs", 0, -1, &form.InvestorCount)

	if form.Mode == ModeSupervised {
		if v := values.Get("category_code"); v != "" {
			form.CategoryCode = v
		}
		if v := values.Get("country_code"); v != "" {
			form.CountryCode = v
		}
		readInt("cluster_profile", "Cluster profil", 0, 2, &form.ClusterProfile)
	} else {
		readFloat("funding_rounds", "Nombre de tours de financement", &form.FundingRounds)
		readFloat("funding_rounds_count", "Nombre total de tours (count)", &form.FundingRoundsCount)
	}
	return form, problems
}

// Payload builds the request body for the active mode. Both funding fields carry Funding.
func (f Form) Payload() any {
	if f.Mode == ModeCluster {
		return scoring.ClusterInput{
			FundingTotalUSD:    f.Funding,
			FundingRounds:      f.FundingRounds,
			Relationships:      float64(f.Relationships),
			TotalFundingUSD:    f.Funding,
			FundingRoundsCount: f.FundingRoundsCount,
			InvestorCount:      float64(f.InvestorCount),
		}
	}
	return scoring.SupervisedInput{
		CategoryCode:    f.CategoryCode,
		CountryCode:     f.CountryCode,
		FundingTotalUSD: f.Funding,
		Relationships:   f.Relationships,
		TotalFundingUSD: f.Funding,
		InvestorCount:   f.InvestorCount,
		ClusterProfile:  f.ClusterProfile,
	}
}

// DisplayName is the startup name used in result titles.
func (f Form) DisplayName() string {
	if f.Name == "" {
		return "Startup"
	}
	return f.Name
}
