package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Outcome is what the page shows after a submission.
type Outcome struct {
	Title   string
	Error   string
	Success string
	Verdict string
	Donut   *Donut
}

// Interpret turns the API exchange into page content. It never fails.
func Interpret(form Form, resp *APIResponse, callErr error, host string) Outcome {
	if callErr != nil {
		return Outcome{Error: fmt.Sprintf("Appel API impossible : %v. Vérifie que l'API tourne sur %s.", callErr, host)}
	}
	body := strings.TrimSpace(string(resp.Body))
	if resp.StatusCode != 200 {
		return Outcome{Error: fmt.Sprintf("API joignable mais réponse %d : %s", resp.StatusCode, body)}
	}

	out := Outcome{Title: "Résultat pour " + form.DisplayName()}
	unexpected := "Réponse inattendue de l'API : " + body

	var payload map[string]any
	decoder := json.NewDecoder(bytes.NewReader(resp.Body))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		out.Error = unexpected
		return out
	}

	if form.Mode == ModeCluster {
		label, ok := payload["cluster_label"]
		if !ok {
			out.Error = unexpected
			return out
		}
		profile, _ := payload["cluster_profile"].(string)
		out.Success = fmt.Sprintf("Cluster assigné : %v — %s", label, profile)
		return out
	}

	score, ok := payload["confidence_score"].(string)
	if !ok {
		out.Error = unexpected
		return out
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(score, "%", "")), 64)
	if err != nil {
		out.Error = unexpected
		return out
	}
	recommendation, _ := payload["recommendation"].(string)
	out.Donut = NewConfidenceDonut(p)
	out.Verdict = "Verdict : " + recommendation
	return out
}
