package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func supervisedForm(name string) Form {
	form := DefaultForm(ModeSupervised, nil, nil)
	form.Name = name
	return form
}

func TestInterpretConfidence(t *testing.T) {
	resp := &APIResponse{StatusCode: 200, Body: []byte(`{"status":"success","is_unicorn":0,"confidence_score":"82.50%","recommendation":"À surveiller"}`)}

	out := Interpret(supervisedForm("Acme"), resp, nil, "127.0.0.1:8000")
	assert.Empty(t, out.Error)
	assert.Equal(t, "Résultat pour Acme", out.Title)
	require.NotNil(t, out.Donut)
	assert.Equal(t, []float64{82.5, 17.5}, out.Donut.Values())
	assert.Equal(t, "Confiance", out.Donut.Segments[0].Name)
	assert.Equal(t, "#00CC96", out.Donut.Segments[0].Color)
	assert.Equal(t, "Risque", out.Donut.Segments[1].Name)
	assert.Equal(t, "#EF553B", out.Donut.Segments[1].Color)
	assert.Equal(t, "Verdict : À surveiller", out.Verdict)
}

func TestInterpretNetworkError(t *testing.T) {
	out := Interpret(supervisedForm(""), nil, errors.New("connection refused"), "127.0.0.1:8000")
	assert.Equal(t, "Appel API impossible : connection refused. Vérifie que l'API tourne sur 127.0.0.1:8000.", out.Error)
	assert.Empty(t, out.Title)
	assert.Nil(t, out.Donut)
}

func TestInterpretNon200(t *testing.T) {
	resp := &APIResponse{StatusCode: 500, Body: []byte(`{"error":"internal server error"}` + "\n")}
	out := Interpret(supervisedForm(""), resp, nil, "127.0.0.1:8000")
	assert.Equal(t, `API joignable mais réponse 500 : {"error":"internal server error"}`, out.Error)
}

func TestInterpretMissingArtifactBody(t *testing.T) {
	body := `{"error":"Modèle supervisé non chargé. Vérifiez unicorn_model.json"}`
	resp := &APIResponse{StatusCode: 200, Body: []byte(body)}

	out := Interpret(supervisedForm(""), resp, nil, "127.0.0.1:8000")
	assert.Equal(t, "Résultat pour Startup", out.Title)
	assert.Equal(t, "Réponse inattendue de l'API : "+body, out.Error)
	assert.Nil(t, out.Donut)
}

func TestInterpretCluster(t *testing.T) {
	form := DefaultForm(ModeCluster, nil, nil)

	resp := &APIResponse{StatusCode: 200, Body: []byte(`{"status":"success","cluster_label":2,"cluster_profile":"Cluster 2 : elite profile (~54% historical)"}`)}
	out := Interpret(form, resp, nil, "127.0.0.1:8000")
	assert.Equal(t, "Cluster assigné : 2 — Cluster 2 : elite profile (~54% historical)", out.Success)

	resp = &APIResponse{StatusCode: 200, Body: []byte(`{"error":"Modèle de clustering non chargé. Vérifiez unicorn_clusters.json"}`)}
	out = Interpret(form, resp, nil, "127.0.0.1:8000")
	assert.Contains(t, out.Error, "Réponse inattendue de l'API")
}

func TestConfidenceDonutGeometry(t *testing.T) {
	donut := NewConfidenceDonut(25)
	assert.Equal(t, "25.00 75.00", donut.Segments[0].DashArray)
	assert.Equal(t, "25.00", donut.Segments[0].DashOffset)
	assert.Equal(t, "75.00 25.00", donut.Segments[1].DashArray)
	assert.Equal(t, "0.00", donut.Segments[1].DashOffset)
}
