package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unicorn/cmd"
)

const kmeansArtifact = `{"kind": "kmeans", "centroids": [[0, 0, 0, 0, 0, 0], [1, 1, 1, 1, 1, 1]]}`

const logisticArtifact = `{
  "kind": "logistic_regression",
  "columns": ["relationships", "investor_count"],
  "coefficients": [0.1, 0.2],
  "intercept": -1
}`

func writeArtifact(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestInspect(t *testing.T) {
	clusters := writeArtifact(t, "unicorn_clusters.json", kmeansArtifact)
	model := writeArtifact(t, "unicorn_model.json", logisticArtifact)

	var out bytes.Buffer
	root := cmd.NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"inspect", model, clusters})
	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, model+"\tlogistic_regression\trelationships,investor_count\tok", lines[0])
	assert.Equal(t, clusters+"\tkmeans\t-\tok", lines[1])
}

func TestInspectReportsInvalidArtifact(t *testing.T) {
	broken := writeArtifact(t, "broken.json", `{"kind": "random_forest"}`)
	missing := filepath.Join(t.TempDir(), "absent.json")

	var out bytes.Buffer
	root := cmd.NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"inspect", broken, missing})
	err := root.Execute()

	assert.ErrorContains(t, err, "2 of 2 artifacts invalid")
	assert.Contains(t, out.String(), `unsupported model kind "random_forest"`)
	assert.Contains(t, out.String(), missing+"\t-\t-\terror:")
}

func TestInspectRequiresFile(t *testing.T) {
	root := cmd.NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"inspect"})
	assert.Error(t, root.Execute())
}
