package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8000", cfg.API.Addr)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Dashboard.APIURL)
	assert.Equal(t, "data/processed", cfg.Dashboard.DataDir)
	assert.Equal(t, "processed_startups.csv", cfg.Dashboard.DatasetFile)
	assert.False(t, cfg.Dashboard.WatchDataset)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
api:
  addr: ":9000"
  timeout: 10s
models:
  supervised_path: /srv/models/sup.json
dashboard:
  watch_dataset: true
  sqlite_table: companies
log:
  level: debug
  format: json
  file: /var/log/unicorn.log
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.API.Addr)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/srv/models/sup.json", cfg.Models.SupervisedPath)
	assert.Equal(t, "models/unicorn_clusters.json", cfg.Models.ClusteringPath)
	assert.True(t, cfg.Dashboard.WatchDataset)
	assert.Equal(t, "companies", cfg.Dashboard.SQLiteTable)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/var/log/unicorn.log", cfg.Log.File)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("UNICORN_API_URL", "http://scoring:8000")
	t.Setenv("UNICORN_SUPERVISED_MODEL", "/models/a.json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://scoring:8000", cfg.Dashboard.APIURL)
	assert.Equal(t, "/models/a.json", cfg.Models.SupervisedPath)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
