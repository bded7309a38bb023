package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"unicorn/logger"
)

type Config struct {
	API struct {
		Addr           string        `yaml:"addr"`
		Timeout        time.Duration `yaml:"timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
		MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	} `yaml:"api"`
	Models struct {
		SupervisedPath string `yaml:"supervised_path"`
		ClusteringPath string `yaml:"clustering_path"`
	} `yaml:"models"`
	Dashboard struct {
		Addr          string `yaml:"addr"`
		APIURL        string `yaml:"api_url"`
		DataDir       string `yaml:"data_dir"`
		DatasetFile   string `yaml:"dataset_file"`
		DatasetPrefix string `yaml:"dataset_prefix"`
		SQLiteTable   string `yaml:"sqlite_table"`
		WatchDataset  bool   `yaml:"watch_dataset"`
	} `yaml:"dashboard"`
	Log logger.Config `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads path (a missing file means defaults), then .env and UNICORN_* overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		file, err := os.Open(path)
		switch {
		case err == nil:
			defer file.Close()
			if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.Addr == "" {
		cfg.API.Addr = ":8000"
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if len(cfg.API.AllowedOrigins) == 0 {
		cfg.API.AllowedOrigins = []string{"*"}
	}
	if cfg.API.MaxBodyBytes <= 0 {
		cfg.API.MaxBodyBytes = 1 << 20
	}
	if cfg.Models.SupervisedPath == "" {
		cfg.Models.SupervisedPath = "models/unicorn_model.json"
	}
	if cfg.Models.ClusteringPath == "" {
		cfg.Models.ClusteringPath = "models/unicorn_clusters.json"
	}
	if cfg.Dashboard.Addr == "" {
		cfg.Dashboard.Addr = ":8501"
	}
	if cfg.Dashboard.APIURL == "" {
		cfg.Dashboard.APIURL = "http://127.0.0.1:8000"
	}
	if cfg.Dashboard.DataDir == "" {
		cfg.Dashboard.DataDir = "data/processed"
	}
	if cfg.Dashboard.DatasetFile == "" {
		cfg.Dashboard.DatasetFile = "processed_startups.csv"
	}
	if cfg.Dashboard.DatasetPrefix == "" {
		cfg.Dashboard.DatasetPrefix = "processed"
	}
	if cfg.Dashboard.SQLiteTable == "" {
		cfg.Dashboard.SQLiteTable = "startups"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"UNICORN_API_ADDR":         &cfg.API.Addr,
		"UNICORN_SUPERVISED_MODEL": &cfg.Models.SupervisedPath,
		"UNICORN_CLUSTERING_MODEL": &cfg.Models.ClusteringPath,
		"UNICORN_DASHBOARD_ADDR":   &cfg.Dashboard.Addr,
		"UNICORN_API_URL":          &cfg.Dashboard.APIURL,
		"UNICORN_DATA_DIR":         &cfg.Dashboard.DataDir,
		"UNICORN_LOG_LEVEL":        &cfg.Log.Level,
	}
	for key, target := range overrides {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*target = v
		}
	}
}
