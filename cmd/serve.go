package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"unicorn/config"
	qhttp "unicorn/http"
	"unicorn/metrics"
	"unicorn/ml"
	"unicorn/scoring"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the prediction API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			engine := loadEngine(cfg, log)
			serverConfig := qhttp.ServerConfig{
				Addr:           cfg.API.Addr,
				Timeout:        cfg.API.Timeout,
				AllowedOrigins: cfg.API.AllowedOrigins,
				MaxBodyBytes:   cfg.API.MaxBodyBytes,
			}
			server := qhttp.NewServer(serverConfig, qhttp.NewHandler(serverConfig, engine, log), log)
			return runServer(cmd.Context(), server, log)
		},
	}
}

// loadEngine loads both artifacts once. A failed load is logged and leaves its slot empty.
func loadEngine(cfg *config.Config, log *zap.Logger) *scoring.Engine {
	supervised := ml.LoadArtifact[ml.ProbabilisticModel](cfg.Models.SupervisedPath)
	reportArtifact(log, "supervised", supervised.Path(), supervised.Err())

	clustering := ml.LoadArtifact[ml.Model](cfg.Models.ClusteringPath)
	reportArtifact(log, "clustering", clustering.Path(), clustering.Err())

	return scoring.NewEngine(supervised, clustering)
}

func reportArtifact(log *zap.Logger, name, path string, err error) {
	metrics.SetArtifactLoaded(name, err == nil)
	if err != nil {
		log.Warn("artifact not loaded",
			zap.String("artifact", name),
			zap.String("path", path),
			zap.Error(err),
		)
		return
	}
	log.Info("artifact loaded", zap.String("artifact", name), zap.String("path", path))
}
