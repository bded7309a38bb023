package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"unicorn/dashboard"
	qhttp "unicorn/http"
)

func newDashboardCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Run the investor dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			d, err := dashboard.New(dashboard.Config{
				DataDir:       cfg.Dashboard.DataDir,
				DatasetFile:   cfg.Dashboard.DatasetFile,
				DatasetPrefix: cfg.Dashboard.DatasetPrefix,
				SQLiteTable:   cfg.Dashboard.SQLiteTable,
			}, dashboard.NewClient(cfg.Dashboard.APIURL), log)
			if err != nil {
				return err
			}

			if cfg.Dashboard.WatchDataset {
				if err := d.Watch(cmd.Context()); err != nil {
					log.Warn("dataset watcher disabled", zap.Error(err))
				}
			}

			log.Info("dashboard configured",
				zap.String("api_url", cfg.Dashboard.APIURL),
				zap.String("data_dir", cfg.Dashboard.DataDir),
			)
			server := qhttp.NewServer(qhttp.ServerConfig{
				Addr:    cfg.Dashboard.Addr,
				Timeout: cfg.API.Timeout,
			}, d.Handler(), log)
			return runServer(cmd.Context(), server, log)
		},
	}
}
