package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"unicorn/config"
	qhttp "unicorn/http"
	"unicorn/logger"
)

const defaultConfigPath = "config.yaml"

func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "unicorn",
		Short:         "Startup success scoring API and investor dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to the YAML configuration file")

	cmd.AddCommand(
		newServeCmd(&configPath),
		newDashboardCmd(&configPath),
		newInspectCmd(),
	)
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the configuration and builds the process logger.
func setup(configPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(log)
	return cfg, log, nil
}

// runServer serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func runServer(ctx context.Context, server *qhttp.Server, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := server.Stop(); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return err
	}
	log.Info("exiting")
	return nil
}
