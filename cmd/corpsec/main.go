package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/corpsec/internal/compliance/config"
	"github.com/gartstein/corpsec/internal/compliance/db"
	"github.com/gartstein/corpsec/internal/compliance/store"
	"github.com/gartstein/corpsec/internal/compliance/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const programName = "corpsec"

var globalFlags = struct {
	debug      bool
	configFile string
}{}

func main() {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Company secretary compliance register",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&globalFlags.configFile, "config", "", "path to config file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(globalFlags.configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	}

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(renderCommand())
	rootCmd.AddCommand(statusCommand())
	rootCmd.AddCommand(watchCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// initLogger builds a production logger, or a development one with --debug.
func initLogger() *zap.Logger {
	build := zap.NewProduction
	if globalFlags.debug {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func syncLogger(logger *zap.Logger) {
	// Sync fails with EINVAL on console file descriptors.
	_ = logger.Sync()
}

// openStore connects to the configured database and loads the company store.
// The returned func closes the database.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...store.Option) (*store.Store, func(), error) {
	repo, err := db.Open(ctx, cfg.Database())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	closeRepo := func() {
		if err := repo.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}

	base := []store.Option{
		store.WithLogger(logger),
		store.WithKey(cfg.StorageKey),
	}
	if cfg.Validate {
		base = append(base, store.WithValidator(validation.New()))
	}
	s, err := store.New(ctx, repo, append(base, opts...)...)
	if err != nil {
		closeRepo()
		return nil, nil, err
	}
	return s, closeRepo, nil
}
