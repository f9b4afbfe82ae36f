package main

import (
	"github.com/gartstein/corpsec/internal/compliance/config"
	"github.com/gartstein/corpsec/internal/compliance/documents"
	"github.com/gartstein/corpsec/internal/compliance/events"
	"github.com/gartstein/corpsec/internal/compliance/handlers"
	"github.com/gartstein/corpsec/internal/compliance/metrics"
	"github.com/gartstein/corpsec/internal/compliance/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the register over HTTP and gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := initLogger()
			defer syncLogger(logger)
			return serveRun(cmd, config.FromContext(cmd.Context()), logger)
		},
	}
}

func serveRun(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) error {
	ctx := cmd.Context()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storeMetrics := metrics.NewStore()
	storeMetrics.Register(registry)

	opts := []store.Option{store.WithMetrics(storeMetrics)}
	if cfg.EventsEnabled() {
		producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
		if err != nil {
			logger.Error("failed to initialize Kafka producer", zap.Error(err))
			return err
		}
		defer producer.Close()
		opts = append(opts, store.WithEventProducer(producer))
	}

	companyStore, closeStore, err := openStore(ctx, cfg, logger, opts...)
	if err != nil {
		logger.Error("failed to open company store", zap.Error(err))
		return err
	}
	defer closeStore()

	tag, err := cfg.LanguageTag()
	if err != nil {
		return err
	}
	renderer := documents.NewRenderer(documents.WithLanguage(tag))

	complianceHandler := handlers.NewComplianceHandler(companyStore, renderer, storeMetrics, logger)
	server := handlers.NewServer(cfg.Host, cfg.GRPCPort, cfg.HTTPPort, logger)
	if err := server.RegisterHTTPHandler(complianceHandler, registry); err != nil {
		logger.Error("Failed to register HTTP handler", zap.Error(err))
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		server.Stop()
		<-errCh
		logger.Info("Servers stopped properly")
		return nil
	case err := <-errCh:
		server.Stop()
		if err != nil {
			logger.Error("Failed to start servers", zap.Error(err))
		}
		return err
	}
}
