package main

import (
	"context"
	"errors"

	"github.com/gartstein/corpsec/internal/compliance/config"
	"github.com/gartstein/corpsec/internal/compliance/events"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Log change events from Kafka",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			if !cfg.EventsEnabled() {
				return errors.New("KAFKA_BROKERS and TOPIC must be set to watch events")
			}
			logger := initLogger()
			defer syncLogger(logger)

			consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.ConsumerGroup, cfg.Topic, logger)
			defer consumer.Close()
			consumer.RegisterHandler(func(_ context.Context, event events.Event) error {
				logger.Info("Change event",
					zap.String("event_type", string(event.Type)),
					zap.String("entity_id", event.EntityID),
					zap.Time("occurred_at", event.OccurredAt),
				)
				return nil
			})
			return consumer.Run(cmd.Context())
		},
	}
}
