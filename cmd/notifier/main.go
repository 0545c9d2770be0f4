package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sparkle/config"
	"sparkle/di"
	"sparkle/shared/logger"
	"sparkle/shared/timezone"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseJSONOutput(cfg)
	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := di.InitializeConsumer()

	defer func() {
		if err := consumer.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client")
		}
	}()

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Booking event consumer stopped")

		return
	}

	log.Info().Msg("Booking event consumer shut down.")
}
