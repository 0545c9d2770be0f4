package main

import (
	"sparkle/config"
	"sparkle/di"
	"sparkle/helper"
	"sparkle/shared/logger"
	"sparkle/shared/timezone"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseJSONOutput(cfg)
	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
