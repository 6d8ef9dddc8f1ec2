package main

import (
	"context"

	"interleague_schedule/internal/app"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize clients")
	}

	log.Info().
		Str("input", cfg.InputPath).
		Str("output", cfg.OutputPath).
		Msg("Converting schedule grid to matchup table")

	if err := a.Run(ctx); err != nil {
		if app.IsDataError(err) {
			log.Fatal().Err(err).Msg("Schedule contains invalid data")
		}
		log.Fatal().Err(err).Msg("Schedule conversion failed")
	}
}
