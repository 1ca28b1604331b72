package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-ricrob/photosolver/internal/config"
	"github.com/go-ricrob/photosolver/internal/httpserver"
	"github.com/go-ricrob/photosolver/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	st := store.NewMemoryStore()
	if cfg.DBPath != "" {
		var closeDB func() error
		st, closeDB, err = store.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open solution store")
		}
		defer closeDB()
	}

	srv := httpserver.New(st, httpserver.Options{
		Workers:      cfg.Workers,
		MaxStates:    cfg.MaxStates,
		SolveTimeout: cfg.SolveTimeout,
		FrameDelay:   cfg.FrameDelay,
		ClientOrigin: cfg.ClientOrigin,
	})
	log.Info().Str("port", cfg.Port).Int("workers", cfg.Workers).Msg("starting server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
