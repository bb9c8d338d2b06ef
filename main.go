package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stalltrack/m/internal/api"
	"stalltrack/m/internal/config"
	"stalltrack/m/internal/seed"
	"stalltrack/m/internal/store"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	catalog := store.NewCatalog(cfg.CatalogPath, seed.Catalog)
	ledger := store.NewLedger(cfg.LedgerPath)

	handler, err := api.New(catalog, ledger)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load working state")
	}

	log.Info().Str("port", cfg.HTTPPort).Str("data_dir", cfg.DataDir).Msg("stalltrack server starting")
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
