// cmd/seedconfig/main.go — seeds the default tariff/lot configuration rows.
// Existing values are kept; only missing keys are inserted.
// Uso: go run ./cmd/seedconfig
package main

import (
	"context"
	"fmt"
	"log"

	"estapark/internal/config"
	"estapark/internal/infra"
	"estapark/internal/model"
	"estapark/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	defaults := map[string]string{
		model.ChaveValorHoraInicial:   "5.00",
		model.ChaveValorHoraAdicional: "2.50",
		model.ChaveTempoTolerancia:    "15",
		model.ChaveTotalVagas:         "50",
		model.ChaveValorMensalidade:   "300.00",
		model.ChaveValorDiaria:        "25.00",
	}

	repo := repository.NewConfigRepository(db)
	if err := repo.SeedDefaults(context.Background(), defaults); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	fmt.Printf("seeded %d configuration keys (existing values untouched)\n", len(defaults))
}
