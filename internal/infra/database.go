package infra

import (
	"fmt"

	"estapark/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial unique indexes).
//
// TranslateError maps driver-level unique violations onto gorm.ErrDuplicatedKey
// so the services can turn constraint races into domain errors.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests
// against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Sessao{},
		&model.Mensalista{},
		&model.CaixaMovimento{},
		&model.CaixaFechamento{},
		&model.CaixaTurno{},
		&model.Configuracao{},
		&model.Auditoria{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Partial unique indexes carry two core invariants:
//   - at most one active session per plate
//   - at most one open turno at a time
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_sessoes_placa_ativa
		    ON sessoes (placa)
		    WHERE status = 'ativa'`,
		// Indexing a constant means all open rows collide on the same key,
		// so a second INSERT with fechado_em IS NULL violates uniqueness.
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_caixa_turnos_aberto
		    ON caixa_turnos ((1))
		    WHERE fechado_em IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_caixa_movimentos_data_forma
		    ON caixa_movimentos (data_pagamento, forma_pagamento)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
