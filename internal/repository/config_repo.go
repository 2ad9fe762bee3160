package repository

import (
	"context"

	"estapark/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfigRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, chave, valor string) error
	SeedDefaults(ctx context.Context, defaults map[string]string) error
}

type configRepo struct{ db *gorm.DB }

func NewConfigRepository(db *gorm.DB) ConfigRepository { return &configRepo{db: db} }

func (r *configRepo) GetAll(ctx context.Context) (map[string]string, error) {
	var rows []model.Configuracao
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Chave] = row.Valor
	}
	return out, nil
}

func (r *configRepo) Set(ctx context.Context, chave, valor string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor", "updated_at"}),
	}).Create(&model.Configuracao{Chave: chave, Valor: valor}).Error
}

// SeedDefaults inserts missing keys without touching existing values.
func (r *configRepo) SeedDefaults(ctx context.Context, defaults map[string]string) error {
	for chave, valor := range defaults {
		err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chave"}},
			DoNothing: true,
		}).Create(&model.Configuracao{Chave: chave, Valor: valor}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
