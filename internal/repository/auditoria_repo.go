package repository

import (
	"context"

	"estapark/internal/model"

	"gorm.io/gorm"
)

type AuditoriaRepository interface {
	Create(ctx context.Context, registro *model.Auditoria) error
	ListRecentes(ctx context.Context, limite int) ([]model.Auditoria, error)
}

type auditoriaRepo struct{ db *gorm.DB }

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository { return &auditoriaRepo{db: db} }

func (r *auditoriaRepo) Create(ctx context.Context, registro *model.Auditoria) error {
	return r.db.WithContext(ctx).Create(registro).Error
}

func (r *auditoriaRepo) ListRecentes(ctx context.Context, limite int) ([]model.Auditoria, error) {
	if limite <= 0 || limite > 200 {
		limite = 50
	}
	var registros []model.Auditoria
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limite).Find(&registros).Error
	return registros, err
}
