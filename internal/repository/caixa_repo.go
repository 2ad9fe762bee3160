package repository

import (
	"context"
	"time"

	"estapark/internal/dto"
	"estapark/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaRepository interface {
	CreateMovimentoTx(ctx context.Context, tx *gorm.DB, m *model.CaixaMovimento) error
	// SumPorFormaNaData aggregates movements of one business date, grouped by
	// forma_pagamento, plus the total transaction count.
	SumPorFormaNaData(ctx context.Context, data time.Time) (map[string]decimal.Decimal, int64, error)
	RelatorioPeriodo(ctx context.Context, inicio, fim time.Time) ([]dto.RelatorioCaixaItem, error)

	FindFechamentoPorData(ctx context.Context, data time.Time) (*model.CaixaFechamento, error)
	FindFechamentoPorID(ctx context.Context, id uuid.UUID) (*model.CaixaFechamento, error)
	CreateFechamentoTx(ctx context.Context, tx *gorm.DB, f *model.CaixaFechamento) error
	DeleteFechamentoPorDataTx(ctx context.Context, tx *gorm.DB, data time.Time) error
	ListFechamentos(ctx context.Context, limit int) ([]model.CaixaFechamento, error)

	FindTurnoAberto(ctx context.Context) (*model.CaixaTurno, error)
	FindTurnoPorID(ctx context.Context, id uuid.UUID) (*model.CaixaTurno, error)
	CreateTurno(ctx context.Context, t *model.CaixaTurno) error
	UpdateTurno(ctx context.Context, t *model.CaixaTurno) error

	DB() *gorm.DB
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) DB() *gorm.DB { return r.db }

func (r *caixaRepo) CreateMovimentoTx(ctx context.Context, tx *gorm.DB, m *model.CaixaMovimento) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *caixaRepo) SumPorFormaNaData(ctx context.Context, data time.Time) (map[string]decimal.Decimal, int64, error) {
	type row struct {
		Forma string
		Total decimal.Decimal
		Qtd   int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.CaixaMovimento{}).
		Select("forma_pagamento AS forma, COALESCE(SUM(valor), 0) AS total, COUNT(*) AS qtd").
		Where("data_pagamento = ?", data.Format("2006-01-02")).
		Group("forma_pagamento").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	sums := make(map[string]decimal.Decimal, len(rows))
	var transacoes int64
	for _, rw := range rows {
		sums[rw.Forma] = rw.Total
		transacoes += rw.Qtd
	}
	return sums, transacoes, nil
}

func (r *caixaRepo) RelatorioPeriodo(ctx context.Context, inicio, fim time.Time) ([]dto.RelatorioCaixaItem, error) {
	type row struct {
		Data       time.Time
		Forma      string
		Quantidade int64
		Total      decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.CaixaMovimento{}).
		Select("data_pagamento AS data, forma_pagamento AS forma, COUNT(*) AS quantidade, COALESCE(SUM(valor), 0) AS total").
		Where("data_pagamento BETWEEN ? AND ?", inicio.Format("2006-01-02"), fim.Format("2006-01-02")).
		Group("data_pagamento, forma_pagamento").
		Order("data_pagamento DESC, forma_pagamento ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]dto.RelatorioCaixaItem, 0, len(rows))
	for _, rw := range rows {
		items = append(items, dto.RelatorioCaixaItem{
			Data:       rw.Data.Format("2006-01-02"),
			Forma:      rw.Forma,
			Quantidade: rw.Quantidade,
			Total:      rw.Total,
		})
	}
	return items, nil
}

func (r *caixaRepo) FindFechamentoPorData(ctx context.Context, data time.Time) (*model.CaixaFechamento, error) {
	var f model.CaixaFechamento
	err := r.db.WithContext(ctx).
		Where("data_ref = ?", data.Format("2006-01-02")).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *caixaRepo) FindFechamentoPorID(ctx context.Context, id uuid.UUID) (*model.CaixaFechamento, error) {
	var f model.CaixaFechamento
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *caixaRepo) CreateFechamentoTx(ctx context.Context, tx *gorm.DB, f *model.CaixaFechamento) error {
	return tx.WithContext(ctx).Create(f).Error
}

func (r *caixaRepo) DeleteFechamentoPorDataTx(ctx context.Context, tx *gorm.DB, data time.Time) error {
	return tx.WithContext(ctx).
		Where("data_ref = ?", data.Format("2006-01-02")).
		Delete(&model.CaixaFechamento{}).Error
}

func (r *caixaRepo) ListFechamentos(ctx context.Context, limit int) ([]model.CaixaFechamento, error) {
	if limit <= 0 || limit > 365 {
		limit = 90
	}
	var fechamentos []model.CaixaFechamento
	err := r.db.WithContext(ctx).Order("data_ref DESC").Limit(limit).Find(&fechamentos).Error
	return fechamentos, err
}

func (r *caixaRepo) FindTurnoAberto(ctx context.Context) (*model.CaixaTurno, error) {
	var t model.CaixaTurno
	err := r.db.WithContext(ctx).Where("fechado_em IS NULL").First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *caixaRepo) FindTurnoPorID(ctx context.Context, id uuid.UUID) (*model.CaixaTurno, error) {
	var t model.CaixaTurno
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *caixaRepo) CreateTurno(ctx context.Context, t *model.CaixaTurno) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *caixaRepo) UpdateTurno(ctx context.Context, t *model.CaixaTurno) error {
	return r.db.WithContext(ctx).Save(t).Error
}
