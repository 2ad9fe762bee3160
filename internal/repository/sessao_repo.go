package repository

import (
	"context"
	"errors"

	"estapark/internal/dto"
	"estapark/internal/model"

	"gorm.io/gorm"
)

type SessaoRepository interface {
	// LockCapacidadeTx serializes concurrent check-ins: every entry takes the
	// same transaction-scoped advisory lock before counting occupancy, so the
	// count-then-insert window cannot overshoot total_vagas.
	LockCapacidadeTx(ctx context.Context, tx *gorm.DB) error
	CreateTx(ctx context.Context, tx *gorm.DB, s *model.Sessao) error
	CountAtivasTx(ctx context.Context, tx *gorm.DB) (int64, error)
	FindAtivaPorTicket(ctx context.Context, ticketID string) (*model.Sessao, error)
	FindAtivaPorPlaca(ctx context.Context, placa string) (*model.Sessao, error)
	ListAtivas(ctx context.Context) ([]model.Sessao, error)
	// EncerrarTx closes the session atomically: the UPDATE is guarded by
	// status='ativa' so a second checkout finds zero rows and fails.
	EncerrarTx(ctx context.Context, tx *gorm.DB, s *model.Sessao) (bool, error)
	ListHistorico(ctx context.Context, filter dto.HistoricoFilter) ([]model.Sessao, error)
	ListHistoricoPorPlaca(ctx context.Context, placa string) ([]model.Sessao, error)
	Resumo(ctx context.Context, tipo string) (*dto.ResumoRelatorio, error)
	DB() *gorm.DB
}

type sessaoRepo struct{ db *gorm.DB }

func NewSessaoRepository(db *gorm.DB) SessaoRepository { return &sessaoRepo{db: db} }

func (r *sessaoRepo) DB() *gorm.DB { return r.db }

// capacidadeLockKey is an arbitrary constant shared by all check-in
// transactions. pg_advisory_xact_lock releases automatically on commit
// or rollback.
const capacidadeLockKey = 7_254_001

func (r *sessaoRepo) LockCapacidadeTx(ctx context.Context, tx *gorm.DB) error {
	return tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", capacidadeLockKey).Error
}

func (r *sessaoRepo) CreateTx(ctx context.Context, tx *gorm.DB, s *model.Sessao) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *sessaoRepo) CountAtivasTx(ctx context.Context, tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.WithContext(ctx).Model(&model.Sessao{}).Where("status = ?", model.SessaoAtiva).Count(&n).Error
	return n, err
}

func (r *sessaoRepo) FindAtivaPorTicket(ctx context.Context, ticketID string) (*model.Sessao, error) {
	var s model.Sessao
	err := r.db.WithContext(ctx).
		Where("ticket_id = ? AND status = ?", ticketID, model.SessaoAtiva).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessaoRepo) FindAtivaPorPlaca(ctx context.Context, placa string) (*model.Sessao, error) {
	var s model.Sessao
	err := r.db.WithContext(ctx).
		Where("placa = ? AND status = ?", placa, model.SessaoAtiva).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessaoRepo) ListAtivas(ctx context.Context) ([]model.Sessao, error) {
	var sessoes []model.Sessao
	err := r.db.WithContext(ctx).
		Where("status = ?", model.SessaoAtiva).
		Order("entrada_em ASC").
		Find(&sessoes).Error
	return sessoes, err
}

func (r *sessaoRepo) EncerrarTx(ctx context.Context, tx *gorm.DB, s *model.Sessao) (bool, error) {
	res := tx.WithContext(ctx).Model(&model.Sessao{}).
		Where("id = ? AND status = ?", s.ID, model.SessaoAtiva).
		Updates(map[string]interface{}{
			"status":            model.SessaoEncerrada,
			"saida_em":          s.SaidaEm,
			"tempo_permanencia": s.TempoPermanencia,
			"valor_pago":        s.ValorPago,
			"forma_pagamento":   s.FormaPagamento,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *sessaoRepo) ListHistorico(ctx context.Context, filter dto.HistoricoFilter) ([]model.Sessao, error) {
	q := r.db.WithContext(ctx).Model(&model.Sessao{})

	if filter.Dia > 0 {
		q = q.Where("EXTRACT(DAY FROM entrada_em) = ?", filter.Dia)
	}
	if filter.Mes > 0 {
		q = q.Where("EXTRACT(MONTH FROM entrada_em) = ?", filter.Mes)
	}
	if filter.Ano > 0 {
		q = q.Where("EXTRACT(YEAR FROM entrada_em) = ?", filter.Ano)
	}
	if filter.Tipo != "" {
		q = q.Where("classificacao = ?", filter.Tipo)
	}

	var sessoes []model.Sessao
	err := q.Order("entrada_em DESC").Limit(500).Find(&sessoes).Error
	return sessoes, err
}

func (r *sessaoRepo) ListHistoricoPorPlaca(ctx context.Context, placa string) ([]model.Sessao, error) {
	var sessoes []model.Sessao
	err := r.db.WithContext(ctx).
		Where("placa = ?", placa).
		Order("entrada_em DESC").
		Find(&sessoes).Error
	return sessoes, err
}

func (r *sessaoRepo) Resumo(ctx context.Context, tipo string) (*dto.ResumoRelatorio, error) {
	q := r.db.WithContext(ctx).Model(&model.Sessao{})
	if tipo != "" {
		q = q.Where("classificacao = ?", tipo)
	}

	var resumo dto.ResumoRelatorio
	err := q.Select(`
		COUNT(*)                                                    AS total_movimentacoes,
		COUNT(*) FILTER (WHERE status = 'ativa')                    AS veiculos_no_patio,
		COUNT(*) FILTER (WHERE status = 'encerrada')                AS total_saidas,
		COUNT(DISTINCT placa)                                       AS total_veiculos_unicos,
		COALESCE(SUM(valor_pago), 0)                                AS receita_total,
		COALESCE(AVG(valor_pago) FILTER (WHERE status = 'encerrada'), 0) AS valor_medio`).
		Scan(&resumo).Error
	if err != nil {
		return nil, err
	}
	return &resumo, nil
}

// IsNotFound reports whether err is the store's record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
