package repository

import (
	"context"
	"time"

	"estapark/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MensalistaRepository interface {
	FindPorID(ctx context.Context, id uuid.UUID) (*model.Mensalista, error)
	FindPorPlaca(ctx context.Context, placa string) (*model.Mensalista, error)
	// UpsertTx creates or updates the account keyed by placa. Empty incoming
	// fields never blank out stored values.
	UpsertTx(ctx context.Context, tx *gorm.DB, m *model.Mensalista) (*model.Mensalista, error)
	UpdateTx(ctx context.Context, tx *gorm.DB, m *model.Mensalista) error
	List(ctx context.Context) ([]model.Mensalista, error)
	ListVencidos(ctx context.Context, ref time.Time) ([]model.Mensalista, error)
	DB() *gorm.DB
}

type mensalistaRepo struct{ db *gorm.DB }

func NewMensalistaRepository(db *gorm.DB) MensalistaRepository { return &mensalistaRepo{db: db} }

func (r *mensalistaRepo) DB() *gorm.DB { return r.db }

func (r *mensalistaRepo) FindPorID(ctx context.Context, id uuid.UUID) (*model.Mensalista, error) {
	var m model.Mensalista
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mensalistaRepo) FindPorPlaca(ctx context.Context, placa string) (*model.Mensalista, error) {
	var m model.Mensalista
	if err := r.db.WithContext(ctx).Where("placa = ?", placa).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mensalistaRepo) UpsertTx(ctx context.Context, tx *gorm.DB, m *model.Mensalista) (*model.Mensalista, error) {
	var existente model.Mensalista
	err := tx.WithContext(ctx).Where("placa = ?", m.Placa).First(&existente).Error
	if err == gorm.ErrRecordNotFound {
		if err := tx.WithContext(ctx).Create(m).Error; err != nil {
			return nil, err
		}
		return m, nil
	}
	if err != nil {
		return nil, err
	}

	if m.Nome != "" {
		existente.Nome = m.Nome
	}
	if m.Telefone != nil && *m.Telefone != "" {
		existente.Telefone = m.Telefone
	}
	if m.Email != nil && *m.Email != "" {
		existente.Email = m.Email
	}
	if m.CPF != nil && *m.CPF != "" {
		existente.CPF = m.CPF
	}
	// Vencimento only moves forward here; paid time never shrinks because
	// a re-cadastro came in with a stale date.
	if m.Vencimento != nil && (existente.Vencimento == nil || m.Vencimento.After(*existente.Vencimento)) {
		existente.Vencimento = m.Vencimento
	}
	existente.Ativo = true

	if err := tx.WithContext(ctx).Save(&existente).Error; err != nil {
		return nil, err
	}
	return &existente, nil
}

func (r *mensalistaRepo) UpdateTx(ctx context.Context, tx *gorm.DB, m *model.Mensalista) error {
	return tx.WithContext(ctx).Save(m).Error
}

func (r *mensalistaRepo) List(ctx context.Context) ([]model.Mensalista, error) {
	var mensalistas []model.Mensalista
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&mensalistas).Error
	return mensalistas, err
}

func (r *mensalistaRepo) ListVencidos(ctx context.Context, ref time.Time) ([]model.Mensalista, error) {
	var mensalistas []model.Mensalista
	err := r.db.WithContext(ctx).
		Where("ativo = TRUE AND vencimento IS NOT NULL AND vencimento < ?", ref.Format("2006-01-02")).
		Order("vencimento ASC").
		Find(&mensalistas).Error
	return mensalistas, err
}
