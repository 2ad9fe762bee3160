package service

// In-memory repository stubs for the service unit tests. They run with a nil
// *gorm.DB so runTx calls the closure directly, and they return
// gorm.ErrRecordNotFound / gorm.ErrDuplicatedKey where the real store would,
// so the services' error mapping is exercised end to end.

import (
	"context"
	"time"

	"estapark/internal/dto"
	"estapark/internal/model"
	"estapark/internal/repository"
	"estapark/internal/tarifa"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Sessões ──────────────────────────────────────────────────────────────────

type stubSessaoRepo struct {
	sessoes []*model.Sessao
}

var _ repository.SessaoRepository = (*stubSessaoRepo)(nil)

func (r *stubSessaoRepo) DB() *gorm.DB { return nil }

func (r *stubSessaoRepo) LockCapacidadeTx(ctx context.Context, tx *gorm.DB) error { return nil }

func (r *stubSessaoRepo) CreateTx(ctx context.Context, tx *gorm.DB, s *model.Sessao) error {
	for _, e := range r.sessoes {
		if e.TicketID == s.TicketID {
			return gorm.ErrDuplicatedKey
		}
		if e.Placa == s.Placa && e.Status == model.SessaoAtiva && s.Status == model.SessaoAtiva {
			return gorm.ErrDuplicatedKey
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessoes = append(r.sessoes, s)
	return nil
}

func (r *stubSessaoRepo) CountAtivasTx(ctx context.Context, tx *gorm.DB) (int64, error) {
	var n int64
	for _, e := range r.sessoes {
		if e.Status == model.SessaoAtiva {
			n++
		}
	}
	return n, nil
}

func (r *stubSessaoRepo) FindAtivaPorTicket(ctx context.Context, ticketID string) (*model.Sessao, error) {
	for _, e := range r.sessoes {
		if e.TicketID == ticketID && e.Status == model.SessaoAtiva {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSessaoRepo) FindAtivaPorPlaca(ctx context.Context, placa string) (*model.Sessao, error) {
	for _, e := range r.sessoes {
		if e.Placa == placa && e.Status == model.SessaoAtiva {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSessaoRepo) ListAtivas(ctx context.Context) ([]model.Sessao, error) {
	var out []model.Sessao
	for _, e := range r.sessoes {
		if e.Status == model.SessaoAtiva {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubSessaoRepo) EncerrarTx(ctx context.Context, tx *gorm.DB, s *model.Sessao) (bool, error) {
	for _, e := range r.sessoes {
		if e.ID == s.ID && e.Status == model.SessaoAtiva {
			e.Status = model.SessaoEncerrada
			e.SaidaEm = s.SaidaEm
			e.TempoPermanencia = s.TempoPermanencia
			e.ValorPago = s.ValorPago
			e.FormaPagamento = s.FormaPagamento
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSessaoRepo) ListHistorico(ctx context.Context, filter dto.HistoricoFilter) ([]model.Sessao, error) {
	var out []model.Sessao
	for _, e := range r.sessoes {
		if filter.Tipo != "" && e.Classificacao != filter.Tipo {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubSessaoRepo) ListHistoricoPorPlaca(ctx context.Context, placa string) ([]model.Sessao, error) {
	var out []model.Sessao
	for _, e := range r.sessoes {
		if e.Placa == placa {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubSessaoRepo) Resumo(ctx context.Context, tipo string) (*dto.ResumoRelatorio, error) {
	return &dto.ResumoRelatorio{}, nil
}

// ── Caixa ────────────────────────────────────────────────────────────────────

type stubCaixaRepo struct {
	movimentos  []*model.CaixaMovimento
	fechamentos []*model.CaixaFechamento
	turnos      []*model.CaixaTurno
}

var _ repository.CaixaRepository = (*stubCaixaRepo)(nil)

func (r *stubCaixaRepo) DB() *gorm.DB { return nil }

func (r *stubCaixaRepo) CreateMovimentoTx(ctx context.Context, tx *gorm.DB, m *model.CaixaMovimento) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimentos = append(r.movimentos, m)
	return nil
}

func mesmaData(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func (r *stubCaixaRepo) SumPorFormaNaData(ctx context.Context, data time.Time) (map[string]decimal.Decimal, int64, error) {
	sums := make(map[string]decimal.Decimal)
	var n int64
	for _, m := range r.movimentos {
		if !mesmaData(m.DataPagamento, data) {
			continue
		}
		sums[m.FormaPagamento] = sums[m.FormaPagamento].Add(m.Valor)
		n++
	}
	return sums, n, nil
}

func (r *stubCaixaRepo) RelatorioPeriodo(ctx context.Context, inicio, fim time.Time) ([]dto.RelatorioCaixaItem, error) {
	return nil, nil
}

func (r *stubCaixaRepo) FindFechamentoPorData(ctx context.Context, data time.Time) (*model.CaixaFechamento, error) {
	for _, f := range r.fechamentos {
		if mesmaData(f.DataRef, data) {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCaixaRepo) FindFechamentoPorID(ctx context.Context, id uuid.UUID) (*model.CaixaFechamento, error) {
	for _, f := range r.fechamentos {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCaixaRepo) CreateFechamentoTx(ctx context.Context, tx *gorm.DB, f *model.CaixaFechamento) error {
	for _, e := range r.fechamentos {
		if mesmaData(e.DataRef, f.DataRef) {
			return gorm.ErrDuplicatedKey
		}
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()
	r.fechamentos = append(r.fechamentos, f)
	return nil
}

func (r *stubCaixaRepo) DeleteFechamentoPorDataTx(ctx context.Context, tx *gorm.DB, data time.Time) error {
	kept := r.fechamentos[:0]
	for _, f := range r.fechamentos {
		if !mesmaData(f.DataRef, data) {
			kept = append(kept, f)
		}
	}
	r.fechamentos = kept
	return nil
}

func (r *stubCaixaRepo) ListFechamentos(ctx context.Context, limit int) ([]model.CaixaFechamento, error) {
	out := make([]model.CaixaFechamento, 0, len(r.fechamentos))
	for _, f := range r.fechamentos {
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubCaixaRepo) FindTurnoAberto(ctx context.Context) (*model.CaixaTurno, error) {
	for _, t := range r.turnos {
		if t.FechadoEm == nil {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCaixaRepo) FindTurnoPorID(ctx context.Context, id uuid.UUID) (*model.CaixaTurno, error) {
	for _, t := range r.turnos {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCaixaRepo) CreateTurno(ctx context.Context, t *model.CaixaTurno) error {
	for _, e := range r.turnos {
		if e.FechadoEm == nil {
			return gorm.ErrDuplicatedKey
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.turnos = append(r.turnos, t)
	return nil
}

func (r *stubCaixaRepo) UpdateTurno(ctx context.Context, t *model.CaixaTurno) error {
	for i, e := range r.turnos {
		if e.ID == t.ID {
			r.turnos[i] = t
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mensalistas ──────────────────────────────────────────────────────────────

type stubMensalistaRepo struct {
	mensalistas []*model.Mensalista
}

var _ repository.MensalistaRepository = (*stubMensalistaRepo)(nil)

func (r *stubMensalistaRepo) DB() *gorm.DB { return nil }

func (r *stubMensalistaRepo) FindPorID(ctx context.Context, id uuid.UUID) (*model.Mensalista, error) {
	for _, m := range r.mensalistas {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMensalistaRepo) FindPorPlaca(ctx context.Context, placa string) (*model.Mensalista, error) {
	for _, m := range r.mensalistas {
		if m.Placa == placa {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMensalistaRepo) UpsertTx(ctx context.Context, tx *gorm.DB, m *model.Mensalista) (*model.Mensalista, error) {
	for _, e := range r.mensalistas {
		if e.Placa == m.Placa {
			if m.Nome != "" {
				e.Nome = m.Nome
			}
			if m.Telefone != nil && *m.Telefone != "" {
				e.Telefone = m.Telefone
			}
			if m.Email != nil && *m.Email != "" {
				e.Email = m.Email
			}
			if m.CPF != nil && *m.CPF != "" {
				e.CPF = m.CPF
			}
			if m.Vencimento != nil && (e.Vencimento == nil || m.Vencimento.After(*e.Vencimento)) {
				e.Vencimento = m.Vencimento
			}
			e.Ativo = true
			return e, nil
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mensalistas = append(r.mensalistas, m)
	return m, nil
}

func (r *stubMensalistaRepo) UpdateTx(ctx context.Context, tx *gorm.DB, m *model.Mensalista) error {
	for i, e := range r.mensalistas {
		if e.ID == m.ID {
			r.mensalistas[i] = m
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubMensalistaRepo) List(ctx context.Context) ([]model.Mensalista, error) {
	out := make([]model.Mensalista, 0, len(r.mensalistas))
	for _, m := range r.mensalistas {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMensalistaRepo) ListVencidos(ctx context.Context, ref time.Time) ([]model.Mensalista, error) {
	var out []model.Mensalista
	for _, m := range r.mensalistas {
		if m.Ativo && m.Vencimento != nil && m.Vencimento.Before(ref) {
			out = append(out, *m)
		}
	}
	return out, nil
}

// ── Configurações ────────────────────────────────────────────────────────────

type stubConfigService struct {
	cfg   tarifa.Config
	vagas int
}

var _ ConfigService = (*stubConfigService)(nil)

func newStubConfig() *stubConfigService {
	return &stubConfigService{cfg: tarifa.DefaultConfig(), vagas: 50}
}

func (s *stubConfigService) GetAll(ctx context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

func (s *stubConfigService) Atualizar(ctx context.Context, req dto.ConfiguracoesRequest) (map[string]string, error) {
	return map[string]string{}, nil
}

func (s *stubConfigService) LoadTarifa(ctx context.Context) (tarifa.Config, error) {
	return s.cfg, nil
}

func (s *stubConfigService) TotalVagas(ctx context.Context) (int, error) {
	return s.vagas, nil
}
