package service

import (
	"context"
	"strings"
	"time"

	"estapark/internal/dto"
	"estapark/internal/model"
	"estapark/internal/pagamento"
	"estapark/internal/placa"
	"estapark/internal/repository"
	"estapark/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MensalistaService interface {
	Upsert(ctx context.Context, req dto.MensalistaRequest) (*dto.MensalistaResponse, error)
	List(ctx context.Context) ([]dto.MensalistaResponse, error)
	RegistrarPagamento(ctx context.Context, req dto.PagamentoMensalistaRequest) (*dto.PagamentoMensalistaResponse, error)
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) (*dto.MensalistaResponse, error)
	// EnfileirarLembretes queues one overdue-reminder job per expired active
	// account and returns how many were queued.
	EnfileirarLembretes(ctx context.Context) (int, error)
}

type mensalistaService struct {
	repo       repository.MensalistaRepository
	caixaRepo  repository.CaixaRepository
	configSvc  ConfigService
	dispatcher *worker.Dispatcher
	loc        *time.Location
}

func NewMensalistaService(
	repo repository.MensalistaRepository,
	caixaRepo repository.CaixaRepository,
	configSvc ConfigService,
	dispatcher *worker.Dispatcher,
	loc *time.Location,
) MensalistaService {
	return &mensalistaService{
		repo:       repo,
		caixaRepo:  caixaRepo,
		configSvc:  configSvc,
		dispatcher: dispatcher,
		loc:        loc,
	}
}

func (s *mensalistaService) Upsert(ctx context.Context, req dto.MensalistaRequest) (*dto.MensalistaResponse, error) {
	placaNorm := placa.Normalizar(req.Placa)
	if !placa.Valida(placaNorm) {
		return nil, ErrPlacaInvalida
	}

	m := &model.Mensalista{
		Placa: placaNorm,
		Nome:  strings.TrimSpace(req.Nome),
		Ativo: true,
	}
	if v := strings.TrimSpace(req.Telefone); v != "" {
		m.Telefone = &v
	}
	if v := strings.TrimSpace(req.Email); v != "" {
		m.Email = &v
	}
	if v := strings.TrimSpace(req.CPF); v != "" {
		m.CPF = &v
	}
	if req.Vencimento != "" {
		venc, err := time.ParseInLocation("2006-01-02", req.Vencimento, s.loc)
		if err != nil {
			return nil, err
		}
		m.Vencimento = &venc
	}

	var salvo *model.Mensalista
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		salvo, err = s.repo.UpsertTx(ctx, tx, m)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.toResponse(salvo), nil
}

func (s *mensalistaService) List(ctx context.Context) ([]dto.MensalistaResponse, error) {
	mensalistas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MensalistaResponse, 0, len(mensalistas))
	for i := range mensalistas {
		out = append(out, *s.toResponse(&mensalistas[i]))
	}
	return out, nil
}

// ── RegistrarPagamento ───────────────────────────────────────────────────────
// The amount due is always meses × valor_mensalidade computed here from the
// config store — the client never sends a total. Vencimento stacks from
// whichever is later: the current due date or today, so paying early extends
// and paying late restarts from now.

func (s *mensalistaService) RegistrarPagamento(ctx context.Context, req dto.PagamentoMensalistaRequest) (*dto.PagamentoMensalistaResponse, error) {
	m, err := s.resolver(ctx, req)
	if err != nil {
		return nil, err
	}
	if !m.Ativo {
		return nil, ErrMensalistaInativo
	}

	cfg, err := s.configSvc.LoadTarifa(ctx)
	if err != nil {
		return nil, err
	}
	valorDevido := cfg.Mensalidade.Mul(decimal.NewFromInt(int64(req.Meses)))

	alocacoes := make([]pagamento.Alocacao, 0, len(req.Pagamentos))
	for _, p := range req.Pagamentos {
		alocacoes = append(alocacoes, pagamento.Alocacao{Forma: p.Forma, Valor: p.Valor})
	}
	validas, err := pagamento.Reconciliar(valorDevido, alocacoes)
	if err != nil {
		return nil, err
	}

	agora := time.Now().In(s.loc)
	hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, s.loc)
	base := hoje
	if m.Vencimento != nil && m.Vencimento.After(hoje) {
		base = *m.Vencimento
	}
	novoVencimento := base.AddDate(0, req.Meses, 0)
	m.Vencimento = &novoVencimento

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(ctx, tx, m); err != nil {
			return err
		}
		for _, a := range validas {
			mensalistaID := m.ID
			mov := &model.CaixaMovimento{
				Origem:         model.OrigemPagamentoMensalista,
				MensalistaID:   &mensalistaID,
				Placa:          m.Placa,
				Nome:           &m.Nome,
				Valor:          a.Valor,
				FormaPagamento: a.Forma,
				DataPagamento:  agora,
				HoraPagamento:  agora.Format("15:04:05"),
			}
			if err := s.caixaRepo.CreateMovimentoTx(ctx, tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		payload := worker.AuditoriaJobPayload{
			Acao: "pagamento_mensalista",
			Detalhes: map[string]interface{}{
				"mensalista_id":   m.ID.String(),
				"placa":           m.Placa,
				"meses":           req.Meses,
				"total_pago":      valorDevido.StringFixed(2),
				"novo_vencimento": novoVencimento.Format("2006-01-02"),
			},
		}
		if err := s.dispatcher.EnqueueAuditoria(ctx, payload); err != nil {
			log.Warn().Err(err).Msg("auditoria: enqueue failed")
		}
	}

	return &dto.PagamentoMensalistaResponse{
		MensalistaID:   m.ID.String(),
		TotalPago:      valorDevido,
		NovoVencimento: novoVencimento.Format("2006-01-02"),
	}, nil
}

func (s *mensalistaService) resolver(ctx context.Context, req dto.PagamentoMensalistaRequest) (*model.Mensalista, error) {
	if req.MensalistaID != "" {
		id, err := uuid.Parse(req.MensalistaID)
		if err != nil {
			return nil, ErrMensalistaNaoEncontrado
		}
		m, err := s.repo.FindPorID(ctx, id)
		if err != nil {
			return nil, ErrMensalistaNaoEncontrado
		}
		return m, nil
	}

	placaNorm := placa.Normalizar(req.Placa)
	if placaNorm == "" {
		return nil, ErrIdentificadorAusente
	}
	m, err := s.repo.FindPorPlaca(ctx, placaNorm)
	if err != nil {
		return nil, ErrMensalistaNaoEncontrado
	}
	return m, nil
}

func (s *mensalistaService) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) (*dto.MensalistaResponse, error) {
	m, err := s.repo.FindPorID(ctx, id)
	if err != nil {
		return nil, ErrMensalistaNaoEncontrado
	}
	m.Ativo = ativo

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateTx(ctx, tx, m)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.toResponse(m), nil
}

func (s *mensalistaService) EnfileirarLembretes(ctx context.Context) (int, error) {
	agora := time.Now().In(s.loc)
	hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, s.loc)

	vencidos, err := s.repo.ListVencidos(ctx, hoje)
	if err != nil {
		return 0, err
	}
	if s.dispatcher == nil {
		return 0, nil
	}

	enfileirados := 0
	for i := range vencidos {
		m := &vencidos[i]
		payload := worker.LembreteJobPayload{
			MensalistaID: m.ID.String(),
			Placa:        m.Placa,
			Nome:         m.Nome,
			Vencimento:   m.Vencimento.Format("2006-01-02"),
		}
		if m.Email != nil {
			payload.Email = *m.Email
		}
		if err := s.dispatcher.EnqueueLembrete(ctx, payload); err != nil {
			log.Warn().Err(err).Str("placa", m.Placa).Msg("lembrete: enqueue failed")
			continue
		}
		enfileirados++
	}
	return enfileirados, nil
}

func (s *mensalistaService) toResponse(m *model.Mensalista) *dto.MensalistaResponse {
	resp := &dto.MensalistaResponse{
		ID:       m.ID.String(),
		Placa:    m.Placa,
		Nome:     m.Nome,
		Telefone: m.Telefone,
		Email:    m.Email,
		CPF:      m.CPF,
		Ativo:    m.Ativo,
	}
	if m.Vencimento != nil {
		venc := m.Vencimento.Format("2006-01-02")
		resp.Vencimento = &venc

		agora := time.Now().In(s.loc)
		hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, s.loc)
		resp.Vencido = m.Vencimento.Before(hoje)
	}
	return resp
}
