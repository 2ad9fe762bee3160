package service

import (
	"context"
	"errors"
	"time"

	"estapark/internal/dto"
	"estapark/internal/model"
	"estapark/internal/pagamento"
	"estapark/internal/repository"
	"estapark/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaService interface {
	// Dashboard aggregates the movements of one business date (today when
	// data is empty) straight from the ledger, closed or not.
	Dashboard(ctx context.Context, data string) (*dto.CaixaDashboardResponse, error)
	Relatorio(ctx context.Context, inicio, fim string) ([]dto.RelatorioCaixaItem, error)
	Fechar(ctx context.Context, req dto.FechamentoRequest) (*dto.FechamentoResponse, error)
	ListFechamentos(ctx context.Context, limit int) ([]dto.FechamentoResponse, error)
	FechamentoPorID(ctx context.Context, id uuid.UUID) (*model.CaixaFechamento, error)

	AbrirTurno(ctx context.Context, req dto.TurnoRequest) (*dto.TurnoResponse, error)
	FecharTurno(ctx context.Context, req dto.FecharTurnoRequest) (*dto.TurnoResponse, error)
	TurnoAtual(ctx context.Context) (*dto.TurnoResponse, error)
}

type caixaService struct {
	repo       repository.CaixaRepository
	dispatcher *worker.Dispatcher
	loc        *time.Location
}

func NewCaixaService(repo repository.CaixaRepository, dispatcher *worker.Dispatcher, loc *time.Location) CaixaService {
	return &caixaService{repo: repo, dispatcher: dispatcher, loc: loc}
}

func (s *caixaService) hoje() time.Time {
	agora := time.Now().In(s.loc)
	return time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, s.loc)
}

func (s *caixaService) parseData(data string) (time.Time, error) {
	if data == "" {
		return s.hoje(), nil
	}
	return time.ParseInLocation("2006-01-02", data, s.loc)
}

// totaisPorForma folds the per-method sums into the fixed response buckets.
// Unrecognized methods land in outros so the grand total always reconciles.
func totaisPorForma(sums map[string]decimal.Decimal) dto.TotaisPorForma {
	t := dto.TotaisPorForma{
		TotalRecebido: decimal.Zero,
		TotalDinheiro: decimal.Zero,
		TotalCredito:  decimal.Zero,
		TotalDebito:   decimal.Zero,
		TotalPix:      decimal.Zero,
		TotalOutros:   decimal.Zero,
	}
	for forma, valor := range sums {
		t.TotalRecebido = t.TotalRecebido.Add(valor)
		switch forma {
		case pagamento.Dinheiro:
			t.TotalDinheiro = t.TotalDinheiro.Add(valor)
		case pagamento.Credito:
			t.TotalCredito = t.TotalCredito.Add(valor)
		case pagamento.Debito:
			t.TotalDebito = t.TotalDebito.Add(valor)
		case pagamento.Pix:
			t.TotalPix = t.TotalPix.Add(valor)
		default:
			t.TotalOutros = t.TotalOutros.Add(valor)
		}
	}
	return t
}

func (s *caixaService) Dashboard(ctx context.Context, data string) (*dto.CaixaDashboardResponse, error) {
	dia, err := s.parseData(data)
	if err != nil {
		return nil, err
	}
	sums, transacoes, err := s.repo.SumPorFormaNaData(ctx, dia)
	if err != nil {
		return nil, err
	}
	return &dto.CaixaDashboardResponse{
		TotaisPorForma:  totaisPorForma(sums),
		TotalTransacoes: transacoes,
	}, nil
}

func (s *caixaService) Relatorio(ctx context.Context, inicio, fim string) ([]dto.RelatorioCaixaItem, error) {
	fimData, err := s.parseData(fim)
	if err != nil {
		return nil, err
	}
	inicioData := fimData.AddDate(0, 0, -30)
	if inicio != "" {
		inicioData, err = s.parseData(inicio)
		if err != nil {
			return nil, err
		}
	}
	return s.repo.RelatorioPeriodo(ctx, inicioData, fimData)
}

// ── Fechar ───────────────────────────────────────────────────────────────────
// Daily closing freezes the ledger aggregate of one date. A date closes once;
// re-closing requires force plus a justification note, and the superseded
// totals go to the audit trail before being replaced.

func (s *caixaService) Fechar(ctx context.Context, req dto.FechamentoRequest) (*dto.FechamentoResponse, error) {
	dia, err := s.parseData(req.DataRef)
	if err != nil {
		return nil, err
	}

	existente, findErr := s.repo.FindFechamentoPorData(ctx, dia)
	if findErr == nil {
		if !req.Force {
			return nil, ErrFechamentoExistente
		}
		if req.Observacao == "" {
			return nil, ErrObservacaoObrigatoria
		}
	} else if !repository.IsNotFound(findErr) {
		return nil, findErr
	}

	sums, transacoes, err := s.repo.SumPorFormaNaData(ctx, dia)
	if err != nil {
		return nil, err
	}
	totais := totaisPorForma(sums)

	fechamento := &model.CaixaFechamento{
		DataRef:         dia,
		TotalRecebido:   totais.TotalRecebido,
		TotalDinheiro:   totais.TotalDinheiro,
		TotalCredito:    totais.TotalCredito,
		TotalDebito:     totais.TotalDebito,
		TotalPix:        totais.TotalPix,
		TotalOutros:     totais.TotalOutros,
		TotalTransacoes: int(transacoes),
	}
	if req.Observacao != "" {
		obs := req.Observacao
		fechamento.Observacao = &obs
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if existente != nil && req.Force {
			if err := s.repo.DeleteFechamentoPorDataTx(ctx, tx, dia); err != nil {
				return err
			}
		}
		return s.repo.CreateFechamentoTx(ctx, tx, fechamento)
	})
	if txErr != nil {
		if existente == nil && isDuplicate(txErr) {
			// Another operator closed the same date first.
			return nil, ErrFechamentoExistente
		}
		return nil, txErr
	}

	if s.dispatcher != nil {
		detalhes := map[string]interface{}{
			"data_ref":       dia.Format("2006-01-02"),
			"total_recebido": fechamento.TotalRecebido.StringFixed(2),
			"transacoes":     fechamento.TotalTransacoes,
			"forcado":        existente != nil,
		}
		if existente != nil {
			detalhes["total_anterior"] = existente.TotalRecebido.StringFixed(2)
			detalhes["observacao"] = req.Observacao
		}
		if err := s.dispatcher.EnqueueAuditoria(ctx, worker.AuditoriaJobPayload{Acao: "fechamento_caixa", Detalhes: detalhes}); err != nil {
			log.Warn().Err(err).Msg("auditoria: enqueue failed")
		}
	}

	return fechamentoToResponse(fechamento), nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (s *caixaService) ListFechamentos(ctx context.Context, limit int) ([]dto.FechamentoResponse, error) {
	fechamentos, err := s.repo.ListFechamentos(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FechamentoResponse, 0, len(fechamentos))
	for i := range fechamentos {
		out = append(out, *fechamentoToResponse(&fechamentos[i]))
	}
	return out, nil
}

func (s *caixaService) FechamentoPorID(ctx context.Context, id uuid.UUID) (*model.CaixaFechamento, error) {
	return s.repo.FindFechamentoPorID(ctx, id)
}

// ── Turnos ───────────────────────────────────────────────────────────────────

func (s *caixaService) AbrirTurno(ctx context.Context, req dto.TurnoRequest) (*dto.TurnoResponse, error) {
	if _, err := s.repo.FindTurnoAberto(ctx); err == nil {
		return nil, ErrTurnoAberto
	}

	agora := time.Now().In(s.loc)
	turno := &model.CaixaTurno{
		DataRef:  s.hoje(),
		AbertoEm: agora,
	}
	if req.Observacao != "" {
		obs := req.Observacao
		turno.Observacao = &obs
	}
	if err := s.repo.CreateTurno(ctx, turno); err != nil {
		if isDuplicate(err) {
			return nil, ErrTurnoAberto
		}
		return nil, err
	}
	return turnoToResponse(turno), nil
}

func (s *caixaService) FecharTurno(ctx context.Context, req dto.FecharTurnoRequest) (*dto.TurnoResponse, error) {
	id, err := uuid.Parse(req.TurnoID)
	if err != nil {
		return nil, ErrTurnoNaoEncontrado
	}
	turno, err := s.repo.FindTurnoPorID(ctx, id)
	if err != nil {
		return nil, ErrTurnoNaoEncontrado
	}
	if turno.FechadoEm != nil {
		return nil, ErrTurnoJaFechado
	}

	agora := time.Now().In(s.loc)
	turno.FechadoEm = &agora
	if req.Observacao != "" {
		obs := req.Observacao
		turno.Observacao = &obs
	}
	if err := s.repo.UpdateTurno(ctx, turno); err != nil {
		return nil, err
	}
	return turnoToResponse(turno), nil
}

func (s *caixaService) TurnoAtual(ctx context.Context) (*dto.TurnoResponse, error) {
	turno, err := s.repo.FindTurnoAberto(ctx)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTurnoNaoEncontrado
		}
		return nil, err
	}
	return turnoToResponse(turno), nil
}

func fechamentoToResponse(f *model.CaixaFechamento) *dto.FechamentoResponse {
	return &dto.FechamentoResponse{
		ID:      f.ID.String(),
		DataRef: f.DataRef.Format("2006-01-02"),
		TotaisPorForma: dto.TotaisPorForma{
			TotalRecebido: f.TotalRecebido,
			TotalDinheiro: f.TotalDinheiro,
			TotalCredito:  f.TotalCredito,
			TotalDebito:   f.TotalDebito,
			TotalPix:      f.TotalPix,
			TotalOutros:   f.TotalOutros,
		},
		TotalTransacoes: f.TotalTransacoes,
		Observacao:      f.Observacao,
		CriadoEm:        f.CreatedAt.Format(time.RFC3339),
	}
}

func turnoToResponse(t *model.CaixaTurno) *dto.TurnoResponse {
	resp := &dto.TurnoResponse{
		ID:         t.ID.String(),
		DataRef:    t.DataRef.Format("2006-01-02"),
		AbertoEm:   t.AbertoEm.Format(time.RFC3339),
		Observacao: t.Observacao,
	}
	if t.FechadoEm != nil {
		fechado := t.FechadoEm.Format(time.RFC3339)
		resp.FechadoEm = &fechado
	}
	return resp
}
