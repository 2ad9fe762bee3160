package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"estapark/internal/dto"
	"estapark/internal/model"
	"estapark/internal/pagamento"
	"estapark/internal/placa"
	"estapark/internal/repository"
	"estapark/internal/tarifa"
	"estapark/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PatioService interface {
	CheckIn(ctx context.Context, req dto.EntradaRequest) (*dto.EntradaResponse, error)
	CheckOut(ctx context.Context, req dto.SaidaRequest) (*dto.SaidaResponse, error)
	ListAtivas(ctx context.Context) ([]dto.SessaoAtivaResponse, error)
	BuscarAtiva(ctx context.Context, placaBusca, ticketID string) (*dto.SessaoAtivaResponse, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	Historico(ctx context.Context, filter dto.HistoricoFilter) ([]dto.HistoricoItem, error)
	HistoricoPorPlaca(ctx context.Context, placaBusca string) ([]dto.HistoricoItem, error)
	Resumo(ctx context.Context, tipo string) (*dto.ResumoRelatorio, error)
}

type patioService struct {
	sessaoRepo     repository.SessaoRepository
	caixaRepo      repository.CaixaRepository
	mensalistaRepo repository.MensalistaRepository
	configSvc      ConfigService
	dispatcher     *worker.Dispatcher
	loc            *time.Location
}

func NewPatioService(
	sessaoRepo repository.SessaoRepository,
	caixaRepo repository.CaixaRepository,
	mensalistaRepo repository.MensalistaRepository,
	configSvc ConfigService,
	dispatcher *worker.Dispatcher,
	loc *time.Location,
) PatioService {
	return &patioService{
		sessaoRepo:     sessaoRepo,
		caixaRepo:      caixaRepo,
		mensalistaRepo: mensalistaRepo,
		configSvc:      configSvc,
		dispatcher:     dispatcher,
		loc:            loc,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// novoTicketID generates a server-side ticket when the client (QR printer)
// did not supply one. The millisecond prefix keeps tickets roughly sortable.
func novoTicketID(agora time.Time) string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("ent-%d-%s", agora.UnixMilli(), hex.EncodeToString(buf))
}

// ── CheckIn ──────────────────────────────────────────────────────────────────
// Entry flow:
//  1. Normalize and validate the plate
//  2. Resolve the billing classification (flags, or the mensalista registry)
//  3. TX: advisory lock → count occupancy → reject when full → upsert
//     mensalista data → insert the active session
//  4. (async) audit record

func (s *patioService) CheckIn(ctx context.Context, req dto.EntradaRequest) (*dto.EntradaResponse, error) {
	placaNorm := placa.Normalizar(req.Placa)
	if !placa.Valida(placaNorm) {
		return nil, ErrPlacaInvalida
	}
	if req.Mensalista && req.Diarista {
		return nil, ErrClassificacaoAmbigua
	}

	agora := time.Now().In(s.loc)

	sessao := &model.Sessao{
		TicketID:      strings.TrimSpace(req.TicketID),
		Placa:         placaNorm,
		Classificacao: model.ClassificacaoAvulso,
		EntradaEm:     agora,
		Status:        model.SessaoAtiva,
	}
	if sessao.TicketID == "" {
		sessao.TicketID = novoTicketID(agora)
	}
	if v := strings.TrimSpace(req.Marca); v != "" {
		sessao.Marca = &v
	}
	if v := strings.TrimSpace(req.Modelo); v != "" {
		sessao.Modelo = &v
	}
	if v := strings.TrimSpace(req.Cor); v != "" {
		sessao.Cor = &v
	}

	switch {
	case req.Mensalista:
		if strings.TrimSpace(req.ClienteNome) == "" {
			return nil, ErrMensalistaSemNome
		}
		sessao.Classificacao = model.ClassificacaoMensalista
		nome := strings.TrimSpace(req.ClienteNome)
		sessao.ClienteNome = &nome
		if v := strings.TrimSpace(req.ClienteTelefone); v != "" {
			sessao.ClienteTelefone = &v
		}
		if v := strings.TrimSpace(req.ClienteCPF); v != "" {
			sessao.ClienteCPF = &v
		}
	case req.Diarista:
		sessao.Classificacao = model.ClassificacaoDiarista
	default:
		// Plates registered as active mensalistas check in as such even when
		// the operator forgets the flag.
		if m, err := s.mensalistaRepo.FindPorPlaca(ctx, placaNorm); err == nil && m.Ativo {
			sessao.Classificacao = model.ClassificacaoMensalista
			sessao.ClienteNome = &m.Nome
			sessao.ClienteTelefone = m.Telefone
			sessao.ClienteCPF = m.CPF
		}
	}

	if _, err := s.sessaoRepo.FindAtivaPorPlaca(ctx, placaNorm); err == nil {
		return nil, ErrSessaoDuplicada
	}

	totalVagas, err := s.configSvc.TotalVagas(ctx)
	if err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.sessaoRepo.DB(), func(tx *gorm.DB) error {
		if err := s.sessaoRepo.LockCapacidadeTx(ctx, tx); err != nil {
			return err
		}
		ocupadas, err := s.sessaoRepo.CountAtivasTx(ctx, tx)
		if err != nil {
			return err
		}
		if ocupadas >= int64(totalVagas) {
			return ErrPatioLotado
		}

		if req.Mensalista {
			m := &model.Mensalista{
				Placa:    placaNorm,
				Nome:     strings.TrimSpace(req.ClienteNome),
				Telefone: sessao.ClienteTelefone,
				CPF:      sessao.ClienteCPF,
				Ativo:    true,
			}
			if _, err := s.mensalistaRepo.UpsertTx(ctx, tx, m); err != nil {
				return err
			}
		}

		return s.sessaoRepo.CreateTx(ctx, tx, sessao)
	})
	if txErr != nil {
		// The partial unique indexes close the races the pre-flight checks
		// cannot. Either the plate index or the ticket index may have fired;
		// re-check the plate to report the right one.
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			if _, err := s.sessaoRepo.FindAtivaPorPlaca(ctx, placaNorm); err == nil {
				return nil, ErrSessaoDuplicada
			}
			if req.TicketID != "" {
				return nil, ErrTicketDuplicado
			}
			return nil, ErrSessaoDuplicada
		}
		return nil, txErr
	}

	s.auditar(ctx, "entrada_registrada", map[string]interface{}{
		"sessao_id":     sessao.ID.String(),
		"ticket_id":     sessao.TicketID,
		"placa":         sessao.Placa,
		"classificacao": sessao.Classificacao,
	})

	return &dto.EntradaResponse{
		Success:       true,
		ID:            sessao.ID.String(),
		TicketID:      sessao.TicketID,
		Placa:         sessao.Placa,
		Classificacao: sessao.Classificacao,
		EntradaEm:     sessao.EntradaEm.Format(time.RFC3339),
	}, nil
}

// ── CheckOut ─────────────────────────────────────────────────────────────────
// Exit flow:
//  1. Resolve the active session (ticket wins over plate)
//  2. Compute the amount due from the current tariff config
//  3. Reconcile the (possibly split) payment against it
//  4. TX: close the session guarded by status='ativa' → one immutable cash
//     movement per payment method
//
// A concurrent double checkout loses the UPDATE race and gets "não encontrada".

func (s *patioService) CheckOut(ctx context.Context, req dto.SaidaRequest) (*dto.SaidaResponse, error) {
	sessao, err := s.resolverAtiva(ctx, req)
	if err != nil {
		return nil, err
	}

	cfg, err := s.configSvc.LoadTarifa(ctx)
	if err != nil {
		return nil, err
	}

	agora := time.Now().In(s.loc)
	valorDevido := tarifa.Calcular(sessao.Classificacao, sessao.EntradaEm, agora, cfg)

	alocacoes := make([]pagamento.Alocacao, 0, len(req.Pagamentos))
	for _, p := range req.Pagamentos {
		alocacoes = append(alocacoes, pagamento.Alocacao{Forma: p.Forma, Valor: p.Valor})
	}
	validas, err := pagamento.Reconciliar(valorDevido, alocacoes)
	if err != nil {
		return nil, err
	}

	permanencia := tarifa.FormatarDuracao(tarifa.Permanencia(sessao.EntradaEm, agora))
	sessao.SaidaEm = &agora
	sessao.TempoPermanencia = &permanencia
	sessao.ValorPago = &valorDevido
	if len(validas) > 0 {
		formas := make([]string, 0, len(validas))
		for _, a := range validas {
			formas = append(formas, a.Forma)
		}
		formaJoined := strings.Join(formas, "+")
		sessao.FormaPagamento = &formaJoined
	}

	txErr := runTx(ctx, s.sessaoRepo.DB(), func(tx *gorm.DB) error {
		ok, err := s.sessaoRepo.EncerrarTx(ctx, tx, sessao)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSessaoNaoEncontrada
		}

		for _, a := range validas {
			sessaoID := sessao.ID
			mov := &model.CaixaMovimento{
				Origem:         model.OrigemSaidaSessao,
				SessaoID:       &sessaoID,
				Placa:          sessao.Placa,
				Nome:           sessao.ClienteNome,
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

	s.auditar(ctx, "saida_registrada", map[string]interface{}{
		"sessao_id":  sessao.ID.String(),
		"ticket_id":  sessao.TicketID,
		"placa":      sessao.Placa,
		"valor_pago": valorDevido.StringFixed(2),
	})

	pagos := make([]dto.AlocacaoPagamento, 0, len(validas))
	for _, a := range validas {
		pagos = append(pagos, dto.AlocacaoPagamento{Forma: a.Forma, Valor: a.Valor})
	}
	return &dto.SaidaResponse{
		Success:          true,
		Placa:            sessao.Placa,
		TicketID:         sessao.TicketID,
		ValorPago:        valorDevido,
		TempoPermanencia: permanencia,
		SaidaEm:          agora.Format(time.RFC3339),
		Pagamentos:       pagos,
	}, nil
}

// resolverAtiva looks up by ticket first; on a ticket miss it falls back to
// the plate, supporting scanners that only capture a plate.
func (s *patioService) resolverAtiva(ctx context.Context, req dto.SaidaRequest) (*model.Sessao, error) {
	ticket := strings.TrimSpace(req.TicketID)
	placaNorm := placa.Normalizar(req.Placa)
	if ticket == "" && placaNorm == "" {
		return nil, ErrIdentificadorAusente
	}

	if ticket != "" {
		sessao, err := s.sessaoRepo.FindAtivaPorTicket(ctx, ticket)
		if err == nil {
			return sessao, nil
		}
		if !repository.IsNotFound(err) {
			return nil, err
		}
		if placaNorm == "" {
			return nil, ErrSessaoNaoEncontrada
		}
	}

	sessao, err := s.sessaoRepo.FindAtivaPorPlaca(ctx, placaNorm)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSessaoNaoEncontrada
		}
		return nil, err
	}
	return sessao, nil
}

// ── Listing & dashboards ─────────────────────────────────────────────────────

func (s *patioService) ListAtivas(ctx context.Context) ([]dto.SessaoAtivaResponse, error) {
	sessoes, err := s.sessaoRepo.ListAtivas(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configSvc.LoadTarifa(ctx)
	if err != nil {
		return nil, err
	}

	agora := time.Now().In(s.loc)
	out := make([]dto.SessaoAtivaResponse, 0, len(sessoes))
	for _, sessao := range sessoes {
		out = append(out, dto.SessaoAtivaResponse{
			ID:             sessao.ID.String(),
			TicketID:       sessao.TicketID,
			Placa:          sessao.Placa,
			Marca:          strOrEmpty(sessao.Marca),
			Modelo:         strOrEmpty(sessao.Modelo),
			Cor:            strOrEmpty(sessao.Cor),
			Classificacao:  sessao.Classificacao,
			EntradaEm:      sessao.EntradaEm.Format(time.RFC3339),
			TempoDecorrido: tarifa.FormatarDuracao(tarifa.Permanencia(sessao.EntradaEm, agora)),
			ValorDevido:    tarifa.Calcular(sessao.Classificacao, sessao.EntradaEm, agora, cfg),
		})
	}
	return out, nil
}

// BuscarAtiva resolves one active session by ticket or plate, with the
// check-out lookup precedence, and returns it with running tempo/valor.
func (s *patioService) BuscarAtiva(ctx context.Context, placaBusca, ticketID string) (*dto.SessaoAtivaResponse, error) {
	sessao, err := s.resolverAtiva(ctx, dto.SaidaRequest{Placa: placaBusca, TicketID: ticketID})
	if err != nil {
		return nil, err
	}
	cfg, err := s.configSvc.LoadTarifa(ctx)
	if err != nil {
		return nil, err
	}

	agora := time.Now().In(s.loc)
	return &dto.SessaoAtivaResponse{
		ID:             sessao.ID.String(),
		TicketID:       sessao.TicketID,
		Placa:          sessao.Placa,
		Marca:          strOrEmpty(sessao.Marca),
		Modelo:         strOrEmpty(sessao.Modelo),
		Cor:            strOrEmpty(sessao.Cor),
		Classificacao:  sessao.Classificacao,
		EntradaEm:      sessao.EntradaEm.Format(time.RFC3339),
		TempoDecorrido: tarifa.FormatarDuracao(tarifa.Permanencia(sessao.EntradaEm, agora)),
		ValorDevido:    tarifa.Calcular(sessao.Classificacao, sessao.EntradaEm, agora, cfg),
	}, nil
}

func (s *patioService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totalVagas, err := s.configSvc.TotalVagas(ctx)
	if err != nil {
		return nil, err
	}
	ocupadas, err := s.sessaoRepo.CountAtivasTx(ctx, s.sessaoRepo.DB())
	if err != nil {
		return nil, err
	}

	disponiveis := totalVagas - int(ocupadas)
	if disponiveis < 0 {
		disponiveis = 0
	}
	pct := 0.0
	if totalVagas > 0 {
		pct = float64(ocupadas) / float64(totalVagas) * 100
	}
	return &dto.DashboardResponse{
		TotalVagas:         totalVagas,
		VagasOcupadas:      int(ocupadas),
		VagasDisponiveis:   disponiveis,
		PercentualOcupacao: fmt.Sprintf("%.1f%%", pct),
	}, nil
}

func (s *patioService) Historico(ctx context.Context, filter dto.HistoricoFilter) ([]dto.HistoricoItem, error) {
	sessoes, err := s.sessaoRepo.ListHistorico(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.sessoesToHistorico(sessoes), nil
}

func (s *patioService) HistoricoPorPlaca(ctx context.Context, placaBusca string) ([]dto.HistoricoItem, error) {
	placaNorm := placa.Normalizar(placaBusca)
	if placaNorm == "" {
		return nil, ErrPlacaInvalida
	}
	sessoes, err := s.sessaoRepo.ListHistoricoPorPlaca(ctx, placaNorm)
	if err != nil {
		return nil, err
	}
	return s.sessoesToHistorico(sessoes), nil
}

func (s *patioService) Resumo(ctx context.Context, tipo string) (*dto.ResumoRelatorio, error) {
	return s.sessaoRepo.Resumo(ctx, tipo)
}

func (s *patioService) sessoesToHistorico(sessoes []model.Sessao) []dto.HistoricoItem {
	items := make([]dto.HistoricoItem, 0, len(sessoes))
	for _, sessao := range sessoes {
		entrada := sessao.EntradaEm.In(s.loc)
		item := dto.HistoricoItem{
			ID:               sessao.ID.String(),
			TicketID:         sessao.TicketID,
			Placa:            sessao.Placa,
			Classificacao:    sessao.Classificacao,
			Marca:            strOrEmpty(sessao.Marca),
			Modelo:           strOrEmpty(sessao.Modelo),
			DataEntrada:      entrada.Format("2006-01-02"),
			HoraEntrada:      entrada.Format("15:04:05"),
			TempoPermanencia: sessao.TempoPermanencia,
			FormaPagamento:   sessao.FormaPagamento,
			Status:           sessao.Status,
		}
		if sessao.SaidaEm != nil {
			saida := sessao.SaidaEm.In(s.loc)
			dataSaida := saida.Format("2006-01-02")
			horaSaida := saida.Format("15:04:05")
			item.DataSaida = &dataSaida
			item.HoraSaida = &horaSaida
		}
		if sessao.ValorPago != nil {
			valor := sessao.ValorPago.StringFixed(2)
			item.ValorPago = &valor
		}
		items = append(items, item)
	}
	return items
}

func (s *patioService) auditar(ctx context.Context, acao string, detalhes map[string]interface{}) {
	if s.dispatcher == nil {
		return
	}
	// Best-effort: the business transaction already committed.
	if err := s.dispatcher.EnqueueAuditoria(ctx, worker.AuditoriaJobPayload{Acao: acao, Detalhes: detalhes}); err != nil {
		log.Warn().Err(err).Str("acao", acao).Msg("auditoria: enqueue failed")
	}
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
