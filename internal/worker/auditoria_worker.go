package worker

// auditoria_worker.go
// Persists audit-trail jobs from QueueAuditoria. Writing the audit row off
// the request path keeps check-in/check-out latency independent of it.

import (
	"context"
	"encoding/json"
	"fmt"

	"estapark/internal/model"
	"estapark/internal/repository"

	"github.com/rs/zerolog/log"
)

// AuditoriaWorker processes audit jobs from QueueAuditoria.
type AuditoriaWorker struct {
	repo repository.AuditoriaRepository
}

func NewAuditoriaWorker(repo repository.AuditoriaRepository) *AuditoriaWorker {
	return &AuditoriaWorker{repo: repo}
}

// Process stores one audit record. A non-nil error sends the job to the
// DLQ; jobs that are merely empty are skipped without failing.
func (w *AuditoriaWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload AuditoriaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("payload inválido: %w", err)
	}
	if payload.Acao == "" {
		log.Warn().Msg("auditoria_worker: acao vazia, ignorando")
		return nil
	}

	detalhes, err := json.Marshal(payload.Detalhes)
	if err != nil {
		return fmt.Errorf("serializar detalhes: %w", err)
	}

	registro := &model.Auditoria{Acao: payload.Acao, Detalhes: detalhes}
	if err := w.repo.Create(ctx, registro); err != nil {
		return fmt.Errorf("persistir auditoria: %w", err)
	}
	log.Debug().Str("acao", payload.Acao).Msg("auditoria_worker: registrado")
	return nil
}
