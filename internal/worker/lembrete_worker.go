package worker

// lembrete_worker.go
// Processes overdue-subscription reminders from QueueLembrete and sends
// them by email via SMTP.

import (
	"context"
	"encoding/json"
	"fmt"

	"estapark/internal/infra"

	"github.com/rs/zerolog/log"
)

// LembreteWorker processes reminder jobs from QueueLembrete.
type LembreteWorker struct {
	mailer *infra.Mailer
}

func NewLembreteWorker(mailer *infra.Mailer) *LembreteWorker {
	return &LembreteWorker{mailer: mailer}
}

// Process sends one overdue reminder. Accounts without an email are skipped;
// the pátio listing still flags them as vencido. A failed send returns an
// error so the pool parks the job on the DLQ.
func (w *LembreteWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LembreteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("payload inválido: %w", err)
	}
	if payload.Email == "" {
		log.Warn().Str("placa", payload.Placa).Msg("lembrete_worker: sem email, ignorando")
		return nil
	}

	subject := "EstaPark — mensalidade vencida"
	body := fmt.Sprintf(
		"Olá %s,\n\nA mensalidade do veículo %s venceu em %s.\n"+
			"Regularize o pagamento na administração do estacionamento.\n\nEstaPark",
		payload.Nome, payload.Placa, payload.Vencimento,
	)

	if err := w.mailer.Enviar(payload.Email, subject, body); err != nil {
		return fmt.Errorf("enviar lembrete para %s: %w", payload.Email, err)
	}
	log.Info().Str("to", payload.Email).Str("placa", payload.Placa).Msg("lembrete_worker: lembrete enviado")
	return nil
}
