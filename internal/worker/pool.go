package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueAuditoria = "jobs:auditoria"
	QueueLembrete  = "jobs:lembrete"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AuditoriaJobPayload records one state-changing action for the audit trail.
type AuditoriaJobPayload struct {
	Acao     string                 `json:"acao"`
	Detalhes map[string]interface{} `json:"detalhes"`
}

// LembreteJobPayload carries one overdue-subscription reminder.
type LembreteJobPayload struct {
	MensalistaID string `json:"mensalista_id"`
	Placa        string `json:"placa"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	Vencimento   string `json:"vencimento"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueAuditoria pushes an audit-trail job to Redis.
func (d *Dispatcher) EnqueueAuditoria(ctx context.Context, payload AuditoriaJobPayload) error {
	return d.enqueue(ctx, QueueAuditoria, "auditoria", payload)
}

// EnqueueLembrete pushes a reminder job to Redis.
func (d *Dispatcher) EnqueueLembrete(ctx context.Context, payload LembreteJobPayload) error {
	return d.enqueue(ctx, QueueLembrete, "lembrete", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers binds each queue to its processor.
type Handlers struct {
	Auditoria *AuditoriaWorker
	Lembrete  *LembreteWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers Handlers) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers Handlers) {
	queues := []string{QueueAuditoria, QueueLembrete}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, rdb, queue, "unknown", json.RawMessage(raw), "unmarshal: "+err.Error())
		return
	}

	var err error
	switch queue {
	case QueueAuditoria:
		if handlers.Auditoria != nil {
			err = handlers.Auditoria.Process(ctx, job.Payload)
		}
	case QueueLembrete:
		if handlers.Lembrete != nil {
			err = handlers.Lembrete.Process(ctx, job.Payload)
		}
	default:
		log.Warn().Str("queue", queue).Str("type", job.Type).Msg("no handler for queue")
		return
	}

	if err != nil {
		log.Error().Str("queue", queue).Str("type", job.Type).Err(err).Msg("job failed")
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error())
	}
}
