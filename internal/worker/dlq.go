package worker

// Failed jobs are parked on a Redis list ("dlq:" + source queue) so an
// operator can inspect and replay them with redis-cli. Parking is best
// effort: if Redis itself is unreachable the job is lost after logging.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

type dlqEntry struct {
	Fila     string          `json:"fila"`
	Tipo     string          `json:"tipo"`
	Payload  json.RawMessage `json:"payload"`
	Motivo   string          `json:"motivo"`
	FalhouEm time.Time       `json:"falhou_em"`
}

// SendToDLQ parks a job whose handler failed. An audit row or reminder
// that cannot be processed stays recoverable instead of vanishing.
func SendToDLQ(ctx context.Context, rdb *redis.Client, fila, tipo string, payload json.RawMessage, motivo string) {
	if rdb == nil {
		log.Error().Str("fila", fila).Str("motivo", motivo).Msg("dlq: sem redis, job descartado")
		return
	}

	entry := dlqEntry{
		Fila:     fila,
		Tipo:     tipo,
		Payload:  payload,
		Motivo:   motivo,
		FalhouEm: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("fila", fila).Msg("dlq: falha ao serializar entrada")
		return
	}

	if err := rdb.LPush(ctx, dlqPrefix+fila, data).Err(); err != nil {
		log.Error().Err(err).Str("fila", fila).Msg("dlq: falha ao enfileirar")
		return
	}
	log.Warn().Str("fila", fila).Str("tipo", tipo).Str("motivo", motivo).Msg("dlq: job estacionado")
}

// DLQLength reports how many jobs are parked for a queue.
func DLQLength(ctx context.Context, rdb *redis.Client, fila string) (int64, error) {
	return rdb.LLen(ctx, dlqPrefix+fila).Result()
}
