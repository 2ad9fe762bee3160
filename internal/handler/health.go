package handler

import (
	"context"
	"net/http"
	"time"

	"estapark/internal/infra"
	"estapark/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity plus the plate-registry circuit breaker
// state; never exposes credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		// Parked jobs mean audit rows or reminders waiting for replay.
		dlqAuditoria, _ := worker.DLQLength(ctx, rdb, worker.QueueAuditoria)
		dlqLembrete, _ := worker.DLQLength(ctx, rdb, worker.QueueLembrete)

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":             status == http.StatusOK,
			"db":             dbStatus,
			"redis":          redisStatus,
			"placa_registry": cb.State().String(),
			"dlq": gin.H{
				"auditoria": dlqAuditoria,
				"lembrete":  dlqLembrete,
			},
		})
	}
}
