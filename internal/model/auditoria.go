package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Auditoria records every state-changing action with a free-form JSON detail
// payload. Used for traceability, not for replay.
type Auditoria struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Acao      string          `gorm:"type:varchar(120);not null;index"`
	Detalhes  json.RawMessage `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (Auditoria) TableName() string { return "auditoria" }
