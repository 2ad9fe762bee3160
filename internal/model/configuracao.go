package model

import (
	"time"

	"github.com/google/uuid"
)

// Configuration keys persisted as chave/valor rows.
const (
	ChaveValorHoraInicial   = "valor_hora_inicial"
	ChaveValorHoraAdicional = "valor_hora_adicional"
	ChaveTempoTolerancia    = "tempo_tolerancia"
	ChaveTotalVagas         = "total_vagas"
	ChaveValorMensalidade   = "valor_mensalidade"
	ChaveValorDiaria        = "valor_diaria"
)

// Configuracao is one mutable key/value tariff or lot setting.
// Services never read these from ambient state — the config repo loads them
// per request and hands typed structs down to the calculators.
type Configuracao struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Chave     string    `gorm:"uniqueIndex;not null"`
	Valor     string    `gorm:"not null"`
	UpdatedAt time.Time
}

func (Configuracao) TableName() string { return "configuracoes" }
