package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Classificacao de cobrança de uma sessão.
const (
	ClassificacaoAvulso     = "avulso"
	ClassificacaoMensalista = "mensalista"
	ClassificacaoDiarista   = "diarista"
)

// Status de uma sessão. "encerrada" is terminal — there is no way back.
const (
	SessaoAtiva     = "ativa"
	SessaoEncerrada = "encerrada"
)

// Sessao represents one vehicle stay, from entrada to saída.
// Rows are NEVER deleted — a checkout only transitions status, keeping the
// full history queryable.  At most one "ativa" row may exist per placa,
// enforced by a partial unique index (see infra.applySchemaPatches).
type Sessao struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID string    `gorm:"uniqueIndex;not null"`
	// Placa is normalized: uppercase, alphanumeric only, AAA9999 or AAA9A99
	Placa         string `gorm:"type:varchar(7);index;not null"`
	Marca         *string
	Modelo        *string
	Cor           *string
	Classificacao string `gorm:"type:varchar(20);not null;default:'avulso'"`
	// Cliente fields are filled on mensalista check-in only
	ClienteNome     *string
	ClienteTelefone *string
	ClienteCPF      *string `gorm:"column:cliente_cpf;type:varchar(20)"`
	EntradaEm       time.Time
	SaidaEm         *time.Time
	// TempoPermanencia is the formatted HH:MM:SS stamp printed on receipts
	TempoPermanencia *string          `gorm:"type:varchar(12)"`
	ValorPago        *decimal.Decimal `gorm:"type:decimal(10,2)"`
	FormaPagamento   *string          `gorm:"type:varchar(60)"`
	Status           string           `gorm:"type:varchar(20);not null;default:'ativa';index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Sessao) TableName() string { return "sessoes" }
