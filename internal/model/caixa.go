package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Origem of a cash movement.
const (
	OrigemSaidaSessao         = "saida_sessao"
	OrigemPagamentoMensalista = "pagamento_mensalista"
)

// CaixaMovimento is one immutable entry in the cash ledger: one row per
// (transação × forma de pagamento). A split payment on a single checkout
// produces multiple rows sharing the same SessaoID, data and hora.
// Movements are NEVER updated or deleted.
type CaixaMovimento struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Origem       string     `gorm:"type:varchar(32);not null;index"`
	SessaoID     *uuid.UUID `gorm:"type:uuid;index"`
	MensalistaID *uuid.UUID `gorm:"type:uuid;index"`
	Placa        string     `gorm:"type:varchar(7)"`
	Nome         *string
	Valor        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// FormaPagamento is the canonical label (dinheiro|credito|debito|pix)
	// or the lowercased free-text fallback for unrecognized input
	FormaPagamento string `gorm:"type:varchar(60);not null;index"`
	// DataPagamento is the business date the money actually moved — closings
	// aggregate over this, not over the session's entry date
	DataPagamento time.Time `gorm:"type:date;not null;index"`
	HoraPagamento string    `gorm:"type:varchar(8);not null"`
	Observacao    *string   `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
}

func (CaixaMovimento) TableName() string { return "caixa_movimentos" }

// CaixaFechamento is the immutable daily aggregate of cash movements.
// At most one row per DataRef; an explicit force overwrite (with a required
// note) replaces it inside one transaction.
type CaixaFechamento struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DataRef         time.Time       `gorm:"type:date;uniqueIndex;not null"`
	TotalRecebido   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalDinheiro   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalCredito    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalDebito     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPix        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalOutros     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalTransacoes int             `gorm:"not null"`
	Observacao      *string         `gorm:"type:varchar(255)"`
	CreatedAt       time.Time
}

func (CaixaFechamento) TableName() string { return "caixa_fechamentos" }

// CaixaTurno is an operator-defined reconciliation window distinct from the
// calendar day. At most one turno may be open (FechadoEm IS NULL) at a time,
// enforced by a partial unique index.
type CaixaTurno struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DataRef    time.Time `gorm:"type:date;not null;index"`
	AbertoEm   time.Time `gorm:"not null"`
	FechadoEm  *time.Time
	Observacao *string `gorm:"type:varchar(255)"`
	CreatedAt  time.Time
}

func (CaixaTurno) TableName() string { return "caixa_turnos" }
