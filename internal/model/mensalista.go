package model

import (
	"time"

	"github.com/google/uuid"
)

// Mensalista is a monthly-subscriber account keyed by placa.
// Vencimento only moves forward, via registered payments. Accounts are
// soft-deactivated through Ativo — never deleted, billing history remains.
type Mensalista struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Placa    string    `gorm:"type:varchar(7);uniqueIndex;not null"`
	Nome     string    `gorm:"not null"`
	Telefone *string   `gorm:"type:varchar(40)"`
	Email    *string   `gorm:"type:varchar(160)"`
	CPF      *string   `gorm:"column:cpf;type:varchar(20);index"`
	// Vencimento is a date (time at midnight, local lot timezone)
	Vencimento *time.Time `gorm:"type:date"`
	Ativo      bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Mensalista) TableName() string { return "mensalistas" }
