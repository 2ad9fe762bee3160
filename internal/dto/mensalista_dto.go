package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type MensalistaRequest struct {
	Placa    string `json:"placa"    validate:"required"`
	Nome     string `json:"nome"     validate:"required,min=2,max=120"`
	Telefone string `json:"telefone" validate:"max=40"`
	Email    string `json:"email"    validate:"omitempty,email"`
	CPF      string `json:"cpf"      validate:"max=20"`
	// Vencimento accepts 2006-01-02; empty keeps the stored date
	Vencimento string `json:"vencimento" validate:"omitempty,datetime=2006-01-02"`
}

type PagamentoMensalistaRequest struct {
	// Either MensalistaID or Placa resolves the account
	MensalistaID string              `json:"mensalista_id" validate:"omitempty,uuid"`
	Placa        string              `json:"placa"`
	Meses        int                 `json:"meses"      validate:"required,min=1,max=24"`
	Pagamentos   []AlocacaoPagamento `json:"pagamentos" validate:"required,min=1,dive"`
}

type AtivoRequest struct {
	Ativo bool `json:"ativo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MensalistaResponse struct {
	ID         string  `json:"id"`
	Placa      string  `json:"placa"`
	Nome       string  `json:"nome"`
	Telefone   *string `json:"telefone"`
	Email      *string `json:"email"`
	CPF        *string `json:"cpf"`
	Vencimento *string `json:"vencimento"`
	Ativo      bool    `json:"ativo"`
	Vencido    bool    `json:"vencido"`
}

type PagamentoMensalistaResponse struct {
	MensalistaID   string          `json:"mensalista_id"`
	TotalPago      decimal.Decimal `json:"total_pago"`
	NovoVencimento string          `json:"novo_vencimento"`
}

type LembretesResponse struct {
	Enfileirados int `json:"enfileirados"`
}
