package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type FechamentoRequest struct {
	// DataRef defaults to today (lot timezone) when empty; format 2006-01-02
	DataRef    string `json:"data_ref"    validate:"omitempty,datetime=2006-01-02"`
	Observacao string `json:"observacao"  validate:"max=255"`
	// Force replaces an existing closing for the same date; requires Observacao
	Force bool `json:"force"`
}

type TurnoRequest struct {
	Observacao string `json:"observacao" validate:"max=255"`
}

type FecharTurnoRequest struct {
	TurnoID    string `json:"turno_id"   validate:"required,uuid"`
	Observacao string `json:"observacao" validate:"max=255"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// TotaisPorForma breaks received money down by canonical payment method.
type TotaisPorForma struct {
	TotalRecebido decimal.Decimal `json:"total_recebido"`
	TotalDinheiro decimal.Decimal `json:"total_dinheiro"`
	TotalCredito  decimal.Decimal `json:"total_credito"`
	TotalDebito   decimal.Decimal `json:"total_debito"`
	TotalPix      decimal.Decimal `json:"total_pix"`
	TotalOutros   decimal.Decimal `json:"total_outros"`
}

type CaixaDashboardResponse struct {
	TotaisPorForma
	TotalTransacoes int64 `json:"total_transacoes"`
}

type FechamentoResponse struct {
	ID      string `json:"id"`
	DataRef string `json:"data_ref"`
	TotaisPorForma
	TotalTransacoes int     `json:"total_transacoes"`
	Observacao      *string `json:"observacao"`
	CriadoEm        string  `json:"criado_em"`
}

type TurnoResponse struct {
	ID         string  `json:"id"`
	DataRef    string  `json:"data_ref"`
	AbertoEm   string  `json:"aberto_em"`
	FechadoEm  *string `json:"fechado_em"`
	Observacao *string `json:"observacao"`
}

// RelatorioCaixaItem is one (date × payment method) aggregate row of
// GET /caixa/relatorio.
type RelatorioCaixaItem struct {
	Data       string          `json:"data"`
	Forma      string          `json:"forma_pagamento"`
	Quantidade int64           `json:"quantidade"`
	Total      decimal.Decimal `json:"total"`
}
