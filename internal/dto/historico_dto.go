package dto

import "github.com/shopspring/decimal"

// HistoricoFilter is bound from the query string of GET /historico.
// It is translated once into parameterized predicates — values are never
// concatenated into SQL.
type HistoricoFilter struct {
	Dia  int    `form:"dia"  validate:"omitempty,min=1,max=31"`
	Mes  int    `form:"mes"  validate:"omitempty,min=1,max=12"`
	Ano  int    `form:"ano"  validate:"omitempty,min=2000,max=2100"`
	Tipo string `form:"tipo" validate:"omitempty,oneof=avulso mensalista diarista"`
}

type HistoricoItem struct {
	ID               string  `json:"id"`
	TicketID         string  `json:"ticket_id"`
	Placa            string  `json:"placa"`
	Classificacao    string  `json:"classificacao"`
	Marca            string  `json:"marca"`
	Modelo           string  `json:"modelo"`
	DataEntrada      string  `json:"data_entrada"`
	HoraEntrada      string  `json:"hora_entrada"`
	DataSaida        *string `json:"data_saida"`
	HoraSaida        *string `json:"hora_saida"`
	TempoPermanencia *string `json:"tempo_permanencia"`
	ValorPago        *string `json:"valor_pago"`
	FormaPagamento   *string `json:"forma_pagamento"`
	Status           string  `json:"status"`
}

// ResumoRelatorio is the aggregate block of GET /relatorio/resumo.
type ResumoRelatorio struct {
	TotalMovimentacoes  int64           `json:"total_movimentacoes"`
	VeiculosNoPatio     int64           `json:"veiculos_no_patio"`
	TotalSaidas         int64           `json:"total_saidas"`
	TotalVeiculosUnicos int64           `json:"total_veiculos_unicos"`
	ReceitaTotal        decimal.Decimal `json:"receita_total"`
	ValorMedio          decimal.Decimal `json:"valor_medio"`
}
