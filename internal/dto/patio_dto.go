package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AlocacaoPagamento is one method/amount tuple of a (possibly split) payment.
// Valor carries no validation tag: zero and negative amounts are discarded
// during reconciliation, not rejected at the door.
type AlocacaoPagamento struct {
	Forma string          `json:"forma" validate:"required"`
	Valor decimal.Decimal `json:"valor"`
}

type EntradaRequest struct {
	Placa string `json:"placa" validate:"required"`
	// TicketID is client-generated (QR printers); server generates when empty
	TicketID   string `json:"ticket_id" validate:"omitempty,min=6,max=64"`
	Marca      string `json:"marca"`
	Modelo     string `json:"modelo"`
	Cor        string `json:"cor"`
	Mensalista bool   `json:"mensalista"`
	Diarista   bool   `json:"diarista"`
	// Cliente fields required when Mensalista=true (checked in the service)
	ClienteNome     string `json:"cliente_nome"`
	ClienteTelefone string `json:"cliente_telefone"`
	ClienteCPF      string `json:"cliente_cpf"`
}

type SaidaRequest struct {
	Placa      string              `json:"placa"`
	TicketID   string              `json:"ticket_id"`
	Pagamentos []AlocacaoPagamento `json:"pagamentos" validate:"dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EntradaResponse struct {
	Success       bool   `json:"success"`
	ID            string `json:"id"`
	TicketID      string `json:"ticket_id"`
	Placa         string `json:"placa"`
	Classificacao string `json:"classificacao"`
	EntradaEm     string `json:"entrada_em"`
}

type SaidaResponse struct {
	Success          bool                `json:"success"`
	Placa            string              `json:"placa"`
	TicketID         string              `json:"ticket_id"`
	ValorPago        decimal.Decimal     `json:"valor_pago"`
	TempoPermanencia string              `json:"tempo_permanencia"`
	SaidaEm          string              `json:"saida_em"`
	Pagamentos       []AlocacaoPagamento `json:"pagamentos"`
}

// SessaoAtivaResponse is one card of the pátio listing, with the running
// tempo/valor computed at response time.
type SessaoAtivaResponse struct {
	ID             string          `json:"id"`
	TicketID       string          `json:"ticket_id"`
	Placa          string          `json:"placa"`
	Marca          string          `json:"marca"`
	Modelo         string          `json:"modelo"`
	Cor            string          `json:"cor"`
	Classificacao  string          `json:"classificacao"`
	EntradaEm      string          `json:"entrada_em"`
	TempoDecorrido string          `json:"tempo_decorrido"`
	ValorDevido    decimal.Decimal `json:"valor_devido"`
}

type DashboardResponse struct {
	TotalVagas         int    `json:"total_vagas"`
	VagasOcupadas      int    `json:"vagas_ocupadas"`
	VagasDisponiveis   int    `json:"vagas_disponiveis"`
	PercentualOcupacao string `json:"percentual_ocupacao"`
}
