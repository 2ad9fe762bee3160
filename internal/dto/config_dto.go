package dto

// ConfiguracoesRequest mirrors the chave/valor rows the UI edits. All values
// travel as strings, exactly as persisted; the service validates they parse.
type ConfiguracoesRequest struct {
	ValorHoraInicial   string `json:"valor_hora_inicial"   validate:"required"`
	ValorHoraAdicional string `json:"valor_hora_adicional" validate:"required"`
	TempoTolerancia    string `json:"tempo_tolerancia"     validate:"required"`
	TotalVagas         string `json:"total_vagas"          validate:"required"`
	ValorMensalidade   string `json:"valor_mensalidade"    validate:"required"`
	ValorDiaria        string `json:"valor_diaria"         validate:"required"`
}

type ConfiguracoesResponse struct {
	Success bool              `json:"success"`
	Dados   map[string]string `json:"dados"`
}
