package dto

// PlacaInfoResponse mirrors what terminals expect from GET /placa/:placa.
// A lookup miss is a 200 with Encontrado=false — the check-in flow proceeds
// and the operator fills the vehicle fields manually.
type PlacaInfoResponse struct {
	Encontrado bool   `json:"encontrado"`
	Marca      string `json:"marca"`
	Modelo     string `json:"modelo"`
	Ano        string `json:"ano,omitempty"`
	Cor        string `json:"cor"`
	Origem     string `json:"origem,omitempty"` // "cache" | "api"
}
