package tarifa

import (
	"testing"
	"time"

	"estapark/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func calc(t *testing.T, classificacao string, minutos int) decimal.Decimal {
	t.Helper()
	entrada := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	saida := entrada.Add(time.Duration(minutos) * time.Minute)
	return Calcular(classificacao, entrada, saida, DefaultConfig())
}

func TestCalcular_DentroTolerancia(t *testing.T) {
	assert.True(t, calc(t, model.ClassificacaoAvulso, 0).IsZero())
	assert.True(t, calc(t, model.ClassificacaoAvulso, 10).IsZero())
	// Exactly at the limit is still free
	assert.True(t, calc(t, model.ClassificacaoAvulso, 15).IsZero())
}

func TestCalcular_PrimeiraHora(t *testing.T) {
	// One minute past the tolerance charges the full first hour
	assert.Equal(t, "5", calc(t, model.ClassificacaoAvulso, 16).String())
	assert.Equal(t, "5", calc(t, model.ClassificacaoAvulso, 59).String())
	assert.Equal(t, "5", calc(t, model.ClassificacaoAvulso, 60).String())
}

func TestCalcular_HorasAdicionais(t *testing.T) {
	// 61 min → first hour + 1 started additional hour
	assert.Equal(t, "7.5", calc(t, model.ClassificacaoAvulso, 61).String())
	assert.Equal(t, "7.5", calc(t, model.ClassificacaoAvulso, 120).String())
	// 121 min → 2 additional hours
	assert.Equal(t, "10", calc(t, model.ClassificacaoAvulso, 121).String())
	// 5h: first + 4 additional
	assert.Equal(t, "15", calc(t, model.ClassificacaoAvulso, 300).String())
}

func TestCalcular_ArredondaSegundosParaCima(t *testing.T) {
	entrada := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	// 60m30s ceils to 61 minutes → additional hour kicks in
	saida := entrada.Add(60*time.Minute + 30*time.Second)
	got := Calcular(model.ClassificacaoAvulso, entrada, saida, DefaultConfig())
	assert.Equal(t, "7.5", got.String())
}

func TestCalcular_RelogioRetrocedido(t *testing.T) {
	entrada := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	saida := entrada.Add(-5 * time.Minute)
	got := Calcular(model.ClassificacaoAvulso, entrada, saida, DefaultConfig())
	assert.True(t, got.IsZero())
}

func TestCalcular_Mensalista(t *testing.T) {
	// Subscribers never pay at the gate, regardless of time
	assert.True(t, calc(t, model.ClassificacaoMensalista, 600).IsZero())
}

func TestCalcular_Diarista(t *testing.T) {
	// Flat daily rate: ten minutes or ten hours cost the same
	assert.Equal(t, "25", calc(t, model.ClassificacaoDiarista, 10).String())
	assert.Equal(t, "25", calc(t, model.ClassificacaoDiarista, 600).String())
}

func TestCalcular_ToleranciaZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ToleranciaMinutos = 0
	entrada := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	got := Calcular(model.ClassificacaoAvulso, entrada, entrada.Add(time.Minute), cfg)
	assert.Equal(t, "5", got.String())
}

func TestPermanencia(t *testing.T) {
	entrada := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 90*time.Minute, Permanencia(entrada, entrada.Add(90*time.Minute)))
	assert.Equal(t, time.Duration(0), Permanencia(entrada, entrada))
	// A clock moved backwards still reads as zero stay
	assert.Equal(t, time.Duration(0), Permanencia(entrada, entrada.Add(-time.Hour)))
}

func TestFormatarDuracao(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatarDuracao(0))
	assert.Equal(t, "00:05:30", FormatarDuracao(5*time.Minute+30*time.Second))
	assert.Equal(t, "27:15:00", FormatarDuracao(27*time.Hour+15*time.Minute))
	assert.Equal(t, "00:00:00", FormatarDuracao(-time.Minute))
}
