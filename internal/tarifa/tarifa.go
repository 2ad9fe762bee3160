// Package tarifa computes the amount due for a parking stay.
// Pure functions only — config is passed in, never read from ambient state.
package tarifa

import (
	"fmt"
	"time"

	"estapark/internal/model"

	"github.com/shopspring/decimal"
)

// Config holds the tariff parameters loaded from the configuracoes table.
type Config struct {
	PrimeiraHora      decimal.Decimal
	HoraAdicional     decimal.Decimal
	ToleranciaMinutos int
	Diaria            decimal.Decimal
	Mensalidade       decimal.Decimal
}

// DefaultConfig mirrors the reference deployment values. Callers must treat
// these as seeds for the config store, not as business constants.
func DefaultConfig() Config {
	return Config{
		PrimeiraHora:      decimal.NewFromFloat(5.00),
		HoraAdicional:     decimal.NewFromFloat(2.50),
		ToleranciaMinutos: 15,
		Diaria:            decimal.NewFromFloat(25.00),
		Mensalidade:       decimal.NewFromFloat(300.00),
	}
}

// Calcular maps a stay to the amount due.
//
// Avulso: free inside the tolerance window (evaluated against wall-clock
// elapsed time, tolerance counts even inside the first hour), then the
// first-hour rate up to 60 ceiled minutes, then one additional-hour rate per
// started hour. Billing rounds up — in the operator's favor.
//
// Mensalista: zero; billing happens through the subscription.
// Diarista: flat daily rate regardless of elapsed time.
func Calcular(classificacao string, entrada, saida time.Time, cfg Config) decimal.Decimal {
	switch classificacao {
	case model.ClassificacaoMensalista:
		return decimal.Zero
	case model.ClassificacaoDiarista:
		return cfg.Diaria
	}

	elapsed := Permanencia(entrada, saida)

	tolerancia := time.Duration(cfg.ToleranciaMinutos) * time.Minute
	if elapsed <= tolerancia {
		return decimal.Zero
	}

	minutos := ceilMinutes(elapsed)
	if minutos <= 60 {
		return cfg.PrimeiraHora
	}

	horasAdicionais := (minutos - 60 + 59) / 60
	return cfg.PrimeiraHora.Add(cfg.HoraAdicional.Mul(decimal.NewFromInt(horasAdicionais)))
}

// Permanencia returns the elapsed stay between check-in and check-out.
// Clock skew must never produce a negative stay or a negative fee.
func Permanencia(entrada, saida time.Time) time.Duration {
	if saida.Before(entrada) {
		return 0
	}
	return saida.Sub(entrada)
}

func ceilMinutes(d time.Duration) int64 {
	ms := d.Milliseconds()
	return (ms + 59999) / 60000
}

// FormatarDuracao renders an elapsed time as HH:MM:SS for receipts and the
// pátio listing. Negative durations render as 00:00:00.
func FormatarDuracao(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
