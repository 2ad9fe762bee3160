// Package pagamento normalizes payment-method labels and validates split
// payments against a due amount. Persistence of the resulting cash movements
// happens in the calling service, inside its transaction.
package pagamento

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical payment methods. Anything the normalizer does not recognize
// passes through lowercased as a fallback bucket so that free-text entry
// never loses money, while dashboards stay consistent on these four.
const (
	Dinheiro = "dinheiro"
	Credito  = "credito"
	Debito   = "debito"
	Pix      = "pix"
)

// ErrPagamentoDivergente: the allocations do not sum to the amount due.
// Checked before anything is persisted.
var ErrPagamentoDivergente = errors.New("soma dos pagamentos diverge do valor devido")

// Tolerancia absorbs floating-point rounding in operator input.
// |sum − due| ≤ 0.01 is accepted; anything beyond is rejected.
var Tolerancia = decimal.NewFromFloat(0.01)

// Alocacao is one payment-method/amount tuple of a split payment.
type Alocacao struct {
	Forma string
	Valor decimal.Decimal
}

// NormalizarForma maps a free-text payment label onto a canonical method.
// Matching is accent- and case-insensitive and tolerates the label variants
// the operator terminals historically produced ("Cartão de Crédito",
// "CREDITO", "credit card", …).
func NormalizarForma(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = removeAcentos(s)

	switch {
	case s == "":
		return ""
	case strings.Contains(s, "dinheiro"), strings.Contains(s, "cash"), strings.Contains(s, "especie"):
		return Dinheiro
	case strings.Contains(s, "pix"):
		return Pix
	case strings.Contains(s, "debito"), strings.Contains(s, "debit"):
		return Debito
	case strings.Contains(s, "credito"), strings.Contains(s, "credit"):
		return Credito
	default:
		return s
	}
}

func removeAcentos(s string) string {
	r := strings.NewReplacer(
		"á", "a", "à", "a", "ã", "a", "â", "a",
		"é", "e", "ê", "e",
		"í", "i",
		"ó", "o", "õ", "o", "ô", "o",
		"ú", "u", "ü", "u",
		"ç", "c",
	)
	return r.Replace(s)
}

// Reconciliar validates allocations against the due amount and returns the
// normalized set. Non-positive allocations are dropped before the sum check.
// A zero due amount requires zero (remaining) allocations — a checkout inside
// the tolerance window succeeds without payment and produces no movements.
func Reconciliar(valorDevido decimal.Decimal, alocacoes []Alocacao) ([]Alocacao, error) {
	validas := make([]Alocacao, 0, len(alocacoes))
	soma := decimal.Zero
	for _, a := range alocacoes {
		if !a.Valor.IsPositive() {
			continue
		}
		validas = append(validas, Alocacao{Forma: NormalizarForma(a.Forma), Valor: a.Valor})
		soma = soma.Add(a.Valor)
	}

	if soma.Sub(valorDevido).Abs().GreaterThan(Tolerancia) {
		return nil, ErrPagamentoDivergente
	}
	if valorDevido.IsZero() {
		// Tolerance also lets a stray 0.01 through here; be strict instead:
		// nothing due means nothing recorded.
		if len(validas) > 0 {
			return nil, ErrPagamentoDivergente
		}
		return nil, nil
	}
	return validas, nil
}
