// Package placa normalizes and validates Brazilian license plates.
package placa

import (
	"regexp"
	"strings"
)

var (
	naoAlfanumerico = regexp.MustCompile(`[^A-Z0-9]`)
	formatoAntigo   = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)           // AAA1234
	formatoMercosul = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`) // AAA1A23
)

// Normalizar strips everything but letters and digits and uppercases.
func Normalizar(p string) string {
	return naoAlfanumerico.ReplaceAllString(strings.ToUpper(p), "")
}

// Valida reports whether the (already- or to-be-normalized) plate matches
// the legacy or Mercosul format.
func Valida(p string) bool {
	n := Normalizar(p)
	return formatoAntigo.MatchString(n) || formatoMercosul.MatchString(n)
}
