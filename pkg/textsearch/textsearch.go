// Package textsearch normaliza texto para búsquedas sin distinguir mayúsculas ni acentos
// ("Eletrônicos" coincide con "eletronicos").
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas, sin marcas diacríticas y sin espacios en los extremos.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Matcher compara candidatos contra una consulta ya normalizada.
type Matcher struct {
	query string
}

// NewMatcher prepara la consulta. Una consulta vacía coincide con todo.
func NewMatcher(query string) Matcher {
	return Matcher{query: Fold(query)}
}

// Empty informa si la consulta no filtra nada.
func (m Matcher) Empty() bool { return m.query == "" }

// Match es true si alguno de los campos contiene la consulta.
func (m Matcher) Match(fields ...string) bool {
	if m.query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), m.query) {
			return true
		}
	}
	return false
}

// Equal compara dos textos ignorando mayúsculas y acentos.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}
