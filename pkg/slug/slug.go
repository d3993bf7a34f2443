// Package slug deriva identificadores URL-safe a partir de nomes de exibição.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decompõe em NFD e remove as marcas combinantes (acentos).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Make converte um nome de exibição em slug: minúsculas, acentos removidos,
// sequências fora de [a-z0-9] viram um único hífen e hífens nas bordas são
// descartados. "Calças" -> "calcas", "  Plus  Size!!" -> "plus-size".
func Make(name string) string {
	lowered := strings.ToLower(name)

	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		// Entrada que não normaliza segue sem remoção de acentos;
		// os caracteres restantes ainda são filtrados abaixo.
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))

	pendingHyphen := false
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}
