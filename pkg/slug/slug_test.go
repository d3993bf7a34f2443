package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proencasmoda/loja-api/pkg/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"acentos removidos", "Calças", "calcas"},
		{"espacos e pontuacao colapsados", "  Plus  Size!!", "plus-size"},
		{"nome simples", "Vestidos", "vestidos"},
		{"maiusculas", "BLUSAS", "blusas"},
		{"varios acentos", "Coleção Verão", "colecao-verao"},
		{"numeros preservados", "Promoção 50% Off", "promocao-50-off"},
		{"hifens nas bordas", "---Saias---", "saias"},
		{"vazio", "", ""},
		{"apenas simbolos", "!!!", ""},
		{"cedilha e til", "São João", "sao-joao"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.Make(tt.input))
		})
	}
}

func TestMakeOnlyProducesSafeCharacters(t *testing.T) {
	inputs := []string{
		"Calças",
		"  Plus  Size!!",
		"Ética & Estética",
		"çãõüñ é",
		"produto\tcom\ncontrole",
		"emoji 🆕 novidade",
	}

	for _, input := range inputs {
		got := slug.Make(input)

		assert.False(t, strings.HasPrefix(got, "-"), "slug %q começa com hífen", got)
		assert.False(t, strings.HasSuffix(got, "-"), "slug %q termina com hífen", got)
		assert.NotContains(t, got, "--", "slug %q tem hífens consecutivos", got)

		for _, r := range got {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, ok, "slug %q contém caractere inválido %q", got, r)
		}
	}
}
