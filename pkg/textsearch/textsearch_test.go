package textsearch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockpro-api/pkg/textsearch"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "eletronicos", textsearch.Fold("  Eletrônicos "))
	assert.Equal(t, "sao paulo", textsearch.Fold("SÃO PAULO"))
	assert.Equal(t, "", textsearch.Fold(""))
}

func TestMatcher(t *testing.T) {
	m := textsearch.NewMatcher("joao")
	assert.True(t, m.Match("Maria", "João da Silva"))
	assert.False(t, m.Match("Maria", "Pedro"))

	empty := textsearch.NewMatcher("   ")
	assert.True(t, empty.Empty())
	assert.True(t, empty.Match())
}

func TestEqual(t *testing.T) {
	assert.True(t, textsearch.Equal("Eletrônicos", "ELETRONICOS"))
	assert.False(t, textsearch.Equal("Casa", "Roupas"))
}
