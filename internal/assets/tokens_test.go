package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	base, ok := Lookup(BaseSymbol)
	require.True(t, ok)
	assert.True(t, base.IsBase)

	assert.True(t, IsListed("GLYPH"))
	assert.False(t, IsListed("WAT"))

	symbols := make(map[string]struct{})
	for _, tok := range Tokens() {
		_, dup := symbols[tok.Symbol]
		assert.False(t, dup, "duplicate symbol %s", tok.Symbol)
		symbols[tok.Symbol] = struct{}{}
		assert.Positive(t, tok.TotalSupply)
	}
}
