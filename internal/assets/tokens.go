package assets

// Token describes a listed asset. The registry is static: it is
// compiled in and never changes at runtime.
type Token struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	TotalSupply int64  `json:"total_supply"`
	IsBase      bool   `json:"is_base"`
}

// BaseSymbol is the reference asset all listed token prices are quoted
// against.
const BaseSymbol = "RXD"

var registry = []Token{
	{Symbol: "RXD", Name: "Radiant", Image: "/images/rxd.png", TotalSupply: 21_000_000_000, IsBase: true},
	{Symbol: "GLYPH", Name: "Glyph", Image: "/images/glyph.png", TotalSupply: 1_000_000_000},
	{Symbol: "RADCAT", Name: "RadCat", Image: "/images/radcat.png", TotalSupply: 21_000_000},
	{Symbol: "PILIM", Name: "Pilim", Image: "/images/pilim.png", TotalSupply: 100_000_000_000},
	{Symbol: "KEKW", Name: "Kekw", Image: "/images/kekw.png", TotalSupply: 1_000_000_000_000},
	{Symbol: "DIGI", Name: "Digi", Image: "/images/digi.png", TotalSupply: 10_000_000_000},
	{Symbol: "RAD", Name: "Rad", Image: "/images/rad.png", TotalSupply: 8_000_000_000},
}

var bySymbol = func() map[string]Token {
	m := make(map[string]Token, len(registry))
	for _, t := range registry {
		m[t.Symbol] = t
	}
	return m
}()

// Tokens returns the full registry in listing order.
func Tokens() []Token {
	out := make([]Token, len(registry))
	copy(out, registry)
	return out
}

func Lookup(symbol string) (Token, bool) {
	t, ok := bySymbol[symbol]
	return t, ok
}

func IsListed(symbol string) bool {
	_, ok := bySymbol[symbol]
	return ok
}
