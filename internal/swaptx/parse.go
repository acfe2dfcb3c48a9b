// Package swaptx parses wallet transfer text pasted into the order
// form. Two forms are accepted by the single parser: the structured
// glyphswap:v1 line, and the legacy emoji-delimited template some
// wallets still produce.
package swaptx

import (
	"regexp"
	"strings"

	"github.com/GlyphSwap/swap-svc/internal/assets"
	"github.com/shopspring/decimal"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type Transfer struct {
	FromAmount decimal.Decimal `json:"from_amount"`
	FromToken  string          `json:"from_token"`
	ToAmount   decimal.Decimal `json:"to_amount"`
	ToToken    string          `json:"to_token"`
	TxID       string          `json:"tx_id"`
}

var (
	// glyphswap:v1 from=1000 RXD to=1000000 GLYPH tx=abc123
	structuredRe = regexp.MustCompile(`^glyphswap:v1\s+from=(\S+)\s+([A-Z0-9]+)\s+to=(\S+)\s+([A-Z0-9]+)\s+tx=(\S+)$`)

	// 🔁 Swap: 1000 RXD ➡️ 1000000 GLYPH 📋 Process: abc123
	legacyRe = regexp.MustCompile(`🔁\s*Swap:\s*(\S+)\s+([A-Z0-9]+)\s*➡️\s*(\S+)\s+([A-Z0-9]+)\s*📋\s*Process:\s*(\S+)`)
)

var ErrUnrecognized = errors.New("unrecognized transfer text")

// Parse validates transfer text and returns the extracted fields.
// Malformed input never yields a partial result.
func Parse(text string) (Transfer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Transfer{}, errors.New("transfer text is empty")
	}

	m := structuredRe.FindStringSubmatch(text)
	if m == nil {
		m = legacyRe.FindStringSubmatch(text)
	}
	if m == nil {
		return Transfer{}, ErrUnrecognized
	}

	fromAmount, err := parseAmount(m[1])
	if err != nil {
		return Transfer{}, errors.Wrap(err, "invalid from amount")
	}
	toAmount, err := parseAmount(m[3])
	if err != nil {
		return Transfer{}, errors.Wrap(err, "invalid to amount")
	}

	fromToken, toToken := m[2], m[4]
	if !assets.IsListed(fromToken) {
		return Transfer{}, errors.Errorf("unknown token %s", fromToken)
	}
	if !assets.IsListed(toToken) {
		return Transfer{}, errors.Errorf("unknown token %s", toToken)
	}
	if fromToken == toToken {
		return Transfer{}, errors.New("from and to tokens are the same")
	}

	return Transfer{
		FromAmount: fromAmount,
		FromToken:  fromToken,
		ToAmount:   toAmount,
		ToToken:    toToken,
		TxID:       m[5],
	}, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "not a number")
	}
	if !amount.IsPositive() {
		return decimal.Zero, errors.New("amount must be positive")
	}
	return amount, nil
}
