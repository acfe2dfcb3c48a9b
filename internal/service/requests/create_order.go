package requests

import (
	"encoding/json"
	"net/http"

	"github.com/GlyphSwap/swap-svc/internal/assets"
	"github.com/shopspring/decimal"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type CreateOrder struct {
	Creator    string `json:"creator"`
	FromToken  string `json:"from_token"`
	ToToken    string `json:"to_token"`
	FromAmount string `json:"from_amount"`
	ToAmount   string `json:"to_amount"`
	SwapTx     string `json:"swap_tx"`
}

func NewCreateOrder(r *http.Request) (CreateOrder, error) {
	var req CreateOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(err, "failed to decode request body")
	}

	if req.Creator == "" {
		return req, errors.New("creator is required")
	}
	if req.SwapTx == "" {
		return req, errors.New("swap_tx is required")
	}
	if err := validatePair(req.FromToken, req.ToToken); err != nil {
		return req, err
	}

	fromAmount, err := validateAmount(req.FromAmount, "from_amount")
	if err != nil {
		return req, err
	}
	toAmount, err := validateAmount(req.ToAmount, "to_amount")
	if err != nil {
		return req, err
	}

	req.FromAmount = fromAmount.String()
	req.ToAmount = toAmount.String()
	return req, nil
}

func validatePair(fromToken, toToken string) error {
	if fromToken == "" || toToken == "" {
		return errors.New("from_token and to_token are required")
	}
	if !assets.IsListed(fromToken) {
		return errors.Errorf("unknown token %s", fromToken)
	}
	if !assets.IsListed(toToken) {
		return errors.Errorf("unknown token %s", toToken)
	}
	if fromToken == toToken {
		return errors.New("from_token and to_token must differ")
	}
	return nil
}

func validateAmount(raw, field string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, errors.Errorf("%s is required", field)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Errorf("%s is not a number", field)
	}
	if !amount.IsPositive() {
		return decimal.Zero, errors.Errorf("%s must be positive", field)
	}
	return amount, nil
}
