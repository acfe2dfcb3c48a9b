package requests

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type ClaimOrder struct {
	OrderID string `json:"-"`
	Wallet  string `json:"wallet"`
}

func NewClaimOrder(r *http.Request) (ClaimOrder, error) {
	var req ClaimOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(err, "failed to decode request body")
	}

	req.OrderID = r.PathValue("id")
	if _, err := uuid.Parse(req.OrderID); err != nil {
		return req, errors.New("order id must be a valid uuid")
	}
	if req.Wallet == "" {
		return req, errors.New("wallet is required")
	}

	return req, nil
}
