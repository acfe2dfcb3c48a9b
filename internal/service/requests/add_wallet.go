package requests

import (
	"encoding/json"
	"net/http"

	"gitlab.com/distributed_lab/logan/v3/errors"
)

type AddWallet struct {
	Address string `json:"address"`
}

func NewAddWallet(r *http.Request) (AddWallet, error) {
	var req AddWallet
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(err, "failed to decode request body")
	}

	if req.Address == "" {
		return req, errors.New("address is required")
	}

	return req, nil
}
