package requests

import (
	"encoding/json"
	"net/http"

	"gitlab.com/distributed_lab/logan/v3/errors"
)

type ParseTransfer struct {
	Text string `json:"text"`
}

func NewParseTransfer(r *http.Request) (ParseTransfer, error) {
	var req ParseTransfer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(err, "failed to decode request body")
	}

	if req.Text == "" {
		return req, errors.New("text is required")
	}

	return req, nil
}
