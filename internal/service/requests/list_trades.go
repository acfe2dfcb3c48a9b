package requests

import (
	"net/http"
	"strconv"

	"github.com/GlyphSwap/swap-svc/internal/assets"
	"github.com/GlyphSwap/swap-svc/internal/data"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const maxTradesPage = 200

func NewListTrades(r *http.Request) (data.TradesFilter, error) {
	filter := data.TradesFilter{Limit: maxTradesPage}
	query := r.URL.Query()

	if token := query.Get("token"); token != "" {
		if !assets.IsListed(token) {
			return filter, errors.Errorf("unknown token %s", token)
		}
		filter.Token = &token
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit == 0 {
			return filter, errors.New("limit must be a positive integer")
		}
		if limit > maxTradesPage {
			limit = maxTradesPage
		}
		filter.Limit = limit
	}

	return filter, nil
}
