package requests

import (
	"net/http"
	"strconv"

	"github.com/GlyphSwap/swap-svc/internal/assets"
	"github.com/GlyphSwap/swap-svc/internal/data"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

func NewListOrders(r *http.Request) (data.OrdersFilter, error) {
	var filter data.OrdersFilter
	query := r.URL.Query()

	if token := query.Get("token"); token != "" {
		if !assets.IsListed(token) {
			return filter, errors.Errorf("unknown token %s", token)
		}
		filter.Token = &token
	}
	if status := query.Get("status"); status != "" {
		if status != data.OrderStatusActive && status != data.OrderStatusCancelled {
			return filter, errors.Errorf("unknown status %s", status)
		}
		filter.Status = &status
	}
	if wallet := query.Get("wallet"); wallet != "" {
		filter.Creator = &wallet
	}
	if raw := query.Get("claimed"); raw != "" {
		claimed, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("claimed must be a boolean")
		}
		filter.Claimed = &claimed
	}

	return filter, nil
}
