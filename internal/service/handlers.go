package service

import (
	"net/http"

	"github.com/GlyphSwap/swap-svc/internal/assets"
	"github.com/GlyphSwap/swap-svc/internal/data"
	"github.com/GlyphSwap/swap-svc/internal/service/requests"
	"github.com/GlyphSwap/swap-svc/internal/swaptx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

func (s *service) router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /tokens", s.listTokens)
	mux.HandleFunc("GET /prices", s.listPrices)
	mux.HandleFunc("GET /prices/{symbol}/history", s.priceHistory)
	mux.HandleFunc("POST /orders", s.createOrder)
	mux.HandleFunc("GET /orders", s.listOrders)
	mux.HandleFunc("GET /orders/{id}", s.getOrder)
	mux.HandleFunc("POST /orders/{id}/claim", s.claimOrder)
	mux.HandleFunc("POST /orders/{id}/cancel", s.cancelOrder)
	mux.HandleFunc("GET /trades", s.listTrades)
	mux.HandleFunc("POST /wallets", s.addWallet)
	mux.HandleFunc("GET /order_book", s.orderBook)
	mux.HandleFunc("POST /transfers/parse", s.parseTransfer)
	mux.Handle("GET /ws", s.streamer.handler())
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func (s *service) listTokens(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, assets.Tokens())
}

func (s *service) listPrices(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.board.Snapshot())
}

func (s *service) priceHistory(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if !assets.IsListed(symbol) {
		problem(w, http.StatusNotFound, "unknown token "+symbol)
		return
	}
	respond(w, http.StatusOK, s.board.History(symbol))
}

func (s *service) createOrder(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewCreateOrder(r)
	if err != nil {
		problem(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := s.submitOrder(req)
	switch errors.Cause(err) {
	case nil:
		respond(w, http.StatusCreated, order)
	case errWalletNotAllowed:
		problem(w, http.StatusForbidden, err.Error())
	default:
		s.log.WithError(err).Error("failed to create order")
		backendProblem(w)
	}
}

func (s *service) listOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := requests.NewListOrders(r)
	if err != nil {
		problem(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := s.orders.Select(filter)
	if err != nil {
		s.log.WithError(err).Error("failed to list orders")
		backendProblem(w)
		return
	}
	if orders == nil {
		orders = []data.Order{}
	}

	respond(w, http.StatusOK, orders)
}

func (s *service) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.orders.Get(r.PathValue("id"))
	if err != nil {
		s.log.WithError(err).Error("failed to get order")
		backendProblem(w)
		return
	}
	if order == nil {
		problem(w, http.StatusNotFound, "order not found")
		return
	}

	respond(w, http.StatusOK, order)
}

func (s *service) claimOrder(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewClaimOrder(r)
	if err != nil {
		problem(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := s.performClaim(r.Context(), req)
	switch errors.Cause(err) {
	case nil:
		respond(w, http.StatusOK, order)
	case errWalletNotAllowed, errOwnOrder:
		problem(w, http.StatusForbidden, err.Error())
	case data.ErrOrderNotFound:
		problem(w, http.StatusNotFound, err.Error())
	case data.ErrOrderNotClaimable:
		problem(w, http.StatusConflict, err.Error())
	default:
		s.log.WithError(err).Error("failed to claim order")
		backendProblem(w)
	}
}

func (s *service) cancelOrder(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewCancelOrder(r)
	if err != nil {
		problem(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := s.performCancel(req)
	switch errors.Cause(err) {
	case nil:
		respond(w, http.StatusOK, order)
	case errNotCreator:
		problem(w, http.StatusForbidden, err.Error())
	case data.ErrOrderNotFound:
		problem(w, http.StatusNotFound, err.Error())
	case data.ErrOrderNotClaimable:
		problem(w, http.StatusConflict, err.Error())
	default:
		s.log.WithError(err).Error("failed to cancel order")
		backendProblem(w)
	}
}

func (s *service) listTrades(w http.ResponseWriter, r *http.Request) {
	filter, err := requests.NewListTrades(r)
	if err != nil {
		problem(w, http.StatusBadRequest, err.Error())
		return
	}

	trades, err := s.trades.Select(filter)
	if err != nil {
		s.log.WithError(err).Error("failed to list trades")
		backendProblem(w)
		return
	}
	if trades == nil {
		trades = []data.Trade{}
	}

	respond(w, http.StatusOK, trades)
}

// addWallet puts an address on the allow-list. The original did this
// by hand in the hosted console; here it is an admin write.
func (s *service) addWallet(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewAddWallet(r)
	if err != nil {
		problem(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.wallets.Insert(req.Address); err != nil {
		s.log.WithError(err).Error("failed to insert wallet")
		backendProblem(w)
		return
	}

	s.log.WithField("address", req.Address).Info("wallet allow-listed")
	respond(w, http.StatusCreated, req)
}

type orderBookEntry struct {
	FromToken  string `json:"from_token"`
	ToToken    string `json:"to_token"`
	OrderCount int    `json:"order_count"`
	FromVolume string `json:"from_volume"`
	ToVolume   string `json:"to_volume"`
}

// orderBook aggregates open orders per token pair for the order-book
// view.
func (s *service) orderBook(w http.ResponseWriter, r *http.Request) {
	active := data.OrderStatusActive
	unclaimed := false
	filter := data.OrdersFilter{Status: &active, Claimed: &unclaimed}

	from := r.URL.Query().Get("from")
	if from != "" {
		if !assets.IsListed(from) {
			problem(w, http.StatusBadRequest, "unknown token "+from)
			return
		}
		filter.Token = &from
	}
	to := r.URL.Query().Get("to")
	if to != "" && !assets.IsListed(to) {
		problem(w, http.StatusBadRequest, "unknown token "+to)
		return
	}

	orders, err := s.orders.Select(filter)
	if err != nil {
		s.log.WithError(err).Error("failed to list orders for order book")
		backendProblem(w)
		return
	}

	type volumes struct {
		count int
		from  decimal.Decimal
		to    decimal.Decimal
	}
	pairs := make(map[[2]string]*volumes)
	for _, o := range orders {
		// OrdersFilter.Token matches either side, so re-check the
		// requested sides here.
		if from != "" && o.FromToken != from {
			continue
		}
		if to != "" && o.ToToken != to {
			continue
		}
		key := [2]string{o.FromToken, o.ToToken}
		v := pairs[key]
		if v == nil {
			v = &volumes{}
			pairs[key] = v
		}
		v.count++
		if amt, err := decimal.NewFromString(o.FromAmount); err == nil {
			v.from = v.from.Add(amt)
		}
		if amt, err := decimal.NewFromString(o.ToAmount); err == nil {
			v.to = v.to.Add(amt)
		}
	}

	book := make([]orderBookEntry, 0, len(pairs))
	for key, v := range pairs {
		book = append(book, orderBookEntry{
			FromToken:  key[0],
			ToToken:    key[1],
			OrderCount: v.count,
			FromVolume: v.from.String(),
			ToVolume:   v.to.String(),
		})
	}

	respond(w, http.StatusOK, book)
}

func (s *service) parseTransfer(w http.ResponseWriter, r *http.Request) {
	req, err := requests.NewParseTransfer(r)
	if err != nil {
		problem(w, http.StatusBadRequest, err.Error())
		return
	}

	transfer, err := swaptx.Parse(req.Text)
	if err != nil {
		problem(w, http.StatusBadRequest, err.Error())
		return
	}

	respond(w, http.StatusOK, transfer)
}
