package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlyphSwap/swap-svc/internal/assets"
	"github.com/GlyphSwap/swap-svc/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestAPITokens(t *testing.T) {
	s, _, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/tokens")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens []assets.Token
	decode(t, resp, &tokens)
	assert.Len(t, tokens, len(assets.Tokens()))
}

func TestAPIPrices(t *testing.T) {
	s, _, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/prices")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var prices map[string]string
	decode(t, resp, &prices)
	assert.Equal(t, "0.001202", prices["RXD"])
	assert.Equal(t, "0.000001202", prices["GLYPH"])
}

func TestAPIOrderLifecycle(t *testing.T) {
	s, _, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/orders", map[string]string{
		"creator":     "alice",
		"from_token":  "RXD",
		"to_token":    "GLYPH",
		"from_amount": "1000",
		"to_amount":   "1000000",
		"swap_tx":     "raw-tx",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order data.Order
	decode(t, resp, &order)
	assert.Equal(t, "1000", order.FromAmount)
	assert.Equal(t, "1000000", order.ToAmount)

	// own order cannot be claimed
	resp = postJSON(t, srv.URL+"/orders/"+order.ID+"/claim", map[string]string{"wallet": "alice"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// claim by counterparty
	resp = postJSON(t, srv.URL+"/orders/"+order.ID+"/claim", map[string]string{"wallet": "bob"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var claimed data.Order
	decode(t, resp, &claimed)
	assert.True(t, claimed.Claimed)

	// second claim loses with a distinct conflict
	resp = postJSON(t, srv.URL+"/orders/"+order.ID+"/claim", map[string]string{"wallet": "bob"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// exactly one trade row
	resp, err := http.Get(srv.URL + "/trades")
	require.NoError(t, err)
	var trades []data.Trade
	decode(t, resp, &trades)
	assert.Len(t, trades, 1)
}

func TestAPIClaimRequiresAllowList(t *testing.T) {
	s, orders, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	order, err := s.submitOrder(createReq())
	require.NoError(t, err)
	_, ok := orders.byID[order.ID]
	require.True(t, ok)

	resp := postJSON(t, srv.URL+"/orders/"+order.ID+"/claim", map[string]string{"wallet": "mallory"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPICancelForeignOrder(t *testing.T) {
	s, _, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	order, err := s.submitOrder(createReq())
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/orders/"+order.ID+"/cancel", map[string]string{"wallet": "bob"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPICreateRejectsValidation(t *testing.T) {
	s, _, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/orders", map[string]string{
		"creator":     "alice",
		"from_token":  "RXD",
		"to_token":    "GLYPH",
		"from_amount": "-1",
		"to_amount":   "2",
		"swap_tx":     "x",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIOrderBook(t *testing.T) {
	s, _, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	_, err := s.submitOrder(createReq())
	require.NoError(t, err)
	_, err = s.submitOrder(createReq())
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/order_book?from=RXD&to=GLYPH")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var book []orderBookEntry
	decode(t, resp, &book)
	require.Len(t, book, 1)
	assert.Equal(t, 2, book[0].OrderCount)
	assert.Equal(t, "2000", book[0].FromVolume)
	assert.Equal(t, "2000000", book[0].ToVolume)
}

func TestAPIOrderBookFiltersFromSide(t *testing.T) {
	s, _, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	// GLYPH->RXD touches RXD only on the to side and must not show up
	// under ?from=RXD
	req := createReq()
	req.FromToken, req.ToToken = "GLYPH", "RXD"
	_, err := s.submitOrder(req)
	require.NoError(t, err)

	_, err = s.submitOrder(createReq())
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/order_book?from=RXD")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var book []orderBookEntry
	decode(t, resp, &book)
	require.NotEmpty(t, book)
	for _, entry := range book {
		assert.Equal(t, "RXD", entry.FromToken)
	}
}

func TestAPIOrderBookFiltersToSide(t *testing.T) {
	s, _, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	req := createReq()
	req.FromToken, req.ToToken = "GLYPH", "RXD"
	_, err := s.submitOrder(req)
	require.NoError(t, err)

	_, err = s.submitOrder(createReq())
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/order_book?to=RXD")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var book []orderBookEntry
	decode(t, resp, &book)
	require.Len(t, book, 1)
	assert.Equal(t, "GLYPH", book[0].FromToken)
	assert.Equal(t, "RXD", book[0].ToToken)
}

func TestAPIOrderBookRejectsUnknownToToken(t *testing.T) {
	s, _, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/order_book?to=WAT")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIAddWallet(t *testing.T) {
	s, _, _, wallets := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/orders", map[string]string{
		"creator":     "carol",
		"from_token":  "RXD",
		"to_token":    "GLYPH",
		"from_amount": "10",
		"to_amount":   "10000",
		"swap_tx":     "raw-tx",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/wallets", map[string]string{"address": "carol"})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, wallets.allowed["carol"])

	resp = postJSON(t, srv.URL+"/orders", map[string]string{
		"creator":     "carol",
		"from_token":  "RXD",
		"to_token":    "GLYPH",
		"from_amount": "10",
		"to_amount":   "10000",
		"swap_tx":     "raw-tx",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestAPIAddWalletRequiresAddress(t *testing.T) {
	s, _, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/wallets", map[string]string{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIParseTransfer(t *testing.T) {
	s, _, _, _ := newTestService(t)
	srv := httptest.NewServer(s.router())
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/transfers/parse", map[string]string{
		"text": "glyphswap:v1 from=1000 RXD to=1000000 GLYPH tx=abc",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var transfer struct {
		FromToken string `json:"from_token"`
		ToToken   string `json:"to_token"`
		TxID      string `json:"tx_id"`
	}
	decode(t, resp, &transfer)
	assert.Equal(t, "RXD", transfer.FromToken)
	assert.Equal(t, "GLYPH", transfer.ToToken)
	assert.Equal(t, "abc", transfer.TxID)
}
