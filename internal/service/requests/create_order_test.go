package requests

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrder(t *testing.T) {
	body := `{
		"creator": "alice",
		"from_token": "RXD",
		"to_token": "GLYPH",
		"from_amount": "1000",
		"to_amount": "1000000",
		"swap_tx": "raw-tx"
	}`

	req, err := NewCreateOrder(httptest.NewRequest("POST", "/orders", strings.NewReader(body)))
	require.NoError(t, err)

	assert.Equal(t, "alice", req.Creator)
	assert.Equal(t, "1000", req.FromAmount)
	assert.Equal(t, "1000000", req.ToAmount)
}

func TestNewCreateOrderValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "nope"},
		{"missing creator", `{"from_token":"RXD","to_token":"GLYPH","from_amount":"1","to_amount":"2","swap_tx":"x"}`},
		{"missing swap_tx", `{"creator":"a","from_token":"RXD","to_token":"GLYPH","from_amount":"1","to_amount":"2"}`},
		{"missing tokens", `{"creator":"a","from_amount":"1","to_amount":"2","swap_tx":"x"}`},
		{"unknown token", `{"creator":"a","from_token":"WAT","to_token":"GLYPH","from_amount":"1","to_amount":"2","swap_tx":"x"}`},
		{"same tokens", `{"creator":"a","from_token":"RXD","to_token":"RXD","from_amount":"1","to_amount":"2","swap_tx":"x"}`},
		{"zero amount", `{"creator":"a","from_token":"RXD","to_token":"GLYPH","from_amount":"0","to_amount":"2","swap_tx":"x"}`},
		{"negative amount", `{"creator":"a","from_token":"RXD","to_token":"GLYPH","from_amount":"1","to_amount":"-2","swap_tx":"x"}`},
		{"non-numeric amount", `{"creator":"a","from_token":"RXD","to_token":"GLYPH","from_amount":"one","to_amount":"2","swap_tx":"x"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCreateOrder(httptest.NewRequest("POST", "/orders", strings.NewReader(tc.body)))
			assert.Error(t, err)
		})
	}
}

func TestNewClaimOrder(t *testing.T) {
	r := httptest.NewRequest("POST", "/orders/x/claim", strings.NewReader(`{"wallet":"bob"}`))
	r.SetPathValue("id", "6f1c6f4e-7e7a-4a8e-9d38-0b06e52a54fa")

	req, err := NewClaimOrder(r)
	require.NoError(t, err)
	assert.Equal(t, "bob", req.Wallet)
}

func TestNewClaimOrderRejectsBadID(t *testing.T) {
	r := httptest.NewRequest("POST", "/orders/x/claim", strings.NewReader(`{"wallet":"bob"}`))
	r.SetPathValue("id", "not-a-uuid")

	_, err := NewClaimOrder(r)
	assert.Error(t, err)
}

func TestNewCancelOrderRequiresWallet(t *testing.T) {
	r := httptest.NewRequest("POST", "/orders/x/cancel", strings.NewReader(`{}`))
	r.SetPathValue("id", "6f1c6f4e-7e7a-4a8e-9d38-0b06e52a54fa")

	_, err := NewCancelOrder(r)
	assert.Error(t, err)
}

func TestNewListOrdersFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/orders?token=GLYPH&status=active&claimed=false", nil)

	filter, err := NewListOrders(r)
	require.NoError(t, err)
	require.NotNil(t, filter.Token)
	assert.Equal(t, "GLYPH", *filter.Token)
	require.NotNil(t, filter.Status)
	assert.Equal(t, "active", *filter.Status)
	require.NotNil(t, filter.Claimed)
	assert.False(t, *filter.Claimed)
}

func TestNewListOrdersRejectsUnknownToken(t *testing.T) {
	_, err := NewListOrders(httptest.NewRequest("GET", "/orders?token=WAT", nil))
	assert.Error(t, err)
}

func TestNewListTradesCapsLimit(t *testing.T) {
	filter, err := NewListTrades(httptest.NewRequest("GET", "/trades?limit=100000", nil))
	require.NoError(t, err)
	assert.Equal(t, uint64(maxTradesPage), filter.Limit)
}
