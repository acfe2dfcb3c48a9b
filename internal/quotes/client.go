package quotes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/GlyphSwap/swap-svc/internal/config"
	"github.com/shopspring/decimal"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const fetchAttempts = 3
const fetchBackoff = time.Second

// Client fetches the base asset USD quote from a primary provider with
// a secondary fallback. Fetch failures degrade to the last good value,
// and before any fetch ever succeeds to a configured default.
type Client struct {
	log      *logan.Entry
	http     *http.Client
	primary  string
	fallback string
	def      decimal.Decimal

	mu      sync.RWMutex
	last    decimal.Decimal
	hasLast bool
}

type quoteResponse struct {
	Price json.Number `json:"price"`
}

func NewClient(log *logan.Entry, cfg config.Quotes) *Client {
	return &Client{
		log:      log,
		http:     &http.Client{Timeout: cfg.RequestTimeout},
		primary:  cfg.PrimaryURL,
		fallback: cfg.FallbackURL,
		def:      cfg.DefaultPrice,
	}
}

// BasePrice returns the freshest quote it can get: a live fetch, else
// the cached last value, else the default. It never fails.
func (c *Client) BasePrice(ctx context.Context) decimal.Decimal {
	price, err := c.Fetch(ctx)
	if err != nil {
		c.log.WithError(err).Warn("quote fetch failed, using cached price")
		return c.Cached()
	}
	return price
}

// Cached returns the last successfully fetched quote, or the default
// when nothing was ever fetched.
func (c *Client) Cached() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.hasLast {
		return c.last
	}
	return c.def
}

// Fetch tries the primary provider, then the fallback, each with a
// bounded number of fixed-backoff attempts.
func (c *Client) Fetch(ctx context.Context) (decimal.Decimal, error) {
	price, primaryErr := c.fetchWithRetry(ctx, c.primary)
	if primaryErr == nil {
		c.remember(price)
		return price, nil
	}

	if c.fallback == "" {
		return decimal.Zero, errors.Wrap(primaryErr, "primary quote provider failed")
	}

	c.log.WithError(primaryErr).Warn("primary quote provider failed, trying fallback")
	price, err := c.fetchWithRetry(ctx, c.fallback)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "fallback quote provider failed", logan.F{
			"primary_error": primaryErr.Error(),
		})
	}

	c.remember(price)
	return price, nil
}

func (c *Client) fetchWithRetry(ctx context.Context, url string) (decimal.Decimal, error) {
	var lastErr error
	for i := 0; i < fetchAttempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return decimal.Zero, ctx.Err()
			case <-time.After(fetchBackoff):
			}
		}

		price, err := c.fetchOnce(ctx, url)
		if err == nil {
			return price, nil
		}
		lastErr = err
	}
	return decimal.Zero, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, url string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to perform request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, errors.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to read response body")
	}

	var quote quoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to unmarshal quote")
	}

	price, err := decimal.NewFromString(quote.Price.String())
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to parse quoted price")
	}
	if !price.IsPositive() {
		return decimal.Zero, errors.Errorf("non-positive quoted price %s", price.String())
	}

	return price, nil
}

func (c *Client) remember(price decimal.Decimal) {
	c.mu.Lock()
	c.last = price
	c.hasLast = true
	c.mu.Unlock()
}
