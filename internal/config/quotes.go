package config

import (
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type Quotes struct {
	PrimaryURL      string
	FallbackURL     string
	RequestTimeout  time.Duration
	PollPeriod      time.Duration
	MinPollInterval time.Duration
	DefaultPrice    decimal.Decimal
}

const defaultQuoteTimeout = 10 * time.Second
const defaultPollPeriod = 15 * time.Second

// defaultBasePrice is the last-resort RXD quote used before the first
// successful fetch.
const defaultBasePrice = "0.001202"

func (c *config) Quotes() Quotes {
	return c.quotesOnce.Do(func() interface{} {
		var cfg struct {
			PrimaryURL      string        `fig:"primary_url,required"`
			FallbackURL     string        `fig:"fallback_url"`
			RequestTimeout  time.Duration `fig:"request_timeout"`
			PollPeriod      time.Duration `fig:"poll_period"`
			MinPollInterval time.Duration `fig:"min_poll_interval"`
			DefaultPrice    string        `fig:"default_price"`
		}

		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "quotes")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out quotes"))
		}

		if cfg.RequestTimeout == 0 {
			cfg.RequestTimeout = defaultQuoteTimeout
		}
		if cfg.PollPeriod == 0 {
			cfg.PollPeriod = defaultPollPeriod
		}
		if cfg.MinPollInterval == 0 {
			cfg.MinPollInterval = cfg.PollPeriod / 2
		}
		if cfg.DefaultPrice == "" {
			cfg.DefaultPrice = defaultBasePrice
		}

		def, err := decimal.NewFromString(cfg.DefaultPrice)
		if err != nil {
			panic(errors.Wrap(err, "failed to parse default_price"))
		}
		if !def.IsPositive() {
			panic(errors.New("default_price must be positive"))
		}

		return Quotes{
			PrimaryURL:      cfg.PrimaryURL,
			FallbackURL:     cfg.FallbackURL,
			RequestTimeout:  cfg.RequestTimeout,
			PollPeriod:      cfg.PollPeriod,
			MinPollInterval: cfg.MinPollInterval,
			DefaultPrice:    def,
		}
	}).(Quotes)
}
