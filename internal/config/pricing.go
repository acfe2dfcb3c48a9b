package config

import (
	"github.com/shopspring/decimal"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type Pricing struct {
	BaseSymbol string
	FixedRatio decimal.Decimal
	ImpactBps  int64
	HistoryCap int
}

const defaultBaseSymbol = "RXD"
const defaultFixedRatio = 1000
const defaultImpactBps = 10
const defaultHistoryCap = 288

func (c *config) Pricing() Pricing {
	return c.pricingOnce.Do(func() interface{} {
		var cfg struct {
			BaseSymbol string `fig:"base_symbol"`
			FixedRatio int64  `fig:"fixed_ratio"`
			ImpactBps  int64  `fig:"impact_bps"`
			HistoryCap int    `fig:"history_cap"`
		}

		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "pricing")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out pricing"))
		}

		if cfg.BaseSymbol == "" {
			cfg.BaseSymbol = defaultBaseSymbol
		}
		if cfg.FixedRatio == 0 {
			cfg.FixedRatio = defaultFixedRatio
		}
		if cfg.FixedRatio < 0 {
			panic(errors.New("fixed_ratio must be positive"))
		}
		if cfg.ImpactBps == 0 {
			cfg.ImpactBps = defaultImpactBps
		}
		if cfg.ImpactBps < 0 || cfg.ImpactBps >= 10000 {
			panic(errors.New("impact_bps out of range"))
		}
		if cfg.HistoryCap == 0 {
			cfg.HistoryCap = defaultHistoryCap
		}

		return Pricing{
			BaseSymbol: cfg.BaseSymbol,
			FixedRatio: decimal.NewFromInt(cfg.FixedRatio),
			ImpactBps:  cfg.ImpactBps,
			HistoryCap: cfg.HistoryCap,
		}
	}).(Pricing)
}
