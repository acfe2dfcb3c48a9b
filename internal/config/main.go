package config

import (
	"gitlab.com/distributed_lab/kit/comfig"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/kit/pgdb"
)

type Config interface {
	comfig.Logger
	pgdb.Databaser

	Listener() Listener
	Pricing() Pricing
	Quotes() Quotes
	PriceCache() PriceCache
	TradeEvents() TradeEvents
}

type config struct {
	comfig.Logger
	pgdb.Databaser
	getter kv.Getter

	listenerOnce   comfig.Once
	pricingOnce    comfig.Once
	quotesOnce     comfig.Once
	priceCacheOnce comfig.Once
	eventsOnce     comfig.Once
}

func New(getter kv.Getter) Config {
	return &config{
		getter:    getter,
		Databaser: pgdb.NewDatabaser(getter),
		Logger:    comfig.NewLogger(getter, comfig.LoggerOpts{}),
	}
}
