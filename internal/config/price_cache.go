package config

import (
	"github.com/redis/go-redis/v9"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// PriceCache is an optional redis client used to snapshot the price
// board across restarts. Client is nil when the section is absent or
// disabled; the service must run without it.
type PriceCache struct {
	Client *redis.Client
}

func (c *config) PriceCache() PriceCache {
	return c.priceCacheOnce.Do(func() interface{} {
		var cfg struct {
			Disabled bool   `fig:"disabled"`
			Addr     string `fig:"addr"`
			Password string `fig:"password"`
			DB       int    `fig:"db"`
		}

		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "price_cache")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out price_cache"))
		}

		if cfg.Disabled || cfg.Addr == "" {
			return PriceCache{}
		}

		return PriceCache{Client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})}
	}).(PriceCache)
}
