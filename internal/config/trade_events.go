package config

import (
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// TradeEvents configures the optional kafka publisher for completed
// trades. Brokers empty means publishing is off.
type TradeEvents struct {
	Brokers []string `fig:"brokers"`
	Topic   string   `fig:"topic"`
}

const defaultTradeTopic = "glyphswap.trades"

func (c *config) TradeEvents() TradeEvents {
	return c.eventsOnce.Do(func() interface{} {
		var cfg TradeEvents

		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "trade_events")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out trade_events"))
		}

		if len(cfg.Brokers) != 0 && cfg.Topic == "" {
			cfg.Topic = defaultTradeTopic
		}

		return cfg
	}).(TradeEvents)
}
