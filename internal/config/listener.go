package config

import (
	"time"

	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type Listener struct {
	Addr            string        `fig:"addr"`
	ShutdownTimeout time.Duration `fig:"shutdown_timeout"`
}

const defaultListenAddr = ":8080"
const defaultShutdownTimeout = 10 * time.Second

func (c *config) Listener() Listener {
	return c.listenerOnce.Do(func() interface{} {
		var cfg Listener

		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "listener")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out listener"))
		}

		if cfg.Addr == "" {
			cfg.Addr = defaultListenAddr
		}
		if cfg.ShutdownTimeout == 0 {
			cfg.ShutdownTimeout = defaultShutdownTimeout
		}

		return cfg
	}).(Listener)
}
