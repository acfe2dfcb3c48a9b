package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glyphswap_orders_created_total",
		Help: "Orders created.",
	})
	ordersClaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glyphswap_orders_claimed_total",
		Help: "Orders claimed.",
	})
	ordersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glyphswap_orders_cancelled_total",
		Help: "Orders cancelled.",
	})
	quoteFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glyphswap_quote_fetch_failures_total",
		Help: "Base asset quote fetches that exhausted all providers.",
	})
	wsClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "glyphswap_ws_clients",
		Help: "Connected change feed clients.",
	})
)
