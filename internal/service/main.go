package service

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GlyphSwap/swap-svc/internal/config"
	"github.com/GlyphSwap/swap-svc/internal/data"
	"github.com/GlyphSwap/swap-svc/internal/data/postgres"
	"github.com/GlyphSwap/swap-svc/internal/events"
	"github.com/GlyphSwap/swap-svc/internal/pricing"
	"github.com/GlyphSwap/swap-svc/internal/quotes"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
	"gitlab.com/distributed_lab/running"
)

type service struct {
	log      *logan.Entry
	listener config.Listener

	orders  data.Orders
	trades  data.Trades
	wallets data.Wallets

	board     *pricing.Board
	quotes    *quotes.Client
	streamer  *streamer
	publisher *events.Publisher

	pollGate *pollGate
}

func newService(cfg config.Config) *service {
	log := cfg.Log()
	pricingCfg := cfg.Pricing()
	quotesCfg := cfg.Quotes()

	board := pricing.NewBoard(log, pricing.Options{
		BaseSymbol:   pricingCfg.BaseSymbol,
		FixedRatio:   pricingCfg.FixedRatio,
		ImpactBps:    pricingCfg.ImpactBps,
		HistoryCap:   pricingCfg.HistoryCap,
		InitialPrice: quotesCfg.DefaultPrice,
		Cache:        pricing.NewCache(cfg.PriceCache().Client),
	})

	eventsCfg := cfg.TradeEvents()

	return &service{
		log:       log,
		listener:  cfg.Listener(),
		orders:    postgres.NewOrders(cfg.DB()),
		trades:    postgres.NewTrades(cfg.DB()),
		wallets:   postgres.NewWallets(cfg.DB()),
		board:     board,
		quotes:    quotes.NewClient(log, quotesCfg),
		streamer:  newStreamer(log),
		publisher: events.NewPublisher(eventsCfg.Brokers, eventsCfg.Topic),
		pollGate:  newPollGate(quotesCfg.MinPollInterval),
	}
}

func (s *service) run(cfg config.Config) error {
	s.log.Info("service started")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.board.Restore(ctx); err != nil {
		s.log.WithError(err).Warn("failed to restore price board, starting fresh")
	}
	s.board.SetBasePrice(ctx, s.quotes.BasePrice(ctx))

	go running.WithBackOff(ctx, s.log, "quote-poller",
		s.pollQuotes, cfg.Quotes().PollPeriod, time.Second, time.Minute)

	server := &http.Server{Addr: s.listener.Addr, Handler: s.router()}
	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()
	s.log.WithField("addr", s.listener.Addr).Info("listening")

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.listener.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down http server")
	}

	if err := s.publisher.Close(); err != nil {
		s.log.WithError(err).Warn("failed to close trade event publisher")
	}

	s.log.Info("service stopped")
	return nil
}

func Run(cfg config.Config) {
	if err := newService(cfg).run(cfg); err != nil {
		panic(err)
	}
}
