package service

import (
	"context"
	"sync"
	"time"

	"gitlab.com/distributed_lab/logan/v3/errors"
)

// pollGate drops a poll when one is still in flight or the previous
// one finished too recently.
type pollGate struct {
	mu          sync.Mutex
	inFlight    bool
	lastStarted time.Time
	minInterval time.Duration
}

func newPollGate(minInterval time.Duration) *pollGate {
	return &pollGate{minInterval: minInterval}
}

func (g *pollGate) tryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight || time.Since(g.lastStarted) < g.minInterval {
		return false
	}
	g.inFlight = true
	g.lastStarted = time.Now()
	return true
}

func (g *pollGate) release() {
	g.mu.Lock()
	g.inFlight = false
	g.mu.Unlock()
}

func (s *service) pollQuotes(ctx context.Context) error {
	if !s.pollGate.tryAcquire() {
		s.log.Debug("skipping quote poll, previous one too recent or still running")
		return nil
	}
	defer s.pollGate.release()

	price, err := s.quotes.Fetch(ctx)
	if err != nil {
		quoteFetchFailures.Inc()
		return errors.Wrap(err, "failed to fetch base asset quote")
	}

	s.board.SetBasePrice(ctx, price)
	s.streamer.broadcast(eventPriceUpdate, s.board.Snapshot())
	s.log.WithField("base_price", price.String()).Debug("updated base asset quote")

	return nil
}
