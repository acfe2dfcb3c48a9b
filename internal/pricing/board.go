package pricing

import (
	"context"
	"sync"
	"time"

	"github.com/GlyphSwap/swap-svc/internal/assets"
	"github.com/shopspring/decimal"
	"gitlab.com/distributed_lab/logan/v3"
)

// Board is the single owned price state for every listed token.
// Listed prices derive from the base asset quote divided by the fixed
// ratio, adjusted by a per-token impact multiplier that claim events
// nudge by a flat fraction (ImpactBps). All consumers read through one
// Board instance.
type Board struct {
	log   *logan.Entry
	cache *Cache

	base       string
	ratio      decimal.Decimal
	impactUp   decimal.Decimal
	impactDown decimal.Decimal
	historyCap int

	mu        sync.RWMutex
	basePrice decimal.Decimal
	impacts   map[string]decimal.Decimal
	history   map[string][]PricePoint
}

type PricePoint struct {
	Price decimal.Decimal `json:"price"`
	Time  time.Time       `json:"time"`
}

type Options struct {
	BaseSymbol string
	FixedRatio decimal.Decimal
	// ImpactBps is the flat per-claim nudge in basis points: a claim
	// moves the from-side token down and the to-side token up by this
	// fraction.
	ImpactBps  int64
	HistoryCap int
	// InitialPrice seeds the board before the first quote arrives.
	InitialPrice decimal.Decimal
	// Cache is optional; with a nil cache impacts reset on restart.
	Cache *Cache
}

func NewBoard(log *logan.Entry, opts Options) *Board {
	one := decimal.NewFromInt(1)
	nudge := decimal.New(opts.ImpactBps, -4)

	b := &Board{
		log:        log,
		cache:      opts.Cache,
		base:       opts.BaseSymbol,
		ratio:      opts.FixedRatio,
		impactUp:   one.Add(nudge),
		impactDown: one.Sub(nudge),
		historyCap: opts.HistoryCap,
		basePrice:  opts.InitialPrice,
		impacts:    make(map[string]decimal.Decimal),
		history:    make(map[string][]PricePoint),
	}

	for _, t := range assets.Tokens() {
		if t.Symbol != b.base {
			b.impacts[t.Symbol] = one
		}
	}

	return b
}

// Restore loads the persisted base price and impact multipliers, if a
// cache is configured and holds a snapshot.
func (b *Board) Restore(ctx context.Context) error {
	if b.cache == nil {
		return nil
	}

	snap, err := b.cache.Load(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if snap.BasePrice.IsPositive() {
		b.basePrice = snap.BasePrice
	}
	for sym, impact := range snap.Impacts {
		if _, ok := b.impacts[sym]; ok && impact.IsPositive() {
			b.impacts[sym] = impact
		}
	}

	b.log.WithField("base_price", b.basePrice.String()).Info("restored price board snapshot")
	return nil
}

// SetBasePrice records a fresh base asset quote and re-derives every
// listed price.
func (b *Board) SetBasePrice(ctx context.Context, price decimal.Decimal) {
	if !price.IsPositive() {
		return
	}

	b.mu.Lock()
	b.basePrice = price
	now := time.Now().UTC()
	b.recordLocked(b.base, price, now)
	for sym := range b.impacts {
		b.recordLocked(sym, b.priceLocked(sym), now)
	}
	b.mu.Unlock()

	b.persist(ctx)
}

// ApplyClaim nudges prices for a completed claim: the token given away
// moves down, the token received moves up. The base asset is never
// nudged; its price is owned by the external quote.
func (b *Board) ApplyClaim(ctx context.Context, fromToken, toToken string) {
	b.mu.Lock()
	now := time.Now().UTC()
	if impact, ok := b.impacts[fromToken]; ok {
		b.impacts[fromToken] = impact.Mul(b.impactDown)
		b.recordLocked(fromToken, b.priceLocked(fromToken), now)
	}
	if impact, ok := b.impacts[toToken]; ok {
		b.impacts[toToken] = impact.Mul(b.impactUp)
		b.recordLocked(toToken, b.priceLocked(toToken), now)
	}
	b.mu.Unlock()

	b.persist(ctx)
}

// Price returns the current USD price for a listed symbol.
func (b *Board) Price(symbol string) (decimal.Decimal, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if symbol == b.base {
		return b.basePrice, true
	}
	if _, ok := b.impacts[symbol]; !ok {
		return decimal.Zero, false
	}
	return b.priceLocked(symbol), true
}

// Snapshot returns current prices for every listed token.
func (b *Board) Snapshot() map[string]decimal.Decimal {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]decimal.Decimal, len(b.impacts)+1)
	out[b.base] = b.basePrice
	for sym := range b.impacts {
		out[sym] = b.priceLocked(sym)
	}
	return out
}

// History returns recorded price points for a symbol, oldest first.
func (b *Board) History(symbol string) []PricePoint {
	b.mu.RLock()
	defer b.mu.RUnlock()

	points := b.history[symbol]
	out := make([]PricePoint, len(points))
	copy(out, points)
	return out
}

func (b *Board) priceLocked(symbol string) decimal.Decimal {
	return b.basePrice.Div(b.ratio).Mul(b.impacts[symbol])
}

func (b *Board) recordLocked(symbol string, price decimal.Decimal, at time.Time) {
	points := append(b.history[symbol], PricePoint{Price: price, Time: at})
	if len(points) > b.historyCap {
		points = points[len(points)-b.historyCap:]
	}
	b.history[symbol] = points
}

func (b *Board) persist(ctx context.Context) {
	if b.cache == nil {
		return
	}

	b.mu.RLock()
	snap := Snapshot{
		BasePrice: b.basePrice,
		Impacts:   make(map[string]decimal.Decimal, len(b.impacts)),
	}
	for sym, impact := range b.impacts {
		snap.Impacts[sym] = impact
	}
	b.mu.RUnlock()

	if err := b.cache.Store(ctx, snap); err != nil {
		b.log.WithError(err).Warn("failed to persist price board snapshot")
	}
}
