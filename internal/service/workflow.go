package service

import (
	"context"
	"time"

	"github.com/GlyphSwap/swap-svc/internal/data"
	"github.com/GlyphSwap/swap-svc/internal/service/requests"
	"github.com/google/uuid"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

var (
	errWalletNotAllowed = errors.New("wallet is not on the allow-list")
	errOwnOrder         = errors.New("cannot claim own order")
	errNotCreator       = errors.New("only the order creator may cancel it")
)

// submitOrder records a new active, unclaimed order. The allow-list is
// enforced here, in the write path, not in the client.
func (s *service) submitOrder(req requests.CreateOrder) (data.Order, error) {
	allowed, err := s.wallets.Exists(req.Creator)
	if err != nil {
		return data.Order{}, errors.Wrap(err, "failed to check allow-list")
	}
	if !allowed {
		return data.Order{}, errWalletNotAllowed
	}

	order := data.Order{
		ID:         uuid.NewString(),
		Creator:    req.Creator,
		FromToken:  req.FromToken,
		ToToken:    req.ToToken,
		FromAmount: req.FromAmount,
		ToAmount:   req.ToAmount,
		SwapTx:     req.SwapTx,
		Status:     data.OrderStatusActive,
		CreatedAt:  time.Now().UTC(),
	}

	inserted, err := s.orders.Insert(order)
	if err != nil {
		return data.Order{}, errors.Wrap(err, "failed to insert order")
	}

	ordersCreated.Inc()
	s.streamer.broadcast(eventOrderCreated, inserted)
	s.log.WithField("order_id", inserted.ID).Info("order created")
	return inserted, nil
}

// performClaim transitions an order to claimed and records the trade
// in the same transaction, so a lost claim race can never leave a
// duplicate trade behind.
func (s *service) performClaim(ctx context.Context, req requests.ClaimOrder) (*data.Order, error) {
	allowed, err := s.wallets.Exists(req.Wallet)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check allow-list")
	}
	if !allowed {
		return nil, errWalletNotAllowed
	}

	order, err := s.orders.Get(req.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}
	if order == nil {
		return nil, data.ErrOrderNotFound
	}
	if order.Creator == req.Wallet {
		return nil, errOwnOrder
	}
	if order.Claimed || order.Status != data.OrderStatusActive {
		return nil, data.ErrOrderNotClaimable
	}

	price, _ := s.board.Price(order.ToToken)
	now := time.Now().UTC()

	var claimed *data.Order
	trade := data.Trade{
		ID:         uuid.NewString(),
		OrderID:    order.ID,
		FromToken:  order.FromToken,
		ToToken:    order.ToToken,
		FromAmount: order.FromAmount,
		ToAmount:   order.ToAmount,
		Price:      price.String(),
		CreatedAt:  now,
	}

	txErr := s.orders.Transaction(func() error {
		var err error
		claimed, err = s.orders.Claim(req.OrderID, req.Wallet, now)
		if err != nil {
			return err
		}
		_, err = s.trades.Insert(trade)
		return errors.Wrap(err, "failed to record trade")
	})
	if txErr != nil {
		return nil, txErr
	}

	s.board.ApplyClaim(ctx, order.FromToken, order.ToToken)

	if err := s.publisher.PublishTrade(ctx, trade); err != nil {
		s.log.WithError(err).WithField("trade_id", trade.ID).
			Warn("failed to publish trade event")
	}

	ordersClaimed.Inc()
	s.streamer.broadcast(eventOrderClaimed, claimed)
	s.streamer.broadcast(eventTradeCreated, trade)
	s.log.WithFields(logan.F{"order_id": order.ID, "claimed_by": req.Wallet}).
		Info("order claimed")
	return claimed, nil
}

// performCancel transitions an order to cancelled; only its creator
// may do so, and only while it is still active and unclaimed.
func (s *service) performCancel(req requests.CancelOrder) (*data.Order, error) {
	order, err := s.orders.Get(req.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}
	if order == nil {
		return nil, data.ErrOrderNotFound
	}
	if order.Creator != req.Wallet {
		return nil, errNotCreator
	}
	if order.Claimed || order.Status != data.OrderStatusActive {
		return nil, data.ErrOrderNotClaimable
	}

	cancelled, err := s.orders.Cancel(req.OrderID, req.Wallet)
	if err != nil {
		return nil, err
	}

	ordersCancelled.Inc()
	s.streamer.broadcast(eventOrderCancelled, cancelled)
	s.log.WithField("order_id", order.ID).Info("order cancelled")
	return cancelled, nil
}
