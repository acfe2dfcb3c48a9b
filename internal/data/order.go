package data

import (
	"database/sql"
	"time"

	"gitlab.com/distributed_lab/logan/v3/errors"
)

const (
	OrderStatusActive    = "active"
	OrderStatusCancelled = "cancelled"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotClaimable is returned when a conditional claim or
	// cancel matched no row: the order was already claimed or
	// cancelled by the time the write landed.
	ErrOrderNotClaimable = errors.New("order is no longer claimable")
)

type Orders interface {
	Insert(Order) (Order, error)
	Get(id string) (*Order, error)
	Select(OrdersFilter) ([]Order, error)
	// Claim flips the order to claimed only if it is still active and
	// unclaimed at write time; the loser of a claim race gets
	// ErrOrderNotClaimable.
	Claim(id, wallet string, at time.Time) (*Order, error)
	// Cancel succeeds only for the creator of a still-active,
	// unclaimed order.
	Cancel(id, wallet string) (*Order, error)
	Transaction(fn func() error) error
}

type Order struct {
	ID         string         `structs:"id" db:"id" json:"id"`
	Creator    string         `structs:"creator" db:"creator" json:"creator"`
	FromToken  string         `structs:"from_token" db:"from_token" json:"from_token"`
	ToToken    string         `structs:"to_token" db:"to_token" json:"to_token"`
	FromAmount string         `structs:"from_amount" db:"from_amount" json:"from_amount"`
	ToAmount   string         `structs:"to_amount" db:"to_amount" json:"to_amount"`
	SwapTx     string         `structs:"swap_tx" db:"swap_tx" json:"swap_tx"`
	Claimed    bool           `structs:"claimed" db:"claimed" json:"claimed"`
	ClaimedBy  sql.NullString `structs:"claimed_by,omitempty,omitnested" db:"claimed_by" json:"claimed_by,omitempty"`
	Status     string         `structs:"status" db:"status" json:"status"`
	CreatedAt  time.Time      `structs:"created_at,omitnested" db:"created_at" json:"created_at"`
	ClaimedAt  sql.NullTime   `structs:"claimed_at,omitempty,omitnested" db:"claimed_at" json:"claimed_at,omitempty"`
}

type OrdersFilter struct {
	// Token matches either side of the order.
	Token   *string
	Status  *string
	Claimed *bool
	Creator *string
}
