package data

import "time"

// Trades is append-only: a trade row mirrors a successful claim and is
// never updated or deleted.
type Trades interface {
	Insert(Trade) (Trade, error)
	Select(TradesFilter) ([]Trade, error)
}

type Trade struct {
	ID         string    `structs:"id" db:"id" json:"id"`
	OrderID    string    `structs:"order_id" db:"order_id" json:"order_id"`
	FromToken  string    `structs:"from_token" db:"from_token" json:"from_token"`
	ToToken    string    `structs:"to_token" db:"to_token" json:"to_token"`
	FromAmount string    `structs:"from_amount" db:"from_amount" json:"from_amount"`
	ToAmount   string    `structs:"to_amount" db:"to_amount" json:"to_amount"`
	Price      string    `structs:"price" db:"price" json:"price"`
	CreatedAt  time.Time `structs:"created_at,omitnested" db:"created_at" json:"created_at"`
}

type TradesFilter struct {
	Token   *string
	OrderID *string
	Limit   uint64
}
