package postgres

import (
	"database/sql"
	"time"

	"github.com/GlyphSwap/swap-svc/internal/data"
	"github.com/Masterminds/squirrel"
	"github.com/fatih/structs"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const ordersTable = "orders"

type orders struct {
	db *pgdb.DB
}

func NewOrders(db *pgdb.DB) data.Orders {
	return orders{db: db}
}

func (q orders) Insert(order data.Order) (data.Order, error) {
	stmt := squirrel.Insert(ordersTable).SetMap(structs.Map(order))
	if err := q.db.Exec(stmt); err != nil {
		return data.Order{}, errors.Wrap(err, "failed to insert order")
	}
	return order, nil
}

func (q orders) Get(id string) (*data.Order, error) {
	var result data.Order
	stmt := squirrel.Select("*").From(ordersTable).Where(squirrel.Eq{"id": id})

	if err := q.db.Get(&result, stmt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to select order")
	}

	return &result, nil
}

func (q orders) Select(filter data.OrdersFilter) ([]data.Order, error) {
	stmt := squirrel.Select("*").From(ordersTable).OrderBy("created_at DESC")

	if filter.Token != nil {
		stmt = stmt.Where(squirrel.Or{
			squirrel.Eq{"from_token": *filter.Token},
			squirrel.Eq{"to_token": *filter.Token},
		})
	}
	if filter.Status != nil {
		stmt = stmt.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Claimed != nil {
		stmt = stmt.Where(squirrel.Eq{"claimed": *filter.Claimed})
	}
	if filter.Creator != nil {
		stmt = stmt.Where(squirrel.Eq{"creator": *filter.Creator})
	}

	var result []data.Order
	if err := q.db.Select(&result, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to select orders")
	}

	return result, nil
}

func (q orders) Claim(id, wallet string, at time.Time) (*data.Order, error) {
	stmt := squirrel.Update(ordersTable).
		SetMap(map[string]interface{}{
			"claimed":    true,
			"claimed_by": wallet,
			"claimed_at": at,
		}).
		Where(squirrel.Eq{
			"id":      id,
			"claimed": false,
			"status":  data.OrderStatusActive,
		})

	res, err := q.db.ExecWithResult(stmt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order as claimed")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return nil, data.ErrOrderNotClaimable
	}

	return q.Get(id)
}

func (q orders) Cancel(id, wallet string) (*data.Order, error) {
	stmt := squirrel.Update(ordersTable).
		Set("status", data.OrderStatusCancelled).
		Where(squirrel.Eq{
			"id":      id,
			"creator": wallet,
			"claimed": false,
			"status":  data.OrderStatusActive,
		})

	res, err := q.db.ExecWithResult(stmt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order as cancelled")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return nil, data.ErrOrderNotClaimable
	}

	return q.Get(id)
}

func (q orders) Transaction(fn func() error) error {
	return q.db.Transaction(fn)
}
