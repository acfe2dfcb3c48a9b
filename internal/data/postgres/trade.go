package postgres

import (
	"github.com/GlyphSwap/swap-svc/internal/data"
	"github.com/Masterminds/squirrel"
	"github.com/fatih/structs"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const tradesTable = "trades"

type trades struct {
	db *pgdb.DB
}

func NewTrades(db *pgdb.DB) data.Trades {
	return trades{db: db}
}

func (q trades) Insert(trade data.Trade) (data.Trade, error) {
	stmt := squirrel.Insert(tradesTable).SetMap(structs.Map(trade))
	if err := q.db.Exec(stmt); err != nil {
		return data.Trade{}, errors.Wrap(err, "failed to insert trade")
	}
	return trade, nil
}

func (q trades) Select(filter data.TradesFilter) ([]data.Trade, error) {
	stmt := squirrel.Select("*").From(tradesTable).OrderBy("created_at DESC")

	if filter.Token != nil {
		stmt = stmt.Where(squirrel.Or{
			squirrel.Eq{"from_token": *filter.Token},
			squirrel.Eq{"to_token": *filter.Token},
		})
	}
	if filter.OrderID != nil {
		stmt = stmt.Where(squirrel.Eq{"order_id": *filter.OrderID})
	}
	if filter.Limit != 0 {
		stmt = stmt.Limit(filter.Limit)
	}

	var result []data.Trade
	if err := q.db.Select(&result, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to select trades")
	}

	return result, nil
}
