package postgres

import (
	"database/sql"

	"github.com/GlyphSwap/swap-svc/internal/data"
	"github.com/Masterminds/squirrel"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const walletsTable = "wallet_addresses"

type wallets struct {
	db *pgdb.DB
}

func NewWallets(db *pgdb.DB) data.Wallets {
	return wallets{db: db}
}

func (q wallets) Exists(address string) (bool, error) {
	var result struct {
		Address string `db:"address"`
	}
	stmt := squirrel.Select("address").From(walletsTable).Where(squirrel.Eq{"address": address})

	if err := q.db.Get(&result, stmt); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to select wallet")
	}

	return true, nil
}

func (q wallets) Insert(address string) error {
	stmt := squirrel.Insert(walletsTable).Columns("address").Values(address).
		Suffix("ON CONFLICT (address) DO NOTHING")
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to insert wallet")
}
