package pricing

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const snapshotKey = "glyphswap:price_board"

// Cache persists the price board to redis so impact multipliers
// survive restarts.
type Cache struct {
	client *redis.Client
}

type Snapshot struct {
	BasePrice decimal.Decimal            `json:"base_price"`
	Impacts   map[string]decimal.Decimal `json:"impacts"`
}

func NewCache(client *redis.Client) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client}
}

func (c *Cache) Store(ctx context.Context, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "failed to marshal snapshot")
	}

	err = c.client.Set(ctx, snapshotKey, raw, 0).Err()
	return errors.Wrap(err, "failed to store snapshot")
}

func (c *Cache) Load(ctx context.Context) (*Snapshot, error) {
	raw, err := c.client.Get(ctx, snapshotKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to load snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal snapshot")
	}

	return &snap, nil
}
