package model

import (
	"context"
	"math/big"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/market"
)

// Item represents a minted non-fungible item. Ids are strictly increasing
// integers assigned at mint time, starting at 1. The creator and royalty
// rate are immutable once minted; only the owner (and the pointer to the
// latest listing record) ever change.
type Item struct {
	ID      int64
	Created time.Time

	Owner      string
	Creator    string
	URI        string `db:"uri"`
	RoyaltyBps int64  `db:"royalty_bps"`
	Listing    *string
}

// NewItemResource generates a new resource.
func NewItemResource(
	ctx context.Context,
	item *Item,
) market.ItemResource {
	return market.ItemResource{
		ID:         item.ID,
		Created:    item.Created.UnixNano() / market.TimeResolutionNs,
		Owner:      item.Owner,
		Creator:    item.Creator,
		URI:        item.URI,
		RoyaltyBps: item.RoyaltyBps,
	}
}

// CreateItem creates and stores a new Item object, assigning it the next
// sequential id. Must be called from within a transaction, which serializes
// the id computation.
func CreateItem(
	ctx context.Context,
	owner string,
	uri string,
	royaltyBps int64,
) (*Item, error) {
	var last int64
	ext := db.Ext(ctx)
	if err := sqlx.Get(ext, &last, `
SELECT COALESCE(MAX(id), 0) FROM items
`); err != nil {
		return nil, errors.Trace(err)
	}

	item := Item{
		ID:      last + 1,
		Created: time.Now().UTC(),

		Owner:      owner,
		Creator:    owner,
		URI:        uri,
		RoyaltyBps: royaltyBps,
	}

	if _, err := sqlx.NamedExec(ext, `
INSERT INTO items
  (id, created, owner, creator, uri, royalty_bps, listing)
VALUES
  (:id, :created, :owner, :creator, :uri, :royalty_bps, :listing)
`, item); err != nil {
		switch err := err.(type) {
		case *pq.Error:
			if err.Code.Name() == "unique_violation" {
				return nil, errors.Trace(ErrUniqueConstraintViolation{err})
			}
		case sqlite3.Error:
			if err.ExtendedCode == sqlite3.ErrConstraintUnique {
				return nil, errors.Trace(ErrUniqueConstraintViolation{err})
			}
		}
		return nil, errors.Trace(err)
	}

	return &item, nil
}

// Save updates the object database representation with the in-memory
// values. Only the owner and listing pointer are mutable.
func (i *Item) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE items
SET owner = :owner, listing = :listing
WHERE id = :id
`, i)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadItemByID attempts to load the item with the given id, returning nil
// if it was never minted.
func LoadItemByID(
	ctx context.Context,
	id int64,
) (*Item, error) {
	item := Item{
		ID: id,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM items
WHERE id = :id
`, item); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&item); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &item, nil
}

// LoadItemListByCreatedBefore loads a page of items created before the
// specified time, most recent first.
func LoadItemListByCreatedBefore(
	ctx context.Context,
	createdBefore time.Time,
	limit uint,
) ([]Item, error) {
	query := map[string]interface{}{
		"created_before": createdBefore.UTC(),
		"limit":          limit,
	}

	ext := db.Ext(ctx)
	rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM items
WHERE created < :created_before
ORDER BY created DESC
LIMIT :limit
`, query)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item := Item{}
		if err := rows.StructScan(&item); err != nil {
			return nil, errors.Trace(err)
		}
		items = append(items, item)
	}

	return items, nil
}

// RoyaltyAmount computes the royalty owed on a sale of the item at the
// provided price, truncating toward zero.
func (i *Item) RoyaltyAmount(
	price *big.Int,
) *big.Int {
	r := new(big.Int).Mul(price, big.NewInt(i.RoyaltyBps))
	return r.Div(r, BpsDenominator)
}
