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
	"github.com/curiohq/curio/lib/token"
	"github.com/curiohq/curio/market"
)

// Listing represents an offer by the current owner of an item to sell it at
// a fixed price. At most one listing is active per item at any time;
// terminated listings are kept as history and the item points at its latest
// listing record.
type Listing struct {
	Token   string
	Created time.Time

	Item   int64
	Seller string
	Price  Amount
	Status market.LsStatus
}

// NewListingResource generates a new resource.
func NewListingResource(
	ctx context.Context,
	listing *Listing,
) market.ListingResource {
	return market.ListingResource{
		ID:      listing.Token,
		Created: listing.Created.UnixNano() / market.TimeResolutionNs,
		Item:    listing.Item,
		Seller:  listing.Seller,
		Price:   (*big.Int)(&listing.Price),
		Status:  listing.Status,
	}
}

// CreateListing creates and stores a new active Listing object.
func CreateListing(
	ctx context.Context,
	item int64,
	seller string,
	price Amount,
) (*Listing, error) {
	listing := Listing{
		Token:   token.New("listing"),
		Created: time.Now().UTC(),

		Item:   item,
		Seller: seller,
		Price:  price,
		Status: market.LsStActive,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO listings
  (token, created, item, seller, price, status)
VALUES
  (:token, :created, :item, :seller, :price, :status)
`, listing); err != nil {
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

	return &listing, nil
}

// Save updates the object database representation with the in-memory
// values. Only the status is mutable.
func (l *Listing) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE listings
SET status = :status
WHERE token = :token
`, l)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadListingByToken attempts to load the listing with the given token.
func LoadListingByToken(
	ctx context.Context,
	tk string,
) (*Listing, error) {
	listing := Listing{
		Token: tk,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM listings
WHERE token = :token
`, listing); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&listing); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &listing, nil
}

// LoadActiveListingByItem attempts to load the active listing for the given
// item, returning nil if the item is not actively listed.
func LoadActiveListingByItem(
	ctx context.Context,
	item int64,
) (*Listing, error) {
	listing := Listing{
		Item:   item,
		Status: market.LsStActive,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM listings
WHERE item = :item
  AND status = :status
`, listing); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&listing); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &listing, nil
}
