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

// Balance represents the funds an account holds in escrow with the
// marketplace. Balances are updated as transfers are recorded; they can
// never go negative.
type Balance struct {
	Token   string
	Created time.Time

	Owner string
	Value Amount
}

// NewBalanceResource generates a new resource.
func NewBalanceResource(
	ctx context.Context,
	balance *Balance,
) market.BalanceResource {
	return market.BalanceResource{
		ID:      balance.Token,
		Created: balance.Created.UnixNano() / market.TimeResolutionNs,
		Owner:   balance.Owner,
		Value:   (*big.Int)(&balance.Value),
	}
}

// CreateBalance creates and stores a new Balance object. Only one balance
// can exist per owner; existing balances should be retrieved and updated
// instead.
func CreateBalance(
	ctx context.Context,
	owner string,
	value Amount,
) (*Balance, error) {
	balance := Balance{
		Token:   token.New("balance"),
		Created: time.Now().UTC(),

		Owner: owner,
		Value: value,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO balances
  (token, created, owner, value)
VALUES
  (:token, :created, :owner, :value)
`, balance); err != nil {
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

	return &balance, nil
}

// Save updates the object database representation with the in-memory
// values.
func (b *Balance) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE balances
SET value = :value
WHERE token = :token
`, b)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadBalanceByOwner attempts to load the balance for the given owner.
func LoadBalanceByOwner(
	ctx context.Context,
	owner string,
) (*Balance, error) {
	balance := Balance{
		Owner: owner,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM balances
WHERE owner = :owner
`, balance); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&balance); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &balance, nil
}

// LoadOrCreateBalanceByOwner loads an existing balance for the specified
// owner or creates one (with a 0 value) if it does not exist.
func LoadOrCreateBalanceByOwner(
	ctx context.Context,
	owner string,
) (*Balance, error) {
	balance, err := LoadBalanceByOwner(ctx, owner)
	if err != nil {
		return nil, errors.Trace(err)
	} else if balance == nil {
		balance, err = CreateBalance(ctx, owner, Amount{})
		if err != nil {
			return nil, errors.Trace(err)
		}
	}
	return balance, nil
}
