package model

import (
	"context"
	"math/big"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/token"
	"github.com/curiohq/curio/market"
)

// Transfer represents an immutable fund movement between two accounts (or
// from the outside world into an account, for deposits). Transfers are the
// audit trail of the engine: the balance table is always the sum of them.
type Transfer struct {
	Token   string
	Created time.Time

	Kind        market.TrKind
	Source      string
	Destination string
	Amount      Amount
	Item        *int64
}

// NewTransferResource generates a new resource.
func NewTransferResource(
	ctx context.Context,
	transfer *Transfer,
) market.TransferResource {
	return market.TransferResource{
		ID:          transfer.Token,
		Created:     transfer.Created.UnixNano() / market.TimeResolutionNs,
		Kind:        transfer.Kind,
		Source:      transfer.Source,
		Destination: transfer.Destination,
		Amount:      (*big.Int)(&transfer.Amount),
		Item:        transfer.Item,
	}
}

// CreateTransfer creates and stores a new Transfer object.
func CreateTransfer(
	ctx context.Context,
	kind market.TrKind,
	source string,
	destination string,
	amount Amount,
	item *int64,
) (*Transfer, error) {
	transfer := Transfer{
		Token:   token.New("transfer"),
		Created: time.Now().UTC(),

		Kind:        kind,
		Source:      source,
		Destination: destination,
		Amount:      amount,
		Item:        item,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO transfers
  (token, created, kind, source, destination, amount, item)
VALUES
  (:token, :created, :kind, :source, :destination, :amount, :item)
`, transfer); err != nil {
		return nil, errors.Trace(err)
	}

	return &transfer, nil
}

// LoadTransferListByItem loads the transfers recorded for the given item,
// oldest first.
func LoadTransferListByItem(
	ctx context.Context,
	item int64,
) ([]Transfer, error) {
	query := map[string]interface{}{
		"item": item,
	}

	ext := db.Ext(ctx)
	rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM transfers
WHERE item = :item
ORDER BY created ASC
`, query)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	transfers := []Transfer{}
	for rows.Next() {
		transfer := Transfer{}
		if err := rows.StructScan(&transfer); err != nil {
			return nil, errors.Trace(err)
		}
		transfers = append(transfers, transfer)
	}

	return transfers, nil
}
