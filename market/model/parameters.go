package model

import (
	"context"
	"math/big"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/market"
)

// parametersID is the id of the unique parameters row.
const parametersID int64 = 1

// Parameters represents the economic parameters of the marketplace: the
// flat listing fee, the percentage fee retained on sales and the wallet
// account fees are routed to. A single row exists; mutations are gated on
// the admin role.
type Parameters struct {
	ID      int64
	Updated time.Time

	ListingFee Amount `db:"listing_fee"`
	FeeBps     int64  `db:"fee_bps"`
	Wallet     string
}

// NewParametersResource generates a new resource.
func NewParametersResource(
	ctx context.Context,
	parameters *Parameters,
) market.ParametersResource {
	return market.ParametersResource{
		ListingFee: (*big.Int)(&parameters.ListingFee),
		FeeBps:     parameters.FeeBps,
		Wallet:     parameters.Wallet,
		Updated:    parameters.Updated.UnixNano() / market.TimeResolutionNs,
	}
}

// CreateParameters creates and stores the unique Parameters row.
func CreateParameters(
	ctx context.Context,
	listingFee Amount,
	feeBps int64,
	wallet string,
) (*Parameters, error) {
	parameters := Parameters{
		ID:      parametersID,
		Updated: time.Now().UTC(),

		ListingFee: listingFee,
		FeeBps:     feeBps,
		Wallet:     wallet,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO parameters
  (id, updated, listing_fee, fee_bps, wallet)
VALUES
  (:id, :updated, :listing_fee, :fee_bps, :wallet)
`, parameters); err != nil {
		return nil, errors.Trace(err)
	}

	return &parameters, nil
}

// Save updates the object database representation with the in-memory
// values.
func (p *Parameters) Save(
	ctx context.Context,
) error {
	p.Updated = time.Now().UTC()

	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
UPDATE parameters
SET updated = :updated, listing_fee = :listing_fee, fee_bps = :fee_bps,
  wallet = :wallet
WHERE id = :id
`, p)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadParameters loads the unique Parameters row, returning nil if the
// marketplace was never initialized.
func LoadParameters(
	ctx context.Context,
) (*Parameters, error) {
	parameters := Parameters{
		ID: parametersID,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM parameters
WHERE id = :id
`, parameters); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&parameters); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &parameters, nil
}
