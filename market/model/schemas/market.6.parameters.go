package schemas

import "github.com/curiohq/curio/lib/db"

const (
	parametersSQL = `
CREATE TABLE IF NOT EXISTS parameters(
  id BIGINT NOT NULL CHECK (id = 1),  -- single row
  updated TIMESTAMP NOT NULL,

  listing_fee VARCHAR(64) NOT NULL,  -- flat fee to create a listing
  fee_bps BIGINT NOT NULL,           -- marketplace fee in basis points
  wallet VARCHAR(256) NOT NULL,      -- fee destination username

  PRIMARY KEY(id)
);
`
)

func init() {
	db.RegisterSchema(
		"market",
		"parameters",
		parametersSQL,
	)
}
