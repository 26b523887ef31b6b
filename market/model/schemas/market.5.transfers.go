package schemas

import "github.com/curiohq/curio/lib/db"

const (
	transfersSQL = `
CREATE TABLE IF NOT EXISTS transfers(
  token VARCHAR(256) NOT NULL,
  created TIMESTAMP NOT NULL,

  kind VARCHAR(32) NOT NULL,          -- kind (deposit, listing_fee,
                                      --  marketplace_fee, royalty, proceeds)
  source VARCHAR(256) NOT NULL,       -- source username (or external)
  destination VARCHAR(256) NOT NULL,  -- destination username
  amount VARCHAR(64) NOT NULL,
  item BIGINT,                        -- item id, if tied to one

  PRIMARY KEY(token)
);
`
)

func init() {
	db.RegisterSchema(
		"market",
		"transfers",
		transfersSQL,
	)
}
