package schemas

import "github.com/curiohq/curio/lib/db"

const (
	itemsSQL = `
CREATE TABLE IF NOT EXISTS items(
  id BIGINT NOT NULL,             -- sequential id, assigned at mint
  created TIMESTAMP NOT NULL,

  owner VARCHAR(256) NOT NULL,    -- current holder username
  creator VARCHAR(256) NOT NULL,  -- minter and royalty receiver, immutable
  uri VARCHAR(2048) NOT NULL,     -- metadata pointer, stored verbatim
  royalty_bps BIGINT NOT NULL,    -- royalty rate in basis points
  listing VARCHAR(256),           -- token of the latest listing record

  PRIMARY KEY(id)
);
`
)

func init() {
	db.RegisterSchema(
		"market",
		"items",
		itemsSQL,
	)
}
