package schemas

import "github.com/curiohq/curio/lib/db"

const (
	listingsSQL = `
CREATE TABLE IF NOT EXISTS listings(
  token VARCHAR(256) NOT NULL,
  created TIMESTAMP NOT NULL,

  item BIGINT NOT NULL,            -- item id
  seller VARCHAR(256) NOT NULL,    -- owner at listing time
  price VARCHAR(64) NOT NULL,      -- strictly positive while active
  status VARCHAR(32) NOT NULL,     -- status (active, sold, cancelled)

  PRIMARY KEY(token),
  CONSTRAINT listings_item_fk FOREIGN KEY (item) REFERENCES items(id)
);
`
)

func init() {
	db.RegisterSchema(
		"market",
		"listings",
		listingsSQL,
	)
}
