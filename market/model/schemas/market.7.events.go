package schemas

import "github.com/curiohq/curio/lib/db"

const (
	eventsSQL = `
CREATE TABLE IF NOT EXISTS events(
  token VARCHAR(256) NOT NULL,
  created TIMESTAMP NOT NULL,

  item BIGINT NOT NULL,       -- item id
  kind VARCHAR(32) NOT NULL,  -- kind (minted, listed, sold, cancelled)
  payload TEXT NOT NULL,      -- JSON payload

  PRIMARY KEY(token)
);
`
)

func init() {
	db.RegisterSchema(
		"market",
		"events",
		eventsSQL,
	)
}
