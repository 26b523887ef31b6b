package schemas

import "github.com/curiohq/curio/lib/db"

const (
	balancesSQL = `
CREATE TABLE IF NOT EXISTS balances(
  token VARCHAR(256) NOT NULL,
  created TIMESTAMP NOT NULL,

  owner VARCHAR(256) NOT NULL,  -- owner username
  value VARCHAR(64) NOT NULL,   -- escrowed amount, never negative

  PRIMARY KEY(token),
  CONSTRAINT balances_owner_u UNIQUE (owner)
);
`
)

func init() {
	db.RegisterSchema(
		"market",
		"balances",
		balancesSQL,
	)
}
