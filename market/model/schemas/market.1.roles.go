package schemas

import "github.com/curiohq/curio/lib/db"

const (
	rolesSQL = `
CREATE TABLE IF NOT EXISTS roles(
  token VARCHAR(256) NOT NULL,
  created TIMESTAMP NOT NULL,

  username VARCHAR(256) NOT NULL,  -- username of the role holder
  role VARCHAR(32) NOT NULL,       -- role name (admin, minter)

  PRIMARY KEY(token),
  CONSTRAINT roles_username_role_u UNIQUE (username, role)
);
`
)

func init() {
	db.RegisterSchema(
		"market",
		"roles",
		rolesSQL,
	)
}
