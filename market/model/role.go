package model

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/token"
	"github.com/curiohq/curio/market"
)

// Role represents a role assignment for a user. Role membership is the sole
// input of the authorization checks performed by mutating endpoints.
type Role struct {
	Token   string
	Created time.Time

	Username string
	Role     market.RoName `db:"role"`
}

// NewRoleResource generates a new resource.
func NewRoleResource(
	ctx context.Context,
	role *Role,
) market.RoleResource {
	return market.RoleResource{
		Role:     role.Role,
		Username: role.Username,
		Held:     true,
		Created:  role.Created.UnixNano() / market.TimeResolutionNs,
	}
}

// CreateRole creates and stores a new Role object.
func CreateRole(
	ctx context.Context,
	username string,
	name market.RoName,
) (*Role, error) {
	role := Role{
		Token:   token.New("role"),
		Created: time.Now().UTC(),

		Username: username,
		Role:     name,
	}

	ext := db.Ext(ctx)
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO roles
  (token, created, username, role)
VALUES
  (:token, :created, :username, :role)
`, role); err != nil {
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

	return &role, nil
}

// Delete removes the role assignment from the database.
func (r *Role) Delete(
	ctx context.Context,
) error {
	ext := db.Ext(ctx)
	_, err := sqlx.NamedExec(ext, `
DELETE FROM roles
WHERE token = :token
`, r)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadRoleByUsernameName attempts to load the role assignment for the given
// username and role name, returning nil if the user does not hold the role.
func LoadRoleByUsernameName(
	ctx context.Context,
	username string,
	name market.RoName,
) (*Role, error) {
	role := Role{
		Username: username,
		Role:     name,
	}

	ext := db.Ext(ctx)
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM roles
WHERE username = :username
  AND role = :role
`, role); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&role); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &role, nil
}
