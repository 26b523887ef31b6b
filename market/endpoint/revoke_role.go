package endpoint

import (
	"context"
	"net/http"

	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/format"
	"github.com/curiohq/curio/lib/logging"
	"github.com/curiohq/curio/lib/ptr"
	"github.com/curiohq/curio/lib/svc"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/lib/authentication"
	"github.com/curiohq/curio/market/model"
)

const (
	// EndPtRevokeRole revokes a role from a user.
	EndPtRevokeRole EndPtName = "RevokeRole"
)

func init() {
	registrar[EndPtRevokeRole] = NewRevokeRole
}

// RevokeRole revokes a role from a user. The caller must hold the admin
// role. Revoking a role the user does not hold is a no-op.
type RevokeRole struct {
	Username string
	Revokee  string
	Role     market.RoName
}

// NewRevokeRole constructs and initializes the endpoint.
func NewRevokeRole(
	r *http.Request,
) (Endpoint, error) {
	return &RevokeRole{}, nil
}

// Validate validates the input parameters.
func (e *RevokeRole) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Username = authentication.Get(ctx).User.Username

	revokee, err := ValidateUsername(ctx, r.PostFormValue("username"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Revokee = *revokee

	role, err := ValidateRole(ctx, r.PostFormValue("role"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Role = *role

	return nil
}

// Execute executes the endpoint.
func (e *RevokeRole) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	if err := requireRole(ctx, e.Username, market.RoAdmin); err != nil {
		return nil, nil, errors.Trace(err) // 400 unauthorized
	}

	role, err := model.LoadRoleByUsernameName(ctx, e.Revokee, e.Role)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if role != nil {
		if err := role.Delete(ctx); err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
		logging.Logf(ctx,
			"Revoked role: username=%s role=%s by=%s",
			e.Revokee, e.Role, e.Username)
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"role": format.JSONPtr(market.RoleResource{
			Role:     e.Role,
			Username: e.Revokee,
			Held:     false,
		}),
	}, nil
}
