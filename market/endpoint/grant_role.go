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
	// EndPtGrantRole grants a role to a user.
	EndPtGrantRole EndPtName = "GrantRole"
)

func init() {
	registrar[EndPtGrantRole] = NewGrantRole
}

// GrantRole grants a role to a user. The caller must hold the admin role.
// Granting a role the user already holds is a no-op.
type GrantRole struct {
	Username string
	Grantee  string
	Role     market.RoName
}

// NewGrantRole constructs and initializes the endpoint.
func NewGrantRole(
	r *http.Request,
) (Endpoint, error) {
	return &GrantRole{}, nil
}

// Validate validates the input parameters.
func (e *GrantRole) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Username = authentication.Get(ctx).User.Username

	grantee, err := ValidateUsername(ctx, r.PostFormValue("username"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Grantee = *grantee

	role, err := ValidateRole(ctx, r.PostFormValue("role"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Role = *role

	return nil
}

// Execute executes the endpoint.
func (e *GrantRole) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	if err := requireRole(ctx, e.Username, market.RoAdmin); err != nil {
		return nil, nil, errors.Trace(err) // 400 unauthorized
	}

	user, err := model.LoadUserByUsername(ctx, e.Grantee)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if user == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "user_not_found",
			"The user you are trying to grant a role to does not exist: %s.",
			e.Grantee,
		))
	}

	role, err := model.LoadRoleByUsernameName(ctx, e.Grantee, e.Role)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if role != nil {
		db.Commit(ctx)
		return ptr.Int(http.StatusOK), &svc.Resp{
			"role": format.JSONPtr(model.NewRoleResource(ctx, role)),
		}, nil
	}

	role, err = model.CreateRole(ctx, e.Grantee, e.Role)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	logging.Logf(ctx,
		"Granted role: username=%s role=%s by=%s",
		e.Grantee, e.Role, e.Username)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"role": format.JSONPtr(model.NewRoleResource(ctx, role)),
	}, nil
}
