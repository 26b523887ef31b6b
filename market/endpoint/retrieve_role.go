package endpoint

import (
	"context"
	"net/http"

	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/format"
	"github.com/curiohq/curio/lib/ptr"
	"github.com/curiohq/curio/lib/svc"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/model"
	"goji.io/pat"
)

const (
	// EndPtRetrieveRole checks whether a user holds a role.
	EndPtRetrieveRole EndPtName = "RetrieveRole"
)

func init() {
	registrar[EndPtRetrieveRole] = NewRetrieveRole
}

// RetrieveRole reports whether a user holds a role. Not holding the role is
// an observable state, not an error.
type RetrieveRole struct {
	Target string
	Role   market.RoName
}

// NewRetrieveRole constructs and initializes the endpoint.
func NewRetrieveRole(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveRole{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveRole) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	role, err := ValidateRole(ctx, pat.Param(r, "role"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Role = *role

	target, err := ValidateUsername(ctx, pat.Param(r, "username"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Target = *target

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveRole) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	role, err := model.LoadRoleByUsernameName(ctx, e.Target, e.Role)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	if role == nil {
		return ptr.Int(http.StatusOK), &svc.Resp{
			"role": format.JSONPtr(market.RoleResource{
				Role:     e.Role,
				Username: e.Target,
				Held:     false,
			}),
		}, nil
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"role": format.JSONPtr(model.NewRoleResource(ctx, role)),
	}, nil
}
