package endpoint

import (
	"context"
	"math/big"
	"net/http"

	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/format"
	"github.com/curiohq/curio/lib/ptr"
	"github.com/curiohq/curio/lib/svc"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/lib/authentication"
	"github.com/curiohq/curio/market/model"
	"goji.io/pat"
)

const (
	// EndPtRetrieveBalance retrieves the balance of a user.
	EndPtRetrieveBalance EndPtName = "RetrieveBalance"
)

func init() {
	registrar[EndPtRetrieveBalance] = NewRetrieveBalance
}

// RetrieveBalance retrieves the escrow balance of a user. Callers can
// retrieve their own balance; retrieving another user's balance requires
// the admin role.
type RetrieveBalance struct {
	Username string
	Target   string
}

// NewRetrieveBalance constructs and initializes the endpoint.
func NewRetrieveBalance(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveBalance{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveBalance) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Username = authentication.Get(ctx).User.Username

	target, err := ValidateUsername(ctx, pat.Param(r, "username"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Target = *target

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveBalance) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	if e.Target != e.Username {
		if err := requireRole(ctx, e.Username, market.RoAdmin); err != nil {
			return nil, nil, errors.Trace(err) // 400 unauthorized
		}
	}

	balance, err := model.LoadBalanceByOwner(ctx, e.Target)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	if balance == nil {
		return ptr.Int(http.StatusOK), &svc.Resp{
			"balance": format.JSONPtr(market.BalanceResource{
				Owner: e.Target,
				Value: new(big.Int),
			}),
		}, nil
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"balance": format.JSONPtr(model.NewBalanceResource(ctx, balance)),
	}, nil
}
