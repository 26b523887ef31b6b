package endpoint

import (
	"context"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/model"
)

// requireRole errors with `unauthorized` unless the provided username holds
// the required role. Invoked at the top of every role-gated operation.
func requireRole(
	ctx context.Context,
	username string,
	role market.RoName,
) error {
	r, err := model.LoadRoleByUsernameName(ctx, username, role)
	if err != nil {
		return errors.Trace(err)
	} else if r == nil {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "unauthorized",
			"AccessControl: account %s is missing role %s.",
			username, role,
		))
	}
	return nil
}
