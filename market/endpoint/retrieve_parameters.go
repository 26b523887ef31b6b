package endpoint

import (
	"context"
	"net/http"

	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/format"
	"github.com/curiohq/curio/lib/ptr"
	"github.com/curiohq/curio/lib/svc"
	"github.com/curiohq/curio/market/model"
)

const (
	// EndPtRetrieveParameters retrieves the marketplace parameters.
	EndPtRetrieveParameters EndPtName = "RetrieveParameters"
)

func init() {
	registrar[EndPtRetrieveParameters] = NewRetrieveParameters
}

// RetrieveParameters retrieves the current marketplace parameters.
type RetrieveParameters struct {
}

// NewRetrieveParameters constructs and initializes the endpoint.
func NewRetrieveParameters(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveParameters{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveParameters) Validate(
	r *http.Request,
) error {
	return nil
}

// Execute executes the endpoint.
func (e *RetrieveParameters) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	parameters, err := model.LoadParameters(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if parameters == nil {
		return nil, nil, errors.Trace(
			errors.Newf("Marketplace parameters not initialized")) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"parameters": format.JSONPtr(
			model.NewParametersResource(ctx, parameters)),
	}, nil
}
