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
	// EndPtListEvents lists the events of an item.
	EndPtListEvents EndPtName = "ListEvents"
)

func init() {
	registrar[EndPtListEvents] = NewListEvents
}

// ListEvents lists the domain events recorded for an item, oldest first.
type ListEvents struct {
	Item int64
}

// NewListEvents constructs and initializes the endpoint.
func NewListEvents(
	r *http.Request,
) (Endpoint, error) {
	return &ListEvents{}, nil
}

// Validate validates the input parameters.
func (e *ListEvents) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	item, err := ValidateItemID(ctx, pat.Param(r, "item"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Item = *item

	return nil
}

// Execute executes the endpoint.
func (e *ListEvents) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	item, err := model.LoadItemByID(ctx, e.Item)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if item == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "item_not_found",
			"The item whose events you are trying to list does not "+
				"exist: %d.",
			e.Item,
		))
	}

	events, err := model.LoadEventListByItem(ctx, e.Item)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	resources := []market.EventResource{}
	for i := range events {
		resources = append(resources, model.NewEventResource(ctx, &events[i]))
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"events": format.JSONPtr(resources),
	}, nil
}
