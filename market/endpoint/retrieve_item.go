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
	"goji.io/pat"
)

const (
	// EndPtRetrieveItem retrieves an item.
	EndPtRetrieveItem EndPtName = "RetrieveItem"
)

func init() {
	registrar[EndPtRetrieveItem] = NewRetrieveItem
}

// RetrieveItem retrieves an item by id, exposing its current owner, creator
// and royalty rate.
type RetrieveItem struct {
	Item int64
}

// NewRetrieveItem constructs and initializes the endpoint.
func NewRetrieveItem(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveItem{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveItem) Validate(
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
func (e *RetrieveItem) Execute(
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
			"The item you are trying to retrieve does not exist: %d.",
			e.Item,
		))
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"item": format.JSONPtr(model.NewItemResource(ctx, item)),
	}, nil
}
