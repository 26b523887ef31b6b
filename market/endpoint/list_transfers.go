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
	// EndPtListTransfers lists the fund movements of an item.
	EndPtListTransfers EndPtName = "ListTransfers"
)

func init() {
	registrar[EndPtListTransfers] = NewListTransfers
}

// ListTransfers lists the fund movements recorded for an item, oldest
// first. The listing fee, marketplace fee, royalty and proceeds of every
// sale are reconstructable from this ledger.
type ListTransfers struct {
	Item int64
}

// NewListTransfers constructs and initializes the endpoint.
func NewListTransfers(
	r *http.Request,
) (Endpoint, error) {
	return &ListTransfers{}, nil
}

// Validate validates the input parameters.
func (e *ListTransfers) Validate(
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
func (e *ListTransfers) Execute(
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
			"The item whose transfers you are trying to list does not "+
				"exist: %d.",
			e.Item,
		))
	}

	transfers, err := model.LoadTransferListByItem(ctx, e.Item)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	resources := []market.TransferResource{}
	for i := range transfers {
		resources = append(resources,
			model.NewTransferResource(ctx, &transfers[i]))
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"transfers": format.JSONPtr(resources),
	}, nil
}
