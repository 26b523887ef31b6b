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
	"github.com/curiohq/curio/market/model"
	"goji.io/pat"
)

const (
	// EndPtRetrieveRoyalty computes the royalty owed on a hypothetical sale.
	EndPtRetrieveRoyalty EndPtName = "RetrieveRoyalty"
)

func init() {
	registrar[EndPtRetrieveRoyalty] = NewRetrieveRoyalty
}

// RetrieveRoyalty computes the royalty that a sale of the item at the
// provided amount would owe, along with its receiver (the item creator).
type RetrieveRoyalty struct {
	Item   int64
	Amount big.Int
}

// NewRetrieveRoyalty constructs and initializes the endpoint.
func NewRetrieveRoyalty(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveRoyalty{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveRoyalty) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	item, err := ValidateItemID(ctx, pat.Param(r, "item"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Item = *item

	amount, err := ValidateAmount(ctx, r.URL.Query().Get("amount"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Amount = *amount

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveRoyalty) Execute(
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
			"The item whose royalty you are trying to compute does not "+
				"exist: %d.",
			e.Item,
		))
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"royalty": format.JSONPtr(market.RoyaltyResource{
			Item:     item.ID,
			Receiver: item.Creator,
			Amount:   item.RoyaltyAmount(&e.Amount),
		}),
	}, nil
}
