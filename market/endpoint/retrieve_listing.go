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
	// EndPtRetrieveListing retrieves the latest listing of an item.
	EndPtRetrieveListing EndPtName = "RetrieveListing"
)

func init() {
	registrar[EndPtRetrieveListing] = NewRetrieveListing
}

// RetrieveListing retrieves the latest listing record of an item. An item
// that was never listed returns a null listing; a terminated listing is
// returned with its status so absence of an active listing is observable
// rather than an error.
type RetrieveListing struct {
	Item int64
}

// NewRetrieveListing constructs and initializes the endpoint.
func NewRetrieveListing(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveListing{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveListing) Validate(
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
func (e *RetrieveListing) Execute(
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
			"The item whose listing you are trying to retrieve does not "+
				"exist: %d.",
			e.Item,
		))
	}

	if item.Listing == nil {
		db.Commit(ctx)
		return ptr.Int(http.StatusOK), &svc.Resp{
			"listing": format.JSONPtr(nil),
		}, nil
	}

	listing, err := model.LoadListingByToken(ctx, *item.Listing)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if listing == nil {
		return nil, nil, errors.Trace(
			errors.Newf("Dangling listing pointer: %s", *item.Listing)) // 500
	}

	db.Commit(ctx)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"listing": format.JSONPtr(model.NewListingResource(ctx, listing)),
	}, nil
}
