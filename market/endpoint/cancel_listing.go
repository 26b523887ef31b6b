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
	"goji.io/pat"
)

const (
	// EndPtCancelListing cancels an active listing.
	EndPtCancelListing EndPtName = "CancelListing"
)

func init() {
	registrar[EndPtCancelListing] = NewCancelListing
}

// CancelListing deactivates the active listing of an item. Only the seller
// can cancel; the listing fee is not refunded and no funds move.
type CancelListing struct {
	Username string
	Item     int64
}

// NewCancelListing constructs and initializes the endpoint.
func NewCancelListing(
	r *http.Request,
) (Endpoint, error) {
	return &CancelListing{}, nil
}

// Validate validates the input parameters.
func (e *CancelListing) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Username = authentication.Get(ctx).User.Username

	item, err := ValidateItemID(ctx, pat.Param(r, "item"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Item = *item

	return nil
}

// Execute executes the endpoint.
func (e *CancelListing) Execute(
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
			"The item whose listing you are trying to cancel does not "+
				"exist: %d.",
			e.Item,
		))
	}

	listing, err := model.LoadActiveListingByItem(ctx, e.Item)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if listing == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "not_listed",
			"Listing is not active",
		))
	}

	if listing.Seller != e.Username {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "not_seller",
			"Only the seller can cancel the listing",
		))
	}

	listing.Status = market.LsStCancelled
	if err := listing.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	if _, err := model.CreateEvent(ctx,
		item.ID, market.EvKdCancelled,
		map[string]interface{}{
			"seller":  listing.Seller,
			"listing": listing.Token,
		},
	); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	logging.Logf(ctx,
		"Cancelled listing: item=%d seller=%s listing=%s",
		item.ID, listing.Seller, listing.Token)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"listing": format.JSONPtr(model.NewListingResource(ctx, listing)),
	}, nil
}
