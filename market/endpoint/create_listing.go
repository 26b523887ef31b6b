package endpoint

import (
	"context"
	"math/big"
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
	// EndPtCreateListing lists an item for sale at a fixed price.
	EndPtCreateListing EndPtName = "CreateListing"
)

func init() {
	registrar[EndPtCreateListing] = NewCreateListing
}

// CreateListing puts an item up for sale at a fixed price. The caller must
// own the item and attach a payment exactly covering the listing fee, which
// is moved to the marketplace wallet as part of the operation.
type CreateListing struct {
	Username string
	Item     int64
	Price    big.Int
	Payment  big.Int
}

// NewCreateListing constructs and initializes the endpoint.
func NewCreateListing(
	r *http.Request,
) (Endpoint, error) {
	return &CreateListing{}, nil
}

// Validate validates the input parameters.
func (e *CreateListing) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Username = authentication.Get(ctx).User.Username

	item, err := ValidateItemID(ctx, pat.Param(r, "item"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Item = *item

	price, err := ValidateAmount(ctx, r.PostFormValue("price"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Price = *price

	payment, err := ValidateAmount(ctx, r.PostFormValue("payment"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Payment = *payment

	return nil
}

// Execute executes the endpoint.
func (e *CreateListing) Execute(
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

	listingFee := (*big.Int)(&parameters.ListingFee)
	if e.Payment.Cmp(listingFee) != 0 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "incorrect_fee",
			"Listing fee required",
		))
	}

	item, err := model.LoadItemByID(ctx, e.Item)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if item == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "item_not_found",
			"The item you are trying to list does not exist: %d.",
			e.Item,
		))
	}

	if item.Owner != e.Username {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "not_owner",
			"You must own the NFT to list it",
		))
	}

	if e.Price.Sign() <= 0 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_price",
			"Price must be greater than zero",
		))
	}

	active, err := model.LoadActiveListingByItem(ctx, e.Item)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if active != nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "already_listed",
			"The item is already listed for sale: %d.",
			e.Item,
		))
	}

	// The listing fee moves from the seller's escrow to the marketplace
	// wallet before the listing becomes active.
	if listingFee.Sign() > 0 {
		sheet := newSheet()
		if err := sheet.debit(ctx, e.Username, listingFee); err != nil {
			return nil, nil, errors.Trace(err) // 400 balance_insufficient
		}
		if err := sheet.credit(ctx, parameters.Wallet, listingFee); err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
		if err := sheet.save(ctx); err != nil {
			return nil, nil, errors.Trace(err) // 500
		}

		if _, err := model.CreateTransfer(ctx,
			market.TrKdListingFee,
			e.Username,
			parameters.Wallet,
			model.Amount(*listingFee),
			&item.ID,
		); err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	listing, err := model.CreateListing(ctx,
		item.ID,
		e.Username,
		model.Amount(e.Price),
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	item.Listing = &listing.Token
	if err := item.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	if _, err := model.CreateEvent(ctx,
		item.ID, market.EvKdListed,
		map[string]interface{}{
			"seller":  listing.Seller,
			"price":   e.Price.String(),
			"listing": listing.Token,
		},
	); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	logging.Logf(ctx,
		"Listed item: id=%d seller=%s price=%s listing=%s",
		item.ID, listing.Seller, e.Price.String(), listing.Token)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"listing": format.JSONPtr(model.NewListingResource(ctx, listing)),
	}, nil
}
