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
	// EndPtBuyItem purchases an actively listed item.
	EndPtBuyItem EndPtName = "BuyItem"
)

func init() {
	registrar[EndPtBuyItem] = NewBuyItem
}

// BuyItem purchases an actively listed item at its exact asking price. The
// payment splits into marketplace fee, creator royalty and seller proceeds
// within a single transaction; ownership moves to the buyer atomically with
// the funds.
type BuyItem struct {
	Username string
	Item     int64
	Payment  big.Int
}

// NewBuyItem constructs and initializes the endpoint.
func NewBuyItem(
	r *http.Request,
) (Endpoint, error) {
	return &BuyItem{}, nil
}

// Validate validates the input parameters.
func (e *BuyItem) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Username = authentication.Get(ctx).User.Username

	item, err := ValidateItemID(ctx, pat.Param(r, "item"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Item = *item

	payment, err := ValidateAmount(ctx, r.PostFormValue("payment"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Payment = *payment

	return nil
}

// Execute executes the endpoint.
func (e *BuyItem) Execute(
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

	item, err := model.LoadItemByID(ctx, e.Item)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if item == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "item_not_found",
			"The item you are trying to buy does not exist: %d.",
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

	price := (*big.Int)(&listing.Price)
	if e.Payment.Cmp(price) != 0 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "incorrect_price",
			"Incorrect price",
		))
	}

	fee := new(big.Int).Mul(price, big.NewInt(parameters.FeeBps))
	fee.Div(fee, model.BpsDenominator)
	royalty := item.RoyaltyAmount(price)

	proceeds := new(big.Int).Sub(price, fee)
	proceeds.Sub(proceeds, royalty)
	if proceeds.Sign() < 0 {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "fee_overflow",
			"The marketplace fee and royalty exceed the listing price: "+
				"fee=%s royalty=%s price=%s.",
			fee.String(), royalty.String(), price.String(),
		))
	}

	sheet := newSheet()
	if err := sheet.debit(ctx, e.Username, price); err != nil {
		return nil, nil, errors.Trace(err) // 400 balance_insufficient
	}

	// Effects before fund routing: the listing closes and ownership moves
	// in the same transaction that settles the funds.
	listing.Status = market.LsStSold
	if err := listing.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	item.Owner = e.Username
	if err := item.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	if royalty.Sign() > 0 {
		if err := sheet.credit(ctx, item.Creator, royalty); err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
		if _, err := model.CreateTransfer(ctx,
			market.TrKdRoyalty,
			e.Username,
			item.Creator,
			model.Amount(*royalty),
			&item.ID,
		); err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	if fee.Sign() > 0 {
		if err := sheet.credit(ctx, parameters.Wallet, fee); err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
		if _, err := model.CreateTransfer(ctx,
			market.TrKdMarketplaceFee,
			e.Username,
			parameters.Wallet,
			model.Amount(*fee),
			&item.ID,
		); err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	if proceeds.Sign() > 0 {
		if err := sheet.credit(ctx, listing.Seller, proceeds); err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
		if _, err := model.CreateTransfer(ctx,
			market.TrKdProceeds,
			e.Username,
			listing.Seller,
			model.Amount(*proceeds),
			&item.ID,
		); err != nil {
			return nil, nil, errors.Trace(err) // 500
		}
	}

	if err := sheet.save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	if _, err := model.CreateEvent(ctx,
		item.ID, market.EvKdSold,
		map[string]interface{}{
			"seller": listing.Seller,
			"buyer":  e.Username,
			"price":  price.String(),
		},
	); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	logging.Logf(ctx,
		"Sold item: id=%d seller=%s buyer=%s price=%s fee=%s royalty=%s",
		item.ID, listing.Seller, e.Username, price.String(),
		fee.String(), royalty.String())

	return ptr.Int(http.StatusOK), &svc.Resp{
		"item":    format.JSONPtr(model.NewItemResource(ctx, item)),
		"listing": format.JSONPtr(model.NewListingResource(ctx, listing)),
	}, nil
}
