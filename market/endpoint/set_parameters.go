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
)

const (
	// EndPtSetParameters updates the marketplace parameters.
	EndPtSetParameters EndPtName = "SetParameters"
)

func init() {
	registrar[EndPtSetParameters] = NewSetParameters
}

// SetParameters updates the economic parameters of the marketplace: the
// flat listing fee, the sale fee rate and the wallet account fees are routed
// to. The caller must hold the admin role. Active listings are unaffected;
// new operations observe the updated values.
type SetParameters struct {
	Username   string
	ListingFee big.Int
	FeeBps     int64
	Wallet     string
}

// NewSetParameters constructs and initializes the endpoint.
func NewSetParameters(
	r *http.Request,
) (Endpoint, error) {
	return &SetParameters{}, nil
}

// Validate validates the input parameters.
func (e *SetParameters) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Username = authentication.Get(ctx).User.Username

	listingFee, err := ValidateAmount(ctx, r.PostFormValue("listing_fee"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.ListingFee = *listingFee

	feeBps, err := ValidateFeeBps(ctx, r.PostFormValue("fee_bps"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.FeeBps = *feeBps

	wallet, err := ValidateUsername(ctx, r.PostFormValue("wallet"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Wallet = *wallet

	return nil
}

// Execute executes the endpoint.
func (e *SetParameters) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	if err := requireRole(ctx, e.Username, market.RoAdmin); err != nil {
		return nil, nil, errors.Trace(err) // 400 unauthorized
	}

	wallet, err := model.LoadUserByUsername(ctx, e.Wallet)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if wallet == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "wallet_not_found",
			"The marketplace wallet must be an existing user: %s.",
			e.Wallet,
		))
	}

	parameters, err := model.LoadParameters(ctx)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if parameters == nil {
		return nil, nil, errors.Trace(
			errors.Newf("Marketplace parameters not initialized")) // 500
	}

	parameters.ListingFee = model.Amount(e.ListingFee)
	parameters.FeeBps = e.FeeBps
	parameters.Wallet = e.Wallet
	if err := parameters.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	logging.Logf(ctx,
		"Updated parameters: listing_fee=%s fee_bps=%d wallet=%s by=%s",
		e.ListingFee.String(), e.FeeBps, e.Wallet, e.Username)

	return ptr.Int(http.StatusOK), &svc.Resp{
		"parameters": format.JSONPtr(
			model.NewParametersResource(ctx, parameters)),
	}, nil
}
