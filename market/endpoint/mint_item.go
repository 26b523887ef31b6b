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
)

const (
	// EndPtMintItem mints a new item.
	EndPtMintItem EndPtName = "MintItem"
)

func init() {
	registrar[EndPtMintItem] = NewMintItem
}

// MintItem mints a new item on behalf of a recipient. The caller must hold
// the minter role; the recipient (defaulting to the caller) becomes both
// owner and creator of the item. The royalty rate and creator are fixed for
// the lifetime of the item.
type MintItem struct {
	Username   string
	Owner      string
	URI        string
	RoyaltyBps int64
}

// NewMintItem constructs and initializes the endpoint.
func NewMintItem(
	r *http.Request,
) (Endpoint, error) {
	return &MintItem{}, nil
}

// Validate validates the input parameters.
func (e *MintItem) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Username = authentication.Get(ctx).User.Username

	e.Owner = e.Username
	if owner := r.PostFormValue("owner"); owner != "" {
		o, err := ValidateUsername(ctx, owner)
		if err != nil {
			return errors.Trace(err) // 400
		}
		e.Owner = *o
	}

	uri := r.PostFormValue("uri")
	if uri == "" {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "uri_invalid",
			"The item uri cannot be empty.",
		))
	}
	e.URI = uri

	royaltyBps, err := ValidateRoyaltyBps(ctx, r.PostFormValue("royalty_bps"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.RoyaltyBps = *royaltyBps

	return nil
}

// Execute executes the endpoint.
func (e *MintItem) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	if err := requireRole(ctx, e.Username, market.RoMinter); err != nil {
		return nil, nil, errors.Trace(err) // 400 unauthorized
	}

	owner, err := model.LoadUserByUsername(ctx, e.Owner)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if owner == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "user_not_found",
			"The user you are trying to mint to does not exist: %s.",
			e.Owner,
		))
	}

	item, err := model.CreateItem(ctx,
		owner.Username,
		e.URI,
		e.RoyaltyBps,
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	if _, err := model.CreateEvent(ctx,
		item.ID, market.EvKdMinted,
		map[string]interface{}{
			"owner":       item.Owner,
			"uri":         item.URI,
			"royalty_bps": item.RoyaltyBps,
		},
	); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	logging.Logf(ctx,
		"Minted item: id=%d owner=%s royalty_bps=%d",
		item.ID, item.Owner, item.RoyaltyBps)

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"item": format.JSONPtr(model.NewItemResource(ctx, item)),
	}, nil
}
