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
	// EndPtCreateDeposit deposits funds into the caller's balance.
	EndPtCreateDeposit EndPtName = "CreateDeposit"
)

func init() {
	registrar[EndPtCreateDeposit] = NewCreateDeposit
}

// CreateDeposit credits the caller's escrow balance, bringing funds into
// the marketplace from the outside world. Deposited funds are what listing
// fees and purchases draw on.
type CreateDeposit struct {
	Username string
	Amount   big.Int
}

// NewCreateDeposit constructs and initializes the endpoint.
func NewCreateDeposit(
	r *http.Request,
) (Endpoint, error) {
	return &CreateDeposit{}, nil
}

// Validate validates the input parameters.
func (e *CreateDeposit) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Username = authentication.Get(ctx).User.Username

	amount, err := ValidateAmount(ctx, r.PostFormValue("amount"))
	if err != nil {
		return errors.Trace(err) // 400
	}
	e.Amount = *amount

	return nil
}

// Execute executes the endpoint.
func (e *CreateDeposit) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx)
	defer db.LoggedRollback(ctx)

	balance, err := model.LoadOrCreateBalanceByOwner(ctx, e.Username)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	value := (*big.Int)(&balance.Value)
	value.Add(value, &e.Amount)
	if err := balance.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	transfer, err := model.CreateTransfer(ctx,
		market.TrKdDeposit,
		market.ExternalFunds,
		e.Username,
		model.Amount(e.Amount),
		nil,
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx)

	logging.Logf(ctx,
		"Created deposit: username=%s amount=%s balance=%s",
		e.Username, e.Amount.String(), value.String())

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"balance":  format.JSONPtr(model.NewBalanceResource(ctx, balance)),
		"transfer": format.JSONPtr(model.NewTransferResource(ctx, transfer)),
	}, nil
}
