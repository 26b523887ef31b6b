package endpoint

import (
	"context"
	"math/big"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/market/model"
)

// sheet accumulates balance movements within a transaction. Balances are
// cached per owner so that successive movements touching the same account
// (buyer paying the seller who is also the marketplace wallet, an account
// buying its own listing) observe each other before anything is saved.
type sheet struct {
	balances map[string]*model.Balance
}

func newSheet() *sheet {
	return &sheet{
		balances: map[string]*model.Balance{},
	}
}

func (s *sheet) get(
	ctx context.Context,
	owner string,
) (*model.Balance, error) {
	if balance, ok := s.balances[owner]; ok {
		return balance, nil
	}
	balance, err := model.LoadOrCreateBalanceByOwner(ctx, owner)
	if err != nil {
		return nil, errors.Trace(err)
	}
	s.balances[owner] = balance
	return balance, nil
}

// debit removes amount from the owner's balance, erroring with
// `balance_insufficient` if the balance does not cover it.
func (s *sheet) debit(
	ctx context.Context,
	owner string,
	amount *big.Int,
) error {
	balance, err := s.get(ctx, owner)
	if err != nil {
		return errors.Trace(err)
	}

	value := (*big.Int)(&balance.Value)
	if value.Cmp(amount) < 0 {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "balance_insufficient",
			"The balance of account %s (%s) does not cover the required "+
				"amount: %s.",
			owner, value.String(), amount.String(),
		))
	}
	value.Sub(value, amount)

	return nil
}

// credit adds amount to the owner's balance.
func (s *sheet) credit(
	ctx context.Context,
	owner string,
	amount *big.Int,
) error {
	balance, err := s.get(ctx, owner)
	if err != nil {
		return errors.Trace(err)
	}

	value := (*big.Int)(&balance.Value)
	value.Add(value, amount)

	return nil
}

// save persists all touched balances. Must be called before the transaction
// commits.
func (s *sheet) save(
	ctx context.Context,
) error {
	for _, balance := range s.balances {
		if err := balance.Save(ctx); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
