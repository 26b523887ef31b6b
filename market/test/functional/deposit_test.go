package functional

import (
	"fmt"
	"math/big"
	"net/url"
	"testing"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/test"
	"github.com/stretchr/testify/assert"
)

func TestCreateDepositSimple(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)

	status, raw := u.Post(t,
		"/deposits",
		url.Values{
			"amount": {"500"},
		})

	var balance market.BalanceResource
	err := raw.Extract("balance", &balance)
	assert.Nil(t, err)

	var transfer market.TransferResource
	err = raw.Extract("transfer", &transfer)
	assert.Nil(t, err)

	assert.Equal(t, 201, status)
	assert.Equal(t, u.Username, balance.Owner)
	assert.Equal(t, big.NewInt(500), balance.Value)
	assert.Equal(t, market.TrKdDeposit, transfer.Kind)
	assert.Equal(t, market.ExternalFunds, transfer.Source)
	assert.Equal(t, u.Username, transfer.Destination)
}

func TestCreateDepositAccumulates(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)

	u.Deposit(t, big.NewInt(100))
	u.Deposit(t, big.NewInt(50))

	assert.Equal(t, big.NewInt(150), u.Balance(t))
}

func TestCreateDepositWithInvalidAmount(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)

	status, raw := u.Post(t,
		"/deposits",
		url.Values{
			"amount": {"-10"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "amount_invalid", e.ErrCode)
}

func TestRetrieveBalanceOfOtherUser(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := []*test.MarketUser{
		m.CreateUser(t),
		m.CreateUser(t),
	}
	u[0].Deposit(t, big.NewInt(100))

	// A regular user cannot see another user's balance.
	status, raw := u[1].Get(t,
		fmt.Sprintf("/balances/%s", u[0].Username))

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "unauthorized", e.ErrCode)

	// The operator (admin) can.
	status, raw = m.Operator.Get(t,
		fmt.Sprintf("/balances/%s", u[0].Username))

	var balance market.BalanceResource
	err = raw.Extract("balance", &balance)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Equal(t, big.NewInt(100), balance.Value)
}

func TestCreateDepositRequiresAuthentication(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()

	u := &test.MarketUser{
		Market:   m,
		Username: "ghost",
		Password: "nopassword",
	}

	status, raw := u.Post(t,
		"/deposits",
		url.Values{
			"amount": {"500"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 401, status)
	assert.Equal(t, "authentication_failed", e.ErrCode)
}
