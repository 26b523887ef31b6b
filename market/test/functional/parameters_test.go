package functional

import (
	"math/big"
	"net/url"
	"testing"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/test"
	"github.com/stretchr/testify/assert"
)

func TestSetParametersSimple(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()

	status, raw := m.Operator.Post(t,
		"/parameters",
		url.Values{
			"listing_fee": {"25"},
			"fee_bps":     {"300"},
			"wallet":      {m.Operator.Username},
		})

	var parameters market.ParametersResource
	err := raw.Extract("parameters", &parameters)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Equal(t, big.NewInt(25), parameters.ListingFee)
	assert.Equal(t, int64(300), parameters.FeeBps)
	assert.Equal(t, m.Operator.Username, parameters.Wallet)
}

func TestSetParametersWithoutAdminRole(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)

	status, raw := u.Post(t,
		"/parameters",
		url.Values{
			"listing_fee": {"25"},
			"fee_bps":     {"300"},
			"wallet":      {u.Username},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "unauthorized", e.ErrCode)
}

func TestSetParametersWithUnknownWallet(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()

	status, raw := m.Operator.Post(t,
		"/parameters",
		url.Values{
			"listing_fee": {"25"},
			"fee_bps":     {"300"},
			"wallet":      {"nosuchuser"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "wallet_not_found", e.ErrCode)
}

func TestRetrieveParameters(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)

	m.SetParameters(t, big.NewInt(10), 250)

	status, raw := u.Get(t, "/parameters")

	var parameters market.ParametersResource
	err := raw.Extract("parameters", &parameters)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Equal(t, big.NewInt(10), parameters.ListingFee)
	assert.Equal(t, int64(250), parameters.FeeBps)
}

func TestSetParametersWithInvalidFeeBps(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()

	status, raw := m.Operator.Post(t,
		"/parameters",
		url.Values{
			"listing_fee": {"0"},
			"fee_bps":     {"10001"},
			"wallet":      {m.Operator.Username},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "fee_bps_invalid", e.ErrCode)
}
