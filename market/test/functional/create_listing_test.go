package functional

import (
	"fmt"
	"math/big"
	"net/url"
	"testing"
	"time"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/test"
	"github.com/stretchr/testify/assert"
)

func setupCreateListing(
	t *testing.T,
) (*test.Market, []*test.MarketUser, market.ItemResource) {
	m := test.CreateMarket(t)
	u := []*test.MarketUser{
		m.CreateUser(t),
		m.CreateUser(t),
	}
	m.Grant(t, u[0], market.RoMinter)
	item := u[0].Mint(t, "ipfs://QmTest0", 250)

	return m, u, item
}

func TestCreateListingSimple(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupCreateListing(t)
	defer m.Close()

	status, raw := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"1000"},
			"payment": {"0"},
		})

	var listing market.ListingResource
	err := raw.Extract("listing", &listing)
	assert.Nil(t, err)

	assert.Equal(t, 201, status)
	assert.Equal(t, item.ID, listing.Item)
	assert.Equal(t, u[0].Username, listing.Seller)
	assert.Equal(t, big.NewInt(1000), listing.Price)
	assert.Equal(t, market.LsStActive, listing.Status)
	assert.WithinDuration(t,
		time.Now(),
		time.Unix(0, listing.Created*market.TimeResolutionNs),
		test.PostLatency)
}

func TestCreateListingWithIncorrectFee(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupCreateListing(t)
	defer m.Close()

	m.SetParameters(t, big.NewInt(10), 0)
	u[0].Deposit(t, big.NewInt(100))

	// Paying under the listing fee.
	status, raw := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"1000"},
			"payment": {"9"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "incorrect_fee", e.ErrCode)
	assert.Equal(t, "Listing fee required", e.ErrMessage)

	// Paying over the listing fee.
	status, raw = u[0].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"1000"},
			"payment": {"11"},
		})

	err = raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "incorrect_fee", e.ErrCode)
	assert.Equal(t, "Listing fee required", e.ErrMessage)
}

func TestCreateListingWithNotOwnedItem(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupCreateListing(t)
	defer m.Close()

	status, raw := u[1].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"1000"},
			"payment": {"0"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "not_owner", e.ErrCode)
	assert.Equal(t, "You must own the NFT to list it", e.ErrMessage)
}

func TestCreateListingWithZeroPrice(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupCreateListing(t)
	defer m.Close()

	status, raw := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"0"},
			"payment": {"0"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_price", e.ErrCode)
	assert.Equal(t, "Price must be greater than zero", e.ErrMessage)
}

func TestCreateListingWithAlreadyListedItem(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupCreateListing(t)
	defer m.Close()

	status, _ := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"1000"},
			"payment": {"0"},
		})
	assert.Equal(t, 201, status)

	status, raw := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"2000"},
			"payment": {"0"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "already_listed", e.ErrCode)
}

func TestCreateListingWithInexistantItem(
	t *testing.T,
) {
	t.Parallel()
	m, u, _ := setupCreateListing(t)
	defer m.Close()

	status, raw := u[0].Post(t,
		"/items/42/listings",
		url.Values{
			"price":   {"1000"},
			"payment": {"0"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 404, status)
	assert.Equal(t, "item_not_found", e.ErrCode)
}

func TestCreateListingMovesListingFeeToWallet(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupCreateListing(t)
	defer m.Close()

	m.SetParameters(t, big.NewInt(10), 0)
	u[0].Deposit(t, big.NewInt(100))

	walletBefore := m.Operator.Balance(t)

	status, _ := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"1000"},
			"payment": {"10"},
		})
	assert.Equal(t, 201, status)

	assert.Equal(t, big.NewInt(90), u[0].Balance(t))
	assert.Equal(t, new(big.Int).Add(walletBefore, big.NewInt(10)),
		m.Operator.Balance(t))
}

func TestCreateListingWithInsufficientBalance(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupCreateListing(t)
	defer m.Close()

	m.SetParameters(t, big.NewInt(10), 0)

	status, raw := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"1000"},
			"payment": {"10"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "balance_insufficient", e.ErrCode)
}
