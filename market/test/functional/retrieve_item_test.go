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

func setupRetrieveItem(
	t *testing.T,
) (*test.Market, []*test.MarketUser, market.ItemResource) {
	m := test.CreateMarket(t)
	u := []*test.MarketUser{
		m.CreateUser(t),
	}
	m.Grant(t, u[0], market.RoMinter)
	item := u[0].Mint(t, "ipfs://QmTest0", 500)

	return m, u, item
}

func TestRetrieveItemSimple(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupRetrieveItem(t)
	defer m.Close()

	status, raw := u[0].Get(t, fmt.Sprintf("/items/%d", item.ID))

	var it market.ItemResource
	err := raw.Extract("item", &it)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Equal(t, item.ID, it.ID)
	assert.Equal(t, u[0].Username, it.Owner)
	assert.Equal(t, "ipfs://QmTest0", it.URI)
	assert.Equal(t, int64(500), it.RoyaltyBps)
}

func TestRetrieveItemWithInexistantItem(
	t *testing.T,
) {
	t.Parallel()
	m, u, _ := setupRetrieveItem(t)
	defer m.Close()

	status, raw := u[0].Get(t, "/items/42")

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 404, status)
	assert.Equal(t, "item_not_found", e.ErrCode)
}

func TestRetrieveListingOfNeverListedItem(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupRetrieveItem(t)
	defer m.Close()

	status, raw := u[0].Get(t, fmt.Sprintf("/items/%d/listing", item.ID))

	// The listing key is present with a null value.
	listing, ok := raw["listing"]
	assert.Equal(t, 200, status)
	assert.True(t, ok)
	assert.Nil(t, listing)
}

func TestRetrieveListingAfterCancel(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupRetrieveItem(t)
	defer m.Close()

	status, _ := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"1000"},
			"payment": {"0"},
		})
	assert.Equal(t, 201, status)

	status, _ = u[0].Post(t,
		fmt.Sprintf("/items/%d/listings/cancel", item.ID),
		url.Values{})
	assert.Equal(t, 200, status)

	status, raw := u[0].Get(t, fmt.Sprintf("/items/%d/listing", item.ID))

	var listing market.ListingResource
	err := raw.Extract("listing", &listing)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Equal(t, market.LsStCancelled, listing.Status)
}

func TestRetrieveRoyaltySimple(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupRetrieveItem(t)
	defer m.Close()

	status, raw := u[0].Get(t,
		fmt.Sprintf("/items/%d/royalty?amount=10000", item.ID))

	var royalty market.RoyaltyResource
	err := raw.Extract("royalty", &royalty)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Equal(t, u[0].Username, royalty.Receiver)
	assert.Equal(t, big.NewInt(500), royalty.Amount)
}

func TestRetrieveRoyaltyTruncates(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupRetrieveItem(t)
	defer m.Close()

	// 99 * 500 / 10000 = 4.95, truncated to 4.
	status, raw := u[0].Get(t,
		fmt.Sprintf("/items/%d/royalty?amount=99", item.ID))

	var royalty market.RoyaltyResource
	err := raw.Extract("royalty", &royalty)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Equal(t, big.NewInt(4), royalty.Amount)
}

func TestListItems(
	t *testing.T,
) {
	t.Parallel()
	m, u, _ := setupRetrieveItem(t)
	defer m.Close()

	u[0].Mint(t, "ipfs://QmTest1", 0)
	u[0].Mint(t, "ipfs://QmTest2", 0)

	status, raw := u[0].Get(t, "/items")

	var items []market.ItemResource
	err := raw.Extract("items", &items)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Len(t, items, 3)
}
