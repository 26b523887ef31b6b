package functional

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/test"
	"github.com/stretchr/testify/assert"
)

func setupCancelListing(
	t *testing.T,
) (*test.Market, []*test.MarketUser, market.ItemResource) {
	m := test.CreateMarket(t)
	u := []*test.MarketUser{
		m.CreateUser(t),
		m.CreateUser(t),
	}
	m.Grant(t, u[0], market.RoMinter)
	item := u[0].Mint(t, "ipfs://QmTest0", 0)

	status, _ := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"1000"},
			"payment": {"0"},
		})
	if status != 201 {
		t.Fatalf("Failed to list item: status=%d", status)
	}

	return m, u, item
}

func TestCancelListingSimple(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupCancelListing(t)
	defer m.Close()

	status, raw := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings/cancel", item.ID),
		url.Values{})

	var listing market.ListingResource
	err := raw.Extract("listing", &listing)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Equal(t, market.LsStCancelled, listing.Status)
	assert.Equal(t, u[0].Username, listing.Seller)
}

func TestCancelListingWithNonSeller(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupCancelListing(t)
	defer m.Close()

	status, raw := u[1].Post(t,
		fmt.Sprintf("/items/%d/listings/cancel", item.ID),
		url.Values{})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "not_seller", e.ErrCode)
	assert.Equal(t, "Only the seller can cancel the listing", e.ErrMessage)
}

func TestCancelListingTwice(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupCancelListing(t)
	defer m.Close()

	status, _ := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings/cancel", item.ID),
		url.Values{})
	assert.Equal(t, 200, status)

	status, raw := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings/cancel", item.ID),
		url.Values{})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "not_listed", e.ErrCode)
	assert.Equal(t, "Listing is not active", e.ErrMessage)
}

func TestCancelListingEmitsCancelledEvent(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupCancelListing(t)
	defer m.Close()

	status, _ := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings/cancel", item.ID),
		url.Values{})
	assert.Equal(t, 200, status)

	status, raw := u[0].Get(t, fmt.Sprintf("/items/%d/events", item.ID))
	assert.Equal(t, 200, status)

	var events []market.EventResource
	err := raw.Extract("events", &events)
	assert.Nil(t, err)

	// minted, listed, cancelled.
	assert.Len(t, events, 3)
	assert.Equal(t, market.EvKdCancelled, events[2].Kind)
}
