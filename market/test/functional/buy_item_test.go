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

func setupBuyItem(
	t *testing.T,
) (*test.Market, []*test.MarketUser, market.ItemResource) {
	m := test.CreateMarket(t)
	u := []*test.MarketUser{
		m.CreateUser(t),
		m.CreateUser(t),
	}
	m.Grant(t, u[0], market.RoMinter)
	item := u[0].Mint(t, "ipfs://QmTest0", 250)

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

func TestBuyItemSimple(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupBuyItem(t)
	defer m.Close()

	u[1].Deposit(t, big.NewInt(1000))

	status, raw := u[1].Post(t,
		fmt.Sprintf("/items/%d/buy", item.ID),
		url.Values{
			"payment": {"1000"},
		})

	var bought market.ItemResource
	err := raw.Extract("item", &bought)
	assert.Nil(t, err)

	var listing market.ListingResource
	err = raw.Extract("listing", &listing)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Equal(t, u[1].Username, bought.Owner)
	assert.Equal(t, u[0].Username, bought.Creator)
	assert.Equal(t, market.LsStSold, listing.Status)

	// No marketplace fee and the seller is the creator, so the full price
	// goes to the seller (royalty included).
	assert.Equal(t, big.NewInt(0), u[1].Balance(t))
	assert.Equal(t, big.NewInt(1000), u[0].Balance(t))
}

func TestBuyItemSplitsFeeRoyaltyAndProceeds(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()

	creator := m.CreateUser(t)
	seller := m.CreateUser(t)
	buyer := m.CreateUser(t)
	m.Grant(t, creator, market.RoMinter)
	m.SetParameters(t, big.NewInt(0), 200)

	item := creator.Mint(t, "ipfs://QmTest0", 250)

	// Transfer the item to the seller through a sale at 100.
	status, _ := creator.Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"100"},
			"payment": {"0"},
		})
	assert.Equal(t, 201, status)
	seller.Deposit(t, big.NewInt(100))
	status, _ = seller.Post(t,
		fmt.Sprintf("/items/%d/buy", item.ID),
		url.Values{
			"payment": {"100"},
		})
	assert.Equal(t, 200, status)

	creatorBefore := creator.Balance(t)
	walletBefore := m.Operator.Balance(t)

	// The seller re-lists at 10000; the buyer purchases.
	status, _ = seller.Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"10000"},
			"payment": {"0"},
		})
	assert.Equal(t, 201, status)
	buyer.Deposit(t, big.NewInt(10000))
	status, _ = buyer.Post(t,
		fmt.Sprintf("/items/%d/buy", item.ID),
		url.Values{
			"payment": {"10000"},
		})
	assert.Equal(t, 200, status)

	// fee = 10000*200/10000 = 200, royalty = 10000*250/10000 = 250,
	// proceeds = 10000 - 200 - 250 = 9550.
	assert.Equal(t, big.NewInt(0), buyer.Balance(t))
	assert.Equal(t, new(big.Int).Add(creatorBefore, big.NewInt(250)),
		creator.Balance(t))
	assert.Equal(t, new(big.Int).Add(walletBefore, big.NewInt(200)),
		m.Operator.Balance(t))
	assert.Equal(t, big.NewInt(9550), seller.Balance(t))
}

func TestBuyItemWithIncorrectPrice(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupBuyItem(t)
	defer m.Close()

	u[1].Deposit(t, big.NewInt(2000))

	for _, payment := range []string{"999", "1001"} {
		status, raw := u[1].Post(t,
			fmt.Sprintf("/items/%d/buy", item.ID),
			url.Values{
				"payment": {payment},
			})

		var e errors.ConcreteUserError
		err := raw.Extract("error", &e)
		assert.Nil(t, err)

		assert.Equal(t, 400, status)
		assert.Equal(t, "incorrect_price", e.ErrCode)
		assert.Equal(t, "Incorrect price", e.ErrMessage)
	}
}

func TestBuyItemWithoutActiveListing(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()

	u := []*test.MarketUser{
		m.CreateUser(t),
		m.CreateUser(t),
	}
	m.Grant(t, u[0], market.RoMinter)
	item := u[0].Mint(t, "ipfs://QmTest0", 0)

	u[1].Deposit(t, big.NewInt(1000))

	status, raw := u[1].Post(t,
		fmt.Sprintf("/items/%d/buy", item.ID),
		url.Values{
			"payment": {"1000"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "not_listed", e.ErrCode)
	assert.Equal(t, "Listing is not active", e.ErrMessage)
}

func TestBuyItemWithCancelledListing(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupBuyItem(t)
	defer m.Close()

	status, _ := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings/cancel", item.ID),
		url.Values{})
	assert.Equal(t, 200, status)

	u[1].Deposit(t, big.NewInt(1000))

	status, raw := u[1].Post(t,
		fmt.Sprintf("/items/%d/buy", item.ID),
		url.Values{
			"payment": {"1000"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "not_listed", e.ErrCode)
	assert.Equal(t, "Listing is not active", e.ErrMessage)
}

func TestBuyItemWithInsufficientBalance(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupBuyItem(t)
	defer m.Close()

	u[1].Deposit(t, big.NewInt(999))

	status, raw := u[1].Post(t,
		fmt.Sprintf("/items/%d/buy", item.ID),
		url.Values{
			"payment": {"1000"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "balance_insufficient", e.ErrCode)

	// No partial effects: the item is still owned by the seller and the
	// listing still active.
	status, raw = u[1].Get(t, fmt.Sprintf("/items/%d", item.ID))
	assert.Equal(t, 200, status)

	var it market.ItemResource
	err = raw.Extract("item", &it)
	assert.Nil(t, err)
	assert.Equal(t, u[0].Username, it.Owner)

	status, raw = u[1].Get(t, fmt.Sprintf("/items/%d/listing", item.ID))
	assert.Equal(t, 200, status)

	var listing market.ListingResource
	err = raw.Extract("listing", &listing)
	assert.Nil(t, err)
	assert.Equal(t, market.LsStActive, listing.Status)
}

func TestBuyItemWithFeeOverflow(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()

	u := []*test.MarketUser{
		m.CreateUser(t),
		m.CreateUser(t),
	}
	m.Grant(t, u[0], market.RoMinter)
	m.SetParameters(t, big.NewInt(0), 9000)

	// fee = 900 and royalty = 200 on a price of 1000, so the seller
	// proceeds would be negative.
	item := u[0].Mint(t, "ipfs://QmTest0", 2000)

	status, _ := u[0].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"1000"},
			"payment": {"0"},
		})
	assert.Equal(t, 201, status)

	u[1].Deposit(t, big.NewInt(1000))

	status, raw := u[1].Post(t,
		fmt.Sprintf("/items/%d/buy", item.ID),
		url.Values{
			"payment": {"1000"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "fee_overflow", e.ErrCode)

	// No partial effects: the buyer keeps its funds, the seller keeps the
	// item and the listing stays active.
	assert.Equal(t, big.NewInt(1000), u[1].Balance(t))

	status, raw = u[1].Get(t, fmt.Sprintf("/items/%d", item.ID))
	assert.Equal(t, 200, status)

	var it market.ItemResource
	err = raw.Extract("item", &it)
	assert.Nil(t, err)
	assert.Equal(t, u[0].Username, it.Owner)

	status, raw = u[1].Get(t, fmt.Sprintf("/items/%d/listing", item.ID))
	assert.Equal(t, 200, status)

	var listing market.ListingResource
	err = raw.Extract("listing", &listing)
	assert.Nil(t, err)
	assert.Equal(t, market.LsStActive, listing.Status)
}

func TestBuyItemAllowsRelistingByNewOwner(
	t *testing.T,
) {
	t.Parallel()
	m, u, item := setupBuyItem(t)
	defer m.Close()

	u[1].Deposit(t, big.NewInt(1000))

	status, _ := u[1].Post(t,
		fmt.Sprintf("/items/%d/buy", item.ID),
		url.Values{
			"payment": {"1000"},
		})
	assert.Equal(t, 200, status)

	status, raw := u[1].Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"2000"},
			"payment": {"0"},
		})

	var listing market.ListingResource
	err := raw.Extract("listing", &listing)
	assert.Nil(t, err)

	assert.Equal(t, 201, status)
	assert.Equal(t, u[1].Username, listing.Seller)
	assert.Equal(t, market.LsStActive, listing.Status)
}
