package functional

import (
	"fmt"
	"math/big"
	"net/url"
	"testing"

	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/test"
	"github.com/stretchr/testify/assert"
)

// TestMarketplaceScenario runs a full lifecycle: parameters setup, mint,
// list (paying the listing fee), buy, and checks that the transfer ledger
// conserves the sale price across fee, royalty and proceeds.
func TestMarketplaceScenario(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()

	seller := m.CreateUser(t)
	buyer := m.CreateUser(t)
	m.Grant(t, seller, market.RoMinter)
	m.SetParameters(t, big.NewInt(10), 250)

	seller.Deposit(t, big.NewInt(10))
	buyer.Deposit(t, big.NewInt(10000))

	item := seller.Mint(t, "ipfs://QmScenario", 250)

	status, _ := seller.Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"10000"},
			"payment": {"10"},
		})
	assert.Equal(t, 201, status)

	status, _ = buyer.Post(t,
		fmt.Sprintf("/items/%d/buy", item.ID),
		url.Values{
			"payment": {"10000"},
		})
	assert.Equal(t, 200, status)

	// fee = 250, royalty = 250, proceeds = 9500. The seller is also the
	// creator so they receive royalty and proceeds; their listing fee went
	// to the wallet.
	assert.Equal(t, big.NewInt(0), buyer.Balance(t))
	assert.Equal(t, big.NewInt(9750), seller.Balance(t))
	assert.Equal(t, big.NewInt(260), m.Operator.Balance(t))

	// The transfer ledger records the listing fee and the full split of the
	// sale price.
	status, raw := buyer.Get(t, fmt.Sprintf("/items/%d/transfers", item.ID))
	assert.Equal(t, 200, status)

	var transfers []market.TransferResource
	err := raw.Extract("transfers", &transfers)
	assert.Nil(t, err)

	assert.Len(t, transfers, 4)

	byKind := map[market.TrKind]*big.Int{}
	for _, tr := range transfers {
		byKind[tr.Kind] = tr.Amount
	}
	assert.Equal(t, big.NewInt(10), byKind[market.TrKdListingFee])
	assert.Equal(t, big.NewInt(250), byKind[market.TrKdMarketplaceFee])
	assert.Equal(t, big.NewInt(250), byKind[market.TrKdRoyalty])
	assert.Equal(t, big.NewInt(9500), byKind[market.TrKdProceeds])

	sale := new(big.Int)
	sale.Add(sale, byKind[market.TrKdMarketplaceFee])
	sale.Add(sale, byKind[market.TrKdRoyalty])
	sale.Add(sale, byKind[market.TrKdProceeds])
	assert.Equal(t, big.NewInt(10000), sale)

	// The item now belongs to the buyer and the full history of events is
	// recorded.
	status, raw = buyer.Get(t, fmt.Sprintf("/items/%d", item.ID))
	assert.Equal(t, 200, status)

	var it market.ItemResource
	err = raw.Extract("item", &it)
	assert.Nil(t, err)
	assert.Equal(t, buyer.Username, it.Owner)
	assert.Equal(t, seller.Username, it.Creator)

	status, raw = buyer.Get(t, fmt.Sprintf("/items/%d/events", item.ID))
	assert.Equal(t, 200, status)

	var events []market.EventResource
	err = raw.Extract("events", &events)
	assert.Nil(t, err)

	assert.Len(t, events, 3)
	assert.Equal(t, market.EvKdMinted, events[0].Kind)
	assert.Equal(t, market.EvKdListed, events[1].Kind)
	assert.Equal(t, market.EvKdSold, events[2].Kind)
}

// TestMarketplaceSelfPurchase checks that an account buying its own listing
// simply pays the fees: price out, royalty and proceeds back in.
func TestMarketplaceSelfPurchase(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()

	u := m.CreateUser(t)
	m.Grant(t, u, market.RoMinter)
	m.SetParameters(t, big.NewInt(0), 200)

	u.Deposit(t, big.NewInt(10000))
	item := u.Mint(t, "ipfs://QmSelf", 0)

	status, _ := u.Post(t,
		fmt.Sprintf("/items/%d/listings", item.ID),
		url.Values{
			"price":   {"10000"},
			"payment": {"0"},
		})
	assert.Equal(t, 201, status)

	status, _ = u.Post(t,
		fmt.Sprintf("/items/%d/buy", item.ID),
		url.Values{
			"payment": {"10000"},
		})
	assert.Equal(t, 200, status)

	// fee = 200 went to the wallet, the rest came back.
	assert.Equal(t, big.NewInt(9800), u.Balance(t))
	assert.Equal(t, big.NewInt(200), m.Operator.Balance(t))
}
