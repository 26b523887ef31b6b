package functional

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/test"
	"github.com/stretchr/testify/assert"
)

func setupMintItem(
	t *testing.T,
) (*test.Market, []*test.MarketUser) {
	m := test.CreateMarket(t)
	u := []*test.MarketUser{
		m.CreateUser(t),
		m.CreateUser(t),
	}
	m.Grant(t, u[0], market.RoMinter)

	return m, u
}

func TestMintItemSimple(
	t *testing.T,
) {
	t.Parallel()
	m, u := setupMintItem(t)
	defer m.Close()

	status, raw := u[0].Post(t,
		"/items",
		url.Values{
			"uri":         {"ipfs://QmTest0"},
			"royalty_bps": {"250"},
		})

	var item market.ItemResource
	err := raw.Extract("item", &item)
	assert.Nil(t, err)

	assert.Equal(t, 201, status)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, u[0].Username, item.Owner)
	assert.Equal(t, u[0].Username, item.Creator)
	assert.Equal(t, "ipfs://QmTest0", item.URI)
	assert.Equal(t, int64(250), item.RoyaltyBps)
	assert.WithinDuration(t,
		time.Now(),
		time.Unix(0, item.Created*market.TimeResolutionNs), test.PostLatency)
}

func TestMintItemToRecipient(
	t *testing.T,
) {
	t.Parallel()
	m, u := setupMintItem(t)
	defer m.Close()

	// u[1] holds no role; the minter mints on its behalf and the item is
	// owned and created by u[1], who also receives royalties.
	status, raw := u[0].Post(t,
		"/items",
		url.Values{
			"owner":       {u[1].Username},
			"uri":         {"ipfs://QmTest0"},
			"royalty_bps": {"500"},
		})

	var item market.ItemResource
	err := raw.Extract("item", &item)
	assert.Nil(t, err)

	assert.Equal(t, 201, status)
	assert.Equal(t, u[1].Username, item.Owner)
	assert.Equal(t, u[1].Username, item.Creator)

	status, raw = u[1].Get(t,
		fmt.Sprintf("/items/%d/royalty?amount=10000", item.ID))

	var royalty market.RoyaltyResource
	err = raw.Extract("royalty", &royalty)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Equal(t, u[1].Username, royalty.Receiver)
}

func TestMintItemToUnknownRecipient(
	t *testing.T,
) {
	t.Parallel()
	m, u := setupMintItem(t)
	defer m.Close()

	status, raw := u[0].Post(t,
		"/items",
		url.Values{
			"owner":       {"nosuchuser"},
			"uri":         {"ipfs://QmTest0"},
			"royalty_bps": {"0"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "user_not_found", e.ErrCode)
}

func TestMintItemSequentialIDs(
	t *testing.T,
) {
	t.Parallel()
	m, u := setupMintItem(t)
	defer m.Close()

	for i := int64(1); i <= 3; i++ {
		status, raw := u[0].Post(t,
			"/items",
			url.Values{
				"uri":         {fmt.Sprintf("ipfs://QmTest%d", i)},
				"royalty_bps": {"0"},
			})

		var item market.ItemResource
		err := raw.Extract("item", &item)
		assert.Nil(t, err)

		assert.Equal(t, 201, status)
		assert.Equal(t, i, item.ID)
	}
}

func TestMintItemWithoutMinterRole(
	t *testing.T,
) {
	t.Parallel()
	m, u := setupMintItem(t)
	defer m.Close()

	status, raw := u[1].Post(t,
		"/items",
		url.Values{
			"uri":         {"ipfs://QmTest0"},
			"royalty_bps": {"0"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "unauthorized", e.ErrCode)
	assert.Equal(t,
		fmt.Sprintf("AccessControl: account %s is missing role minter.",
			u[1].Username),
		e.ErrMessage)
}

func TestMintItemWithInvalidRoyalty(
	t *testing.T,
) {
	t.Parallel()
	m, u := setupMintItem(t)
	defer m.Close()

	status, raw := u[0].Post(t,
		"/items",
		url.Values{
			"uri":         {"ipfs://QmTest0"},
			"royalty_bps": {"10001"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_royalty", e.ErrCode)
}

func TestMintItemEmitsMintedEvent(
	t *testing.T,
) {
	t.Parallel()
	m, u := setupMintItem(t)
	defer m.Close()

	_, raw := u[0].Post(t,
		"/items",
		url.Values{
			"uri":         {"ipfs://QmTest0"},
			"royalty_bps": {"100"},
		})

	var item market.ItemResource
	err := raw.Extract("item", &item)
	assert.Nil(t, err)

	status, raw := u[0].Get(t, fmt.Sprintf("/items/%d/events", item.ID))

	var events []market.EventResource
	err = raw.Extract("events", &events)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.Len(t, events, 1)
	assert.Equal(t, market.EvKdMinted, events[0].Kind)
	assert.Equal(t, item.ID, events[0].Item)
}
