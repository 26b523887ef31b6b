package command

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/curiohq/curio/cli"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/out"
	"github.com/curiohq/curio/market"
)

const (
	// CmdNmBuy is the command name.
	CmdNmBuy cli.CmdName = "buy"
)

func init() {
	cli.Registrar[CmdNmBuy] = NewBuy
}

// Buy purchases an actively listed item at its asking price, paying from
// the logged in user's balance.
type Buy struct {
	Item int64
}

// NewBuy constructs and initializes the command.
func NewBuy() cli.Command {
	return &Buy{}
}

// Name returns the command name.
func (c *Buy) Name() cli.CmdName {
	return CmdNmBuy
}

// Help prints out the help message for the command.
func (c *Buy) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("curio buy <item>\n")
	out.Normf("\n")
	out.Normf("  Buys an actively listed item at its asking price, paid from your balance\n")
	out.Normf("  (deposit funds first if needed). Ownership is transferred to you and the\n")
	out.Normf("  price is split between the seller, the creator and the marketplace.\n")
	out.Normf("\n")
	out.Normf("Arguments:\n")
	out.Boldf("  item\n")
	out.Normf("    The id of the item to buy.\n")
	out.Valuf("    12\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Buy) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) != 1 {
		return errors.Trace(errors.Newf("Item id required."))
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return errors.Trace(errors.Newf("Invalid item id: %s.", args[0]))
	}
	c.Item = id

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Buy) Execute(
	ctx context.Context,
) error {
	m, err := cli.MarketFromContextCredentials(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	listing, err := RetrieveListing(ctx, c.Item)
	if err != nil {
		return errors.Trace(err)
	}
	if listing == nil || listing.Status != market.LsStActive {
		return errors.Trace(errors.Newf(
			"Item %d is not actively listed.", c.Item))
	}

	out.Statf("[Buying item] user=%s@%s item=%d price=%s\n",
		m.Credentials.Username, m.Credentials.Host,
		c.Item, listing.Price.String())

	status, raw, err := m.Post(ctx,
		fmt.Sprintf("/items/%d/buy", c.Item),
		url.Values{
			"payment": {listing.Price.String()},
		})
	if err != nil {
		return errors.Trace(err)
	}
	if *status != http.StatusOK {
		return errors.Trace(apiError(status, raw))
	}

	var item market.ItemResource
	if err := raw.Extract("item", &item); err != nil {
		return errors.Trace(err)
	}

	out.Statf("[Bought] item=%d owner=%s\n", item.ID, item.Owner)

	return nil
}
