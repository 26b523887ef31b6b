package command

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strconv"

	"github.com/curiohq/curio/cli"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/out"
	"github.com/curiohq/curio/market"
)

const (
	// CmdNmSell is the command name.
	CmdNmSell cli.CmdName = "sell"
)

func init() {
	cli.Registrar[CmdNmSell] = NewSell
}

// Sell lists an item owned by the logged in user at a fixed price, paying
// the marketplace listing fee from the user's balance.
type Sell struct {
	Item  int64
	Price big.Int
}

// NewSell constructs and initializes the command.
func NewSell() cli.Command {
	return &Sell{}
}

// Name returns the command name.
func (c *Sell) Name() cli.CmdName {
	return CmdNmSell
}

// Help prints out the help message for the command.
func (c *Sell) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("curio sell <item> <price>\n")
	out.Normf("\n")
	out.Normf("  Lists an item you own at a fixed price. The marketplace listing fee is\n")
	out.Normf("  paid from your balance as part of the operation (deposit funds first if\n")
	out.Normf("  needed).\n")
	out.Normf("\n")
	out.Normf("Arguments:\n")
	out.Boldf("  item\n")
	out.Normf("    The id of the item to sell.\n")
	out.Valuf("    12\n")
	out.Normf("\n")
	out.Boldf("  price\n")
	out.Normf("    The asking price, in native units.\n")
	out.Valuf("    50000\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Sell) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) != 2 {
		return errors.Trace(errors.Newf("Item id and price required."))
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return errors.Trace(errors.Newf("Invalid item id: %s.", args[0]))
	}
	c.Item = id

	if _, ok := c.Price.SetString(args[1], 10); !ok ||
		c.Price.Sign() <= 0 {
		return errors.Trace(errors.Newf("Invalid price: %s.", args[1]))
	}
	return nil
}

// Execute the command or return a human-friendly error.
func (c *Sell) Execute(
	ctx context.Context,
) error {
	m, err := cli.MarketFromContextCredentials(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	parameters, err := RetrieveParameters(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	out.Statf("[Listing item] user=%s@%s item=%d price=%s listing_fee=%s\n",
		m.Credentials.Username, m.Credentials.Host,
		c.Item, c.Price.String(), parameters.ListingFee.String())

	status, raw, err := m.Post(ctx,
		fmt.Sprintf("/items/%d/listings", c.Item),
		url.Values{
			"price":   {c.Price.String()},
			"payment": {parameters.ListingFee.String()},
		})
	if err != nil {
		return errors.Trace(err)
	}
	if *status != http.StatusCreated {
		return errors.Trace(apiError(status, raw))
	}

	var listing market.ListingResource
	if err := raw.Extract("listing", &listing); err != nil {
		return errors.Trace(err)
	}

	out.Statf("[Listed] item=%d price=%s listing=%s\n",
		listing.Item, listing.Price.String(), listing.ID)

	return nil
}
