package command

import (
	"context"
	"strconv"

	"github.com/curiohq/curio/cli"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/out"
	"github.com/curiohq/curio/market"
	"golang.org/x/sync/errgroup"
)

const (
	// CmdNmStatus is the command name.
	CmdNmStatus cli.CmdName = "status"
)

func init() {
	cli.Registrar[CmdNmStatus] = NewStatus
}

// Status shows the logged in user's balance and the marketplace parameters,
// or the state of a specific item.
type Status struct {
	Item *int64
}

// NewStatus constructs and initializes the command.
func NewStatus() cli.Command {
	return &Status{}
}

// Name returns the command name.
func (c *Status) Name() cli.CmdName {
	return CmdNmStatus
}

// Help prints out the help message for the command.
func (c *Status) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("curio status [<item>]\n")
	out.Normf("\n")
	out.Normf("  Without argument, shows your balance along with the marketplace\n")
	out.Normf("  parameters. With an item id, shows the item's owner, creator, royalty\n")
	out.Normf("  rate and latest listing.\n")
	out.Normf("\n")
	out.Normf("Arguments:\n")
	out.Boldf("  item\n")
	out.Normf("    The id of the item to inspect (optional).\n")
	out.Valuf("    12\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Status) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) == 0 {
		return nil
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return errors.Trace(errors.Newf("Invalid item id: %s.", args[0]))
	}
	c.Item = &id

	return nil
}

// Execute the command or return a human-friendly error.
func (c *Status) Execute(
	ctx context.Context,
) error {
	if c.Item != nil {
		return c.executeItem(ctx)
	}
	return c.executeMarket(ctx)
}

func (c *Status) executeMarket(
	ctx context.Context,
) error {
	var balance *market.BalanceResource
	var parameters *market.ParametersResource

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		balance, err = RetrieveBalance(ctx)
		return errors.Trace(err)
	})
	g.Go(func() error {
		var err error
		parameters, err = RetrieveParameters(ctx)
		return errors.Trace(err)
	})

	if err := g.Wait(); err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Balance:\n")
	out.Normf("  Value    : ")
	out.Valuf("%s\n", balance.Value.String())
	out.Normf("\n")

	out.Boldf("Marketplace:\n")
	out.Normf("  Listing fee : ")
	out.Valuf("%s\n", parameters.ListingFee.String())
	out.Normf("  Sale fee    : ")
	out.Valuf("%d bps\n", parameters.FeeBps)
	out.Normf("  Wallet      : ")
	out.Valuf("%s\n", parameters.Wallet)

	return nil
}

func (c *Status) executeItem(
	ctx context.Context,
) error {
	var item *market.ItemResource
	var listing *market.ListingResource

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		item, err = RetrieveItem(ctx, *c.Item)
		return errors.Trace(err)
	})
	g.Go(func() error {
		var err error
		listing, err = RetrieveListing(ctx, *c.Item)
		return errors.Trace(err)
	})

	if err := g.Wait(); err != nil {
		return errors.Trace(err)
	}

	out.Boldf("Item:\n")
	out.Normf("  ID          : ")
	out.Valuf("%d\n", item.ID)
	out.Normf("  Owner       : ")
	out.Valuf("%s\n", item.Owner)
	out.Normf("  Creator     : ")
	out.Valuf("%s\n", item.Creator)
	out.Normf("  URI         : ")
	out.Valuf("%s\n", item.URI)
	out.Normf("  Royalty     : ")
	out.Valuf("%d bps\n", item.RoyaltyBps)
	out.Normf("\n")

	out.Boldf("Listing:\n")
	if listing == nil {
		out.Normf("  Never listed.\n")
	} else {
		out.Normf("  Status : ")
		out.Valuf("%s\n", listing.Status)
		out.Normf("  Seller : ")
		out.Valuf("%s\n", listing.Seller)
		out.Normf("  Price  : ")
		out.Valuf("%s\n", listing.Price.String())
	}

	return nil
}
