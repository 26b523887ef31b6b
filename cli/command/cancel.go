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
	// CmdNmCancel is the command name.
	CmdNmCancel cli.CmdName = "cancel"
)

func init() {
	cli.Registrar[CmdNmCancel] = NewCancel
}

// Cancel deactivates the active listing of an item sold by the logged in
// user.
type Cancel struct {
	Item int64
}

// NewCancel constructs and initializes the command.
func NewCancel() cli.Command {
	return &Cancel{}
}

// Name returns the command name.
func (c *Cancel) Name() cli.CmdName {
	return CmdNmCancel
}

// Help prints out the help message for the command.
func (c *Cancel) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("curio cancel <item>\n")
	out.Normf("\n")
	out.Normf("  Cancels the active listing of an item you are selling. The listing fee is\n")
	out.Normf("  not refunded.\n")
	out.Normf("\n")
	out.Normf("Arguments:\n")
	out.Boldf("  item\n")
	out.Normf("    The id of the item whose listing to cancel.\n")
	out.Valuf("    12\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Cancel) Parse(
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
func (c *Cancel) Execute(
	ctx context.Context,
) error {
	m, err := cli.MarketFromContextCredentials(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	out.Statf("[Cancelling listing] user=%s@%s item=%d\n",
		m.Credentials.Username, m.Credentials.Host, c.Item)

	status, raw, err := m.Post(ctx,
		fmt.Sprintf("/items/%d/listings/cancel", c.Item),
		url.Values{})
	if err != nil {
		return errors.Trace(err)
	}
	if *status != http.StatusOK {
		return errors.Trace(apiError(status, raw))
	}

	var listing market.ListingResource
	if err := raw.Extract("listing", &listing); err != nil {
		return errors.Trace(err)
	}

	out.Statf("[Cancelled] item=%d listing=%s\n",
		listing.Item, listing.ID)

	return nil
}
