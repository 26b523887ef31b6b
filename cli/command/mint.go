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
	// CmdNmMint is the command name.
	CmdNmMint cli.CmdName = "mint"
)

func init() {
	cli.Registrar[CmdNmMint] = NewMint
}

// Mint a new item owned by the logged in user or a designated recipient.
type Mint struct {
	URI        string
	RoyaltyBps int64
	Owner      string
}

// NewMint constructs and initializes the command.
func NewMint() cli.Command {
	return &Mint{}
}

// Name returns the command name.
func (c *Mint) Name() cli.CmdName {
	return CmdNmMint
}

// Help prints out the help message for the command.
func (c *Mint) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("curio mint <uri> [<royalty_bps> [<to>]]\n")
	out.Normf("\n")
	out.Normf("  Mints a new item owned and created by you, or by the recipient you name.\n")
	out.Normf("  Requires the minter role. The royalty rate is expressed in basis points and\n")
	out.Normf("  is paid to the item's creator on every sale of the item, forever.\n")
	out.Normf("\n")
	out.Normf("Arguments:\n")
	out.Boldf("  uri\n")
	out.Normf("    The metadata URI of the item, stored verbatim.\n")
	out.Valuf("    ipfs://QmYx3...\n")
	out.Normf("\n")
	out.Boldf("  royalty_bps\n")
	out.Normf("    The royalty rate in basis points (defaults to 0).\n")
	out.Valuf("    250\n")
	out.Normf("\n")
	out.Boldf("  to\n")
	out.Normf("    The username of the recipient (defaults to you).\n")
	out.Valuf("    alice\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Mint) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) < 1 || len(args) > 3 {
		return errors.Trace(errors.Newf("URI required."))
	}
	c.URI = args[0]

	if len(args) >= 2 {
		r, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || r < 0 || r > 10000 {
			return errors.Trace(errors.Newf(
				"Invalid royalty rate: %s.", args[1]))
		}
		c.RoyaltyBps = r
	}

	if len(args) == 3 {
		c.Owner = args[2]
	}
	return nil
}

// Execute the command or return a human-friendly error.
func (c *Mint) Execute(
	ctx context.Context,
) error {
	m, err := cli.MarketFromContextCredentials(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	out.Statf("[Minting item] user=%s@%s uri=%s royalty_bps=%d\n",
		m.Credentials.Username, m.Credentials.Host, c.URI, c.RoyaltyBps)

	values := url.Values{
		"uri":         {c.URI},
		"royalty_bps": {fmt.Sprintf("%d", c.RoyaltyBps)},
	}
	if c.Owner != "" {
		values.Set("owner", c.Owner)
	}

	status, raw, err := m.Post(ctx, "/items", values)
	if err != nil {
		return errors.Trace(err)
	}
	if *status != http.StatusCreated {
		return errors.Trace(apiError(status, raw))
	}

	var item market.ItemResource
	if err := raw.Extract("item", &item); err != nil {
		return errors.Trace(err)
	}

	out.Statf("[Minted] id=%d owner=%s\n", item.ID, item.Owner)

	return nil
}
