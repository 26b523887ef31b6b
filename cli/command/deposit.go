package command

import (
	"context"
	"math/big"
	"net/http"
	"net/url"

	"github.com/curiohq/curio/cli"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/out"
	"github.com/curiohq/curio/market"
)

const (
	// CmdNmDeposit is the command name.
	CmdNmDeposit cli.CmdName = "deposit"
)

func init() {
	cli.Registrar[CmdNmDeposit] = NewDeposit
}

// Deposit funds into the marketplace balance of the logged in user.
type Deposit struct {
	Amount big.Int
}

// NewDeposit constructs and initializes the command.
func NewDeposit() cli.Command {
	return &Deposit{}
}

// Name returns the command name.
func (c *Deposit) Name() cli.CmdName {
	return CmdNmDeposit
}

// Help prints out the help message for the command.
func (c *Deposit) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("curio deposit <amount>\n")
	out.Normf("\n")
	out.Normf("  Deposits funds into your marketplace balance. Listing fees and purchases\n")
	out.Normf("  draw on this balance.\n")
	out.Normf("\n")
	out.Normf("Arguments:\n")
	out.Boldf("  amount\n")
	out.Normf("    The amount to deposit, in native units.\n")
	out.Valuf("    1000\n")
	out.Normf("\n")
}

// Parse parses the arguments passed to the command.
func (c *Deposit) Parse(
	ctx context.Context,
	args []string,
) error {
	if len(args) != 1 {
		return errors.Trace(errors.Newf("Amount required."))
	}
	if _, ok := c.Amount.SetString(args[0], 10); !ok ||
		c.Amount.Sign() <= 0 {
		return errors.Trace(errors.Newf("Invalid amount: %s.", args[0]))
	}
	return nil
}

// Execute the command or return a human-friendly error.
func (c *Deposit) Execute(
	ctx context.Context,
) error {
	m, err := cli.MarketFromContextCredentials(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	status, raw, err := m.Post(ctx,
		"/deposits",
		url.Values{
			"amount": {c.Amount.String()},
		})
	if err != nil {
		return errors.Trace(err)
	}
	if *status != http.StatusCreated {
		return errors.Trace(apiError(status, raw))
	}

	var balance market.BalanceResource
	if err := raw.Extract("balance", &balance); err != nil {
		return errors.Trace(err)
	}

	out.Statf("[Deposited] amount=%s balance=%s\n",
		c.Amount.String(), balance.Value.String())

	return nil
}
