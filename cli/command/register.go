package command

import (
	"bufio"
	"context"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/curiohq/curio/cli"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/out"
	"github.com/curiohq/curio/market"
)

const (
	// CmdNmRegister is the command name.
	CmdNmRegister cli.CmdName = "register"
)

func init() {
	cli.Registrar[CmdNmRegister] = NewRegister
}

// Register creates a new account on a marketplace and logs into it.
type Register struct {
}

// NewRegister constructs and initializes the command.
func NewRegister() cli.Command {
	return &Register{}
}

// Name returns the command name.
func (c *Register) Name() cli.CmdName {
	return CmdNmRegister
}

// Help prints out the help message for the command.
func (c *Register) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("curio register\n")
	out.Normf("\n")
	out.Normf("  Registering creates an account on the marketplace of your choice and stores\n")
	out.Normf("  your credentials locally (you are logged in once registered).\n")
	out.Normf("\n")
	out.Normf("  The host is the address of the marketplace, of the form ")
	out.Valuf("market.example.com:2406")
	out.Normf("\n\n")
}

// Parse parses the arguments passed to the command.
func (c *Register) Parse(
	ctx context.Context,
	args []string,
) error {
	return nil
}

// Execute the command or return a human-friendly error.
func (c *Register) Execute(
	ctx context.Context,
) error {
	reader := bufio.NewReader(os.Stdin)

	out.Normf("    Host []: ")
	host, _ := reader.ReadString('\n')
	host = strings.TrimSpace(host)

	out.Normf("    Username []: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	out.Normf("    Password []: ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)

	out.Normf("Is the information correct? [Y/n]: ")
	confirmation, _ := reader.ReadString('\n')
	confirmation = strings.TrimSpace(confirmation)
	if confirmation != "" && confirmation != "Y" {
		return errors.Trace(errors.Newf("Registration aborted by user."))
	}

	m := market.NewClient(ctx, &market.Credentials{
		Host: host,
	})

	status, raw, err := m.Post(ctx,
		"/users",
		url.Values{
			"username": {username},
			"password": {password},
		})
	if err != nil {
		return errors.Trace(err)
	}
	if *status != http.StatusCreated {
		return errors.Trace(apiError(status, raw))
	}

	out.Statf("[Registered] user=%s@%s\n", username, host)

	err = cli.Login(ctx, host, username, password)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}
