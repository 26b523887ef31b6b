package command

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/curiohq/curio/cli"
	"github.com/curiohq/curio/lib/env"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/out"
)

const (
	// CmdNmLogin is the command name.
	CmdNmLogin cli.CmdName = "login"
)

func init() {
	cli.Registrar[CmdNmLogin] = NewLogin
}

// Login stores the credentials of a marketplace account locally.
type Login struct {
}

// NewLogin constructs and initializes the command.
func NewLogin() cli.Command {
	return &Login{}
}

// Name returns the command name.
func (c *Login) Name() cli.CmdName {
	return CmdNmLogin
}

// Help prints out the help message for the command.
func (c *Login) Help(
	ctx context.Context,
) {
	out.Normf("\nUsage: ")
	out.Boldf("curio login\n")
	out.Normf("\n")
	out.Normf("  Logging in will store your credentials locally under:\n")
	out.Valuf("  ~/.curio/credentials-" + string(env.Get(ctx).Environment) + ".json\n")
	out.Normf("\n")
	out.Normf("  If you don't have an account yet, you can create one with: ")
	out.Boldf("curio register")
	out.Normf("\n\n")
}

// Parse parses the arguments passed to the command.
func (c *Login) Parse(
	ctx context.Context,
	args []string,
) error {
	return nil
}

// Execute the command or return a human-friendly error.
func (c *Login) Execute(
	ctx context.Context,
) error {
	reader := bufio.NewReader(os.Stdin)

	out.Normf("    Host []: ")
	host, _ := reader.ReadString('\n')

	out.Normf("    Username []: ")
	username, _ := reader.ReadString('\n')

	out.Normf("    Password []: ")
	password, _ := reader.ReadString('\n')

	out.Normf("Is the information correct? [Y/n]: ")
	confirmation, _ := reader.ReadString('\n')
	confirmation = strings.TrimSpace(confirmation)
	if confirmation != "" && confirmation != "Y" {
		return errors.Trace(errors.Newf("Login aborted by user."))
	}

	err := cli.Login(ctx,
		strings.TrimSpace(host),
		strings.TrimSpace(username),
		strings.TrimSpace(password))
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}
