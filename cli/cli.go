package cli

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/curiohq/curio/lib/env"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/out"
)

// CmdName represents a command name.
type CmdName string

// ContextKey is the type of the key used with context to contextual data.
type ContextKey string

// Command is the interface for a cli command.
type Command interface {
	// Name returns the command name.
	Name() CmdName

	// Help prints out the help message for the command.
	Help(context.Context)

	// Parse the arguments passed to the command.
	Parse(context.Context, []string) error

	// Execute the command or return a human-friendly error.
	Execute(context.Context) error
}

// Registrar is used to register command generators within the module.
var Registrar = map[CmdName](func() Command){}

// Cli represents a cli instance.
type Cli struct {
	Ctx   context.Context
	Flags map[string]string
	Args  []string
}

// flagFilterRegexp filters out flags from arguments.
var flagFilterRegexp = regexp.MustCompile("^-+")

// parseArgv splits the passed arguments into positional arguments and
// `-key=value` flags.
func parseArgv(
	argv []string,
) ([]string, map[string]string) {
	args := []string{}
	flags := map[string]string{}

	for _, a := range argv {
		if !flagFilterRegexp.MatchString(a) {
			args = append(args, strings.TrimSpace(a))
			continue
		}
		s := strings.SplitN(strings.Trim(a, "-"), "=", 2)
		if len(s) == 2 {
			flags[s[0]] = s[1]
		}
	}

	return args, flags
}

// New initializes a new Cli by parsing the passed arguments.
func New(
	argv []string,
) (*Cli, error) {
	ctx := context.Background()

	args, flags := parseArgv(argv)

	cliEnv := env.Env{
		Environment: env.QA,
		Config:      map[env.ConfigKey]string{},
	}

	// Environment flag.
	if e, ok := flags["env"]; ok && (e == "production" || e == "prod") {
		cliEnv.Environment = env.Production
	}
	ctx = env.With(ctx, &cliEnv)

	creds, err := CurrentUser(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	ctx = WithCredentials(ctx, creds)

	user := "n/a"
	if creds != nil {
		user = fmt.Sprintf("%s@%s", creds.Username, creds.Host)
	}
	out.Statf("[Initializing] env=%s user=%s\n", cliEnv.Environment, user)

	return &Cli{
		Ctx:   ctx,
		Args:  args,
		Flags: flags,
	}, nil
}

// Run dispatches to the requested command, falling back to help when the
// command does not exist.
func (c *Cli) Run() error {
	cmd, args := CmdName("help"), []string{}
	if len(c.Args) > 0 {
		cmd, args = CmdName(c.Args[0]), c.Args[1:]
	}

	r, ok := Registrar[cmd]
	if !ok {
		out.Errof("[Error] Unknown command: %s\n", cmd)
		r, args = Registrar[CmdName("help")], nil
	}
	command := r()

	if err := command.Parse(c.Ctx, args); err != nil {
		command.Help(c.Ctx)
		return errors.Trace(err)
	}

	if err := command.Execute(c.Ctx); err != nil {
		return errors.Trace(err)
	}

	return nil
}

// Help prints the standard help message.
func Help() {
	out.Normf("\nUsage: ")
	out.Boldf("curio <command> [<args> ...]\n")
	out.Normf("\n")
	out.Normf("Fixed-price marketplace for non-fungible items.\n")
	out.Normf("\n")
	out.Normf("Commands:\n")

	out.Boldf("  help [<command>]\n")
	out.Normf("    Show help for a command.\n")
	out.Valuf("    curio help sell\n")
	out.Normf("\n")

	out.Boldf("  register\n")
	out.Normf("    Create an account on a marketplace (and log in).\n")
	out.Valuf("    curio register\n")
	out.Normf("\n")

	out.Boldf("  login\n")
	out.Normf("    Log in to a marketplace (logs the current user out).\n")
	out.Valuf("    curio login\n")
	out.Normf("\n")

	out.Boldf("  logout\n")
	out.Normf("    Log out from the current marketplace.\n")
	out.Valuf("    curio logout\n")
	out.Normf("\n")

	out.Boldf("  deposit <amount>\n")
	out.Normf("    Deposit funds into your marketplace balance.\n")
	out.Valuf("    curio deposit 1000\n")
	out.Normf("\n")

	out.Boldf("  mint <uri> [<royalty_bps> [<to>]]\n")
	out.Normf("    Mint a new item (requires the minter role).\n")
	out.Valuf("    curio mint ipfs://QmYx3... 250\n")
	out.Normf("\n")

	out.Boldf("  sell <item> <price>\n")
	out.Normf("    List an item you own at a fixed price.\n")
	out.Valuf("    curio sell 12 50000\n")
	out.Normf("\n")

	out.Boldf("  buy <item>\n")
	out.Normf("    Buy an actively listed item at its asking price.\n")
	out.Valuf("    curio buy 12\n")
	out.Normf("\n")

	out.Boldf("  cancel <item>\n")
	out.Normf("    Cancel the active listing of an item you are selling.\n")
	out.Valuf("    curio cancel 12\n")
	out.Normf("\n")

	out.Boldf("  status [<item>]\n")
	out.Normf("    Show your balance and the marketplace parameters, or the\n")
	out.Normf("    state of an item.\n")
	out.Valuf("    curio status 12\n")
	out.Normf("\n")
}
