package main

import (
	"os"

	"github.com/curiohq/curio/cli"
	"github.com/curiohq/curio/lib/out"

	// force initialization of commands
	_ "github.com/curiohq/curio/cli/command"
)

func main() {
	cli, err := cli.New(os.Args[1:])
	if err != nil {
		out.Errof("Error: %s", err.Error())
		os.Exit(1)
	}

	err = cli.Run()
	if err != nil {
		out.Errof("Error: %s", err.Error())
		os.Exit(1)
	}
}
