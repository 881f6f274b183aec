package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	command := &cli.Command{
		Name:                  "stepflow",
		Usage:                 "Inspect and manage workflow graphs",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			ValidateCommand(),
			LayoutCommand(),
			PullCommand(),
			PushCommand(),
			RolesCommand(),
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
