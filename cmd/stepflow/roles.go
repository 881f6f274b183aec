package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/stepflowhq/stepflow/pkg/log"
)

func RolesCommand() *cli.Command {
	return &cli.Command{
		Name:  "roles",
		Usage: "List the assignee roles known to the backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "backend-url",
				Usage:    "Base URL of the workflow backend",
				Required: true,
				Sources:  cli.EnvVars("STEPFLOW_BACKEND_URL"),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Bearer token for backend authentication",
				Sources: cli.EnvVars("STEPFLOW_TOKEN"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export OTLP traces for backend calls",
				Sources: cli.EnvVars("STEPFLOW_TRACING"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			backend, err := newBackendClient(ctx, command)
			if err != nil {
				return err
			}

			roles, err := backend.Roles(ctx)
			if err != nil {
				return err
			}

			for _, role := range roles {
				fmt.Printf("%d\t%s\n", role.ID, role.Name)
			}

			return nil
		},
	}
}
