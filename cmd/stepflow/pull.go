package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/stepflowhq/stepflow/pkg/client"
	"github.com/stepflowhq/stepflow/pkg/log"
	"github.com/stepflowhq/stepflow/pkg/otelhelper"
)

// newBackendClient builds the backend client shared by pull and push,
// attaching an OTLP tracer when tracing is enabled.
func newBackendClient(ctx context.Context, command *cli.Command) (*client.Client, error) {
	opts := []client.Option{client.WithToken(command.String("token"))}

	if command.Bool("tracing") {
		tracer, err := otelhelper.NewTracer(ctx, "stepflow")
		if err != nil {
			return nil, err
		}

		opts = append(opts, client.WithTracer(tracer))
	}

	return client.New(command.String("backend-url"), opts...), nil
}

func PullCommand() *cli.Command {
	return &cli.Command{
		Name:  "pull",
		Usage: "Fetch a workflow from the backend and write it to a file",
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
			&cli.StringFlag{
				Name:     "workflow-id",
				Aliases:  []string{"w"},
				Usage:    "Backend id of the workflow",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the workflow to this file instead of stdout",
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

			detail, err := backend.WorkflowDetail(ctx, command.String("workflow-id"))
			if err != nil {
				return err
			}

			payload, err := json.MarshalIndent(detail.Data(), "", "  ")
			if err != nil {
				return err
			}

			if output := command.String("output"); output != "" {
				return os.WriteFile(output, payload, 0o644)
			}

			fmt.Println(string(payload))

			return nil
		},
	}
}
