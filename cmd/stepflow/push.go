package main

import (
	"context"
	"encoding/json"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/stepflowhq/stepflow/pkg/log"
	"github.com/stepflowhq/stepflow/pkg/models"
	"github.com/stepflowhq/stepflow/pkg/validation"
)

func PushCommand() *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Push a workflow graph file to the backend",
		Flags: append([]cli.Flag{
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
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the workflow JSON file",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Push even when the readiness check reports errors",
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
		}, handleFlags()...),
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			data, err := readWorkflowFile(command.String("file"))
			if err != nil {
				return err
			}

			resolver, err := newHandleResolver(command.Int("max-connections-per-handle"), command.String("handle-schemas"))
			if err != nil {
				return err
			}

			report := validation.CheckSaveReadiness(data, resolver, validation.Options{})
			if !report.Ready && !command.Bool("force") {
				payload, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}

				fmt.Println(string(payload))

				return errGraphNotReady
			}

			backend, err := newBackendClient(ctx, command)
			if err != nil {
				return err
			}

			response, err := backend.UpdateGraph(ctx, command.String("workflow-id"), models.UpdateGraphRequest{
				Nodes: data.Steps,
				Edges: data.Transitions,
			})
			if err != nil {
				return err
			}

			if len(response.TempIDMapping) > 0 {
				fmt.Println("Assigned ids:")

				for tempID, newID := range response.TempIDMapping {
					fmt.Printf("  %s -> %s\n", tempID, newID)
				}
			}

			fmt.Println("Workflow graph saved")

			return nil
		},
	}
}
