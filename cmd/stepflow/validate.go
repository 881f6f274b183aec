package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/stepflowhq/stepflow/pkg/layout"
	"github.com/stepflowhq/stepflow/pkg/log"
	"github.com/stepflowhq/stepflow/pkg/models"
	"github.com/stepflowhq/stepflow/pkg/validation"
)

var errGraphNotReady = errors.New("graph is not ready to save")

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a workflow graph and report save readiness",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path to a workflow JSON file",
			},
			&cli.StringFlag{
				Name:    "workflow-id",
				Aliases: []string{"w"},
				Usage:   "Validate a workflow fetched from the backend instead of a file",
			},
			&cli.StringFlag{
				Name:    "backend-url",
				Usage:   "Base URL of the workflow backend (with --workflow-id)",
				Sources: cli.EnvVars("STEPFLOW_BACKEND_URL"),
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
		}, handleFlags()...),
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			data, err := loadWorkflow(ctx, command)
			if err != nil {
				return err
			}

			resolver, err := newHandleResolver(command.Int("max-connections-per-handle"), command.String("handle-schemas"))
			if err != nil {
				return err
			}

			report := validation.CheckSaveReadiness(data, resolver, validation.Options{})

			payload, err := json.MarshalIndent(struct {
				validation.ReadinessReport
				Stats layout.GraphStats `json:"stats"`
			}{
				ReadinessReport: report,
				Stats:           layout.Stats(data.Steps, data.Transitions),
			}, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(payload))

			if !report.Ready {
				return errGraphNotReady
			}

			return nil
		},
	}
}

// loadWorkflow reads the workflow from a local file or, when --workflow-id
// is given, fetches it from the backend.
func loadWorkflow(ctx context.Context, command *cli.Command) (*models.WorkflowData, error) {
	workflowID := command.String("workflow-id")

	if workflowID != "" {
		if command.String("backend-url") == "" {
			return nil, errors.New("--backend-url is required with --workflow-id")
		}

		backend, err := newBackendClient(ctx, command)
		if err != nil {
			return nil, err
		}

		detail, err := backend.WorkflowDetail(ctx, workflowID)
		if err != nil {
			return nil, err
		}

		return detail.Data(), nil
	}

	if command.String("file") == "" {
		return nil, errors.New("either --file or --workflow-id is required")
	}

	return readWorkflowFile(command.String("file"))
}

func readWorkflowFile(path string) (*models.WorkflowData, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}

	var data models.WorkflowData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to decode workflow file: %w", err)
	}

	return &data, nil
}
