package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/stepflowhq/stepflow/pkg/cmd"
	"github.com/stepflowhq/stepflow/pkg/config"
	"github.com/stepflowhq/stepflow/pkg/handles"
	"github.com/stepflowhq/stepflow/pkg/log"
)

const defaultPort = 9092

func main() {
	logger := log.WithModule("editor-api")

	command := &cli.Command{
		Name:                  "stepflow-editor",
		Usage:                 "Validate, lay out and draft workflow graphs",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the editor API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "drafts-path",
				Usage:   "Directory for autosaved draft storage",
				Value:   "./data",
				Sources: cli.EnvVars("DRAFTS_PATH"),
			},
			&cli.IntFlag{
				Name:    "max-connections-per-handle",
				Usage:   "Connection limit per handle (0 means unbounded)",
				Value:   0,
				Sources: cli.EnvVars("MAX_CONNECTIONS_PER_HANDLE"),
			},
			&cli.StringFlag{
				Name:    "handle-schemas",
				Usage:   "Optional YAML file with per-step handle schema overrides",
				Sources: cli.EnvVars("HANDLE_SCHEMAS"),
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

			logger.InfoContext(ctx, "Initializing Stepflow editor API")

			persistence := cmd.NewPersistence(command.String("drafts-path"))

			defer func() {
				err := persistence.Close(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			var resolver handles.Resolver = handles.NewDirectionalResolver(command.Int("max-connections-per-handle"))

			if schemasPath := command.String("handle-schemas"); schemasPath != "" {
				overrides, err := config.LoadHandleSchemas(schemasPath)
				if err != nil {
					return err
				}

				resolver = handles.NewSchemaResolver(overrides, resolver)
			}

			api := NewAPI(
				logger,
				persistence,
				resolver,
			)

			err := api.Start(command.Int("port"))
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start editor API", "error", err)
			}

			return nil
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
