package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/stepflowhq/stepflow/pkg/layout"
	"github.com/stepflowhq/stepflow/pkg/log"
)

func LayoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "layout",
		Aliases: []string{"l"},
		Usage:   "Compute an automatic layout for a workflow graph file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the workflow JSON file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "direction",
				Aliases: []string{"d"},
				Usage:   "Flow direction (TB, BT, LR, RL)",
				Value:   "TB",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the positioned workflow to this file instead of stdout",
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

			data, err := readWorkflowFile(command.String("file"))
			if err != nil {
				return err
			}

			opts := layout.DefaultOptions()
			opts.Direction = layout.Direction(command.String("direction"))

			engine := layout.NewEngine(opts)
			data.Steps, data.Transitions = engine.Layout(data.Steps, data.Transitions)

			payload, err := json.MarshalIndent(data, "", "  ")
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
