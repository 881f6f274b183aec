package main

import (
	cli "github.com/urfave/cli/v3"

	"github.com/stepflowhq/stepflow/pkg/config"
	"github.com/stepflowhq/stepflow/pkg/handles"
)

// handleFlags configure handle schema resolution for the subcommands that
// run readiness checks. They mirror the editor service flags, so a graph
// annotated by the layout engine validates the same way on both surfaces.
func handleFlags() []cli.Flag {
	return []cli.Flag{
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
	}
}

// newHandleResolver builds the directional resolver chain the editor
// service uses. The directional ids are what the layout engine annotates
// transitions with, so readiness checks accept laid-out graphs.
func newHandleResolver(maxPerHandle int, schemasPath string) (handles.Resolver, error) {
	var resolver handles.Resolver = handles.NewDirectionalResolver(maxPerHandle)

	if schemasPath != "" {
		overrides, err := config.LoadHandleSchemas(schemasPath)
		if err != nil {
			return nil, err
		}

		resolver = handles.NewSchemaResolver(overrides, resolver)
	}

	return resolver, nil
}
