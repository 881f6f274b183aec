// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/stepflowhq/stepflow/pkg/channels/gochannel"
	"github.com/stepflowhq/stepflow/pkg/eventbus"
)

func NewEventBus(logger *slog.Logger) eventbus.EventBus {
	pub, sub, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
	if err != nil {
		panic(fmt.Errorf("failed to create editor event channel: %w", err))
	}

	return eventbus.NewWatermillEventBus(pub, sub)
}
