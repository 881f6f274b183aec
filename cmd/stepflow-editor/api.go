// Package main provides the Stepflow editor API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/stepflowhq/stepflow/pkg/handles"
	"github.com/stepflowhq/stepflow/pkg/persistence"
	"github.com/stepflowhq/stepflow/pkg/validation"
	"github.com/stepflowhq/stepflow/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	resolver    handles.Resolver
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	resolver handles.Resolver,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		resolver:    resolver,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.resolver, a.persistence, a.validate, validation.Options{}, a.logger)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Stepflow Editor API")
	})

	editor := app.Group("/editor")
	editor.Post("/validate-connection", handlers.ValidateConnection)
	editor.Post("/validate-graph", handlers.ValidateGraph)
	editor.Post("/layout", handlers.Layout)
	editor.Post("/stats", handlers.Stats)

	drafts := app.Group("/drafts")
	drafts.Get("/", handlers.ListDrafts)
	drafts.Get("/:workflowId", handlers.GetDraft)
	drafts.Put("/:workflowId", handlers.SaveDraft)
	drafts.Delete("/:workflowId", handlers.DeleteDraft)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
