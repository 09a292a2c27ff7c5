package api

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"rrsim/internal/sched"
)

// NewServer wires the scheduler routes under /api/v1.
func NewServer(config sched.Config, logger *log.Logger) (*fiber.App, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	handler, err := NewSchedulerHandlerImpl(config, logger)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())

	api := app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Post("/enhanced", handler.Enhanced)
		v1.Post("/traditional", handler.Traditional)
		v1.Post("/compare", handler.Compare)
		v1.Post("/sweep", handler.Sweep)
		v1.Get("/workloads", handler.Workloads)
	}
	return app, nil
}

func errorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return ctx.Status(code).JSON(fiber.Map{"error": err.Error()})
}
