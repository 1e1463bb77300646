package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yuliitezarygml/tg-bor-arend/config"
	"github.com/yuliitezarygml/tg-bor-arend/internal/delivery/http/middleware"
	consoleHandler "github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/handler"
	rentalHandler "github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/handler"
	settingsHandler "github.com/yuliitezarygml/tg-bor-arend/internal/domains/settings/handler"
	userHandler "github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/handler"
	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

type Handlers struct {
	Console  *consoleHandler.Handler
	User     *userHandler.Handler
	Rental   *rentalHandler.Handler
	Settings *settingsHandler.Handler
}

// NewRouter initializes the HTTP router and registers the routes for the application.
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	l logger.Interface,
	handlers Handlers,
) {
	// Options
	app.Use(middleware.Logger(l))
	app.Use(middleware.Recovery(l))
	app.Use(middleware.RequestID())
	app.Use(middleware.CORS(cfg))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "version": cfg.App.Version})
	})

	apiV1Group := app.Group("/v1")
	{
		handlers.Console.RegisterRoutes(apiV1Group)
		handlers.User.RegisterRoutes(apiV1Group)
		handlers.Rental.RegisterRoutes(apiV1Group)
		handlers.Settings.RegisterRoutes(apiV1Group)
	}

	app.Use("*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "route not found",
		})
	})
}
