package api

import (
	"errors"
	"net/http"

	"statement-analyzer/docs"
	"statement-analyzer/internal/api/handlers"
	"statement-analyzer/internal/dto"
	"statement-analyzer/internal/metrics"
	"statement-analyzer/pkg/config"
	"statement-analyzer/pkg/middleware"
	"statement-analyzer/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupRouter(
	analyzeHandler *handlers.AnalyzeHandler,
	healthHandler *handlers.HealthHandler,
	m *metrics.Metrics,
	cfg *config.Config,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "statement-analyzer",
		BodyLimit:    cfg.Upload.BodyLimit(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n",
	}))
	app.Use(middleware.RequestLogger(appLogger))

	// docs registers the OpenAPI document in init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{
		Registry: m.Registry(),
	})))

	// API routes
	api := app.Group("/api")
	api.Get("/health", healthHandler.Health)
	api.Post("/analyze", analyzeHandler.Analyze)
	api.All("/analyze", analyzeHandler.MethodNotAllowed)

	// Web interface
	app.Use("/", filesystem.New(filesystem.Config{
		Root:   http.FS(web.Static()),
		Index:  "index.html",
		Browse: false,
	}))

	return app
}
