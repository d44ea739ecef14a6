package server

import (
	"study-assistant-be/internal/bootstrap"
	"study-assistant-be/internal/config"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/service"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	return &Server{
		app:       NewApp(cfg, container),
		cfg:       cfg,
		container: container,
	}
}

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(cfg *config.Config, container *bootstrap.Container) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.Media.UploadMaxBytes,
		ErrorHandler: serverutils.ErrorHandler(container.Logger),
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept",
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type, X-Search-Source",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Static(service.MediaURLPrefix, cfg.Media.Dir)

	registerRoutes(app, container)

	return app
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("Server", "Server is running", map[string]interface{}{"addr": "http://localhost:" + s.cfg.App.Port})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.HomeController.RegisterRoutes(app)
	c.StudyController.RegisterRoutes(app)
	c.SearchController.RegisterRoutes(app)
	c.MediaController.RegisterRoutes(app)
	c.PageController.RegisterRoutes(app)

	c.ActivityHandler.RegisterRoutes(app)
}
