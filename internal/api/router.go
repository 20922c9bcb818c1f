package api

import (
	"os"
	"path/filepath"

	"lob-summary/docs"
	"lob-summary/internal/api/handlers"
	"lob-summary/pkg/auth"
	"lob-summary/pkg/config"
	"lob-summary/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Summary   *handlers.SummaryHandler
	Knowledge *handlers.KnowledgeHandler
	Auth      *handlers.AuthHandler
	Health    fiber.Handler
}

// SetupRouter wires every route. A nil jwtManager leaves uploads open.
func SetupRouter(h Handlers, jwtManager *auth.JWTManager, cfg config.ServerConfig, appLogger *zap.Logger) *fiber.App {
	bodyLimit := cfg.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 10
	}

	app := fiber.New(fiber.Config{
		AppName:      "LOB Summary Generator",
		BodyLimit:    bodyLimit << 20,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// importing docs registers the spec with swag
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	staticDir := findStaticDir(cfg.StaticDir, appLogger)
	if staticDir != "" {
		appLogger.Info("Serving static files", zap.String("path", staticDir))
		app.Static("/static", staticDir)
	} else {
		appLogger.Warn("Static directory not found, web interface disabled", zap.String("path", cfg.StaticDir))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		indexPath := filepath.Join(staticDir, "index.html")
		if staticDir == "" || !fileExists(indexPath) {
			return c.Status(fiber.StatusNotFound).SendString("Web interface not found. Please ensure static/index.html exists.")
		}
		return c.SendFile(indexPath)
	})

	if h.Health != nil {
		app.Get("/health", h.Health)
	}

	app.Post("/generate", h.Summary.Generate)

	// plain aliases mirror the /api routes for serverless rewrites
	for _, prefix := range []string{"/api", ""} {
		app.Get(prefix+"/issue-types", h.Knowledge.IssueTypes)
		app.Get(prefix+"/csv-info", h.Knowledge.Info)
		app.Get(prefix+"/validate/:issueType", h.Knowledge.Validate)
	}

	app.Post("/api/upload-csv", middleware.AuthMiddleware(jwtManager, "admin", appLogger), h.Knowledge.Upload)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/token", h.Auth.Token)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	return app
}

// findStaticDir resolves dir against the working directory and then the
// executable's directory.
func findStaticDir(dir string, logger *zap.Logger) string {
	if dir == "" {
		return ""
	}
	candidates := []string{dir}
	if !filepath.IsAbs(dir) {
		if exe, err := os.Executable(); err == nil {
			candidates = append(candidates, filepath.Join(filepath.Dir(exe), dir))
		}
	}
	for _, path := range candidates {
		if fileExists(filepath.Join(path, "index.html")) {
			return path
		}
		logger.Debug("Tried static path", zap.String("path", path))
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
