package main

import (
	"context"
	"time"

	"linkmark/cmd/server/handlers"
	authHandlers "linkmark/cmd/server/handlers/auth"
	bookmarksHandlers "linkmark/cmd/server/handlers/bookmarks"
	"linkmark/cmd/server/handlers/httperr"
	usersHandlers "linkmark/cmd/server/handlers/users"
	"linkmark/cmd/server/middlewares"
	"linkmark/internal/clients/mongo"
	"linkmark/internal/config"
	"linkmark/internal/logger"
	authServices "linkmark/internal/services/auth"
	bookmarksServices "linkmark/internal/services/bookmarks"
	usersServices "linkmark/internal/services/users"
	"linkmark/internal/utils/crypto"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	// RateLimitExpiration is the window for the auth endpoint rate limiter.
	RateLimitExpiration = 1 * time.Minute
)

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(ctx context.Context, cfg config.Config) *fiber.App {

	// Initialize validator and register password validation
	v := validator.New()
	if err := crypto.RegisterPasswordValidator(v); err != nil {
		logger.L().Error("failed to register password validator", "err", err)
		panic(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
	}))

	if cfg.RequestLoggingEnabled {
		app.Use(fiberlogger.New())
		logger.L().Info("request logging enabled")
	}

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, outside the API surface to avoid auth and logging
	app.Get("/healthz", handlers.Healthz)

	usersRepo, err := mongo.NewUsersRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error("failed to create users repository", "error", err)
		panic(err)
	}
	bookmarksRepo, err := mongo.NewBookmarksRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error(bookmarksServices.ErrCreateBookmarksRepo.Error(), "error", err)
		panic(err)
	}

	authSvc := authServices.NewService(usersRepo, cfg, logger.L())
	usersSvc := usersServices.NewService(usersRepo, logger.L())
	bookmarksSvc := bookmarksServices.NewService(bookmarksRepo, logger.L())

	authH := authHandlers.NewHandlers(authSvc, v)
	usersH := usersHandlers.NewHandlers(usersSvc, v)
	bookmarksH := bookmarksHandlers.NewHandlers(bookmarksSvc, v)

	authMiddleware := middlewares.Auth(cfg, usersRepo)
	limiterMW := middlewares.BuildRateLimiter(cfg.SignInRatePerMin, RateLimitExpiration)

	// Auth routes
	authGrp := app.Group("/auth", limiterMW)
	authGrp.Post("/signup", authH.SignUp)
	authGrp.Post("/signin", authH.SignIn)

	// Profile routes
	usersGrp := app.Group("/users", authMiddleware)
	usersGrp.Get("/me", usersH.Me)
	usersGrp.Patch("/me", usersH.EditMe)

	// Bookmark routes
	bookmarksGrp := app.Group("/bookmarks", authMiddleware)
	bookmarksGrp.Get("/", bookmarksH.List)
	bookmarksGrp.Post("/", bookmarksH.Create)
	bookmarksGrp.Get("/:id", bookmarksH.Get)
	bookmarksGrp.Patch("/:id", bookmarksH.Update)
	bookmarksGrp.Delete("/:id", bookmarksH.Delete)

	return app
}
