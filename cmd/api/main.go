package main

import (
	"context"
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Shambhogit/Expense-Tracker-API/internal/auth"
	"github.com/Shambhogit/Expense-Tracker-API/internal/config"
	"github.com/Shambhogit/Expense-Tracker-API/internal/expense"
	apphttp "github.com/Shambhogit/Expense-Tracker-API/internal/http"
	applog "github.com/Shambhogit/Expense-Tracker-API/internal/log"
	"github.com/Shambhogit/Expense-Tracker-API/internal/router"
	"github.com/Shambhogit/Expense-Tracker-API/internal/user"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	// The storage client is owned here and injected downstream; failing to
	// connect is startup-fatal.
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("error creating pgx pool", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("error pinging database", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"success": false, "message": message})
		},
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(applog.RequestLogger(logger))

	secret := []byte(cfg.JWTSecret)
	userRepo := user.NewRepo(pool)
	expenseRepo := expense.NewRepo(pool)

	r := &router.Router{
		AuthHandler: &apphttp.AuthHandler{
			Users:    userRepo,
			Secret:   secret,
			TokenTTL: cfg.TokenTTL,
			Logger:   logger,
		},
		ExpenseHandler: expense.NewHandler(expenseRepo, userRepo, logger),
		AuthMW:         auth.Middleware(secret),
		AuthLimiter:    router.RateLimitAuth(cfg.AuthRateMax, cfg.RateWindow),
		WriteLimiter:   router.RateLimitWrite(cfg.WriteRateMax, cfg.RateWindow),
	}
	r.RegisterRoutes(app)

	logger.Info("server listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
