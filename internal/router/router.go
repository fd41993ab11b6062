package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Shambhogit/Expense-Tracker-API/internal/expense"
	handlers "github.com/Shambhogit/Expense-Tracker-API/internal/http"
)

type Router struct {
	AuthHandler    *handlers.AuthHandler
	ExpenseHandler *expense.Handler
	AuthMW         fiber.Handler
	AuthLimiter    fiber.Handler
	WriteLimiter   fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	users := app.Group("/users")
	users.Post("/signup", r.AuthLimiter, r.AuthHandler.Signup)
	users.Post("/login", r.AuthLimiter, r.AuthHandler.Login)

	exp := app.Group("/expense", r.AuthMW)
	exp.Post("/add", r.WriteLimiter, r.ExpenseHandler.Add)
	exp.Get("/list", r.ExpenseHandler.List)
	exp.Put("/update/:id", r.WriteLimiter, r.ExpenseHandler.Update)
	exp.Delete("/delete/:id", r.WriteLimiter, r.ExpenseHandler.Delete)
	exp.Get("/summary", r.ExpenseHandler.Summary)
	exp.Get("/report", r.ExpenseHandler.Report)
}
