package http

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Shambhogit/Expense-Tracker-API/internal/auth"
	"github.com/Shambhogit/Expense-Tracker-API/internal/user"
	"github.com/Shambhogit/Expense-Tracker-API/internal/validate"
)

// UserStore is the account storage surface the auth handlers depend on.
type UserStore interface {
	Create(ctx context.Context, u *user.User) (string, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type AuthHandler struct {
	Users    UserStore
	Secret   []byte
	TokenTTL time.Duration
	Logger   *slog.Logger
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var signupRules = []validate.Rule{
	{
		Field: "fullName", Required: true, MinLen: 3, MaxLen: 50,
		RequiredMsg: "Full name is required",
		LengthMsg:   "Full name must be 3 to 50 characters long",
	},
	{Field: "email", Required: true, Email: true, RequiredMsg: "Email is required"},
	{
		Field: "password", Required: true, MinLen: 8,
		RequiredMsg: "Password is required",
		LengthMsg:   "Password must be at least 8 characters long",
	},
	{Field: "phone", Required: true, Digits: 10, RequiredMsg: "Phone number is required"},
}

var loginRules = []validate.Rule{
	{Field: "email", Required: true, Email: true, RequiredMsg: "Email is required"},
	{
		Field: "password", Required: true, MinLen: 8,
		RequiredMsg: "Password is required",
		LengthMsg:   "Password must be at least 8 characters long",
	},
}

// Signup registers a new account. The email is normalized before storage so
// uniqueness holds regardless of casing or stray whitespace.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body signupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	fieldErrs := validate.Apply(map[string]string{
		"fullName": body.FullName,
		"email":    body.Email,
		"password": body.Password,
		"phone":    body.Phone,
	}, signupRules)
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"error":   fieldErrs,
		})
	}

	hashed, err := auth.HashPassword(body.Password)
	if err != nil {
		return h.internal(c, "userSignUp", err)
	}

	u := &user.User{
		FullName:     body.FullName,
		Email:        user.NormalizeEmail(body.Email),
		PasswordHash: hashed,
		Phone:        body.Phone,
	}

	if _, err := h.Users.Create(c.UserContext(), u); err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			return fiber.NewError(fiber.StatusConflict, "User already Exists")
		}
		return h.internal(c, "userSignUp", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "New user created Successfully",
	})
}

// Login verifies credentials and issues a bearer token carrying the account
// email. Unknown email and wrong password are indistinguishable.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	fieldErrs := validate.Apply(map[string]string{
		"email":    body.Email,
		"password": body.Password,
	}, loginRules)
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"error":   fieldErrs,
		})
	}

	u, err := h.Users.FindByEmail(c.UserContext(), user.NormalizeEmail(body.Email))
	if errors.Is(err, user.ErrNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid Credentials")
	}
	if err != nil {
		return h.internal(c, "userLogin", err)
	}

	if !auth.CheckPassword(u.PasswordHash, body.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid Credentials")
	}

	token, err := auth.GenerateToken(u.Email, h.Secret, h.TokenTTL)
	if err != nil {
		return h.internal(c, "userLogin", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login Successful",
		"token":   token,
	})
}

func (h *AuthHandler) internal(c *fiber.Ctx, op string, err error) error {
	h.Logger.Error("internal error", "op", op, "path", c.Path(), "err", err)
	return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
}
