package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Shambhogit/Expense-Tracker-API/internal/auth"
	"github.com/Shambhogit/Expense-Tracker-API/internal/user"
	"github.com/Shambhogit/Expense-Tracker-API/internal/validate"
)

// Store is the storage surface the handlers depend on.
type Store interface {
	Insert(ctx context.Context, e *Expense) (string, error)
	List(ctx context.Context, f *ListFilter) (*ListResult, error)
	Update(ctx context.Context, userID, id string, fields UpdateFields) error
	Delete(ctx context.Context, userID, id string) error
	MonthlySummary(ctx context.Context, userID string, year, month int) (*MonthlySummary, error)
}

// UserDirectory resolves authenticated claims to account records.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type Handler struct {
	Store  Store
	Users  UserDirectory
	Logger *slog.Logger
}

func NewHandler(store Store, users UserDirectory, logger *slog.Logger) *Handler {
	return &Handler{Store: store, Users: users, Logger: logger}
}

var addRules = []validate.Rule{
	{
		Field: "expenseName", Required: true, MinLen: 3, MaxLen: 30,
		RequiredMsg: "Expense Name is Required",
		LengthMsg:   "Expense Name should be in range of 3 to 30 characters",
	},
	{
		Field: "category", Required: true, MinLen: 3, MaxLen: 30,
		RequiredMsg: "Category is Required",
		LengthMsg:   "Category should be in range of 3 to 30 characters",
	},
	{Field: "type", OneOf: []string{TypeExpense, TypeIncome}},
	{Field: "paymentMethod", OneOf: []string{PayCash, PayCard, PayUPI, PayBankTransfer}},
}

// Add creates a record owned by the resolved account. The supplied userId
// must match the resolved account's id; a mismatch is treated exactly like
// a missing account.
func (h *Handler) Add(c *fiber.Ctx) error {
	owner, err := h.resolveOwner(c)
	if err != nil {
		return err
	}

	var req AddExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	values := map[string]string{
		"expenseName": req.ExpenseName,
		"category":    req.Category,
	}
	// Optional enums default when omitted; only validate them if supplied.
	if req.Type != "" {
		values["type"] = req.Type
	}
	if req.PaymentMethod != "" {
		values["paymentMethod"] = req.PaymentMethod
	}
	fieldErrs := validate.Apply(values, addRules)
	if len(fieldErrs) > 0 {
		return validationFailed(c, fieldErrs)
	}

	if _, err := uuid.Parse(req.UserID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	if req.UserID != owner.ID {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized User")
	}

	amount, err := ParseAmount(req.Amount)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Amount Must be a valid number")
	}

	txnDate := time.Now().UTC()
	if req.TransactionDate != "" {
		txnDate, err = ParseTransactionDate(req.TransactionDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	e := &Expense{
		UserID:          owner.ID,
		ExpenseName:     req.ExpenseName,
		Type:            defaulted(req.Type, TypeExpense),
		Amount:          amount,
		Category:        req.Category,
		PaymentMethod:   defaulted(req.PaymentMethod, PayCash),
		Note:            req.Note,
		TransactionDate: txnDate,
	}

	if _, err := h.Store.Insert(c.UserContext(), e); err != nil {
		return h.internal(c, "addExpense", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Expense Added to DB"})
}

// List compiles the query filters, always scoped to the owner, and returns
// one page plus totals.
func (h *Handler) List(c *fiber.Ctx) error {
	owner, err := h.resolveOwner(c)
	if err != nil {
		return err
	}

	f, err := ParseListQuery(c.Queries(), time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	f.UserID = owner.ID

	result, err := h.Store.List(c.UserContext(), f)
	if err != nil {
		return h.internal(c, "listExpenses", err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"page":         result.Page,
		"limit":        result.Limit,
		"totalPages":   result.TotalPages,
		"totalResults": result.TotalResults,
		"expenses":     result.Expenses,
	})
}

var updateRules = []validate.Rule{
	{Field: "expenseName", MinLen: 3, MaxLen: 30,
		LengthMsg: "Expense Name should be in range of 3 to 30 characters"},
	{Field: "category", MinLen: 3, MaxLen: 30,
		LengthMsg: "Category should be in range of 3 to 30 characters"},
	{Field: "type", OneOf: []string{TypeExpense, TypeIncome}},
	{Field: "paymentMethod", OneOf: []string{PayCash, PayCard, PayUPI, PayBankTransfer}},
}

// Update applies a partial update. Omitted fields (absent or JSON null) are
// untouched; an explicitly supplied empty note clears the note.
func (h *Handler) Update(c *fiber.Ctx) error {
	owner, err := h.resolveOwner(c)
	if err != nil {
		return err
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid expense id")
	}

	var req UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	supplied := map[string]string{}
	if req.ExpenseName != nil {
		supplied["expenseName"] = *req.ExpenseName
	}
	if req.Category != nil {
		supplied["category"] = *req.Category
	}
	if req.Type != nil {
		supplied["type"] = *req.Type
	}
	if req.PaymentMethod != nil {
		supplied["paymentMethod"] = *req.PaymentMethod
	}
	if fieldErrs := validate.Apply(supplied, updateRules); len(fieldErrs) > 0 {
		return validationFailed(c, fieldErrs)
	}

	fields := UpdateFields{
		ExpenseName:   req.ExpenseName,
		Type:          req.Type,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	}

	if req.Amount != nil {
		amount, err := ParseAmount(req.Amount)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Amount Must be a valid number")
		}
		fields.Amount = &amount
	}

	if req.TransactionDate != nil {
		txnDate, err := ParseTransactionDate(*req.TransactionDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		fields.TransactionDate = &txnDate
	}

	err = h.Store.Update(c.UserContext(), owner.ID, id, fields)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Expense not found or unauthorized")
	}
	if err != nil {
		return h.internal(c, "updateExpense", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Expense updated successfully"})
}

// Delete removes an owned record; a foreign or absent id is a 404 either
// way.
func (h *Handler) Delete(c *fiber.Ctx) error {
	owner, err := h.resolveOwner(c)
	if err != nil {
		return err
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid expense id")
	}

	err = h.Store.Delete(c.UserContext(), owner.ID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Expense not found or unauthorized")
	}
	if err != nil {
		return h.internal(c, "deleteExpense", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Expense deleted successfully"})
}

// Summary returns the owner's monthly totals and category breakdown. Year
// and month default to the current month.
func (h *Handler) Summary(c *fiber.Ctx) error {
	owner, err := h.resolveOwner(c)
	if err != nil {
		return err
	}

	year, month, err := yearMonth(c)
	if err != nil {
		return err
	}

	sum, err := h.Store.MonthlySummary(c.UserContext(), owner.ID, year, month)
	if err != nil {
		return h.internal(c, "monthlySummary", err)
	}

	return c.JSON(fiber.Map{"success": true, "summary": sum})
}

// Report renders the monthly summary as a downloadable PDF statement.
func (h *Handler) Report(c *fiber.Ctx) error {
	owner, err := h.resolveOwner(c)
	if err != nil {
		return err
	}

	year, month, err := yearMonth(c)
	if err != nil {
		return err
	}

	sum, err := h.Store.MonthlySummary(c.UserContext(), owner.ID, year, month)
	if err != nil {
		return h.internal(c, "monthlyReport", err)
	}

	pdf, err := BuildMonthlyPDF(owner.FullName, sum)
	if err != nil {
		return h.internal(c, "monthlyReport", err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="statement-%s.pdf"`, sum.Month))
	return c.Send(pdf)
}

// resolveOwner maps the verified claim email to exactly one account. Every
// data access downstream is scoped to this account.
func (h *Handler) resolveOwner(c *fiber.Ctx) (*user.User, error) {
	email, ok := auth.EmailFromCtx(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized access")
	}

	owner, err := h.Users.FindByEmail(c.UserContext(), email)
	if errors.Is(err, user.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized User")
	}
	if err != nil {
		return nil, h.internal(c, "resolveOwner", err)
	}
	return owner, nil
}

func (h *Handler) internal(c *fiber.Ctx, op string, err error) error {
	h.Logger.Error("internal error", "op", op, "path", c.Path(), "err", err)
	return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
}

func validationFailed(c *fiber.Ctx, errs []validate.FieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success": false,
		"error":   errs,
	})
}

func yearMonth(c *fiber.Ctx) (int, int, error) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid year")
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Invalid month")
		}
		month = parsed
	}
	return year, month, nil
}

func defaulted(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
