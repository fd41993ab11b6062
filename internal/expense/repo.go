package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound covers both "record absent" and "record owned by someone
// else"; callers must not be able to tell the two apart.
var ErrNotFound = errors.New("expense not found")

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

const expenseColumns = `id, user_id, expense_name, type, amount::text, category,
	payment_method, note, transaction_date, created_at, updated_at`

// Insert stores a new record and returns its id. Defaults for type, payment
// method, note and transaction date are resolved before this point.
func (r *Repo) Insert(ctx context.Context, e *Expense) (string, error) {
	var id string
	err := r.Pool.QueryRow(ctx,
		`INSERT INTO expenses
		   (user_id, expense_name, type, amount, category, payment_method, note, transaction_date)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
		 RETURNING id`,
		e.UserID, e.ExpenseName, e.Type, e.Amount.String(), e.Category,
		e.PaymentMethod, e.Note, e.TransactionDate,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListResult is the paginated read envelope.
type ListResult struct {
	Page         int       `json:"page"`
	Limit        int       `json:"limit"`
	TotalPages   int       `json:"totalPages"`
	TotalResults int64     `json:"totalResults"`
	Expenses     []Expense `json:"expenses"`
}

// List runs the bounded fetch and the total count over the same predicate
// concurrently. The pair is not wrapped in a transaction, so the metadata
// is best-effort under concurrent writes.
func (r *Repo) List(ctx context.Context, f *ListFilter) (*ListResult, error) {
	where, args := f.whereClause()

	var (
		items []Expense
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query := fmt.Sprintf(
			`SELECT %s FROM expenses WHERE %s
			 ORDER BY transaction_date DESC
			 LIMIT %d OFFSET %d`,
			expenseColumns, where, f.Limit, f.Offset(),
		)
		rows, err := r.Pool.Query(gctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		items = make([]Expense, 0, f.Limit)
		for rows.Next() {
			e, err := scanExpense(rows)
			if err != nil {
				return err
			}
			items = append(items, e)
		}
		return rows.Err()
	})

	g.Go(func() error {
		query := fmt.Sprintf(`SELECT COUNT(*) FROM expenses WHERE %s`, where)
		return r.Pool.QueryRow(gctx, query, args...).Scan(&total)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ListResult{
		Page:         f.Page,
		Limit:        f.Limit,
		TotalPages:   pageCount(total, f.Limit),
		TotalResults: total,
		Expenses:     items,
	}, nil
}

// Update applies the supplied fields to a record the user owns. A missing
// or foreign record yields ErrNotFound either way.
func (r *Repo) Update(ctx context.Context, userID, id string, fields UpdateFields) error {
	sets := []string{"updated_at = now()"}
	args := []any{}

	set := func(clause string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf(clause, len(args)))
	}

	if fields.ExpenseName != nil {
		set("expense_name = $%d", *fields.ExpenseName)
	}
	if fields.Type != nil {
		set("type = $%d", *fields.Type)
	}
	if fields.Amount != nil {
		set("amount = $%d::numeric", fields.Amount.String())
	}
	if fields.Category != nil {
		set("category = $%d", *fields.Category)
	}
	if fields.PaymentMethod != nil {
		set("payment_method = $%d", *fields.PaymentMethod)
	}
	if fields.Note != nil {
		set("note = $%d", *fields.Note)
	}
	if fields.TransactionDate != nil {
		set("transaction_date = $%d", *fields.TransactionDate)
	}

	args = append(args, id)
	idArg := len(args)
	args = append(args, userID)
	userArg := len(args)

	query := fmt.Sprintf(
		`UPDATE expenses SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(sets, ", "), idArg, userArg,
	)

	ct, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record the user owns; same not-found policy as Update.
func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	ct, err := r.Pool.Exec(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var (
		e         Expense
		amountRaw string
	)
	err := row.Scan(
		&e.ID, &e.UserID, &e.ExpenseName, &e.Type, &amountRaw, &e.Category,
		&e.PaymentMethod, &e.Note, &e.TransactionDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return Expense{}, err
	}
	e.Amount, err = decimal.NewFromString(amountRaw)
	if err != nil {
		return Expense{}, err
	}
	return e, nil
}

// pageCount is ceil(total/limit); limit is validated positive upstream.
func pageCount(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}

// monthBounds returns [start, end) of the given calendar month in UTC.
func monthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
