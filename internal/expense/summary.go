package expense

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// MonthlySummary aggregates one calendar month of a user's records.
type MonthlySummary struct {
	Month        string           `json:"month"` // YYYY-MM
	TotalExpense decimal.Decimal  `json:"totalExpense"`
	TotalIncome  decimal.Decimal  `json:"totalIncome"`
	Net          decimal.Decimal  `json:"net"`
	Transactions int64            `json:"transactions"`
	TopCategory  string           `json:"topCategory"`
	Categories   []CategoryBucket `json:"categoryBreakup"`
}

// CategoryBucket is one slice of the expense-side category breakdown.
type CategoryBucket struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Percent  float64         `json:"percent"`
}

// MonthlySummary computes totals and the per-category expense breakdown for
// the user's records in the given month.
func (r *Repo) MonthlySummary(ctx context.Context, userID string, year, month int) (*MonthlySummary, error) {
	start, end := monthBounds(year, month)

	sum := &MonthlySummary{
		Month:        fmt.Sprintf("%04d-%02d", year, month),
		TotalExpense: decimal.Zero,
		TotalIncome:  decimal.Zero,
		Net:          decimal.Zero,
	}

	var expenseRaw, incomeRaw string
	err := r.Pool.QueryRow(ctx,
		`SELECT
		   COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)::text,
		   COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0)::text,
		   COUNT(*)
		 FROM expenses
		 WHERE user_id = $1 AND transaction_date >= $2 AND transaction_date < $3`,
		userID, start, end,
	).Scan(&expenseRaw, &incomeRaw, &sum.Transactions)
	if err != nil {
		return nil, err
	}

	if sum.TotalExpense, err = decimal.NewFromString(expenseRaw); err != nil {
		return nil, err
	}
	if sum.TotalIncome, err = decimal.NewFromString(incomeRaw); err != nil {
		return nil, err
	}
	sum.Net = sum.TotalIncome.Sub(sum.TotalExpense)

	rows, err := r.Pool.Query(ctx,
		`SELECT category, SUM(amount)::text
		 FROM expenses
		 WHERE user_id = $1 AND type = 'expense'
		   AND transaction_date >= $2 AND transaction_date < $3
		 GROUP BY category
		 ORDER BY SUM(amount) DESC`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			b   CategoryBucket
			raw string
		)
		if err := rows.Scan(&b.Category, &raw); err != nil {
			return nil, err
		}
		if b.Total, err = decimal.NewFromString(raw); err != nil {
			return nil, err
		}
		if sum.TotalExpense.IsPositive() {
			pct, _ := b.Total.Div(sum.TotalExpense).Mul(decimal.NewFromInt(100)).Round(1).Float64()
			b.Percent = pct
		}
		sum.Categories = append(sum.Categories, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(sum.Categories) > 0 {
		sum.TopCategory = sum.Categories[0].Category
	}
	return sum, nil
}
