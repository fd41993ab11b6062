package expense

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// BuildMonthlyPDF renders a monthly summary as a printable statement.
func BuildMonthlyPDF(fullName string, sum *MonthlySummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Expense Tracker Monthly Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Expense Tracker Statement")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", sum.Month))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Account: %s", fullName))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Total Spend: %s", sum.TotalExpense.StringFixed(2)))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Total Income: %s", sum.TotalIncome.StringFixed(2)))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", sum.Net.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Category Breakdown")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(70, 7, "Category")
	pdf.Cell(50, 7, "Amount")
	pdf.Cell(30, 7, "%")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, b := range sum.Categories {
		pdf.Cell(70, 7, b.Category)
		pdf.Cell(50, 7, b.Total.StringFixed(2))
		pdf.Cell(30, 7, fmt.Sprintf("%.1f%%", b.Percent))
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
