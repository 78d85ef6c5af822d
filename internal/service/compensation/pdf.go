package compensation

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/compensation"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

func renderPayslip(slip compensation.PayslipResponse, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", slip.EmployeeID, slip.Period), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", slip.EmployeeName, slip.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", slip.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", slip.Position))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", slip.Period.FirstDay().Format("2006-01-02"), slip.Period.LastDay().Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Earnings")
	row(pdf, "Basic salary", slip.MonthlySalary)
	for _, a := range slip.Allowances {
		row(pdf, "Allowance: "+a.Name, a.Amount)
	}
	row(pdf, "Overtime", slip.OTAmount)
	row(pdf, "Bonus", slip.Bonus)
	total(pdf, "Gross salary", slip.GrossSalary)

	section(pdf, "Deductions")
	for _, d := range slip.Deductions {
		row(pdf, capitalize(d.Name), d.Amount)
	}
	total(pdf, "Total deductions", slip.TotalDeductions)

	pdf.Ln(4)
	total(pdf, "Net salary", slip.NetSalary)

	if len(slip.Warnings) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, "Warnings: "+strings.Join(slip.Warnings, ", "))
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.Cell(0, 6, "Generated "+generatedAt.UTC().Format(time.RFC3339))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", compensation.ErrPayslipRenderFailed, err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func row(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.CellFormat(120, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, amount.StringFixed(2), "", 1, "R", false, 0, "")
}

func total(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 7, label, "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, amount.StringFixed(2), "T", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Ln(2)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
