package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"padel-projection/internal/projection/application"
	projection "padel-projection/internal/projection/domain"
)

// BuildProjectionPDF renders the summary, capex and opex tables of a report.
func BuildProjectionPDF(report application.Report, currency string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	m := report.Metrics
	pdf.Cell(0, 8, "Padel Facility Financial Projection")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Currency: %s", currency))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Pricing Mode: %s", report.Assumptions.PricingMode()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Monthly Revenue: %s", FormatIDR(m.MonthlyRevenue)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Monthly EBITDA: %s (margin %s)", FormatIDR(m.MonthlyEBITDA), FormatMargin(m)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Annual EBITDA: %s", FormatIDR(m.AnnualEBITDA)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Payback: %s", FormatPayback(m.Payback)))
	pdf.Ln(8)

	// Summary table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Units", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Hours", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Summary {
		units, hours := "", ""
		if row.Kind == application.RowCourt {
			units = fmt.Sprintf("%d", row.Units)
			hours = fmt.Sprintf("%.1f", row.DailyHours)
		}
		pdf.CellFormat(70, 6, row.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, units, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, hours, "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 6, FormatIDR(row.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	writePDFItems(pdf, "Capital Expenditure", report.Capex.Items, report.Capex.Total())

	opexItems := report.Opex.Items
	if rest := report.Opex.Unitemized(); rest != 0 {
		opexItems = append(append([]projection.LineItem(nil), opexItems...), projection.LineItem{Item: "Unitemized", Amount: rest})
	}
	pdf.Ln(6)
	writePDFItems(pdf, "Monthly Operating Expenses", opexItems, report.Opex.TotalMonthlyOpex())
	pdf.Cell(0, 6, fmt.Sprintf("Cash OPEX (excl. %s): %s", report.Opex.DepreciationItem, FormatIDR(report.CashOpexMonthly)))
	pdf.Ln(5)

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePDFItems(pdf *gofpdf.Fpdf, title string, items []projection.LineItem, total float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, title)
	pdf.Ln(7)
	pdf.CellFormat(110, 6, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range items {
		pdf.CellFormat(110, 6, item.Item, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 6, FormatIDR(item.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(110, 6, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(70, 6, FormatIDR(total), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
}

// BuildProjectionXLSX renders a report as a workbook with summary, capex, opex and comparison sheets.
func BuildProjectionXLSX(report application.Report, currency string) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	capexSheet := "capex"
	opexSheet := "opex"
	comparisonSheet := "comparison"
	f.SetSheetName("Sheet1", summarySheet)
	for _, name := range []string{capexSheet, opexSheet, comparisonSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	m := report.Metrics
	_ = f.SetCellValue(summarySheet, "A1", "Padel Facility Financial Projection")
	_ = f.SetCellValue(summarySheet, "A3", "Generated")
	_ = f.SetCellValue(summarySheet, "B3", report.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A4", "Currency")
	_ = f.SetCellValue(summarySheet, "B4", currency)
	_ = f.SetCellValue(summarySheet, "A5", "Pricing Mode")
	_ = f.SetCellValue(summarySheet, "B5", string(report.Assumptions.PricingMode()))
	_ = f.SetCellValue(summarySheet, "A6", "Payback")
	_ = f.SetCellValue(summarySheet, "B6", FormatPayback(m.Payback))
	_ = f.SetCellValue(summarySheet, "A7", "EBITDA Margin")
	_ = f.SetCellValue(summarySheet, "B7", FormatMargin(m))

	_ = f.SetCellValue(summarySheet, "A9", "Item")
	_ = f.SetCellValue(summarySheet, "B9", "Units")
	_ = f.SetCellValue(summarySheet, "C9", "Unit Price")
	_ = f.SetCellValue(summarySheet, "D9", "Daily Hours")
	_ = f.SetCellValue(summarySheet, "E9", "Amount")
	for i, row := range report.Summary {
		r := i + 10
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), row.Label)
		if row.Kind == application.RowCourt {
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), row.Units)
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", r), row.UnitPrice)
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("D%d", r), row.DailyHours)
		}
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("E%d", r), row.Amount)
	}

	writeXLSXItems(f, capexSheet, report.Capex.Items, report.Capex.Total())
	opexItems := report.Opex.Items
	if rest := report.Opex.Unitemized(); rest != 0 {
		opexItems = append(append([]projection.LineItem(nil), opexItems...), projection.LineItem{Item: "Unitemized", Amount: rest})
	}
	writeXLSXItems(f, opexSheet, opexItems, report.Opex.TotalMonthlyOpex())
	last := len(opexItems) + 3
	_ = f.SetCellValue(opexSheet, fmt.Sprintf("A%d", last), "Cash OPEX")
	_ = f.SetCellValue(opexSheet, fmt.Sprintf("B%d", last), report.CashOpexMonthly)

	_ = f.SetCellValue(comparisonSheet, "A1", "Scenario")
	_ = f.SetCellValue(comparisonSheet, "B1", "Monthly Revenue")
	_ = f.SetCellValue(comparisonSheet, "C1", "Monthly EBITDA")
	for i, row := range report.Comparison {
		r := i + 2
		_ = f.SetCellValue(comparisonSheet, fmt.Sprintf("A%d", r), row.Name)
		_ = f.SetCellValue(comparisonSheet, fmt.Sprintf("B%d", r), row.MonthlyRevenue)
		_ = f.SetCellValue(comparisonSheet, fmt.Sprintf("C%d", r), row.MonthlyEBITDA)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSXItems(f *excelize.File, sheet string, items []projection.LineItem, total float64) {
	_ = f.SetCellValue(sheet, "A1", "Item")
	_ = f.SetCellValue(sheet, "B1", "Amount")
	for i, item := range items {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Item)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Amount)
	}
	row := len(items) + 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), total)
}
