package interfaces

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	projection "padel-projection/internal/projection/domain"
)

// PaybackDisplayCap is the payback length at and above which only "> 50 Years" is shown.
const PaybackDisplayCap = 50.0

var idrPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders a rupiah amount with Indonesian digit grouping, e.g. "Rp 1.444.600.000".
// Amounts are rounded to whole rupiah; non-finite amounts render as "Rp -".
func FormatIDR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "Rp -"
	}
	v = math.Round(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	v = math.Abs(v)
	return sign + "Rp " + idrPrinter.Sprintf("%.0f", v)
}

// FormatBillions renders v in billions, e.g. "1.44 M".
func FormatBillions(v float64) string {
	return fmt.Sprintf("%.2f M", v/1e9)
}

// FormatMillions renders v in millions, e.g. "300.0 Juta".
func FormatMillions(v float64) string {
	return fmt.Sprintf("%.1f Juta", v/1e6)
}

// FormatPayback renders a payback period in years.
func FormatPayback(p projection.Payback) string {
	years, ok := p.Years()
	if !ok || years >= PaybackDisplayCap {
		return "> 50 Years"
	}
	return fmt.Sprintf("%.1f Years", years)
}

// FormatMargin renders the EBITDA margin as a percentage.
func FormatMargin(m projection.FinancialMetrics) string {
	margin, ok := m.EBITDAMargin()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", margin*100)
}
