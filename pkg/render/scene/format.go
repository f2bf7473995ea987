package scene

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NotAvailable is shown in place of a missing or NaN value.
const NotAvailable = "N/A"

// formatter renders numbers for hover titles and value labels with English
// digit grouping ("12,345").
type formatter struct {
	p *message.Printer
}

func newFormatter() formatter {
	return formatter{p: message.NewPrinter(language.English)}
}

func (f formatter) value(v float64, missing bool) string {
	if missing || math.IsNaN(v) {
		return NotAvailable
	}
	return f.p.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func (f formatter) count(n int) string {
	return f.p.Sprint(number.Decimal(n))
}

func formatCategory(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func title(category, series, value string) string {
	return fmt.Sprintf("%s %s\n%s", category, series, value)
}
