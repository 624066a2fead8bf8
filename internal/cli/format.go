package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/binder/internal/model"
	"github.com/shopspring/decimal"
)

// FormatEuros renders an amount in cents as "12.34 €".
func FormatEuros(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2) + " €"
}

// CategoryTitle is the heading of a category table.
func CategoryTitle(c model.Category, thresholdCents int64) string {
	return fmt.Sprintf("%s above %s", strings.ToUpper(c.DisplayName), FormatEuros(thresholdCents))
}

// CategoryCaption summarizes the rows of a category table.
func CategoryCaption(cr model.CategoryReport) string {
	return fmt.Sprintf("%d items (%s)", cr.ItemCount, FormatEuros(cr.TotalValueCents))
}

// GrandTotalLine summarizes the whole report.
func GrandTotalLine(r *model.Report) string {
	return fmt.Sprintf("*** Total number of items in the binder: %d (%s)***",
		r.TotalItems, FormatEuros(r.TotalValueCents))
}
