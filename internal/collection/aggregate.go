package collection

import "github.com/Veraticus/binder/internal/model"

// Aggregate counts the items of a bucket and sums their prices.
func Aggregate(items []model.Item) model.Totals {
	totals := model.Totals{Items: len(items)}
	for _, item := range items {
		totals.ValueCents += item.PriceCents
	}
	return totals
}

// GrandTotal sums per-category totals.
func GrandTotal(totals []model.Totals) model.Totals {
	var sum model.Totals
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum
}
