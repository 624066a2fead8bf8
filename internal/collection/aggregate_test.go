package collection

import (
	"testing"

	"github.com/Veraticus/binder/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	items := []model.Item{
		{PriceCents: 1000, Quantity: 4},
		{PriceCents: 250, Quantity: 1},
		{PriceCents: 0, Quantity: 2},
	}

	got := Aggregate(items)
	assert.Equal(t, model.Totals{Items: 3, ValueCents: 1250}, got)
	assert.Equal(t, model.Totals{}, Aggregate(nil))
}

func TestGrandTotal(t *testing.T) {
	got := GrandTotal([]model.Totals{
		{Items: 1, ValueCents: 500},
		{Items: 0, ValueCents: 0},
		{Items: 2, ValueCents: 1500},
	})
	assert.Equal(t, model.Totals{Items: 3, ValueCents: 2000}, got)
	assert.Equal(t, model.Totals{}, GrandTotal(nil))
}
