package cli

import (
	"testing"

	"github.com/Veraticus/binder/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatEuros(t *testing.T) {
	tests := map[int64]string{
		0:       "0.00 €",
		5:       "0.05 €",
		150:     "1.50 €",
		123456:  "1234.56 €",
		1000000: "10000.00 €",
	}
	for cents, want := range tests {
		assert.Equal(t, want, FormatEuros(cents), cents)
	}
}

func TestCaptions(t *testing.T) {
	white, _ := model.CategoryByCode("W")

	assert.Equal(t, "WHITE above 3.00 €", CategoryTitle(white, 300))
	assert.Equal(t, "2 items (15.25 €)", CategoryCaption(model.CategoryReport{ItemCount: 2, TotalValueCents: 1525}))
	assert.Equal(t,
		"*** Total number of items in the binder: 7 (99.99 €)***",
		GrandTotalLine(&model.Report{TotalItems: 7, TotalValueCents: 9999}))
}
