package model

// Row is an item annotated with its resolved expansion name.
type Row struct {
	Expansion string `json:"expansion" yaml:"expansion"`
	Item      Item   `json:"item" yaml:"item"`
}

// Totals is an item count and summed value pair.
type Totals struct {
	Items      int   `json:"items" yaml:"items"`
	ValueCents int64 `json:"value_cents" yaml:"value_cents"`
}

// Add returns the element-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Items:      t.Items + o.Items,
		ValueCents: t.ValueCents + o.ValueCents,
	}
}

// CategoryReport holds the rows and totals for one category.
type CategoryReport struct {
	Category        Category `json:"category" yaml:"category"`
	Rows            []Row    `json:"rows" yaml:"rows"`
	ItemCount       int      `json:"item_count" yaml:"item_count"`
	TotalValueCents int64    `json:"total_value_cents" yaml:"total_value_cents"`
}

// Report is the complete output of a run, in enabled-category order.
type Report struct {
	Categories      []CategoryReport `json:"categories" yaml:"categories"`
	ThresholdCents  int64            `json:"threshold_cents" yaml:"threshold_cents"`
	TotalItems      int              `json:"total_items" yaml:"total_items"`
	TotalValueCents int64            `json:"total_value_cents" yaml:"total_value_cents"`
}
