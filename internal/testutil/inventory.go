package testutil

// RecordBuilder assembles a raw inventory record shaped like the vendor's
// product export.
type RecordBuilder struct {
	fields     map[string]any
	properties map[string]any
}

// NewRecord starts a record with one English, non-foil copy of name.
func NewRecord(name string, blueprintID int64, priceCents int64, colors string) *RecordBuilder {
	return &RecordBuilder{
		fields: map[string]any{
			"quantity":     1,
			"name_en":      name,
			"blueprint_id": blueprintID,
			"price_cents":  priceCents,
		},
		properties: map[string]any{
			"mtg_language":    "en",
			"mtg_foil":        false,
			"mtg_card_colors": colors,
		},
	}
}

// Quantity sets the number of copies.
func (b *RecordBuilder) Quantity(n int) *RecordBuilder {
	b.fields["quantity"] = n
	return b
}

// Language sets mtg_language.
func (b *RecordBuilder) Language(lang string) *RecordBuilder {
	b.properties["mtg_language"] = lang
	return b
}

// Foil marks the copy as foil.
func (b *RecordBuilder) Foil() *RecordBuilder {
	b.properties["mtg_foil"] = true
	return b
}

// Set overrides a top-level field, or removes it when value is nil.
func (b *RecordBuilder) Set(field string, value any) *RecordBuilder {
	if value == nil {
		delete(b.fields, field)
	} else {
		b.fields[field] = value
	}
	return b
}

// Build returns the record. The builder can be reused afterwards.
func (b *RecordBuilder) Build() map[string]any {
	rec := make(map[string]any, len(b.fields)+1)
	for k, v := range b.fields {
		rec[k] = v
	}
	props := make(map[string]any, len(b.properties))
	for k, v := range b.properties {
		props[k] = v
	}
	rec["properties_hash"] = props
	return rec
}

// Records builds every builder into a slice suitable for Normalize.
func Records(builders ...*RecordBuilder) []any {
	out := make([]any, 0, len(builders))
	for _, b := range builders {
		out = append(out, b.Build())
	}
	return out
}
