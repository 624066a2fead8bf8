// Package collection turns a raw inventory export into per-category reports.
package collection

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/binder/internal/common"
	"github.com/Veraticus/binder/internal/model"
	"github.com/spf13/cast"
)

// Vendor field names.
const (
	FieldQuantity    = "quantity"
	FieldName        = "name_en"
	FieldBlueprintID = "blueprint_id"
	FieldPriceCents  = "price_cents"
	FieldProperties  = "properties_hash"
	FieldLanguage    = "mtg_language"
	FieldFoil        = "mtg_foil"
	FieldColors      = "mtg_card_colors"
)

// Normalized is the outcome of normalizing an export.
type Normalized struct {
	// Items are sorted by price, most expensive first.
	Items []model.Item
	// Skipped counts records dropped for lacking a color code.
	Skipped int
}

// Normalize converts raw export records into items. Records without a color
// code are skipped. Any other malformed record aborts with a
// *common.ValidationError carrying the record's position.
func Normalize(records []any) (*Normalized, error) {
	out := &Normalized{Items: make([]model.Item, 0, len(records))}

	for i, raw := range records {
		rec, ok := raw.(map[string]any)
		if !ok {
			return nil, &common.ValidationError{Index: i, Err: common.ErrNotMapping}
		}

		item, classified, err := normalizeRecord(rec)
		if err != nil {
			err.Index = i
			return nil, err
		}
		if !classified {
			out.Skipped++
			continue
		}
		out.Items = append(out.Items, item)
	}

	sort.SliceStable(out.Items, func(i, j int) bool {
		return out.Items[i].PriceCents > out.Items[j].PriceCents
	})

	return out, nil
}

func normalizeRecord(rec map[string]any) (model.Item, bool, *common.ValidationError) {
	var item model.Item

	price, verr := nonNegativeInt(rec, FieldPriceCents)
	if verr != nil {
		return item, false, verr
	}
	quantity, verr := nonNegativeInt(rec, FieldQuantity)
	if verr != nil {
		return item, false, verr
	}
	blueprint, verr := requiredInt(rec, FieldBlueprintID)
	if verr != nil {
		return item, false, verr
	}

	name, err := cast.ToStringE(rec[FieldName])
	if err != nil {
		return item, false, malformed(FieldName, err)
	}
	if strings.TrimSpace(name) == "" {
		return item, false, &common.ValidationError{Field: FieldName, Err: common.ErrMissingField}
	}

	language, err := cast.ToStringE(property(rec, FieldLanguage))
	if err != nil {
		return item, false, malformed(FieldLanguage, err)
	}

	var foil bool
	if v := property(rec, FieldFoil); v != nil {
		if foil, err = cast.ToBoolE(v); err != nil {
			return item, false, malformed(FieldFoil, err)
		}
	}

	color, ok := property(rec, FieldColors).(string)
	color = strings.ToUpper(strings.TrimSpace(color))
	if !ok || color == "" {
		return item, false, nil
	}

	item = model.Item{
		Quantity:    int(quantity),
		Name:        name,
		BlueprintID: model.BlueprintID(blueprint),
		PriceCents:  price,
		Language:    language,
		Foil:        foil,
		ColorCode:   color,
	}
	return item, true, nil
}

// property reads a key of the nested properties object, falling back to a
// flattened "properties_hash.<key>" entry.
func property(rec map[string]any, key string) any {
	if props, ok := rec[FieldProperties].(map[string]any); ok {
		if v, ok := props[key]; ok {
			return v
		}
	}
	return rec[FieldProperties+"."+key]
}

// decimalInt matches the only textual integers accepted: base 10, no sign
// other than a leading minus, no leading zeros, no digit separators.
var decimalInt = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

func requiredInt(rec map[string]any, field string) (int64, *common.ValidationError) {
	v, ok := rec[field]
	if !ok || v == nil {
		return 0, &common.ValidationError{Field: field, Err: common.ErrMissingField}
	}

	switch n := v.(type) {
	case bool:
		return 0, malformed(field, fmt.Errorf("unexpected boolean %v", n))
	case float64:
		if verr := checkFloat(field, n); verr != nil {
			return 0, verr
		}
	case float32:
		if verr := checkFloat(field, float64(n)); verr != nil {
			return 0, verr
		}
	case string:
		n = strings.TrimSpace(n)
		if !decimalInt.MatchString(n) {
			return 0, malformed(field, fmt.Errorf("%q is not a decimal integer", n))
		}
		v = n
	case json.Number:
		if !decimalInt.MatchString(n.String()) {
			return 0, malformed(field, fmt.Errorf("%q is not a decimal integer", n.String()))
		}
		v = n.String()
	}

	i, err := cast.ToInt64E(v)
	if err != nil {
		return 0, malformed(field, err)
	}
	return i, nil
}

// checkFloat rejects floats that are fractional or outside the int64 range.
func checkFloat(field string, f float64) *common.ValidationError {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return malformed(field, fmt.Errorf("%v is not an integer", f))
	}
	// -2^63 is exact in float64; 2^63 is the first value past MaxInt64.
	if f < math.MinInt64 || f >= -math.MinInt64 {
		return malformed(field, fmt.Errorf("%v is out of range", f))
	}
	return nil
}

func nonNegativeInt(rec map[string]any, field string) (int64, *common.ValidationError) {
	i, verr := requiredInt(rec, field)
	if verr != nil {
		return 0, verr
	}
	if i < 0 {
		return 0, malformed(field, fmt.Errorf("%d is negative", i))
	}
	return i, nil
}

func malformed(field string, err error) *common.ValidationError {
	return &common.ValidationError{
		Field: field,
		Err:   fmt.Errorf("%w: %v", common.ErrMalformedField, err),
	}
}
