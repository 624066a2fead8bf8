package model

import "strconv"

// BlueprintID identifies a card printing in the vendor catalog.
type BlueprintID int64

// String returns the decimal form used in vendor URLs.
func (id BlueprintID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Item is a normalized inventory entry.
type Item struct {
	Name        string      `json:"name" yaml:"name"`
	Language    string      `json:"language" yaml:"language"`
	ColorCode   string      `json:"color_code" yaml:"color_code"`
	BlueprintID BlueprintID `json:"blueprint_id" yaml:"blueprint_id"`
	PriceCents  int64       `json:"price_cents" yaml:"price_cents"`
	Quantity    int         `json:"quantity" yaml:"quantity"`
	Foil        bool        `json:"foil" yaml:"foil"`
}
