// Package entity defines the core business entities for the domain layer.
package entity

// Item categories offered by the UI. Free text up to the length limit is
// also accepted, so these are suggestions rather than an enum.
const (
	CategoryFood          = "Makanan"
	CategoryDrink         = "Minuman"
	CategoryTransport     = "Transportasi"
	CategoryAccommodation = "Akomodasi"
	CategoryEntertainment = "Hiburan"
	CategoryOther         = "Lainnya"
)

// DefaultCategories lists the categories in displayed order.
var DefaultCategories = []string{
	CategoryFood,
	CategoryDrink,
	CategoryTransport,
	CategoryAccommodation,
	CategoryEntertainment,
	CategoryOther,
}
