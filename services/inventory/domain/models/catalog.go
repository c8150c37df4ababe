package models

// Category is the product family an item belongs to.
type Category string

// Product categories offered by the dashboard.
const (
	CategorySpirits   Category = "Distillati"
	CategoryBeer      Category = "Birre"
	CategoryWine      Category = "Vini"
	CategoryMixers    Category = "Mixers"
	CategoryGarnishes Category = "Decorazioni"
)

// Unit is the measurement unit an item's quantity is counted in.
type Unit string

// Measurement units offered by the dashboard.
const (
	UnitBottles Unit = "bottles"
	UnitLiters  Unit = "L"
	UnitML      Unit = "ml"
	UnitUnits   Unit = "units"
	UnitCases   Unit = "cases"
)

var (
	categories = []Category{CategorySpirits, CategoryBeer, CategoryWine, CategoryMixers, CategoryGarnishes}
	units      = []Unit{UnitBottles, UnitLiters, UnitML, UnitUnits, UnitCases}
)

// Categories returns the accepted categories in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Units returns the accepted units in display order.
func Units() []Unit {
	return append([]Unit(nil), units...)
}

// Valid reports whether c is one of Categories. Matching is exact.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Valid reports whether u is one of Units. Matching is exact.
func (u Unit) Valid() bool {
	for _, known := range units {
		if u == known {
			return true
		}
	}
	return false
}
