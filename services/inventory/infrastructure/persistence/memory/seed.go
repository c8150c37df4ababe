package memory

import "github.com/ghuser/barstock/services/inventory/domain/models"

// SeedItems returns the sample bar stock loaded when SEED_SAMPLE_DATA is on.
// A few entries start at or below their threshold so low-stock views have
// something to show.
func SeedItems() []models.ItemFields {
	return []models.ItemFields{
		{Name: "Jack Daniel's", Category: models.CategorySpirits, Quantity: 24, Unit: models.UnitBottles, LowStockThreshold: 12},
		{Name: "Grey Goose", Category: models.CategorySpirits, Quantity: 8, Unit: models.UnitBottles, LowStockThreshold: 10},
		{Name: "Bombay Sapphire", Category: models.CategorySpirits, Quantity: 15, Unit: models.UnitBottles, LowStockThreshold: 8},
		{Name: "Bacardi", Category: models.CategorySpirits, Quantity: 6, Unit: models.UnitBottles, LowStockThreshold: 10},
		{Name: "Corona", Category: models.CategoryBeer, Quantity: 48, Unit: models.UnitBottles, LowStockThreshold: 24},
		{Name: "Guinness", Category: models.CategoryBeer, Quantity: 36, Unit: models.UnitBottles, LowStockThreshold: 20},
		{Name: "Cabernet Sauvignon", Category: models.CategoryWine, Quantity: 12, Unit: models.UnitBottles, LowStockThreshold: 6},
		{Name: "Sauvignon Blanc", Category: models.CategoryWine, Quantity: 10, Unit: models.UnitBottles, LowStockThreshold: 6},
		{Name: "Tonic Water", Category: models.CategoryMixers, Quantity: 30, Unit: models.UnitBottles, LowStockThreshold: 15},
		{Name: "Cranberry Juice", Category: models.CategoryMixers, Quantity: 5, Unit: models.UnitLiters, LowStockThreshold: 8},
		{Name: "Fresh Limes", Category: models.CategoryGarnishes, Quantity: 50, Unit: models.UnitUnits, LowStockThreshold: 20},
		{Name: "Fresh Mint", Category: models.CategoryGarnishes, Quantity: 3, Unit: models.UnitUnits, LowStockThreshold: 5},
	}
}
