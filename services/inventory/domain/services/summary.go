package services

import "github.com/ghuser/barstock/services/inventory/domain/models"

// Summary aggregates the dashboard figures over a full item listing.
type Summary struct {
	TotalItems      int
	TotalQuantity   int64
	LowStockCount   int
	OutOfStockCount int
	CategoryCount   int
	LowStockItems   []*models.Item
	// ByStatus counts items per derived stock status; every status is present.
	ByStatus map[models.StockStatus]int
}

// Summarize computes a Summary. Low stock uses quantity <= threshold, so
// out-of-stock items are counted in both LowStockCount and OutOfStockCount.
// LowStockItems preserves the order of items.
func Summarize(items []*models.Item) Summary {
	s := Summary{
		TotalItems:    len(items),
		LowStockItems: []*models.Item{},
		ByStatus: map[models.StockStatus]int{
			models.StockOut:      0,
			models.StockLow:      0,
			models.StockModerate: 0,
			models.StockIn:       0,
		},
	}
	categories := make(map[models.Category]struct{})

	for _, item := range items {
		s.TotalQuantity += item.Quantity
		categories[item.Category] = struct{}{}
		if item.IsLowStock() {
			s.LowStockCount++
			s.LowStockItems = append(s.LowStockItems, item)
		}
		if item.Quantity == 0 {
			s.OutOfStockCount++
		}
		s.ByStatus[item.Status()]++
	}

	s.CategoryCount = len(categories)
	return s
}
