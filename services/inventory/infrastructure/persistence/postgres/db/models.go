package db

type InventoryItem struct {
	ID                int64
	Name              string
	Category          string
	Quantity          int64
	Unit              string
	LowStockThreshold int64
}
