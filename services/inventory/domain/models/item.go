package models

import "math"

// ItemID is the storage-assigned identifier of an item. The ephemeral store
// issues UUIDs and the relational stores issue decimal auto-increment keys;
// callers treat it as an opaque string.
type ItemID string

// String returns the underlying string value.
func (id ItemID) String() string {
	return string(id)
}

// ItemFields is the validated, caller-supplied part of an item: everything
// except the id. It is the payload of create and of full-replacement update.
type ItemFields struct {
	Name              string
	Category          Category
	Quantity          int64
	Unit              Unit
	LowStockThreshold int64
}

// Item is one inventory record (product line).
type Item struct {
	ID ItemID
	ItemFields
}

// NewItem combines a storage-assigned id with validated fields.
func NewItem(id ItemID, fields ItemFields) *Item {
	return &Item{ID: id, ItemFields: fields}
}

// Clone returns a copy that shares no state with i.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// IsLowStock reports whether the quantity is at or below the threshold.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// Status derives the presentational stock level of the item.
func (i *Item) Status() StockStatus {
	switch {
	case i.Quantity == 0:
		return StockOut
	case i.Quantity <= i.LowStockThreshold:
		return StockLow
	case i.Quantity <= 2*i.LowStockThreshold:
		return StockModerate
	default:
		return StockIn
	}
}

// StockStatus is a derived, never persisted stock level.
type StockStatus string

const (
	StockOut      StockStatus = "out_of_stock"
	StockLow      StockStatus = "low_stock"
	StockModerate StockStatus = "moderate"
	StockIn       StockStatus = "in_stock"
)

// ApplyAdjustment returns max(0, quantity+delta). The sum saturates instead
// of wrapping so that extreme deltas still land on a sane value.
func ApplyAdjustment(quantity, delta int64) int64 {
	sum := quantity + delta
	switch {
	case delta > 0 && sum < quantity:
		sum = math.MaxInt64
	case delta < 0 && sum > quantity:
		sum = math.MinInt64
	}
	if sum < 0 {
		return 0
	}
	return sum
}
