// Package rowid converts between item ids and auto-increment primary keys.
package rowid

import (
	"strconv"

	"github.com/ghuser/barstock/services/inventory/domain/models"
)

// Parse returns the primary key named by id. Only the canonical decimal form
// of a positive key is accepted, so "7" parses but "07", "+7" and UUIDs do not.
func Parse(id models.ItemID) (int64, bool) {
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil || n <= 0 || strconv.FormatInt(n, 10) != id.String() {
		return 0, false
	}
	return n, true
}

// Format returns the item id for primary key n.
func Format(n int64) models.ItemID {
	return models.ItemID(strconv.FormatInt(n, 10))
}
