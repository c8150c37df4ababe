package handlers

import (
	"github.com/ghuser/barstock/services/inventory/domain/models"
	domainsvcs "github.com/ghuser/barstock/services/inventory/domain/services"
)

// ItemResponse is the wire representation of an inventory item.
type ItemResponse struct {
	ID                string `json:"id"                example:"42"`
	Name              string `json:"name"              example:"Jack Daniel's"`
	Category          string `json:"category"          example:"Distillati"`
	Quantity          int64  `json:"quantity"          example:"24"`
	Unit              string `json:"unit"              example:"bottles"`
	LowStockThreshold int64  `json:"lowStockThreshold" example:"12"`
} // @name ItemResponse

// SummaryResponse is returned by GET /inventory/summary.
type SummaryResponse struct {
	TotalItems      int            `json:"totalItems"      example:"12"`
	TotalQuantity   int64          `json:"totalQuantity"   example:"247"`
	LowStockCount   int            `json:"lowStockCount"   example:"4"`
	OutOfStockCount int            `json:"outOfStockCount" example:"0"`
	CategoryCount   int            `json:"categoryCount"   example:"5"`
	LowStockItems   []ItemResponse `json:"lowStockItems"`
	ByStatus        map[string]int `json:"byStatus"`
} // @name SummaryResponse

// ErrorResponse is returned on not-found and internal errors.
type ErrorResponse struct {
	Error string `json:"error" example:"Item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:                item.ID.String(),
		Name:              item.Name,
		Category:          string(item.Category),
		Quantity:          item.Quantity,
		Unit:              string(item.Unit),
		LowStockThreshold: item.LowStockThreshold,
	}
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}

func toSummaryResponse(s domainsvcs.Summary) SummaryResponse {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, n := range s.ByStatus {
		byStatus[string(status)] = n
	}
	return SummaryResponse{
		TotalItems:      s.TotalItems,
		TotalQuantity:   s.TotalQuantity,
		LowStockCount:   s.LowStockCount,
		OutOfStockCount: s.OutOfStockCount,
		CategoryCount:   s.CategoryCount,
		LowStockItems:   toItemResponses(s.LowStockItems),
		ByStatus:        byStatus,
	}
}
