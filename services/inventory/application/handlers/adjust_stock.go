package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/barstock/pkg/errhttp"
	"github.com/ghuser/barstock/pkg/httpx"
	pkgvalidator "github.com/ghuser/barstock/pkg/validator"
	"github.com/ghuser/barstock/services/inventory/application/schema"
	appsvcs "github.com/ghuser/barstock/services/inventory/application/services"
)

// AdjustStockHandler handles PATCH /inventory/{id}/adjust requests.
type AdjustStockHandler struct {
	svc *appsvcs.Services
}

// NewAdjustStockHandler returns an AdjustStockHandler backed by the given services.
func NewAdjustStockHandler(svc *appsvcs.Services) *AdjustStockHandler {
	return &AdjustStockHandler{svc: svc}
}

// Execute applies a signed delta to an item's quantity. The result never
// drops below zero.
//
//	@Summary		Adjust stock
//	@Description	Adds adjustment to the quantity, clamping the result at 0
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Item id"
//	@Param			request	body		schema.AdjustPayload	true	"Signed delta"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	errhttp.ValidationErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/inventory/{id}/adjust [patch]
func (h *AdjustStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.DecodeJSON[schema.AdjustPayload](w, r)
	if !ok {
		return
	}

	adj, err := schema.ValidateAdjustment(chi.URLParam(r, "id"), *req)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	item, err := h.svc.Inventory.AdjustStock(r.Context(), adj.ID, adj.Delta)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
