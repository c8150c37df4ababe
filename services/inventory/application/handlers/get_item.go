package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/barstock/pkg/errhttp"
	"github.com/ghuser/barstock/pkg/httpx"
	appsvcs "github.com/ghuser/barstock/services/inventory/application/services"
	"github.com/ghuser/barstock/services/inventory/domain/models"
)

// GetItemHandler handles GET /inventory/{id} requests.
type GetItemHandler struct {
	svc *appsvcs.Services
}

// NewGetItemHandler returns a GetItemHandler backed by the given services.
func NewGetItemHandler(svc *appsvcs.Services) *GetItemHandler {
	return &GetItemHandler{svc: svc}
}

// Execute returns a single item.
//
//	@Summary		Get item
//	@Tags			inventory
//	@Produce		json
//	@Param			id	path		string	true	"Item id"
//	@Success		200	{object}	ItemResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/inventory/{id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Inventory.Get(r.Context(), models.ItemID(chi.URLParam(r, "id")))
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
