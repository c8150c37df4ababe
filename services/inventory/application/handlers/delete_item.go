package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/barstock/pkg/errhttp"
	"github.com/ghuser/barstock/pkg/httpx"
	appsvcs "github.com/ghuser/barstock/services/inventory/application/services"
	"github.com/ghuser/barstock/services/inventory/domain/models"
)

// DeleteItemHandler handles DELETE /inventory/{id} requests.
type DeleteItemHandler struct {
	svc *appsvcs.Services
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc}
}

// Execute hard-deletes an item.
//
//	@Summary	Delete item
//	@Tags		inventory
//	@Param		id	path	string	true	"Item id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/inventory/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Inventory.Delete(r.Context(), models.ItemID(chi.URLParam(r, "id"))); err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.NoContent(w)
}
