package handlers

import (
	"net/http"

	"github.com/ghuser/barstock/pkg/errhttp"
	"github.com/ghuser/barstock/pkg/httpx"
	appsvcs "github.com/ghuser/barstock/services/inventory/application/services"
)

// ListItemsHandler handles GET /inventory requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists every inventory item.
//
//	@Summary		List items
//	@Description	Returns every inventory item in insertion order
//	@Tags			inventory
//	@Produce		json
//	@Success		200	{array}		ItemResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/inventory [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Inventory.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}
