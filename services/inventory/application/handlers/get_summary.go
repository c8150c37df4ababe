package handlers

import (
	"net/http"

	"github.com/ghuser/barstock/pkg/errhttp"
	"github.com/ghuser/barstock/pkg/httpx"
	appsvcs "github.com/ghuser/barstock/services/inventory/application/services"
	inventorydomain "github.com/ghuser/barstock/services/inventory/domain"
)

// GetSummaryHandler handles GET /inventory/summary requests.
type GetSummaryHandler struct {
	svc *appsvcs.Services
}

// NewGetSummaryHandler returns a GetSummaryHandler backed by the given services.
func NewGetSummaryHandler(svc *appsvcs.Services) *GetSummaryHandler {
	return &GetSummaryHandler{svc: svc}
}

// Execute returns the dashboard totals.
//
//	@Summary		Inventory summary
//	@Description	Totals, low-stock list and per-status counts over all items
//	@Tags			inventory
//	@Produce		json
//	@Success		200	{object}	SummaryResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/inventory/summary [get]
func (h *GetSummaryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Inventory.Summary(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSummaryResponse(s))
}

// SummaryIsNotAnItem answers item-scoped methods on /inventory/summary. The
// path names no item, so it reports the same 404 as any other absent id.
func SummaryIsNotAnItem(w http.ResponseWriter, r *http.Request) {
	errhttp.WriteError(w, r, inventorydomain.ErrItemNotFound)
}
