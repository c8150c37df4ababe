package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/barstock/pkg/errhttp"
	"github.com/ghuser/barstock/pkg/httpx"
	pkgvalidator "github.com/ghuser/barstock/pkg/validator"
	"github.com/ghuser/barstock/services/inventory/application/schema"
	appsvcs "github.com/ghuser/barstock/services/inventory/application/services"
	"github.com/ghuser/barstock/services/inventory/domain/models"
)

// PutItemHandler handles PUT /inventory/{id} requests.
type PutItemHandler struct {
	svc *appsvcs.Services
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services) *PutItemHandler {
	return &PutItemHandler{svc: svc}
}

// Execute replaces every field of an existing item.
//
//	@Summary		Update item
//	@Description	Full replacement; the payload is validated like a create
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Item id"
//	@Param			request	body		schema.InsertPayload	true	"Replacement fields"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	errhttp.ValidationErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/inventory/{id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.DecodeJSON[schema.InsertPayload](w, r)
	if !ok {
		return
	}

	fields, err := schema.ValidateInsert(*req)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	item, err := h.svc.Inventory.Update(r.Context(), models.ItemID(chi.URLParam(r, "id")), fields)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
