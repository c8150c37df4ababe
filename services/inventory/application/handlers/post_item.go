package handlers

import (
	"net/http"

	"github.com/ghuser/barstock/pkg/errhttp"
	"github.com/ghuser/barstock/pkg/httpx"
	pkgvalidator "github.com/ghuser/barstock/pkg/validator"
	"github.com/ghuser/barstock/services/inventory/application/schema"
	appsvcs "github.com/ghuser/barstock/services/inventory/application/services"
)

// PostItemHandler handles POST /inventory requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Validates the payload and stores it under a new id
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		schema.InsertPayload	true	"Item to create"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	errhttp.ValidationErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/inventory [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.DecodeJSON[schema.InsertPayload](w, r)
	if !ok {
		return
	}

	fields, err := schema.ValidateInsert(*req)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	item, err := h.svc.Inventory.Create(r.Context(), fields)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
