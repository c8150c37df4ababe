// Package errhttp maps domain sentinel errors to HTTP responses.
// Add a case to WriteError for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/barstock/pkg/httpx"
	"github.com/ghuser/barstock/pkg/telemetry"
	inventorydomain "github.com/ghuser/barstock/services/inventory/domain"
)

// Client-facing messages. Storage error text is never sent to clients.
const (
	MsgInvalidData    = "Invalid data"
	MsgItemNotFound   = "Item not found"
	MsgInternalServer = "Internal server error"
)

// ValidationErrorResponse is the 400 body for rejected payloads.
type ValidationErrorResponse struct {
	Error  string            `json:"error"            example:"Invalid data"`
	Fields map[string]string `json:"fields,omitempty"`
} // @name ValidationErrorResponse

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is/As so wrapped sentinel errors are matched correctly.
// Unrecognized errors become a generic 500 and are reported to Sentry.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *inventorydomain.ValidationError
	switch {
	case errors.As(err, &ve):
		httpx.JSON(w, http.StatusBadRequest, ValidationErrorResponse{Error: MsgInvalidData, Fields: ve.Fields})
	case errors.Is(err, inventorydomain.ErrInvalidItem):
		httpx.JSON(w, http.StatusBadRequest, ValidationErrorResponse{Error: MsgInvalidData})
	case errors.Is(err, inventorydomain.ErrItemNotFound):
		httpx.JSONError(w, http.StatusNotFound, MsgItemNotFound)
	default:
		telemetry.CaptureError(r.Context(), err)
		httpx.JSONError(w, http.StatusInternalServerError, MsgInternalServer)
	}
}
