package http

import (
	"errors"
	"net/http"

	"github.com/tickbox/tickbox/internal/todo/service"
	"github.com/tickbox/tickbox/internal/todo/store"
	"github.com/tickbox/tickbox/pkg/httpx"
	"github.com/tickbox/tickbox/pkg/slogx"
)

// errorBody is the most detail any failure response carries. Internal
// error text (driver errors, hash errors) never reaches the client.
type errorBody struct {
	Error string `json:"error"`
}

// writeServiceError maps service and store errors onto the fixed status
// contract: 400 for validation and credential failures, 404 for absent
// or not-owned records, 500 with a generic body for everything else.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError

	switch {
	case errors.As(err, &ve):
		httpx.WriteJSON(w, http.StatusBadRequest, errorBody{Error: ve.Field + " " + ve.Reason})
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteStatus(w, http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteStatus(w, http.StatusUnauthorized)
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteStatus(w, http.StatusNotFound)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteStatus(w, http.StatusInternalServerError)
	}
}
