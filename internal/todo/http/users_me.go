package http

import (
	"net/http"

	"github.com/tickbox/tickbox/pkg/httpx"
)

type MeHandler struct{}

// ServeHTTP returns the authenticated user's public view.
//
//	@Summary		Get the current user
//	@Tags			Users
//	@Security		TokenAuth
//	@Produce		json
//	@Success		200	{object}	domain.PublicUser
//	@Failure		401	"Missing, invalid or revoked token"
//	@Router			/users/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromCtx(r.Context())
	if !ok {
		httpx.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user.Public())
}
