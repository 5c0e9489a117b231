package http

import (
	"encoding/json"
	"net/http"

	"github.com/tickbox/tickbox/internal/todo/service"
	"github.com/tickbox/tickbox/pkg/httpx"
)

type LoginHandler struct {
	Users       *service.UserService
	TokenHeader string
}

// ServeHTTP handles login with email and password.
//
//	@Summary		Log in
//	@Description	Exchanges email/password for an auth token carried in the response token header.
//	@Description	Unknown email and wrong password are deliberately indistinguishable.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		object{email=string,password=string}	true	"Credentials"
//	@Success		200		{object}	domain.PublicUser						"Public user view; auth token in the x-auth header"
//	@Failure		400		"Invalid credentials; no token header is set"
//	@Router			/users/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}

	user, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := h.Users.IssueToken(ctx, user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.Header().Set(h.TokenHeader, token)
	httpx.WriteJSON(w, http.StatusOK, user.Public())
}
