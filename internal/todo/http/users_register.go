package http

import (
	"encoding/json"
	"net/http"

	"github.com/tickbox/tickbox/internal/todo/service"
	"github.com/tickbox/tickbox/pkg/httpx"
	"github.com/tickbox/tickbox/pkg/slogx"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterHandler struct {
	Users       *service.UserService
	TokenHeader string
}

// ServeHTTP handles user registration.
//
//	@Summary		Register a new user
//	@Description	Creates a user account and issues an auth token in the response token header.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		object{email=string,password=string}	true	"Credentials"
//	@Success		200		{object}	domain.PublicUser						"Public user view; auth token in the x-auth header"
//	@Failure		400		{object}	object{error=string}					"Invalid email, short password, or email already registered"
//	@Router			/users [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}

	user, err := h.Users.Register(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// The original flow issues a token on signup so the client is
	// logged in immediately.
	token, err := h.Users.IssueToken(ctx, user)
	if err != nil {
		log.Error("token issuance after register failed", "user_id", user.ID, "err", err)
		httpx.WriteStatus(w, http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	w.Header().Set(h.TokenHeader, token)
	httpx.WriteJSON(w, http.StatusOK, user.Public())
}
