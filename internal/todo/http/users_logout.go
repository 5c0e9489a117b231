package http

import (
	"net/http"

	"github.com/tickbox/tickbox/internal/todo/service"
	"github.com/tickbox/tickbox/pkg/httpx"
	"github.com/tickbox/tickbox/pkg/slogx"
)

type LogoutHandler struct {
	Users *service.UserService
}

// ServeHTTP revokes the token the request authenticated with. The
// token's signature stays valid forever, so removal from the user's
// active list is the only thing that ends the session.
//
//	@Summary		Log out
//	@Description	Revokes the presented auth token. Idempotent.
//	@Tags			Users
//	@Security		TokenAuth
//	@Produce		json
//	@Success		200	"Token revoked"
//	@Failure		401	"Missing, invalid or revoked token"
//	@Router			/users/me/token [delete].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := userFromCtx(ctx)
	if !ok {
		httpx.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	if err := h.Users.RevokeToken(ctx, user, tokenFromCtx(ctx)); err != nil {
		slogx.FromContext(ctx).Error("token revocation failed", "user_id", user.ID, "err", err)
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}

	httpx.NoCache(w)
	httpx.WriteStatus(w, http.StatusOK)
}
