package http

import (
	"context"
	"net/http"

	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/pkg/httpx"
	"github.com/tickbox/tickbox/pkg/slogx"
)

// TokenResolver binds a presented token string to a user, or fails when
// the token is malformed, unknown or revoked.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (domain.User, error)
}

// AuthnMiddleware reads the auth token from the configured header and
// resolves it to a user. Missing, malformed and revoked tokens all get
// the same 401 with an empty body. On success the user and the raw
// token are injected into the request context.
func AuthnMiddleware(resolver TokenResolver, header string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := r.Header.Get(header)
			if token == "" {
				httpx.WriteStatus(w, http.StatusUnauthorized)
				return
			}

			user, err := resolver.ResolveToken(ctx, token)
			if err != nil {
				log.Warn("token resolution failed", "err", err)
				httpx.WriteStatus(w, http.StatusUnauthorized)
				return
			}

			ctx = context.WithValue(ctx, ctxKeyUser, user)
			ctx = context.WithValue(ctx, ctxKeyToken, token)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
