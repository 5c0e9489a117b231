package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated user's id. The authn middleware
// in the API layer sets it; rate limiting keys off it here.
const CtxKeyUserID ctxKey = "user_id"

func userIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
