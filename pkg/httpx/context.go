package httpx

import "context"

type ctxKey string

const CtxKeyUser ctxKey = "user"

// UserFromContext returns the principal placed by AuthnMiddleware.
func UserFromContext(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(CtxKeyUser).(string)
	return u, ok && u != ""
}

func contextWithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, CtxKeyUser, user)
}
