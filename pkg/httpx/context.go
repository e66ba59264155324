package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/vault/pkg/slogx"
)

type ctxKey string

const (
	CtxKeyAccountID    ctxKey = "account_id"
	CtxKeySessionToken ctxKey = "session_token"
)

// WithSession stores the authenticated account and its raw session token.
func WithSession(ctx context.Context, accountID, token string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAccountID, accountID)
	ctx = context.WithValue(ctx, CtxKeySessionToken, token)
	return slogx.WithAccountID(ctx, accountID)
}

// AccountID returns the authenticated account id, or "" when the request is
// anonymous.
func AccountID(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyAccountID).(string)
	return v
}

// SessionToken returns the raw session token the request authenticated with.
func SessionToken(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeySessionToken).(string)
	return v
}

func logFromRequest(r *http.Request) *slog.Logger {
	return slogx.FromContext(r.Context())
}
