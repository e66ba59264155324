package httpx

import (
	"context"
	"net/http"
)

// SessionAuthenticator resolves a raw session token to its owning account.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (accountID string, err error)
}

// SessionMiddleware requires a valid session cookie. Requests without one,
// or with an expired or unknown token, get a 401 and the cookie is cleared.
func SessionMiddleware(auth SessionAuthenticator, cookies CookieConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logFromRequest(r)

			token := SessionCookie(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			accountID, err := auth.Authenticate(ctx, token)
			if err != nil {
				log.Info("session rejected", "err", err)
				cookies.ClearSession(w)
				WriteError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(ctx, accountID, token)))
		})
	}
}
