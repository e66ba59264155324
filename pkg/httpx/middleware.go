package httpx

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mw around h so that the first middleware listed is the
// outermost one and sees the request first.
func Chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// Recover turns a panic in a handler into a 500 with the standard envelope.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logFromRequest(r).Error("handler panic", "panic", rec)
					WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
