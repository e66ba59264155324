package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/kv"
	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/internal/vault/store"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/slogx"

	_ "github.com/aussiebroadwan/vault/api/vault" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion   string
	startTime      time.Time
	logger         *slog.Logger
	cookies        httpx.CookieConfig
	allowedOrigins []string

	store store.Store
	kv    kv.Store

	AuthService         *service.AuthService
	ChallengeService    *service.ChallengeService
	ConsentService      *service.ConsentService
	ProfileService      *service.ProfileService
	EntryService        *service.EntryService
	NotificationService *service.NotificationService
	Timers              *service.TimerRegistry
}

func NewRouter(
	buildVersion string,
	st store.Store,
	kvs kv.Store,
	cookies httpx.CookieConfig,
	allowedOrigins []string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		logger:         logger,
		cookies:        cookies,
		allowedOrigins: allowedOrigins,
		store:          st,
		kv:             kvs,
	}

	// CORS answers preflights before anything is logged
	r.middlewares = []httpx.Middleware{
		httpx.CORS(allowedOrigins),
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerConsent()
	r.registerAuth()
	r.registerSession()
	r.registerProfile()
	r.registerPasswordReset()
	r.registerEntries()
	r.registerNotifications()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Vault API
//	@version		0.1.0
//	@description	Password vault with a hardened login gate: consent prompt, human-verification challenge,
//	@description	account lockout, security notifications and idle session expiry.
//	@description
//	@description				Sessions are carried in an HttpOnly cookie; the consent decision in a signed cookie.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/vault
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						session-token
//	@description				Opaque session token issued by signup or login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with session authentication and a per-account limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.SessionMiddleware(r.AuthService, r.cookies),
		httpx.RateLimitByAccount(limit),
	)
}

func (r *Router) registerConsent() {
	h := &ConsentHandler{ConsentService: r.ConsentService, Cookies: r.cookies}

	// Consent decisions - moderate rate limit by IP
	r.Mux.Handle("POST /v1/consent/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/consent/decline",
		httpx.Chain(http.HandlerFunc(h.HandleDecline),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:      r.AuthService,
		ChallengeService: r.ChallengeService,
		Cookies:          r.cookies,
	}
	gate := RequireConsent(r.ConsentService)

	// GET /challenge - moderate, a challenge is needed for every login attempt
	r.Mux.Handle("GET /v1/challenge",
		httpx.Chain(http.HandlerFunc(h.HandleChallenge),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /signup - strict rate limit by IP
	r.Mux.Handle("POST /v1/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			gate,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP + email to slow down guessing
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			gate,
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// POST /logout - a missing or stale session is not an error
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSession() {
	h := &SessionHandler{
		AuthService:    r.AuthService,
		Timers:         r.Timers,
		Cookies:        r.cookies,
		AllowedOrigins: r.allowedOrigins,
	}

	// GET /session is public: it tells an anonymous browser which view to show
	r.Mux.Handle("GET /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleResolve),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/session/activity", r.secured(h.HandleActivity, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/session/ws", r.secured(h.HandleTimerFeed, httpx.ModerateLimit))
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{
		ProfileService: r.ProfileService,
		AuthService:    r.AuthService,
		Cookies:        r.cookies,
	}

	r.Mux.Handle("GET /v1/profile", r.secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/profile", r.secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/profile/password", r.secured(h.HandleChangePassword, httpx.ModerateLimit))
}

func (r *Router) registerPasswordReset() {
	h := &ResetHandler{ProfileService: r.ProfileService}

	// Reset endpoints are public - strict rate limit by IP + email
	r.Mux.Handle("POST /v1/password-reset",
		httpx.Chain(http.HandlerFunc(h.HandleRequest),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /v1/password-reset/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
}

func (r *Router) registerEntries() {
	h := &EntriesHandler{EntryService: r.EntryService}

	r.Mux.Handle("GET /v1/entries", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/entries", r.secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/entries/{id}", r.secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/entries/{id}", r.secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/entries/{id}", r.secured(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerNotifications() {
	h := &NotificationsHandler{NotificationService: r.NotificationService}

	r.Mux.Handle("GET /v1/notifications", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/notifications/unread-count", r.secured(h.HandleUnreadCount, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/notifications/read-all", r.secured(h.HandleMarkAllRead, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/notifications/{id}", r.secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/notifications/{id}/screenshot", r.secured(h.HandleScreenshot, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/notifications/{id}/read", r.secured(h.HandleMarkRead, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/notifications/{id}", r.secured(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.kv),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
