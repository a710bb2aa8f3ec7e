package http

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/coffeelux/auth/internal/auth/service"
	"github.com/coffeelux/auth/internal/auth/state"
	"github.com/coffeelux/auth/internal/auth/store"
	"github.com/coffeelux/auth/pkg/httpx"
	"github.com/coffeelux/auth/pkg/slogx"
)

//go:embed static
var staticFS embed.FS

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	state state.Store

	Policy          *service.AccessPolicy
	AuthService     *service.AuthService
	RecoveryService *service.RecoveryService
}

func NewRouter(buildVersion string, st store.Store, states state.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		state:        states,
	}
	return r
}

func (r *Router) ApplyRoutes() {
	// The gate runs on every request, after request logging. Public paths
	// pass straight through; everything else needs a valid session and an
	// access-policy match.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		Gate(r.AuthService, r.Policy),
	}

	r.registerAuth()
	r.registerRecovery()
	r.registerDashboards()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{Auth: r.AuthService}

	r.Mux.Handle("GET /login",
		httpx.Chain(http.HandlerFunc(login.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Credential posts are limited per IP and target email so one address
	// cannot be brute forced from many source addresses at once.
	r.Mux.Handle("POST /login",
		httpx.Chain(http.HandlerFunc(login.HandlePost),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
		),
	)

	logout := &LogoutHandler{Auth: r.AuthService}
	r.Mux.Handle("GET /logout", logout)
	r.Mux.Handle("POST /logout", logout)
}

func (r *Router) registerRecovery() {
	forgot := &ForgotPasswordHandler{Recovery: r.RecoveryService}
	verify := &VerifyOTPHandler{Recovery: r.RecoveryService}
	reset := &ResetPasswordHandler{Recovery: r.RecoveryService, Now: r.RecoveryService.Now}

	// Moderate rather than lenient: the resend action dispatches on GET
	// too, and every resend sends an email.
	r.Mux.Handle("GET /forgot-password",
		httpx.Chain(http.HandlerFunc(forgot.HandleGet),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /forgot-password",
		httpx.Chain(http.HandlerFunc(forgot.HandlePost),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
		),
	)

	r.Mux.Handle("GET /verify-otp",
		httpx.Chain(http.HandlerFunc(verify.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /verify-otp",
		httpx.Chain(http.HandlerFunc(verify.HandlePost),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /reset-password",
		httpx.Chain(http.HandlerFunc(reset.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /reset-password",
		httpx.Chain(http.HandlerFunc(reset.HandlePost),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerDashboards() {
	r.Mux.Handle("GET /{$}", http.HandlerFunc(HomeHandler))
	r.Mux.Handle("GET /dashboard", http.HandlerFunc(HomeHandler))
	r.Mux.Handle("GET /home", http.HandlerFunc(HomeHandler))

	// Dashboards sit behind the gate, so the limiter keys on the resolved
	// identity rather than the client IP.
	perUser := httpx.RateLimitByUser(httpx.LenientLimit)
	r.Mux.Handle("GET /admin/dashboard", httpx.Chain(&DashboardHandler{Area: "Admin"}, perUser))
	r.Mux.Handle("GET /hr/dashboard", httpx.Chain(&DashboardHandler{Area: "HR"}, perUser))
	r.Mux.Handle("GET /inventory/dashboard", httpx.Chain(&DashboardHandler{Area: "Inventory"}, perUser))
	r.Mux.Handle("GET /barista/dashboard", httpx.Chain(&DashboardHandler{Area: "Barista"}, perUser))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.state))

	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Mux.Handle("GET /css/", http.FileServerFS(assets))
}
