package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/holidash/internal/dashboard/metrics"
	"github.com/aussiebroadwan/holidash/internal/dashboard/service"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store"
	"github.com/aussiebroadwan/holidash/pkg/httpx"
	"github.com/aussiebroadwan/holidash/pkg/slogx"

	_ "github.com/aussiebroadwan/holidash/api/dashboard" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// DirectoryStatus is what the HTTP layer needs to know about the user
// directory.
type DirectoryStatus interface {
	Ready() bool
	Len() int
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store     store.Store // nil when running without persistence
	directory DirectoryStatus
	metrics   *metrics.Metrics

	LoginService     *service.LoginService
	DashboardService *service.DashboardService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	dir DirectoryStatus,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		directory:    dir,
		metrics:      m,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLogin()
	r.registerDashboard()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			holidash API
//	@version		0.1.0
//	@description	Credential check against a directory of generated users, plus a small
//	@description	dashboard of greetings and public holiday counts.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/holidash
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLogin() {
	h := &LoginHandler{LoginService: r.LoginService, Directory: r.directory}

	// Limited by IP + identifier so one caller cannot grind a single account.
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(h,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "identifier"),
		),
	)
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{DashboardService: r.DashboardService}

	// Every read fans out to third-party APIs, so they share the public limit.
	r.Mux.Handle("GET /v1/greeting",
		httpx.Chain(http.HandlerFunc(h.HandleGreeting), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
	r.Mux.Handle("GET /v1/countries",
		httpx.Chain(http.HandlerFunc(h.HandleCountries), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
	r.Mux.Handle("GET /v1/holidays/{country}",
		httpx.Chain(http.HandlerFunc(h.HandleHolidays), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.directory))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
