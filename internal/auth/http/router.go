package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/oauthd/internal/auth/service"
	"github.com/aussiebroadwan/oauthd/internal/auth/store"
	"github.com/aussiebroadwan/oauthd/pkg/httpx"
	"github.com/aussiebroadwan/oauthd/pkg/jwtx"
	"github.com/aussiebroadwan/oauthd/pkg/slogx"

	_ "github.com/aussiebroadwan/oauthd/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *Metrics

	store          store.Store
	OAuth2Service  *service.OAuth2Service
	SessionService *service.SessionService
	UserService    *service.UserService
	ProjectService *service.ProjectService
}

// NewRouter builds a router with the default middleware chain. exposeStack
// adds the error cause chain to error bodies and is meant for development
// only.
func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	exposeStack bool,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      NewMetrics(),
	}

	r.middlewares = []httpx.Middleware{slogx.HTTPMiddleware(r.logger)}
	if exposeStack {
		r.middlewares = append(r.middlewares, httpx.ExposeStack())
	}
	// innermost, so the pattern the mux matched is visible
	r.middlewares = append(r.middlewares, r.metrics.Middleware())

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth2()
	r.registerAuth()
	r.registerUsers()
	r.registerProjects()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.Handle("/", NotFoundHandler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			oauthd Authorization Server API
//	@version		0.1.0
//	@description	OAuth2 authorization-code server. Projects obtain short-lived opaque access tokens scoped to a subset of a user's profile.
//	@description
//	@description				Session and identity tokens are signed with RS256 and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/oauthd
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from /api/auth/login, or an access token on userinfo. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth2() {
	authorize := &AuthorizeHandler{OAuth2Service: r.OAuth2Service, Metrics: r.metrics}
	r.Mux.Handle("GET /api/oauth2/authorize",
		httpx.Chain(authorize, httpx.Authenticate(r.verifier, true)),
	)

	token := &TokenHandler{OAuth2Service: r.OAuth2Service, Metrics: r.metrics}
	r.Mux.Handle("POST /api/oauth2/token", token)

	// access tokens are opaque, the gate only extracts them
	userinfo := &UserInfoHandler{OAuth2Service: r.OAuth2Service}
	r.Mux.Handle("GET /api/oauth2/userinfo",
		httpx.Chain(userinfo, httpx.Authenticate(r.verifier, false)),
	)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /api/auth/login", &LoginHandler{SessionService: r.SessionService})
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}
	authn := httpx.Authenticate(r.verifier, true)

	r.Mux.HandleFunc("POST /api/users", h.HandleCreate)
	r.Mux.HandleFunc("GET /api/users/{id}", h.HandleGet)
	r.Mux.Handle("PATCH /api/users/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), authn))
	r.Mux.Handle("DELETE /api/users/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), authn))
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}

	r.Mux.Handle("POST /api/projects",
		httpx.Chain(http.HandlerFunc(h.HandleCreate), httpx.Authenticate(r.verifier, true)),
	)
	r.Mux.HandleFunc("GET /api/projects/{id}", h.HandleGet)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json", JWKSHandler(r.keys))
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
