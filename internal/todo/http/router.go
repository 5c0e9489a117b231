package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/tickbox/tickbox/internal/todo/service"
	"github.com/tickbox/tickbox/internal/todo/store"
	"github.com/tickbox/tickbox/pkg/httpx"
	"github.com/tickbox/tickbox/pkg/slogx"

	_ "github.com/tickbox/tickbox/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokenHeader  string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	UserService *service.UserService
	TodoService *service.TodoService
}

func NewRouter(
	tokenHeader, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokenHeader:  tokenHeader,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
	}

	// Global middleware chain: request logging first, then CORS. The
	// token travels in a custom header, so it has to be allowed and
	// exposed explicitly.
	corsMiddleware := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type", tokenHeader},
		ExposedHeaders: []string{tokenHeader},
	})

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		corsMiddleware.Handler,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerTodos()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Tickbox Todo API
//	@version		0.1.0
//	@description	Token-authenticated todo-list backend. Auth tokens are carried
//	@description	in a custom header (x-auth by default) rather than the standard
//	@description	Authorization scheme, and stay valid until revoked by logout.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						x-auth
//	@description				Auth token issued by register or login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	authn := AuthnMiddleware(r.UserService, r.tokenHeader)

	// POST /users - strict rate limit by IP (public signup endpoint)
	register := &RegisterHandler{Users: r.UserService, TokenHeader: r.tokenHeader}
	r.Mux.Handle("POST /users",
		httpx.Chain(register,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /users/login - strict rate limit by IP (brute force target)
	login := &LoginHandler{Users: r.UserService, TokenHeader: r.tokenHeader}
	r.Mux.Handle("POST /users/login",
		httpx.Chain(login,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /users/me - authenticated read, lenient limit by user
	r.Mux.Handle("GET /users/me",
		httpx.Chain(&MeHandler{},
			authn,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// DELETE /users/me/token - logout, moderate limit by user
	logout := &LogoutHandler{Users: r.UserService}
	r.Mux.Handle("DELETE /users/me/token",
		httpx.Chain(logout,
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTodos() {
	authn := AuthnMiddleware(r.UserService, r.tokenHeader)

	collection := &TodosHandler{Todos: r.TodoService}
	item := &TodoItemHandler{Todos: r.TodoService}

	r.Mux.Handle("POST /todos",
		httpx.Chain(http.HandlerFunc(collection.HandleCreate),
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /todos",
		httpx.Chain(http.HandlerFunc(collection.HandleList),
			authn,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /todos/{id}",
		httpx.Chain(http.HandlerFunc(item.HandleGet),
			authn,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /todos/{id}",
		httpx.Chain(http.HandlerFunc(item.HandlePatch),
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /todos/{id}",
		httpx.Chain(http.HandlerFunc(item.HandleDelete),
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
