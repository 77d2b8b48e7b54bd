package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/philly/learnhub/backend/internal/adapters/api"
	"github.com/philly/learnhub/backend/internal/adapters/rest/middleware"
	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/platform/logger"
	"github.com/philly/learnhub/backend/internal/platform/metrics"
)

// NewHTTPServer creates and configures the HTTP server with all routes
func NewHTTPServer(
	config Config,
	server api.ServerInterface,
	jwtMiddleware *middleware.JWTMiddleware,
	authAdapter *middleware.AuthAdapter,
	authzMiddleware *middleware.AuthorizationMiddleware,
	m *metrics.Metrics,
	log logger.Logger,
) *http.Server {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSONError(w, middleware.ErrorCodeNotFound, "Route not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSONError(w, middleware.ErrorCodeNotFound, "Method not allowed", http.StatusMethodNotAllowed)
	})

	if config.MetricsEnabled {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	// Anyone; a bearer token is optional and only identifies the caller
	publicMiddlewares := []api.MiddlewareFunc{
		wrapMiddleware(jwtMiddleware.Optional),
		wrapMiddleware(authAdapter.Middleware),
		traceActor,
	}

	// USER or ADMIN
	userMiddlewares := []api.MiddlewareFunc{
		wrapMiddleware(jwtMiddleware.Required),
		wrapMiddleware(authAdapter.Middleware),
		traceActor,
		wrapMiddleware(authzMiddleware.RequireRole(authz.RoleUser, authz.RoleAdmin)),
	}

	adminMiddlewares := []api.MiddlewareFunc{
		wrapMiddleware(jwtMiddleware.Required),
		wrapMiddleware(authAdapter.Middleware),
		traceActor,
		wrapMiddleware(authzMiddleware.RequireRole(authz.RoleAdmin)),
	}

	publicPatterns := map[string]bool{
		"GET /api/v1/health/live":  true,
		"GET /api/v1/health/ready": true,

		"POST /api/v1/auth/register": true,
		"POST /api/v1/auth/login":    true,

		"GET /api/v1/resources":                        true,
		"GET /api/v1/resources/newest":                 true,
		"GET /api/v1/resources/updated":                true,
		"GET /api/v1/resources/id/{id}":                true,
		"GET /api/v1/resources/id/{id}/likes":          true,
		"GET /api/v1/resources/learning/{learning_id}": true,
		"GET /api/v1/resources/title/{title}":          true,
		"GET /api/v1/resources/contributor/{name}":     true,
		"GET /api/v1/resources/search/{keyword}":       true,

		// ?id= is admin only; the contributors service enforces it
		"GET /api/v1/contributors":               true,
		"GET /api/v1/contributors/contributions": true,
	}

	rolePatterns := map[string][]api.MiddlewareFunc{
		"POST /api/v1/admin/users/{username}/roles": adminMiddlewares,
	}

	_ = api.HandlerWithOptions(server, api.ChiServerOptions{
		BaseURL:    "/api/v1",
		BaseRouter: r,
		Middlewares: []api.MiddlewareFunc{
			routeAwareChiMiddleware(publicPatterns, publicMiddlewares, rolePatterns, userMiddlewares),
		},
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			middleware.WriteJSONError(w, middleware.ErrorCodeInvalidRequest, err.Error(), http.StatusBadRequest)
		},
	})

	handler := withObservability(r, m, log)
	handler = chimw.RequestID(handler)

	return &http.Server{
		Addr:         config.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// routeAwareChiMiddleware applies auth middlewares based on matched chi route pattern.
// Routes in neither map get the defaults.
func routeAwareChiMiddleware(
	public map[string]bool,
	publicMiddlewares []api.MiddlewareFunc,
	specific map[string][]api.MiddlewareFunc,
	defaults []api.MiddlewareFunc,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			routeCtx := chi.RouteContext(r.Context())
			method := r.Method
			if method == http.MethodHead {
				method = http.MethodGet
			}
			pattern := ""
			if routeCtx != nil {
				pattern = method + " " + routeCtx.RoutePattern()
			}

			middlewares := defaults
			if public[pattern] {
				middlewares = publicMiddlewares
			} else if chain, ok := specific[pattern]; ok {
				middlewares = chain
			}

			handler := next
			for i := len(middlewares) - 1; i >= 0; i-- {
				handler = middlewares[i](handler)
			}
			handler.ServeHTTP(w, r)
		})
	}
}

// wrapMiddleware converts a standard middleware to oapi-codegen's MiddlewareFunc
func wrapMiddleware(mw func(http.Handler) http.Handler) api.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return mw(next)
	}
}

type traceKey struct{}

// requestTrace carries what inner middlewares learn back out to the request log.
type requestTrace struct {
	actor string
}

// traceActor copies the resolved actor into the request trace.
func traceActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if trace, ok := r.Context().Value(traceKey{}).(*requestTrace); ok {
			trace.actor = middleware.ActorFromContext(r.Context()).Username
		}
		next.ServeHTTP(w, r)
	})
}

// withObservability adds request logging and metrics. It hands chi a
// route context up front so the matched pattern is readable afterwards.
func withObservability(handler http.Handler, m *metrics.Metrics, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		trace := &requestTrace{}
		routeCtx := chi.NewRouteContext()
		ctx := context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx)
		ctx = context.WithValue(ctx, traceKey{}, trace)

		// Use chi's response writer wrapper to capture status code and bytes written
		wrr := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		handler.ServeHTTP(wrr, r.WithContext(ctx))

		duration := time.Since(start)
		status := wrr.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.ObserveRequest(r.Method, routeCtx.RoutePattern(), status, duration)

		log.Info(r.Context(), "HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"actor", trace.actor,
		)
	})
}
