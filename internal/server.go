package internal

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kazz187/taskmarket/internal/config"
	"github.com/kazz187/taskmarket/internal/rpc"
	"github.com/kazz187/taskmarket/internal/session"
	"github.com/kazz187/taskmarket/internal/task"
	"github.com/kazz187/taskmarket/internal/user"
	"github.com/kazz187/taskmarket/pkg/cerr"
	"github.com/kazz187/taskmarket/pkg/clog"
)

type Server struct {
	server        *http.Server
	env           *config.Env
	taskServer    *task.Server
	browseHandler *task.BrowseHandler
	sessionServer *session.Server
	sessions      *session.Manager
	users         user.Repository
}

func NewServer(
	env *config.Env,
	taskServer *task.Server,
	browseHandler *task.BrowseHandler,
	sessionServer *session.Server,
	sessions *session.Manager,
	users user.Repository,
) *Server {
	return &Server{
		env:           env,
		taskServer:    taskServer,
		browseHandler: browseHandler,
		sessionServer: sessionServer,
		sessions:      sessions,
		users:         users,
	}
}

// Handler builds the full HTTP handler: the chi JSON API under /api, the
// Connect services, health checks and CORS.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(
			clog.SlogChiMiddleware(),
			cerr.NewConvertErrorChiMiddleware(),
		)
		s.browseHandler.Routes(r)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			cerr.SetNewJSONError(r.Context(), cerr.NotFound, "not found", nil)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			cerr.SetNewJSONError(r.Context(), cerr.Unimplemented, "method not allowed", nil)
		})
	})

	mux := http.NewServeMux()

	mux.Handle("/health", &HealthChecker{})
	mux.Handle("/api/", r)
	mux.Handle(grpchealth.NewHandler(grpchealth.NewStaticChecker(rpc.TaskServiceName, rpc.UserServiceName)))

	handlerOpts := connect.WithInterceptors(s.interceptors()...)

	mux.Handle(rpc.NewTaskServiceHandler(s.taskServer, handlerOpts))
	mux.Handle(rpc.NewUserServiceHandler(s.sessionServer, handlerOpts))

	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(mux)
}

// ListenAndServe starts the HTTP server. ctx becomes the base context of
// every request.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(s.env.HTTPHost, s.env.HTTPPort)
	slog.Info("starting server", "addr", addr)

	s.server = &http.Server{
		Addr:        addr,
		Handler:     h2c.NewHandler(s.Handler(), &http2.Server{}),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

type HealthChecker struct{}

func (hc *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) interceptors() []connect.Interceptor {
	return []connect.Interceptor{
		clog.NewSlogConnectInterceptor(clog.SkipProcedures(clog.IsHealthCheck)),
		cerr.NewConvertConnectErrorInterceptor(),
		session.NewInterceptor(s.sessions, s.users),
	}
}
