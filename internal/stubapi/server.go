package stubapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/auditlens/auditlens/pkg/metrics"
	"github.com/auditlens/auditlens/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const gracefulShutdownTimeout = 5 * time.Second

// Server is a local stand-in for the analytics backend. It fabricates
// deterministic results so the client and dashboard can be exercised
// without a real engagement environment.
type Server struct {
	listener net.Listener
	store    *followUpStore
}

func New(listener net.Listener) *Server {
	return &Server{
		listener: listener,
		store:    newFollowUpStore(),
	}
}

// Handler exposes the stub's routes without the listener or the metrics
// registration, for tests that drive it through httptest.
func Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(bearerIdentity)
	handler := &serviceHandler{store: newFollowUpStore()}
	handler.Routes(router)
	return router
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("stub_api").Info("Initializing stub analytics server")

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("stub_api")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "PATCH", "POST", "HEAD", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			MaxAge:         300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
		bearerIdentity,
	)

	handler := &serviceHandler{store: s.store}
	handler.Routes(router)

	srv := &http.Server{Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("stub_api").Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.S().Named("stub_api").Infof("Listening on %s", s.listener.Addr())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
