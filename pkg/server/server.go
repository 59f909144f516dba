package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/clickaway/pkg/dom"
)

// Server accepts WebSocket connections from the thin client and mounts one
// Session per connection.
type Server struct {
	config   *Config
	app      AppFunc
	upgrader websocket.Upgrader
	metrics  *metrics
	docOpts  []dom.Option
	logger   *slog.Logger

	httpServer *http.Server
}

// New creates a server for app. A nil config uses DefaultConfig.
func New(config *Config, app AppFunc) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	config.applyDefaults()

	return &Server{
		config: config,
		app:    app,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		metrics: newMetrics(config.Registry),
		docOpts: []dom.Option{
			dom.WithMetrics(dom.NewMetrics(dom.MetricsConfig{Registry: config.Registry})),
		},
		logger: config.Logger,
	}
}

// Handler returns the HTTP handler with the events endpoint and, when
// configured, the metrics endpoint mounted on a chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get(s.config.EventsPath, s.HandleWebSocket)
	if s.config.MetricsPath != "" {
		r.Method(http.MethodGet, s.config.MetricsPath,
			promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// HandleWebSocket upgrades the request and serves the connection until it
// closes.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		s.metrics.wsErrors.WithLabelValues("upgrade").Inc()
		return
	}
	s.serveConn(r.Context(), conn)
}

// Run starts the server and blocks until SIGINT/SIGTERM or a listen error.
func (s *Server) Run() error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    s.config.Address,
		Handler: s.Handler(),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
