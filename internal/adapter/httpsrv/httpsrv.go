package httpsrv

import (
	"context"
	"errors"
	"net/http"
	"time"
)

type Server struct {
	srv    *http.Server
	router *http.ServeMux
}

type ServerOptions struct {
	MetricsHandler http.Handler
	MetricsPath    string
	// HostsHandler is served on /hosts when set.
	HostsHandler http.Handler
	// Ready gates /health, typically on the first finished scan.
	Ready func() bool
}

func NewServer(addr string, opts ServerOptions) *Server {
	router := http.NewServeMux()

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	router.Handle("/health", healthHandler(opts.Ready))
	router.Handle(opts.MetricsPath, opts.MetricsHandler)

	if opts.HostsHandler != nil {
		router.Handle("GET /hosts", opts.HostsHandler)
	}

	return &Server{
		srv:    srv,
		router: router,
	}
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAddr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	err := s.srv.ListenAndServe()

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
