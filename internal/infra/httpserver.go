package infra

import (
	"context"
	"net/http"
	"time"
)

// HTTPServer owns the api listener lifecycle so main can keep startup and
// shutdown symmetric.
type HTTPServer struct {
	srv *http.Server
}

// NewHTTPServer builds the listener from config timeouts. The header read
// timeout is fixed; slow-header clients get cut off regardless of how
// generous the body timeouts are.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	return &HTTPServer{srv: &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		MaxHeaderBytes:    1 << 20,
	}}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *HTTPServer) Start() error {
	if s.srv == nil {
		return nil
	}
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
