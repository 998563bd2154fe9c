// Package telemetry wires an optional, off-by-default diagnostics HTTP
// server exposing Prometheus metrics and Go's pprof profiles, following
// service/core.go's shape (mux router setup, a private prometheus
// registry plus the Go collector, debug/pprof subrouter, zap-backed
// logging). It is deliberately not part of the engine's public API
// surface — there is no wire format, no CLI, no persistent state here —
// nothing in circuit/trace depends on it, runtime only uses its
// RuntimeMetrics counters when a caller supplies them, and a program
// embedding this module is free to never start the server.
package telemetry

import (
	"context"
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is a loopback-only HTTP endpoint serving /metrics and
// /debug/pprof/*. Callers register their own collectors against Registry
// before calling Start.
type Server struct {
	log      *zap.Logger
	registry *prometheus.Registry
	router   *mux.Router
	httpSrv  *http.Server
}

// New builds a Server with a private registry (pre-registered with the Go
// runtime collector, the same default NewCore establishes) and the
// metrics/pprof routes wired in. It does not start listening until Start
// is called.
func New(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	debug := router.PathPrefix("/debug/pprof").Subrouter()
	debug.HandleFunc("/cmdline", pprof.Cmdline)
	debug.HandleFunc("/profile", pprof.Profile)
	debug.HandleFunc("/symbol", pprof.Symbol)
	debug.HandleFunc("/trace", pprof.Trace)
	debug.PathPrefix("/").HandlerFunc(pprof.Index)

	return &Server{
		log:      log.Named("telemetry"),
		registry: registry,
		router:   router,
	}
}

// Registry exposes the private prometheus.Registry so callers (e.g. a
// runtime.Runtime hosting per-worker gauges) can register their own
// collectors before Start.
func (s *Server) Registry() *prometheus.Registry { return s.registry }

// Start binds addr (loopback only — callers should pass "127.0.0.1:port"
// or "localhost:0", never a wildcard address, since this surface is
// diagnostics-only and was never meant to be reachable off-box) and
// serves until Shutdown is called. Returns the actual listening address,
// useful when addr's port is 0.
func (s *Server) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}
	s.httpSrv = &http.Server{Handler: s.router}
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("telemetry server exited", zap.Error(err))
		}
	}()
	s.log.Info("telemetry server listening", zap.String("addr", ln.Addr().String()))
	return ln.Addr().String(), nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
