// Package web hosts a calculator session as an HTML page plus a small JSON
// API. The page regions map one-to-one onto the calculator widgets.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/provide-io/erlc/pkg/calculator"
	"github.com/provide-io/erlc/pkg/hub"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server serializes every request onto one calculator session. Each request
// is one UI event and runs to completion before the next starts.
type Server struct {
	mu       sync.Mutex
	calc     *calculator.Calculator
	last     *hub.Event
	router   *mux.Router
	metrics  *metrics
	gatherer prometheus.Gatherer
	logger   hclog.Logger
}

// NewServer wraps calc. Metrics go to a private prometheus registry.
func NewServer(calc *calculator.Calculator, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	promReg := prometheus.NewRegistry()

	s := &Server{
		calc:     calc,
		metrics:  newMetrics(promReg),
		gatherer: promReg,
		logger:   logger.Named("web"),
	}
	s.metrics.selected.Set(float64(calc.Hub().Selected()))
	calc.Hub().Watch(func(ev hub.Event) {
		s.last = &ev
		s.metrics.observe(ev)
	})

	r := mux.NewRouter()
	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// API routes live on the root router; mux only answers 405 there.
	r.HandleFunc("/api/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/api/versions", s.handleVersions).Methods(http.MethodGet)
	r.HandleFunc("/api/version", s.handleVersion).Methods(http.MethodPost)
	r.HandleFunc("/api/toggle", s.handleToggle).Methods(http.MethodPost)
	r.HandleFunc("/api/level", s.handleLevel).Methods(http.MethodPost)
	r.HandleFunc("/api/expression", s.handleExpression).Methods(http.MethodPost)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.writeError(w, req, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed on %s", req.Method, req.URL.Path))
	})
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// errorResponse is the body of every non-2xx API reply.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "path", r.URL.Path, "error", err)
	}
	route := r.URL.Path
	if cur := mux.CurrentRoute(r); cur != nil {
		if tpl, err := cur.GetPathTemplate(); err == nil {
			route = tpl
		}
	}
	s.metrics.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Debug("request failed", "path", r.URL.Path, "status", status, "error", err)
	s.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func (s *Server) decode(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}
