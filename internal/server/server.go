// Package server exposes the build service over HTTP: a health probe, a JSON
// compile endpoint and a websocket endpoint for editors that rebuild on every
// change.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/blueprintgo/internal/build"
	"github.com/specialistvlad/blueprintgo/internal/compiler"
	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/diag"
	"github.com/specialistvlad/blueprintgo/internal/model"
)

// maxRequestBytes bounds the size of one compile request.
const maxRequestBytes = 8 << 20

// Request is the body of POST /compile and of websocket build messages.
type Request struct {
	Graph   json.RawMessage  `json:"graph"`
	Options compiler.Options `json:"options"`
}

// ErrorResponse carries a failed compilation.
type ErrorResponse struct {
	Error diag.Diagnostic `json:"error"`
}

// Server routes HTTP requests to a build service.
type Server struct {
	build  *build.Service
	logger *slog.Logger
	http   *http.Server
}

// New creates a server.
func New(svc *build.Service, logger *slog.Logger) *Server {
	s := &Server{build: svc, logger: logger}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/compile", s.handleCompile)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Build server starting.", "address", ln.Addr().String())
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down build server...")
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := ctxlog.WithLogger(r.Context(), s.logger)

	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: diag.FromError(fmt.Errorf("invalid request body: %w", err))})
		return
	}

	res, err := s.compile(ctx, req)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, model.ErrParse) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, ErrorResponse{Error: diag.FromError(err)})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) compile(ctx context.Context, req Request) (*compiler.Result, error) {
	if len(req.Graph) == 0 {
		return nil, &model.ParseError{Source: "request", Err: errors.New("graph is required")}
	}
	return s.build.CompileJSON(ctx, req.Graph, req.Options)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
