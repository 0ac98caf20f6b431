// Package server provides the tool dispatch table and the HTTP and MCP
// surfaces that expose it.
package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Config contains server configuration values: listen port, optional auth
// token, and the backend base URL per collection.
type Config struct {
	Port         string
	Token        string
	MovieAPIBase string
	TaskAPIBase  string
}

// Server contains the configured router and dispatcher for the HTTP surface.
type Server struct {
	cfg        Config
	router     *chi.Mux
	dispatcher *Dispatcher
	log        *logrus.Logger
}

// New constructs a Server with middleware and routes configured.
func New(cfg Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{
		cfg:        cfg,
		router:     chi.NewRouter(),
		dispatcher: NewDispatcher(cfg.MovieAPIBase, cfg.TaskAPIBase, log),
		log:        log,
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/mcp", func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/tools", s.handleListTools)
		r.Post("/call", s.handleCall)
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"tools": s.dispatcher.Tools()})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	var req CallRequest
	if err := sonic.Unmarshal(raw, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	text, err := s.dispatcher.Call(r.Context(), req.Name, req.Args)
	if err != nil {
		if errors.Is(err, errUnknownTool) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, http.StatusOK, CallResponse{Result: text})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	raw, err := sonic.Marshal(v)
	if err != nil {
		s.log.WithError(err).Error("encode response")
		http.Error(w, "encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}
