// Package httpapi exposes the chat and analysis operations over HTTP.
//
// The caller identity is taken from the X-User-ID header; authentication
// itself is delegated to whatever sits in front of this service.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nbelkacem/gestia/internal/analysis"
	"github.com/nbelkacem/gestia/internal/chat"
	"github.com/nbelkacem/gestia/internal/llm"
	"github.com/nbelkacem/gestia/internal/service"
)

type apiError struct {
	Error string `json:"error"`
}

// Server wires the HTTP handlers over the chat responder and the analysis
// pipeline.
type Server struct {
	mux       *http.ServeMux
	responder *chat.Responder
	projects  service.ProjectService
	pipeline  *analysis.Pipeline
	client    llm.Client
	logger    *slog.Logger
}

// NewServer creates the server and registers its routes on mux.
func NewServer(mux *http.ServeMux, responder *chat.Responder, projects service.ProjectService, pipeline *analysis.Pipeline, client llm.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		mux:       mux,
		responder: responder,
		projects:  projects,
		pipeline:  pipeline,
		client:    client,
		logger:    logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /api/chat", s.handleChat)
	s.mux.HandleFunc("POST /api/projects/{id}/analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr sends a generic message to the client; detail stays in the log.
func (s *Server) writeErr(w http.ResponseWriter, code int, msg string, detail error) {
	if detail != nil {
		s.logger.Error("http error", "status", code, "message", msg, "detail", detail)
	}
	s.writeJSON(w, code, apiError{Error: msg})
}

func callerID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

type chatRequest struct {
	Message string      `json:"message"`
	Context []chat.Turn `json:"context"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		s.writeErr(w, http.StatusUnauthorized, "missing user identity", nil)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErr(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Message == "" {
		s.writeErr(w, http.StatusBadRequest, "message is required", nil)
		return
	}

	reply := s.responder.Respond(r.Context(), userID, req.Message, req.Context)
	s.writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

type analyzeResponse struct {
	Activities   int  `json:"activities"`
	Tasks        int  `json:"tasks"`
	UsedFallback bool `json:"used_fallback"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)
	if userID == "" {
		s.writeErr(w, http.StatusUnauthorized, "missing user identity", nil)
		return
	}
	projectID := r.PathValue("id")

	owns, err := s.projects.IsOwner(r.Context(), projectID, userID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			s.writeErr(w, http.StatusNotFound, "project not found", nil)
			return
		}
		s.writeErr(w, http.StatusInternalServerError, "internal error", err)
		return
	}
	if !owns {
		s.writeErr(w, http.StatusForbidden, "forbidden", nil)
		return
	}

	snap, err := s.projects.Snapshot(r.Context(), projectID)
	if err != nil {
		s.writeErr(w, http.StatusInternalServerError, "internal error", err)
		return
	}

	result := s.pipeline.Analyze(r.Context(), snap, snap.Progress(), analysis.ModeFullProject)
	stats, err := s.projects.Materialize(r.Context(), projectID, result.Breakdown)
	if err != nil {
		s.writeErr(w, http.StatusInternalServerError, "internal error", err)
		return
	}

	s.writeJSON(w, http.StatusOK, analyzeResponse{
		Activities:   stats.Activities,
		Tasks:        stats.Tasks,
		UsedFallback: result.UsedFallback,
	})
}

// handleHealth reports liveness; with ?llm=1 it also probes the model
// endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if r.URL.Query().Get("llm") == "1" {
		if err := s.client.Probe(r.Context()); err != nil {
			status["status"] = "degraded"
			status["llm"] = llm.ErrorKind(err)
			s.writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["llm"] = "ok"
	}
	s.writeJSON(w, http.StatusOK, status)
}
