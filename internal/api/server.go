// Package api exposes the HTTP surface of the service.
package api

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"snow-agent/internal/classify"
	"snow-agent/internal/models"

	"github.com/google/uuid"
	"github.com/ory/herodot"
)

const defaultTopK = 10

// Interfaces for dependency injection

type ChatOrchestrator interface {
	Chat(ctx context.Context, userQuery string, topK int, sessionID string) (models.ChatResponse, error)
}

type QuestionClassifier interface {
	Classify(ctx context.Context, question string) (string, error)
}

type AnnouncementGenerator interface {
	Generate(ctx context.Context, topic string) (string, error)
}

type Server struct {
	mux          *http.ServeMux
	orchestrator ChatOrchestrator
	classifier   QuestionClassifier
	announcer    AnnouncementGenerator
	writer       *herodot.JSONWriter
}

func NewServer(orchestrator ChatOrchestrator, classifier QuestionClassifier, announcer AnnouncementGenerator) *Server {
	s := &Server{
		mux:          http.NewServeMux(),
		orchestrator: orchestrator,
		classifier:   classifier,
		announcer:    announcer,
		writer:       herodot.NewJSONWriter(nil),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/", s.home)
	s.mux.HandleFunc("/health", s.healthCheck)
	s.mux.HandleFunc("/chat", s.handleChat)
	s.mux.HandleFunc("/classify", s.handleClassify)
	s.mux.HandleFunc("/announce", s.handleAnnounce)
}

// Handler returns the root handler with request logging attached.
func (s *Server) Handler() http.Handler {
	return loggingMiddleware(s.mux)
}

func (s *Server) Run(addr string) error {
	log.Printf("Server starting on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, `{"error": "Method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writer.WriteError(w, r, herodot.ErrBadRequest.WithReason("Invalid request body"))
		return
	}

	req.TopK = cmp.Or(req.TopK, defaultTopK)
	req.SessionID = cmp.Or(req.SessionID, uuid.New().String())

	resp, err := s.orchestrator.Chat(r.Context(), req.Message, req.TopK, req.SessionID)
	if err != nil {
		s.writer.WriteError(w, r, herodot.ErrInternalServerError.WithReason("Failed to answer question"))
		return
	}

	s.writer.Write(w, r, resp)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, `{"error": "Method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	var req models.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writer.WriteError(w, r, herodot.ErrBadRequest.WithReason("Invalid request body"))
		return
	}

	category, err := s.classifier.Classify(r.Context(), req.Question)
	if err != nil {
		// An out-of-set label is a hard failure, never a silent default.
		var unexpected *classify.UnexpectedCategoryError
		if errors.As(err, &unexpected) {
			s.writer.WriteError(w, r, herodot.ErrInternalServerError.WithReason(unexpected.Error()))
			return
		}
		s.writer.WriteError(w, r, herodot.ErrInternalServerError.WithReason("Failed to classify question"))
		return
	}

	s.writer.Write(w, r, &models.ClassifyResponse{Category: category})
}

func (s *Server) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, `{"error": "Method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	var req models.AnnounceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writer.WriteError(w, r, herodot.ErrBadRequest.WithReason("Invalid request body"))
		return
	}

	post, err := s.announcer.Generate(r.Context(), req.Topic)
	if err != nil {
		s.writer.WriteError(w, r, herodot.ErrInternalServerError.WithReason("Failed to generate announcement"))
		return
	}

	s.writer.Write(w, r, &models.AnnounceResponse{Post: post})
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, `{"error": "Method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	s.writer.Write(w, r, &models.HealthResponse{Status: "ok"})
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, `{"error": "Method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(homePage))
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.RequestURI, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
