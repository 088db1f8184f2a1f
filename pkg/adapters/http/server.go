// Package http exposes the engine over a JSON/HTTP surface: document
// registration, session trees, and action execution. It is a thin
// adapter; all semantics live in the core packages.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/scalsui/scals"
	"github.com/scalsui/scals/pkg/action"
	"github.com/scalsui/scals/pkg/document"
)

// Server holds the live state of the HTTP surface: registered documents
// and open sessions.
type Server struct {
	engine *scals.Engine
	logger *slog.Logger

	mu       sync.RWMutex
	docs     map[string]*document.Definition
	sessions map[string]*scals.Session
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request-handling logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDocuments preloads parsed documents, so a server can start with a
// fixed catalog instead of waiting for registrations.
func WithDocuments(defs ...*document.Definition) Option {
	return func(s *Server) {
		for _, def := range defs {
			if def != nil {
				s.docs[def.ID] = def
			}
		}
	}
}

// NewHandler creates the HTTP handler for an engine.
func NewHandler(engine *scals.Engine, opts ...Option) http.Handler {
	server := &Server{
		engine:   engine,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		docs:     make(map[string]*document.Definition),
		sessions: make(map[string]*scals.Session),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.getHealth)
	r.Get("/info", server.getInfo)
	r.Post("/documents", server.putDocument)
	r.Get("/documents", server.listDocuments)
	r.Post("/sessions", server.createSession)
	r.Get("/sessions/{sessionID}/tree", server.getTree)
	r.Post("/sessions/{sessionID}/actions", server.postAction)
	r.Delete("/sessions/{sessionID}", server.deleteSession)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "scals-http",
		"version": scals.Version,
	})
}

// putDocument parses, validates and registers a document. Validation is
// strict: a document with a single unresolvable action is rejected whole.
func (s *Server) putDocument(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	def, err := s.engine.Parse(raw)
	if err != nil {
		s.logger.Warn("document rejected", "err", err)
		http.Error(w, fmt.Sprintf("Invalid document: %v", err), http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	s.docs[def.ID] = def
	s.mu.Unlock()

	s.logger.Info("document registered", "document", def.ID, "version", def.Version)
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      def.ID,
		"version": def.Version,
	})
}

func (s *Server) listDocuments(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"documents": ids})
}

type createSessionRequest struct {
	SessionID  string `json:"sessionId"`
	DocumentID string `json:"documentId"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.SessionID == "" || body.DocumentID == "" {
		http.Error(w, "sessionId and documentId are required", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	def, ok := s.docs[body.DocumentID]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown document %q", body.DocumentID), http.StatusNotFound)
		return
	}

	session, err := s.engine.NewSession(r.Context(), body.SessionID, def)
	if err != nil {
		s.logger.Error("session creation failed", "session", body.SessionID, "err", err)
		http.Error(w, fmt.Sprintf("Session error: %v", err), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.sessions[body.SessionID] = session
	s.mu.Unlock()

	tree := session.Tree()
	if err := session.Appear(r.Context(), tree); err != nil {
		s.logger.Warn("onAppear failed", "session", body.SessionID, "err", err)
	}

	writeJSON(w, http.StatusCreated, session.Tree())
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*scals.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown session %q", id), http.StatusNotFound)
		return nil, false
	}
	return session, true
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Tree())
}

// actionRequest selects what to run, in precedence order: an inline
// action, a named document action, or a node event.
type actionRequest struct {
	NodeID   string           `json:"nodeId"`
	Event    string           `json:"event"`
	ActionID string           `json:"actionId"`
	Action   *document.Action `json:"action"`
}

// postAction executes an action against the session and responds with the
// re-resolved tree, so clients render the post-action state in one round
// trip.
func (s *Server) postAction(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var body actionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	switch {
	case body.Action != nil:
		s.runAction(w, r, session, *body.Action)
	case body.ActionID != "":
		named, ok := session.Document().Actions[body.ActionID]
		if !ok {
			http.Error(w, fmt.Sprintf("Unknown action %q", body.ActionID), http.StatusNotFound)
			return
		}
		s.runAction(w, r, session, named)
	case body.NodeID != "":
		if body.Event == "" {
			body.Event = "onTap"
		}
		if err := session.Execute(r.Context(), session.Tree(), body.NodeID, body.Event); err != nil {
			if errors.Is(err, scals.ErrNoInteraction) {
				http.Error(w, fmt.Sprintf("No action: %v", err), http.StatusNotFound)
				return
			}
			s.logger.Error("action failed", "session", session.ID, "node", body.NodeID, "event", body.Event, "err", err)
			http.Error(w, fmt.Sprintf("Action error: %v", err), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, session.Tree())
	default:
		http.Error(w, "Request needs an action, actionId or nodeId", http.StatusBadRequest)
	}
}

func (s *Server) runAction(w http.ResponseWriter, r *http.Request, session *scals.Session, a document.Action) {
	if err := session.Run(r.Context(), a); err != nil {
		var resErr *action.ResolutionError
		if errors.As(err, &resErr) {
			http.Error(w, fmt.Sprintf("Invalid action: %v", err), http.StatusUnprocessableEntity)
			return
		}
		s.logger.Error("action failed", "session", session.ID, "kind", a.Type, "err", err)
		http.Error(w, fmt.Sprintf("Action error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, session.Tree())
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	if err := session.Disappear(r.Context(), session.Tree()); err != nil {
		s.logger.Warn("onDisappear failed", "session", session.ID, "err", err)
	}

	s.mu.Lock()
	delete(s.sessions, session.ID)
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
