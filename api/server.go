package api

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"weather-widget/controller"
	"weather-widget/view"
)

// SessionCookie names the cookie carrying the session id
const SessionCookie = "ww_session"

//go:embed templates/widget.html
var templateFS embed.FS

var widgetTemplate = template.Must(template.ParseFS(templateFS, "templates/widget.html"))

// Server represents the widget HTTP server
type Server struct {
	sessions *SessionStore
	renderer *view.Renderer
	router   chi.Router
	server   *http.Server
	log      *zap.SugaredLogger
}

// NewServer creates a new widget server
func NewServer(sessions *SessionStore, renderer *view.Renderer, port int, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	s := &Server{
		sessions: sessions,
		renderer: renderer,
		router:   chi.NewRouter(),
		log:      log,
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.router.Use(requestID)
	s.router.Use(requestLogger(log))
	s.router.Use(middleware.Recoverer)

	// Browser form flow
	s.router.Get("/", s.handleIndex)
	s.router.Post("/search", s.handleSearchForm)
	s.router.Post("/units", s.handleUnitsForm)

	// JSON API
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleGetState)
		r.Post("/search", s.handleSearch)
		r.Post("/units", s.handleToggleUnits)
		r.Get("/health", s.handleHealthCheck)
	})

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins the HTTP server. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.log.Infow("Starting widget server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// session finds the caller's controller, starting a session when needed
func (s *Server) session(w http.ResponseWriter, r *http.Request) *controller.Controller {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if ctrl, ok := s.sessions.Get(cookie.Value); ok {
			return ctrl
		}
	}

	id, ctrl := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.log.Debugw("session started", "session", id)
	return ctrl
}

// fetchContext detaches the lookup from the request so a closed browser tab
// does not surface as a lookup failure
func fetchContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// handleIndex renders the widget page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	model := s.renderer.Render(ctrl.State())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := widgetTemplate.Execute(w, model); err != nil {
		s.log.Errorw("error rendering widget", "error", err)
	}
}

// handleSearchForm handles the search form and redirects back to the page
func (s *Server) handleSearchForm(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	ctrl.Submit(fetchContext(r), r.PostFormValue("city"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleUnitsForm handles the unit toggle button
func (s *Server) handleUnitsForm(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	ctrl.ToggleUnits(fetchContext(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleGetState returns the current view model
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	s.writeJSON(w, http.StatusOK, s.renderer.Render(ctrl.State()))
}

// handleSearch runs a search from a JSON body {"city": "..."}
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)

	var body struct {
		City string `json:"city"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("Invalid request body: %v", err),
		})
		return
	}

	state := ctrl.Submit(fetchContext(r), body.City)
	s.writeJSON(w, http.StatusOK, s.renderer.Render(state))
}

// handleToggleUnits flips the unit system of the session
func (s *Server) handleToggleUnits(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	state := ctrl.ToggleUnits(fetchContext(r))
	s.writeJSON(w, http.StatusOK, s.renderer.Render(state))
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"sessions":  s.sessions.Len(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warnw("error encoding response", "error", err)
	}
}
