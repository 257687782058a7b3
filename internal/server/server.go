// Package server provides the HTTP server and handlers.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/bryan-buckman/onair/internal/model"
	"github.com/bryan-buckman/onair/internal/playlist"
	"github.com/bryan-buckman/onair/internal/view"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the main HTTP server.
type Server struct {
	ctrl      *view.Controller
	loc       *time.Location
	router    chi.Router
	templates *template.Template
}

// New creates a new server.
func New(ctrl *view.Controller, loc *time.Location) (*Server, error) {
	if loc == nil {
		loc = time.Local
	}
	s := &Server{ctrl: ctrl, loc: loc}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"ago":      s.ago,
		"showTime": func(start string) string { return playlist.ShowTime(start, s.loc) },
		"songs":    playlist.Songs,
		"pct":      playlist.RoundPercent,
		"deref":    deref,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.templates = tmpl
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Serve static files.
	staticSub, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
	r.Handle("/metrics", promhttp.Handler())

	// Pages.
	r.Get("/", s.handleHome)
	r.Route("/select", func(r chi.Router) {
		r.Post("/decade", s.handleSelectDecade)
		r.Post("/show", s.handleSelectShow)
		r.Post("/host", s.handleSelectHost)
		r.Post("/clear", s.handleClear)
	})

	// API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/view", s.handleGetView)
		r.Get("/shows", s.handleGetShows)
		r.Post("/selection", s.handleSetSelection)
	})

	s.router = r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start loads the playlist in the background and serves until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.ctrl.Start(ctx)

	srv := &http.Server{Addr: addr, Handler: s.router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on %s", addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// --- Page Handlers ---

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "layout.html", s.ctrl.Snapshot())
}

func (s *Server) handleSelectDecade(w http.ResponseWriter, r *http.Request) {
	s.selectField(w, r, func(value string) bool {
		if value == "" {
			s.ctrl.ClearDecade()
			return true
		}
		if _, ok := playlist.ParseDecadeLabel(value); !ok {
			return false
		}
		s.ctrl.SelectDecade(value)
		return true
	})
}

func (s *Server) handleSelectShow(w http.ResponseWriter, r *http.Request) {
	s.selectField(w, r, func(value string) bool {
		if value == "" {
			s.ctrl.ClearShow()
		} else {
			s.ctrl.SelectShow(value)
		}
		return true
	})
}

func (s *Server) handleSelectHost(w http.ResponseWriter, r *http.Request) {
	s.selectField(w, r, func(value string) bool {
		if value == "" {
			s.ctrl.ClearHost()
		} else {
			s.ctrl.SelectHost(value)
		}
		return true
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w) {
		return
	}
	s.ctrl.ClearAll()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// selectField applies the form's "value" and redirects home. apply reports
// false for a value it rejects.
func (s *Server) selectField(w http.ResponseWriter, r *http.Request, apply func(value string) bool) {
	if !s.ready(w) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !apply(r.PostForm.Get("value")) {
		http.Error(w, "Invalid selection", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// --- API Handlers ---

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

func (s *Server) handleGetShows(w http.ResponseWriter, r *http.Request) {
	shows := s.ctrl.Shows()
	if shows == nil {
		shows = []model.Show{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": s.ctrl.Status(),
		"shows":  shows,
	})
}

func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w) {
		return
	}
	var req model.Selection
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Decade != nil {
		if _, ok := playlist.ParseDecadeLabel(*req.Decade); !ok {
			http.Error(w, "Invalid decade", http.StatusBadRequest)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.ctrl.Replace(req))
}

// --- Helpers ---

func (s *Server) ready(w http.ResponseWriter) bool {
	if st := s.ctrl.Status(); st != model.StatusReady {
		http.Error(w, fmt.Sprintf("Playlist is %s", st), http.StatusConflict)
		return false
	}
	return true
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Render error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Encode error: %v", err)
	}
}

// ago renders an airdate relative to now, e.g. "12 minutes ago".
func (s *Server) ago(airdate string) string {
	t, ok := playlist.ParseDate(airdate, s.loc)
	if !ok {
		return ""
	}
	return humanize.Time(t)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
