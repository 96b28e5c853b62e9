// Package web serves the browser dashboard.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/naka-gawa/github-dashboard/internal/chart"
	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

// Server renders dashboards for the users looked up through a Dashboard.
type Server struct {
	dashboard    *usecase.Dashboard
	defaultLogin string
	logger       *log.Logger
	router       chi.Router
}

// NewServer creates a Server. defaultLogin is shown on the landing page.
func NewServer(dashboard *usecase.Dashboard, defaultLogin string, logger *log.Logger) *Server {
	s := &Server{
		dashboard:    dashboard,
		defaultLogin: defaultLogin,
		logger:       logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Post("/search", s.handleSearch)
	r.Get("/users/{login}", s.handleProfile)
	r.Get("/users/{login}/charts/{kind}", s.handleChart)
	r.Get("/api/users/{login}", s.handleAPI)
	s.router = r

	return s
}

// Handler returns the HTTP handler of the dashboard.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving dashboard", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down dashboard")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "elapsed", time.Since(start).Round(time.Millisecond))
	})
}

func profilePath(login string) string {
	return "/users/" + url.PathEscape(login)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, profilePath(s.defaultLogin), http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// handleSearch redirects to the submitted user. An empty submission keeps the
// current user on screen and only shows a notice.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	login, err := usecase.ValidateLogin(r.PostFormValue("login"))
	if err != nil {
		current := r.PostFormValue("current")
		if current == "" {
			current = s.defaultLogin
		}
		s.writeProfile(w, r, current, err.Error())
		return
	}
	http.Redirect(w, r, profilePath(login), http.StatusSeeOther)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.writeProfile(w, r, chi.URLParam(r, "login"), "")
}

func (s *Server) writeProfile(w http.ResponseWriter, r *http.Request, login, notice string) {
	view := s.dashboard.Lookup(r.Context(), login)
	p, err := newPage(view, modesFrom(r.URL.Query()), notice)
	if err != nil {
		s.logger.Error("Failed to build page", "login", login, "err", err)
		http.Error(w, "failed to render charts", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusFor(view))
	if err := renderPage(w, p); err != nil {
		s.logger.Error("Failed to render page", "login", login, "err", err)
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	kind := chart.Kind(chi.URLParam(r, "kind"))
	if kind != chart.KindForks && kind != chart.KindStars && kind != chart.KindLanguages {
		http.NotFound(w, r)
		return
	}
	mode := kind.DefaultMode()
	if raw := r.URL.Query().Get("mode"); raw != "" {
		var err error
		if mode, err = chart.ParseMode(raw); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	view := s.dashboard.Lookup(r.Context(), chi.URLParam(r, "login"))
	if view.State != usecase.StateSucceeded {
		http.Error(w, view.Message, statusFor(view))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.Render(w, mode, seriesFor(kind, view)); err != nil {
		s.logger.Error("Failed to render chart", "kind", kind, "mode", mode, "err", err)
	}
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	view := s.dashboard.Lookup(r.Context(), chi.URLParam(r, "login"))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(view))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		s.logger.Error("Failed to encode view", "err", err)
	}
}

// statusFor maps a view to its HTTP status. A failed view without a login
// was rejected before any query and is the client's fault.
func statusFor(view usecase.View) int {
	switch view.State {
	case usecase.StateSucceeded:
		return http.StatusOK
	case usecase.StateNotFound:
		return http.StatusNotFound
	case usecase.StateFailed:
		if view.Login == "" {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
