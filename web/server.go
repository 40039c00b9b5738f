package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/boxoffice/counter"
	"github.com/s0up4200/boxoffice/kobis"
	"github.com/s0up4200/boxoffice/movie"
)

// Pages defines the page data loaders the server renders
type Pages interface {
	List(ctx context.Context) ([]movie.MovieSummary, error)
	Detail(ctx context.Context, code string) (*movie.MovieDetail, error)
}

var _ Pages = (*movie.Loader)(nil)

// Server renders the movie pages and their JSON page data
type Server struct {
	pages       Pages
	count       *counter.Subject
	logger      zerolog.Logger
	tpl         map[string]*template.Template
	mux         *http.ServeMux
	handler     http.Handler
	shown       atomic.Int64
	unsubscribe func()
}

// NewServer creates the HTTP handler. The server subscribes to count and
// renders the last value it received; call Close to drop the subscription.
func NewServer(pages Pages, count *counter.Subject, logger zerolog.Logger) *Server {
	s := &Server{
		pages:  pages,
		count:  count,
		logger: logger,
		tpl:    parseTemplates(),
		mux:    http.NewServeMux(),
	}

	s.unsubscribe = count.Subscribe(func(v int) {
		s.shown.Store(int64(v))
	})

	s.mux.HandleFunc("GET /{$}", s.handleList)
	s.mux.HandleFunc("GET /movie/{id}", s.handleDetail)
	s.mux.HandleFunc("GET /api/movies", s.handleAPIList)
	s.mux.HandleFunc("GET /api/movies/{id}", s.handleAPIDetail)
	s.mux.HandleFunc("GET /api/counter", s.handleGetCounter)
	s.mux.HandleFunc("POST /api/counter", s.handleSetCounter)
	s.mux.HandleFunc("POST /counter/increment", s.handleStep(1))
	s.mux.HandleFunc("POST /counter/decrement", s.handleStep(-1))
	s.mux.Handle("GET /health", HealthHandler())

	s.handler = requestLogger(logger, s.mux)
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close removes the counter subscription
func (s *Server) Close() {
	s.unsubscribe()
}

// loadContext detaches a load from the request so an abandoned navigation
// does not cancel the provider call; its result is simply discarded.
func loadContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	movies, err := s.pages.List(loadContext(r))
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.render(w, http.StatusOK, "list", listPage{Data: movies, Count: s.shownCount()})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.pages.Detail(loadContext(r), r.PathValue("id"))
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.render(w, http.StatusOK, "detail", detailPage{Data: detail, Count: s.shownCount()})
}

func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	movies, err := s.pages.List(loadContext(r))
	if err != nil {
		s.writeJSONError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": movies})
}

func (s *Server) handleAPIDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.pages.Detail(loadContext(r), r.PathValue("id"))
	if err != nil {
		s.writeJSONError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": detail})
}

func (s *Server) handleGetCounter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"count": s.count.Value()})
}

func (s *Server) handleSetCounter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Count *int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Count == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expected {\"count\": <int>}"})
		return
	}

	s.count.Publish(*body.Count)
	writeJSON(w, http.StatusOK, map[string]int{"count": s.shownCount()})
}

func (s *Server) handleStep(delta int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.count.Update(func(v int) int { return v + delta })

		http.Redirect(w, r, backTarget(r), http.StatusSeeOther)
	}
}

// backTarget returns the local page the request came from, or "/"
func backTarget(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

func (s *Server) shownCount() int {
	return int(s.shown.Load())
}

// lookupStatus maps a load error to the status and message shown to users
func lookupStatus(err error) (int, string) {
	var ke *kobis.Error
	if errors.As(err, &ke) {
		return ke.StatusCode(), ke.PublicMessage()
	}
	if errors.Is(err, kobis.ErrNotFound) {
		return http.StatusNotFound, kobis.ErrNotFound.Error()
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	status, msg := lookupStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("Page load failed")
	}
	s.render(w, status, "error", errorPage{Status: status, Message: msg, Count: s.shownCount()})
}

func (s *Server) writeJSONError(w http.ResponseWriter, err error) {
	status, msg := lookupStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("Page data load failed")
	}
	writeJSON(w, status, map[string]any{"status": status, "message": msg})
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tpl[name].Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("Failed to render page")
		httpError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}

// statusRecorder captures the status written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}
