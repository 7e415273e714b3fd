package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/translations"
)

// Server exposes a translations engine over HTTP.
type Server struct {
	tr           *translations.Translations
	router       chi.Router
	log          *slog.Logger
	checks       Checks
	checkTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCheck adds a named dependency check to /healthz.
func WithCheck(name string, fn CheckFunc) Option {
	return func(s *Server) {
		if fn != nil {
			s.checks[name] = fn
		}
	}
}

// WithCheckTimeout bounds the whole /healthz run (default 5s).
func WithCheckTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.checkTimeout = d
		}
	}
}

// New builds the HTTP API:
//
//	GET /livez                          liveness
//	GET /healthz                        readiness with dependency checks
//	GET /locales                        registered locales and the active one
//	GET /locales/{locale}/{namespace}   flattened namespace, loaded on demand
//	GET /namespaces/{namespace}         same, locale from Accept-Language
//	GET /t/{key}                        translate with the active locale
func New(tr *translations.Translations, opts ...Option) *Server {
	s := &Server{
		tr:           tr,
		log:          slog.Default(),
		checks:       make(Checks),
		checkTimeout: defaultCheckTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(RequestID, s.recoverer)

	r.Get("/livez", s.livez)
	r.Get("/healthz", s.healthz)
	r.Get("/locales", s.listLocales)
	r.Get("/locales/{locale}/{namespace}", s.getNamespace)
	r.Get("/namespaces/{namespace}", s.getNegotiatedNamespace)
	r.Get("/t/*", s.translate)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
