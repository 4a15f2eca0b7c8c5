package router

import (
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashchan-dev/ashchan/internal/handler"
	"github.com/ashchan-dev/ashchan/internal/middleware"
	"github.com/ashchan-dev/ashchan/internal/middleware/metrics"
	"github.com/ashchan-dev/ashchan/internal/setup"
)

// New wires all routes. Board slugs come from a closed registry, so
// the {board} wildcard never reaches storage unvalidated.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chi_middleware.RealIP)
	r.Use(chi_middleware.Recoverer)
	r.Use(chi_middleware.Compress(5))
	r.Use(middleware.RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeaders("default-src 'self'; img-src 'self'; media-src 'self'; style-src 'self'"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	h := deps.Handler
	cfg := deps.Config

	r.Get("/health", handler.HealthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	fileServer(r, "/static", cfg.StaticDir)
	fileServer(r, "/uploads", cfg.UploadsDir)

	r.Get("/", h.LandingHandler)
	r.Get("/{board}", h.BoardGetHandler)
	r.Get("/{board}/page/{page}", h.BoardGetHandler)
	r.Post("/{board}/new", h.ThreadCreateHandler)
	r.Get("/{board}/thread/{id}", h.ThreadGetHandler)
	r.Post("/{board}/reply/{id}", h.ReplyCreateHandler)

	return r
}

// fileServer mounts a directory under prefix with listings disabled.
func fileServer(r chi.Router, prefix, dir string) {
	srv := http.StripPrefix(prefix, http.FileServer(neuteredDir(filepath.Clean(dir))))
	r.Get(prefix+"/*", srv.ServeHTTP)
}

type neuteredDir string

func (d neuteredDir) Open(name string) (http.File, error) {
	f, err := http.Dir(d).Open(name)
	if err != nil {
		return nil, err
	}
	if info, err := f.Stat(); err == nil && info.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
