// Package server exposes the format catalog and the renderer over HTTP.
//
// Routes:
//
//	GET  /health            build info and status
//	GET  /formats           every catalog format with its token and description
//	GET  /formats/{name}    one format
//	POST /render?format=png&layout=dot
//	                        body: DOT source, response: rendered bytes
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gvexport/pkg/format"
	"github.com/matzehuels/gvexport/pkg/render"
)

// MaxBodyBytes limits the size of DOT documents accepted by /render.
const MaxBodyBytes = 10 << 20

const (
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// NewRouter builds the HTTP handler. defaultFormat is used by /render when
// the request names no format.
func NewRouter(r *render.Renderer, defaultFormat format.Format, logger *log.Logger) http.Handler {
	h := &handler{renderer: r, defaultFormat: defaultFormat, logger: logger}

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.RequestID)
	router.Use(requestLogger(logger))
	router.Use(chimiddleware.Timeout(requestTimeout))

	router.Get("/health", h.health)
	router.Route("/formats", func(fr chi.Router) {
		fr.Get("/", h.listFormats)
		fr.Get("/{name}", h.getFormat)
	})
	router.Post("/render", h.render)

	return router
}

// Run serves handler on addr until ctx is canceled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
