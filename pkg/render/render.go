package render

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gvexport/pkg/cache"
	"github.com/matzehuels/gvexport/pkg/errors"
	"github.com/matzehuels/gvexport/pkg/format"
)

// Backend selects how DOT source is rendered.
type Backend string

// Rendering backends.
const (
	BackendAuto     Backend = "auto"
	BackendGraphviz Backend = "graphviz"
	BackendExec     Backend = "exec"
)

// Defaults applied by [Options.SetDefaults].
const (
	DefaultLayout = "dot"
	DefaultEngine = "dot"
	DefaultTTL    = 24 * time.Hour
)

// ParseBackend parses a backend name. The empty string means [BackendAuto].
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendAuto, nil
	case BackendAuto, BackendGraphviz, BackendExec:
		return b, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid backend: %s (must be 'auto', 'graphviz', or 'exec')", s)
	}
}

// Options configures a [Renderer].
type Options struct {
	Layout  string        // Graphviz layout engine passed as -K (default "dot")
	Engine  string        // engine binary for the exec backend (default "dot")
	Backend Backend       // backend selection (default auto)
	TTL     time.Duration // cache lifetime of rendered artifacts (default 24h)
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Backend == "" {
		o.Backend = BackendAuto
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
}

// Validate checks the options after defaults have been applied.
func (o Options) Validate() error {
	if err := errors.ValidateLayoutName(o.Layout); err != nil {
		return err
	}
	if err := errors.ValidateEngineName(o.Engine); err != nil {
		return err
	}
	_, err := ParseBackend(string(o.Backend))
	return err
}

// Result is a rendered artifact.
type Result struct {
	Data    []byte
	Format  format.Format
	Token   string
	Backend Backend // backend that produced Data, never BackendAuto
	Cached  bool
}

// backendFunc renders dot with the given layout and token.
type backendFunc func(ctx context.Context, dot []byte, layout, token string) ([]byte, error)

// Renderer renders DOT source with caching.
//
// A Renderer holds no per-render state; one instance may serve concurrent
// renders.
type Renderer struct {
	Options Options
	Cache   cache.Cache
	Logger  *log.Logger

	graphviz backendFunc
	exec     backendFunc
}

// New creates a renderer. Zero option fields get defaults.
// If c is nil, caching is disabled. If logger is nil, nothing is logged.
func New(opts Options, c cache.Cache, logger *log.Logger) *Renderer {
	opts.SetDefaults()
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	r := &Renderer{
		Options:  opts,
		Cache:    c,
		Logger:   logger,
		graphviz: renderInProcess,
	}
	r.exec = func(ctx context.Context, dot []byte, layout, token string) ([]byte, error) {
		return runEngine(ctx, r.Options.Engine, engineArgs(layout, token), dot)
	}
	return r
}

// Render renders dot as f.
//
// Errors carry codes from [errors]: INVALID_VARIANT for formats outside the
// catalog, UNSUPPORTED when the graphviz backend is forced for a token it
// cannot produce, INVALID_INPUT for unparsable DOT, ENGINE_NOT_FOUND and
// ENGINE_FAILED from the exec backend.
func (r *Renderer) Render(ctx context.Context, dot []byte, f format.Format) (*Result, error) {
	token, err := format.Resolve(f)
	if err != nil {
		return nil, err
	}
	if err := r.Options.Validate(); err != nil {
		return nil, err
	}

	backend, err := r.selectBackend(token)
	if err != nil {
		return nil, err
	}

	keyOpts := cache.ArtifactKeyOpts{
		Token:   token,
		Layout:  r.Options.Layout,
		Backend: string(backend),
	}
	if backend == BackendExec {
		keyOpts.Engine = r.Options.Engine
	}
	key := cache.ArtifactKey(cache.Hash(dot), keyOpts)
	if data, ok, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	} else if ok {
		r.Logger.Debug("cache hit", "format", f, "token", token, "bytes", len(data))
		return &Result{Data: data, Format: f, Token: token, Backend: backend, Cached: true}, nil
	}

	start := time.Now()
	run := r.exec
	if backend == BackendGraphviz {
		run = r.graphviz
	}
	data, err := run(ctx, dot, r.Options.Layout, token)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("rendered",
		"format", f,
		"token", token,
		"backend", backend,
		"layout", r.Options.Layout,
		"bytes", len(data),
		"duration", time.Since(start).Round(time.Millisecond))

	if err := r.Cache.Set(ctx, key, data, r.Options.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	}
	return &Result{Data: data, Format: f, Token: token, Backend: backend}, nil
}

func (r *Renderer) selectBackend(token string) (Backend, error) {
	switch r.Options.Backend {
	case BackendGraphviz:
		if !InProcess(token) {
			return "", errors.New(errors.ErrCodeUnsupported,
				"format -T%s is not available in-process; use the exec backend", token)
		}
		return BackendGraphviz, nil
	case BackendExec:
		return BackendExec, nil
	default:
		if InProcess(token) {
			return BackendGraphviz, nil
		}
		return BackendExec, nil
	}
}
