package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gvexport/pkg/cache"
	"github.com/matzehuels/gvexport/pkg/errors"
	"github.com/matzehuels/gvexport/pkg/format"
)

const sampleDOT = "digraph G { a -> b; b -> c; }"

// fakeBackend records calls and returns a payload naming the backend and token.
type fakeBackend struct {
	mu    sync.Mutex
	name  string
	calls []string
}

func (f *fakeBackend) render(ctx context.Context, dot []byte, layout, token string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, layout+"/"+token)
	return []byte(f.name + ":" + token), nil
}

func (f *fakeBackend) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newFakeRenderer(opts Options, c cache.Cache) (*Renderer, *fakeBackend, *fakeBackend) {
	r := New(opts, c, nil)
	gv := &fakeBackend{name: "graphviz"}
	ex := &fakeBackend{name: "exec"}
	r.graphviz = gv.render
	r.exec = ex.render
	return r, gv, ex
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		input   string
		want    Backend
		wantErr bool
	}{
		{"", BackendAuto, false},
		{"auto", BackendAuto, false},
		{"GraphViz", BackendGraphviz, false},
		{" exec ", BackendExec, false},
		{"wasm", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBackend(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o.Layout != "dot" || o.Engine != "dot" || o.Backend != BackendAuto || o.TTL != DefaultTTL {
		t.Errorf("SetDefaults() = %+v", o)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}

	custom := Options{Layout: "neato", Engine: "/opt/gv/bin/dot", Backend: BackendExec}
	custom.SetDefaults()
	if custom.Layout != "neato" || custom.Engine != "/opt/gv/bin/dot" || custom.Backend != BackendExec {
		t.Errorf("SetDefaults() overwrote explicit values: %+v", custom)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad layout", Options{Layout: "-Tpng", Engine: "dot", Backend: BackendAuto}, errors.ErrCodeInvalidEngine},
		{"bad engine", Options{Layout: "dot", Engine: "dot; true", Backend: BackendAuto}, errors.ErrCodeInvalidEngine},
		{"bad backend", Options{Layout: "dot", Engine: "dot", Backend: "gpu"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRenderBackendSelection(t *testing.T) {
	tests := []struct {
		name    string
		backend Backend
		f       format.Format
		want    Backend
		wantErr errors.Code
	}{
		{"auto svg in-process", BackendAuto, format.Svg, BackendGraphviz, ""},
		{"auto png in-process", BackendAuto, format.Png, BackendGraphviz, ""},
		{"auto jpe in-process", BackendAuto, format.Jpe, BackendGraphviz, ""},
		{"auto pdf exec", BackendAuto, format.Pdf, BackendExec, ""},
		{"auto xdot14 exec", BackendAuto, format.Xdot14, BackendExec, ""},
		{"forced exec svg", BackendExec, format.Svg, BackendExec, ""},
		{"forced graphviz png", BackendGraphviz, format.Png, BackendGraphviz, ""},
		{"forced graphviz pdf", BackendGraphviz, format.Pdf, "", errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, gv, ex := newFakeRenderer(Options{Backend: tt.backend}, nil)
			res, err := r.Render(context.Background(), []byte(sampleDOT), tt.f)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Render() error = %v, want code %s", err, tt.wantErr)
				}
				if gv.count()+ex.count() != 0 {
					t.Error("no backend should run when selection fails")
				}
				return
			}
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if res.Backend != tt.want {
				t.Errorf("Backend = %s, want %s", res.Backend, tt.want)
			}
			wantData := fmt.Sprintf("%s:%s", tt.want, tt.f.Token())
			if string(res.Data) != wantData {
				t.Errorf("Data = %q, want %q", res.Data, wantData)
			}
			if res.Token != tt.f.Token() || res.Format != tt.f {
				t.Errorf("Result = %+v", res)
			}
		})
	}
}

func TestRenderPassesIrregularTokens(t *testing.T) {
	r, _, ex := newFakeRenderer(Options{Layout: "neato"}, nil)
	for _, f := range []format.Format{format.Canon, format.Xdot12, format.Xdot14, format.PlainExt} {
		if _, err := r.Render(context.Background(), []byte(sampleDOT), f); err != nil {
			t.Fatalf("Render(%s) error = %v", f, err)
		}
	}
	want := []string{"neato/fig", "neato/xdot1.2", "neato/dot1.4", "neato/plain-ext"}
	if strings.Join(ex.calls, ",") != strings.Join(want, ",") {
		t.Errorf("exec calls = %v, want %v", ex.calls, want)
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	r, gv, ex := newFakeRenderer(Options{}, nil)
	_, err := r.Render(context.Background(), []byte(sampleDOT), format.Format(-1))
	if !errors.Is(err, errors.ErrCodeInvalidVariant) {
		t.Fatalf("Render(invalid) error = %v, want %s", err, errors.ErrCodeInvalidVariant)
	}
	if gv.count()+ex.count() != 0 {
		t.Error("invalid format must not reach a backend")
	}
}

func TestRenderUsesCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r, _, ex := newFakeRenderer(Options{}, fc)

	first, err := r.Render(ctx, []byte(sampleDOT), format.Pdf)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if first.Cached {
		t.Error("first render should not be cached")
	}

	second, err := r.Render(ctx, []byte(sampleDOT), format.Pdf)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !second.Cached {
		t.Error("second render should be served from cache")
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Error("cached data differs from rendered data")
	}
	if ex.count() != 1 {
		t.Errorf("exec ran %d times, want 1", ex.count())
	}

	// A different token is a different artifact.
	if _, err := r.Render(ctx, []byte(sampleDOT), format.Eps); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if ex.count() != 2 {
		t.Errorf("exec ran %d times, want 2", ex.count())
	}
}

func TestRenderCacheSeparatesEngines(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	newEngine := func(engine string) *Renderer {
		r := New(Options{Engine: engine, Backend: BackendExec}, fc, nil)
		r.exec = func(ctx context.Context, dot []byte, layout, token string) ([]byte, error) {
			return []byte("from-" + engine), nil
		}
		return r
	}

	a, err := newEngine("dot-a").Render(ctx, []byte(sampleDOT), format.Pdf)
	if err != nil {
		t.Fatalf("Render(dot-a) error: %v", err)
	}
	b, err := newEngine("dot-b").Render(ctx, []byte(sampleDOT), format.Pdf)
	if err != nil {
		t.Fatalf("Render(dot-b) error: %v", err)
	}
	if b.Cached || string(b.Data) != "from-dot-b" {
		t.Errorf("dot-b render = %q (cached %v), want fresh output of dot-b", b.Data, b.Cached)
	}
	if string(a.Data) != "from-dot-a" {
		t.Errorf("dot-a render = %q", a.Data)
	}

	again, err := newEngine("dot-a").Render(ctx, []byte(sampleDOT), format.Pdf)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Cached || string(again.Data) != "from-dot-a" {
		t.Errorf("repeat dot-a render = %q (cached %v), want cached dot-a output", again.Data, again.Cached)
	}
}

func TestRenderBackendError(t *testing.T) {
	r := New(Options{Backend: BackendExec}, nil, nil)
	r.exec = func(ctx context.Context, dot []byte, layout, token string) ([]byte, error) {
		return nil, errors.New(errors.ErrCodeEngineFailed, "boom")
	}
	_, err := r.Render(context.Background(), []byte(sampleDOT), format.Svg)
	if !errors.Is(err, errors.ErrCodeEngineFailed) {
		t.Errorf("Render() error = %v, want %s", err, errors.ErrCodeEngineFailed)
	}
}

func TestRenderLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	r := New(Options{}, nil, logger)
	r.graphviz = (&fakeBackend{name: "graphviz"}).render
	if _, err := r.Render(context.Background(), []byte(sampleDOT), format.Svg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "rendered") {
		t.Errorf("debug log missing render line: %q", buf.String())
	}
}

func TestInProcess(t *testing.T) {
	for _, token := range []string{"svg", "png", "jpg", "jpeg", "jpe", "gv"} {
		if !InProcess(token) {
			t.Errorf("InProcess(%q) = false, want true", token)
		}
	}
	for _, token := range []string{"pdf", "xdot1.2", "dot1.4", "fig", ""} {
		if InProcess(token) {
			t.Errorf("InProcess(%q) = true, want false", token)
		}
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"svg":     "image/svg+xml",
		"png":     "image/png",
		"jpe":     "image/jpeg",
		"pdf":     "application/pdf",
		"dot1.4":  "text/vnd.graphviz",
		"json0":   "application/json",
		"cgimage": "application/octet-stream",
	}
	for token, want := range tests {
		if got := ContentType(token); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", token, got, want)
		}
	}
}

func TestEveryTokenHasAContentType(t *testing.T) {
	for _, f := range format.All() {
		if ContentType(f.Token()) == "" {
			t.Errorf("ContentType(%q) is empty", f.Token())
		}
	}
}
