package render

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gvexport/pkg/errors"
)

// inProcessFormats maps engine tokens to the go-graphviz output formats that
// produce the same bytes.
var inProcessFormats = map[string]graphviz.Format{
	"svg":  graphviz.SVG,
	"png":  graphviz.PNG,
	"jpg":  graphviz.JPG,
	"jpeg": graphviz.JPG,
	"jpe":  graphviz.JPG,
	"gv":   graphviz.XDOT,
}

// InProcess reports whether token can be rendered without an installed
// Graphviz.
func InProcess(token string) bool {
	_, ok := inProcessFormats[token]
	return ok
}

// renderInProcess renders dot with the embedded Graphviz build.
func renderInProcess(ctx context.Context, dot []byte, layout, token string) ([]byte, error) {
	gvFormat, ok := inProcessFormats[token]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "format -T%s is not available in-process", token)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(layout))

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "parse DOT: no graph found")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngineFailed, err, "render -T%s", token)
	}
	return buf.Bytes(), nil
}
