// Package render turns DOT source into any Graphviz output format.
//
// # Overview
//
// A [Renderer] resolves a [format.Format] to its engine token and hands the
// DOT source to one of two backends:
//
//   - graphviz: in-process rendering with [github.com/goccy/go-graphviz].
//     Needs no installed Graphviz but only covers svg, png, jpeg/jpg/jpe
//     and gv output.
//   - exec: the external engine binary (dot by default), invoked as
//     `dot -K<layout> -T<token>` with the DOT source on stdin.
//
// [BackendAuto] uses the in-process backend whenever it covers the token and
// falls back to exec otherwise.
//
// # Usage
//
//	r := render.New(render.Options{}, nil, logger)
//	res, err := r.Render(ctx, dot, format.Png)
//	os.WriteFile("graph.png", res.Data, 0644)
//
// # Caching
//
// Results are cached in a [cache.Cache] keyed by DOT hash, token, layout and
// backend. Pass nil to disable caching.
//
// # Dependencies
//
// The exec backend requires Graphviz: brew install graphviz (macOS),
// apt install graphviz (Linux).
package render
