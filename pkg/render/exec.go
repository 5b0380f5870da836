package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/matzehuels/gvexport/pkg/errors"
	"github.com/matzehuels/gvexport/pkg/format"
)

// Args returns the engine arguments selecting layout and f, e.g.
// ["-Kdot", "-Tsvg"].
func Args(layout string, f format.Format) ([]string, error) {
	token, err := format.Resolve(f)
	if err != nil {
		return nil, err
	}
	return engineArgs(layout, token), nil
}

func engineArgs(layout, token string) []string {
	return []string{"-K" + layout, "-T" + token}
}

// runEngine shells out to the Graphviz engine with dot on stdin.
func runEngine(ctx context.Context, engine string, args []string, dot []byte) ([]byte, error) {
	if _, err := exec.LookPath(engine); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngineNotFound, err,
			"%s not found. Install Graphviz with:\n  macOS:  brew install graphviz\n  Linux:  apt install graphviz", engine)
	}

	cmd := exec.CommandContext(ctx, engine, args...)
	cmd.Stdin = bytes.NewReader(dot)
	cmd.WaitDelay = time.Second

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeEngineFailed, err,
			"%s %s: %s", engine, strings.Join(args, " "), strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}
