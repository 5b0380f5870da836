package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gvexport/pkg/errors"
	"github.com/matzehuels/gvexport/pkg/format"
	"github.com/matzehuels/gvexport/pkg/render"
)

// stdio is the path meaning stdin for input and stdout for output.
const stdio = "-"

// renderOpts holds the command-line flags for the render command.
// Empty strings fall back to the config file.
type renderOpts struct {
	output  string // output file, "-" for stdout
	format  string // catalog name
	layout  string // -K layout engine
	engine  string // engine binary for the exec backend
	backend string // auto, graphviz or exec
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file|->",
		Short: "Render a DOT file to a Graphviz output format",
		Long: `Render a DOT file to any Graphviz output format.

SVG, PNG, JPEG and canonical DOT are rendered in-process. Every other format
runs the Graphviz engine (dot by default) with the matching -T flag.

Without -o the output is written next to the input with the format's token
as extension. Reading from stdin (-) writes to stdout.`,
		Example: `  gvexport render graph.dot
  gvexport render graph.dot -f pdf -o out/graph.pdf
  cat graph.dot | gvexport render - -f xdot14 --layout neato`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format name (default from config, else svg)")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "layout engine passed as -K (default dot)")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "Graphviz binary for the exec backend (default dot)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "backend: auto, graphviz, exec")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormatNames)
	_ = cmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions(
		[]string{string(render.BackendAuto), string(render.BackendGraphviz), string(render.BackendExec)},
		cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	f := cfg.Format
	if opts.format != "" {
		if f, err = format.Parse(opts.format); err != nil {
			return err
		}
	}
	token, err := format.Resolve(f)
	if err != nil {
		return err
	}

	rOpts := cfg.RenderOptions()
	if opts.layout != "" {
		rOpts.Layout = opts.layout
	}
	if opts.engine != "" {
		rOpts.Engine = opts.engine
	}
	if opts.backend != "" {
		if rOpts.Backend, err = render.ParseBackend(opts.backend); err != nil {
			return err
		}
	}

	output := opts.output
	if output == "" {
		output = defaultOutputPath(input, token)
	}
	if output != stdio {
		if err := errors.ValidateOutputPath(output); err != nil {
			return err
		}
	}

	dot, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	artifacts, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer artifacts.Close()

	r := render.New(rOpts, artifacts, logger)
	prog := newProgress(logger)

	spin := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", f))
	spin.Start()
	res, err := r.Render(ctx, dot, f)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Render %s failed", f))
		return err
	}
	spin.Stop()
	prog.done("rendered", "format", f, "token", token, "backend", res.Backend, "bytes", len(res.Data))

	if output == stdio {
		_, err := cmd.OutOrStdout().Write(res.Data)
		return err
	}
	if err := writeOutput(output, res.Data); err != nil {
		return err
	}
	printSuccess("Rendered %s", f)
	printFile(output)
	printRenderStats(res)
	return nil
}

// defaultOutputPath names the artifact after input with the token as
// extension. stdin renders to stdout.
func defaultOutputPath(input, token string) string {
	if input == stdio {
		return stdio
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	out := base + "." + token
	if out == input {
		out = base + ".out." + token
	}
	return out
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == stdio {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
