package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitgen/pkg/errors"
	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/pipeline"
	"github.com/matzehuels/orbitgen/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string // output directory
	format       string // dot, svg or png
	orbits       bool   // colour vertices by automorphism orbit
	degrees      bool   // show vertex degrees in labels
	disconnected bool
	max          int
	noCache      bool
}

// renderCommand creates the render command. The argument is either a single
// graph ("0:1,1:2") or a degree sequence ("2,2,2"), in which case every
// realization is drawn.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{output: ".", degrees: true}

	cmd := &cobra.Command{
		Use:   "render <graph|degrees>",
		Short: "Draw graphs with Graphviz",
		Long: `Render draws a graph, or every graph realizing a degree sequence, as DOT,
SVG or PNG. One file is written per graph: graph-001.svg, graph-002.svg, ...`,
		Example: `  orbitgen render 0:1,1:2,2:0 -o out
  orbitgen render 3,3,3,3,3,3 -o cubic --format png --orbits`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatSVG), "output format: dot, svg, png")
	cmd.Flags().BoolVar(&opts.orbits, "orbits", false, "colour vertices by automorphism orbit")
	cmd.Flags().BoolVar(&opts.degrees, "degrees", opts.degrees, "show vertex degrees")
	cmd.Flags().BoolVar(&opts.disconnected, "disconnected", false, "include disconnected graphs (degree sequences only)")
	cmd.Flags().IntVar(&opts.max, "max", 0, "render at most N graphs (degree sequences only)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, arg string, opts *renderOpts) error {
	ctx := cmd.Context()
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "render")
	}
	if err := errors.ValidatePath(opts.output); err != nil {
		return err
	}

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	graphs, err := c.renderInputs(cmd, runner, arg, opts)
	if err != nil {
		return err
	}
	if len(graphs) == 0 {
		printWarning("Nothing to render")
		return nil
	}

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	paths, err := renderAll(ctx, runner, graphs, format, opts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %d graphs", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// renderInputs resolves the argument to the graphs to draw.
func (c *CLI) renderInputs(cmd *cobra.Command, runner *pipeline.Runner, arg string, opts *renderOpts) ([]*graph.Graph, error) {
	if strings.Contains(arg, ":") {
		g, err := pipeline.ParseGraph(arg)
		if err != nil {
			return nil, err
		}
		return []*graph.Graph{g}, nil
	}

	degrees, err := pipeline.ParseDegrees(arg)
	if err != nil {
		return nil, err
	}
	popts := pipeline.Options{
		Degrees:      degrees,
		Disconnected: opts.disconnected,
		MaxResults:   opts.max,
		Logger:       loggerFromContext(cmd.Context()),
	}
	c.Config.applyTo(cmd, &popts)
	res, err := generateWithSpinner(cmd.Context(), runner, popts)
	if err != nil {
		return nil, err
	}
	logGenerateResult(popts.Logger, res)
	return res.Graphs, nil
}

func renderAll(ctx context.Context, runner *pipeline.Runner, graphs []*graph.Graph, format render.Format, opts *renderOpts) ([]string, error) {
	paths := make([]string, 0, len(graphs))
	for i, g := range graphs {
		data, err := runner.Render(ctx, g, pipeline.RenderOptions{
			Format:      format,
			Title:       g.String(),
			ShowDegrees: opts.degrees,
			ColorOrbits: opts.orbits,
		})
		if err != nil {
			return paths, err
		}
		path := filepath.Join(opts.output, graphFileName(i+1, format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// graphFileName returns the file name of the i-th graph, counting from one.
func graphFileName(i int, format render.Format) string {
	return fmt.Sprintf("graph-%03d%s", i, format.Ext())
}
