package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitgen/pkg/degseq"
	"github.com/matzehuels/orbitgen/pkg/errors"
	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/orbit"
	"github.com/matzehuels/orbitgen/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	partitioner  string        // orbit partitioner: signature or morgan
	disconnected bool          // also report disconnected realizations
	max          int           // stop after this many graphs, 0 for no limit
	timeout      time.Duration // stop after this long, 0 for no limit
	workers      int           // search goroutines
	format       string        // output encoding: text, json, yaml
	output       string        // output file, stdout when empty
	noCache      bool
	refresh      bool
	interactive  bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <degrees>",
		Short: "List every graph with the given degree sequence",
		Long: `Generate lists the simple graphs realizing a degree sequence, one per
isomorphism class. The sequence is comma-separated and non-increasing.

By default only connected graphs are reported; --disconnected lifts that.`,
		Example: `  orbitgen generate 3,3,2,2,1,1
  orbitgen generate 3,3,3,3,3,3,3,3 --partitioner morgan --format json -o cubic8.jsonl
  orbitgen generate 2,2,2,2,2,2 --disconnected --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.partitioner, "partitioner", pipeline.DefaultPartitioner, "orbit partitioner: "+strings.Join(orbit.Names(), ", "))
	cmd.Flags().BoolVar(&opts.disconnected, "disconnected", false, "also report disconnected graphs")
	cmd.Flags().IntVar(&opts.max, "max", 0, "stop after N graphs (0 = no limit)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "stop after this duration (0 = no limit)")
	cmd.Flags().IntVar(&opts.workers, "workers", pipeline.DefaultWorkers, "search goroutines")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(degseq.FormatText), "output format: text, json, yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and regenerate")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the results in a terminal list")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, arg string, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	degrees, err := pipeline.ParseDegrees(arg)
	if err != nil {
		return err
	}
	format, err := degseq.ParseFormat(opts.format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "generate")
	}
	if !degseq.Sequence(degrees).IsGraphical() {
		logger.Warn("sequence is not graphical, no graph will be found", "degrees", arg)
	}

	popts := pipeline.Options{
		Degrees:      degrees,
		Partitioner:  opts.partitioner,
		Disconnected: opts.disconnected,
		MaxResults:   opts.max,
		Timeout:      opts.timeout,
		Workers:      opts.workers,
		Refresh:      opts.refresh,
		Logger:       logger,
	}
	c.Config.applyTo(cmd, &popts)

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	res, err := generateWithSpinner(ctx, runner, popts)
	if err != nil {
		return err
	}
	logGenerateResult(logger, res)

	if opts.interactive {
		return c.browse(ctx, runner, res.Graphs)
	}
	return writeGraphs(cmd.OutOrStdout(), opts.output, format, res.Graphs)
}

func generateWithSpinner(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s...", degseq.Sequence(opts.Degrees)))
	prog := newProgress(opts.Logger)
	spinner.Start()
	res, err := runner.Generate(ctx, opts)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Found %d graphs", res.Run.Count))
	return res, nil
}

func logGenerateResult(logger *log.Logger, res *pipeline.Result) {
	if res.Run.Status == degseq.StatusAborted {
		logger.Warn("run stopped early, the list is incomplete", "reason", res.Run.Reason, "graphs", res.Run.Count)
	}
	logger.Debug("run summary",
		"run", res.RunID,
		"candidates", res.Run.Candidates,
		"pruned", res.Run.Pruned,
		"cached", res.CacheHit,
	)
}

// writeGraphs streams graphs through a [degseq.WriterSink] to path, or to
// stdout when path is empty.
func writeGraphs(stdout io.Writer, path string, format degseq.Format, graphs []*graph.Graph) error {
	w := stdout
	if path != "" {
		if err := errors.ValidatePath(path); err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	sink := degseq.NewWriterSink(w, format)
	sink.Begin()
	for _, g := range graphs {
		if sink.Accept(nil, g) != nil {
			break
		}
	}
	sink.Finish()
	if err := sink.Err(); err != nil {
		return fmt.Errorf("write graphs: %w", err)
	}
	if f, ok := w.(*os.File); ok && path != "" {
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
	}

	if path != "" {
		printSuccess("Wrote %d graphs", len(graphs))
		printFile(path)
	}
	return nil
}
