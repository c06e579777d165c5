package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/orbitgen/pkg/errors"
	"github.com/matzehuels/orbitgen/pkg/pipeline"
)

// automorphismsCommand creates the automorphisms command.
func (c *CLI) automorphismsCommand() *cobra.Command {
	var format string
	var noCache bool

	cmd := &cobra.Command{
		Use:     "automorphisms <graph>",
		Aliases: []string{"aut"},
		Short:   "Show the automorphism group of a graph",
		Long: `Automorphisms reports the group order, a generating set, the vertex orbits
and the rigidity of a graph given in edge-list form, e.g. "0:1,0:2,0:3".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := pipeline.ParseGraph(args[0])
			if err != nil {
				return err
			}
			runner := c.newRunner(cmd.Context(), noCache)
			defer runner.Close()

			a, err := runner.Analyze(cmd.Context(), g)
			if err != nil {
				return err
			}
			return writeAnalysis(cmd.OutOrStdout(), format, a)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func writeAnalysis(w io.Writer, format string, a *pipeline.Analysis) error {
	switch format {
	case "", "text":
		printAnalysis(w, a)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		enc.SetIndent(2)
		return enc.Encode(a)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want text, json or yaml)", format)
}

func printAnalysis(w io.Writer, a *pipeline.Analysis) {
	fmt.Fprintln(w, StyleTitle.Render(a.Graph))
	fmt.Fprintln(w, keyValue("vertices", strconv.Itoa(a.Vertices)))
	fmt.Fprintln(w, keyValue("degrees", joinInts(a.Degrees)))
	fmt.Fprintln(w, keyValue("order", StyleNumber.Render(a.Order)))
	fmt.Fprintln(w, keyValue("rigid", strconv.FormatBool(a.Rigid)))
	fmt.Fprintln(w, keyValue("easy", strconv.FormatBool(a.Easy)))
	fmt.Fprintln(w, keyValue("canonical", a.Canonical))

	orbits := make([]string, len(a.Orbits))
	for i, o := range a.Orbits {
		orbits[i] = "{" + joinInts(o) + "}"
	}
	fmt.Fprintln(w, keyValue("orbits", strings.Join(orbits, " ")))

	if len(a.Generators) == 0 {
		return
	}
	fmt.Fprintln(w, keyValue("generators", a.Generators[0]))
	for _, gen := range a.Generators[1:] {
		fmt.Fprintln(w, keyValue("", gen))
	}
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
