package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitgen/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		limit   int
	)
	timeout := server.DefaultRunTimeout

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve exposes generation, automorphism analysis and rendering over HTTP.

Routes:
  GET /healthz
  GET /v1/graphs?degrees=3,3,2,2,1,1
  GET /v1/automorphisms?graph=0:1,1:2
  GET /v1/render?graph=0:1,1:2&format=svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			if !cmd.Flags().Changed("timeout") && c.Config.Timeout > 0 {
				timeout = c.Config.Timeout
			}
			srv := server.New(runner, c.Logger,
				server.WithRunTimeout(timeout),
				server.WithMaxResults(limit),
			)
			c.Logger.Debug("serve", "cache", backendName(c.Config.Cache), "timeout", timeout, "max", limit)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", timeout, "per-request generation timeout")
	cmd.Flags().IntVar(&limit, "max", server.DefaultMaxResults, "largest result count a request may ask for")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
