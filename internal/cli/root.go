package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitgen/pkg/buildinfo"
)

// SetVersion overrides the build information shown by --version. Empty
// values keep whatever was injected via ldflags.
func SetVersion(version, commit, date string) {
	if version != "" {
		buildinfo.Version = version
	}
	if commit != "" {
		buildinfo.Commit = commit
	}
	if date != "" {
		buildinfo.Date = date
	}
}

// Execute builds the command tree and runs it with args. Logging goes to
// stderr at info level, or debug level with --verbose (-v).
//
//	func main() {
//	    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	    defer cancel()
//	    if err := cli.Execute(ctx, os.Args[1:]); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context, args []string) error {
	var verbose bool

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	loadConfig := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
		return loadConfig(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
