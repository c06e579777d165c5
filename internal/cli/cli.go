// Package cli implements the orbitgen command-line interface.
//
// # Commands
//
//   - generate: list the graphs realizing a degree sequence
//   - automorphisms: group order, generators and orbits of one graph
//   - render: draw graphs with Graphviz, one file per graph
//   - serve: run the HTTP API
//   - cache: clear the result cache or print its location
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/orbitgen/config.toml, or the file
// named by --config. Flags given on the command line override the file.
//
// # Logging
//
// Commands log to stderr, at debug level with --verbose (-v). The logger is
// carried on the command context; graphs and analyses go to stdout.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitgen/pkg/buildinfo"
	"github.com/matzehuels/orbitgen/pkg/cache"
	"github.com/matzehuels/orbitgen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "orbitgen"

	// configFile is the config file name inside the config directory.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs. Flags set on the command
	// line take precedence over it.
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Orbitgen enumerates graphs with a given degree sequence",
		Long: `Orbitgen lists every simple graph realizing a degree sequence exactly once
up to isomorphism, and reports the automorphism group of single graphs.`,
		Version:       buildinfo.Resolved(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/orbitgen/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.automorphismsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache. A
// cache that cannot be opened is replaced by a null cache after a warning,
// so commands still work without one.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	ch, err := c.openCache(ctx, noCache)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", c.Config.Cache.Backend, "err", err)
		ch = cache.NewNullCache()
	}
	runner := pipeline.NewRunner(ch, nil, c.Logger)
	if c.Config.Cache.TTL > 0 {
		runner.TTL = c.Config.Cache.TTL
	}
	return runner
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache {
		cfg.Backend = cache.BackendNone
	}
	if (cfg.Backend == "" || cfg.Backend == cache.BackendFile) && cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		cfg.Dir = dir
	}
	return cache.Open(ctx, cfg)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/orbitgen/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the default config file using XDG standard
// (~/.config/orbitgen/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, configFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFile), nil
}
