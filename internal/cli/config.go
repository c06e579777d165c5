package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitgen/pkg/cache"
	"github.com/matzehuels/orbitgen/pkg/pipeline"
)

// Config is the contents of config.toml.
//
//	partitioner = "morgan"
//	workers     = 4
//	max_results = 1000
//	timeout     = "30s"
//
//	[cache]
//	backend    = "redis"
//	redis_addr = "localhost:6379"
//	ttl        = "24h"
type Config struct {
	Partitioner string        `toml:"partitioner"`
	Workers     int           `toml:"workers"`
	MaxResults  int           `toml:"max_results"`
	Timeout     time.Duration `toml:"timeout"`
	Cache       cache.Config  `toml:"cache"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Partitioner: pipeline.DefaultPartitioner,
		Workers:     pipeline.DefaultWorkers,
		Cache: cache.Config{
			Backend: cache.BackendFile,
			TTL:     pipeline.DefaultTTL,
		},
	}
}

// LoadConfig reads the config file at path on top of [DefaultConfig]. An
// empty path selects the XDG location, which may be absent; an explicit
// path must exist. Unknown keys are an error so typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// applyTo fills opts from the config wherever the matching flag was left
// unset on cmd.
func (cfg Config) applyTo(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if !flags.Changed("partitioner") && cfg.Partitioner != "" {
		opts.Partitioner = cfg.Partitioner
	}
	if !flags.Changed("workers") && cfg.Workers > 0 {
		opts.Workers = cfg.Workers
	}
	if !flags.Changed("max") && cfg.MaxResults > 0 {
		opts.MaxResults = cfg.MaxResults
	}
	if !flags.Changed("timeout") && cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
}
