// Package pipeline runs generation, analysis and rendering with caching.
//
// The CLI and the HTTP server both go through a [Runner], so option
// defaults, validation, cache keys and logging are the same for every entry
// point.
//
// # Stages
//
//  1. Generate: enumerate the realizations of a degree sequence
//  2. Analyze: automorphism group and rigidity of a single graph
//  3. Render: DOT, SVG or PNG drawings of a graph
//
// Each stage is cached independently. Generation results are cached only when
// the search ran to completion, since an aborted run's output depends on
// timing.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Generate(ctx, pipeline.Options{
//	    Degrees:     []int{3, 3, 2, 2, 1, 1},
//	    Partitioner: "morgan",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, g := range res.Graphs {
//	    fmt.Println(g)
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbitgen/pkg/cache"
	"github.com/matzehuels/orbitgen/pkg/degseq"
	"github.com/matzehuels/orbitgen/pkg/errors"
	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/orbit"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPartitioner names the orbit partitioner used when none is set.
	DefaultPartitioner = orbit.NameSignature

	// DefaultWorkers is the number of search goroutines.
	DefaultWorkers = 1

	// DefaultTTL is how long results stay cached.
	DefaultTTL = cache.DefaultTTL
)

// =============================================================================
// Options - Generation Configuration
// =============================================================================

// Options contains the configuration of a generation run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Degrees      []int         `json:"degrees"`
	Partitioner  string        `json:"partitioner,omitempty"`
	Disconnected bool          `json:"disconnected,omitempty"`
	MaxResults   int           `json:"max_results,omitempty"`
	Timeout      time.Duration `json:"timeout,omitempty"`
	Workers      int           `json:"workers,omitempty"`
	Refresh      bool          `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the degree sequence and partitioner name and
// fills in defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateDegrees(o.Degrees); err != nil {
		return err
	}
	if o.Partitioner == "" {
		o.Partitioner = DefaultPartitioner
	}
	if _, err := orbit.ByName(o.Partitioner); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPartitioner, err,
			"partitioner %q (must be one of: signature, morgan)", o.Partitioner)
	}
	if o.MaxResults < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max results cannot be negative")
	}
	if o.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout cannot be negative")
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// KeyOpts returns the cache key inputs of the run. Timeout, workers and
// logging do not change a completed run's output and are left out.
func (o *Options) KeyOpts() cache.RunKeyOpts {
	return cache.RunKeyOpts{
		Degrees:      o.Degrees,
		Partitioner:  o.Partitioner,
		Disconnected: o.Disconnected,
		MaxResults:   o.MaxResults,
	}
}

// generatorOptions translates validated options into generator options.
func (o *Options) generatorOptions() []degseq.Option {
	p, _ := orbit.ByName(o.Partitioner)
	opts := []degseq.Option{
		degseq.WithPartitioner(p),
		degseq.WithMaxResults(o.MaxResults),
		degseq.WithTimeout(o.Timeout),
		degseq.WithWorkers(o.Workers),
		degseq.WithLogger(o.Logger),
	}
	if o.Disconnected {
		opts = append(opts, degseq.WithDisconnected())
	}
	return opts
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a generation run.
type Result struct {
	// RunID identifies this invocation in logs and API responses.
	RunID string

	// Degrees is the sequence that was enumerated.
	Degrees []int

	// Graphs holds one representative per isomorphism class, in the order
	// the generator reported them.
	Graphs []*graph.Graph

	// Run carries the generator's counters and final status.
	Run degseq.Result

	// CacheHit reports whether the graphs were replayed from the cache.
	CacheHit bool
}

// cachedRun is the stored form of a completed run.
type cachedRun struct {
	Run    degseq.Result  `json:"run"`
	Graphs []*graph.Graph `json:"graphs"`
}
