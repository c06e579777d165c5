package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/orbitgen/pkg/cache"
	"github.com/matzehuels/orbitgen/pkg/degseq"
	"github.com/matzehuels/orbitgen/pkg/errors"
	"github.com/matzehuels/orbitgen/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Generate enumerates the realizations of opts.Degrees, replaying a cached
// result when one exists and opts.Refresh is unset.
//
// Invalid options yield an INVALID_* coded error. An aborted run returns its
// partial result and a nil error, except when ctx itself was canceled. Engine
// and sink failures are returned with code INTERNAL_ERROR.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString(), Degrees: opts.Degrees}
	logger := opts.Logger.With("run", res.RunID)
	key := r.Keyer.RunKey(opts.KeyOpts())

	if !opts.Refresh {
		if cached, ok := r.loadRun(ctx, key, logger); ok {
			res.Graphs, res.Run, res.CacheHit = cached.Graphs, cached.Run, true
			logger.Info("replayed cached run", "degrees", opts.Degrees, "count", len(res.Graphs))
			return res, nil
		}
	}

	collector := &degseq.Collector{}
	gen := degseq.New(collector, opts.generatorOptions()...)
	run, err := gen.Generate(ctx, degseq.Sequence(opts.Degrees))
	res.Graphs, res.Run = collector.Graphs(), run
	if err != nil {
		if ctx.Err() != nil {
			return res, err
		}
		return res, errors.Wrap(errors.ErrCodeInternal, err, "generate %v", opts.Degrees)
	}

	logger.Info("generated",
		"degrees", opts.Degrees,
		"count", run.Count,
		"status", run.Status,
		"candidates", run.Candidates,
		"pruned", run.Pruned,
		"duration", run.Elapsed)

	if run.Status == degseq.StatusExhausted {
		r.storeRun(ctx, key, cachedRun{Run: run, Graphs: res.Graphs}, logger)
	} else {
		logger.Warn("run aborted, result not cached", "reason", run.Reason)
	}
	return res, nil
}

func (r *Runner) loadRun(ctx context.Context, key string, logger *log.Logger) (cachedRun, bool) {
	var cached cachedRun
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
		return cached, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "run")
		return cached, false
	}
	if err := json.Unmarshal(data, &cached); err != nil {
		logger.Warn("discarding unreadable cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		return cached, false
	}
	observability.Cache().OnCacheHit(ctx, "run")
	return cached, true
}

func (r *Runner) storeRun(ctx context.Context, key string, run cachedRun, logger *log.Logger) {
	data, err := json.Marshal(run)
	if err != nil {
		logger.Warn("encode cache entry", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "run", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
