package degseq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/soniakeys/bits"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/observability"
	"github.com/matzehuels/orbitgen/pkg/orbit"
	"github.com/matzehuels/orbitgen/pkg/partition"
	"github.com/matzehuels/orbitgen/pkg/refine"
)

// ErrEngine wraps a failure of the refinement engine during a run. The run
// stops; no verdict is assumed for the graph being checked.
var ErrEngine = errors.New("canonicity check failed")

// errMaxResults unwinds the search once the result cap is reached.
var errMaxResults = errors.New("result limit reached")

// Status tells whether a run explored its whole search space.
type Status string

const (
	// StatusExhausted means every graph realizing the sequence was reported.
	StatusExhausted Status = "exhausted"
	// StatusAborted means the run stopped early; see [Result.Reason].
	StatusAborted Status = "aborted"
)

// Prune rules reported through [observability.GeneratorHooks.OnPrune].
const (
	PruneNotCanonical = "not-canonical"
	PruneSaturated    = "saturated-component"
	PruneDuplicate    = "not-canonical-complete"
)

// Result summarizes a run.
type Result struct {
	Count      int           `json:"count"`
	Status     Status        `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	Candidates int64         `json:"candidates"`
	Pruned     int64         `json:"pruned"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Generator enumerates the simple graphs realizing a degree sequence, one
// per isomorphism class.
//
// Vertices are saturated in index order: the lowest vertex still short of
// its target receives all of its remaining edges, to higher unsaturated
// vertices, before any later vertex is touched. Row k of the adjacency
// matrix is therefore final once vertex k is saturated, and every partial
// graph is checked for canonicity on its final rows. A complete graph is
// reported only when it is the canonical member of its class.
type Generator struct {
	sink         Sink
	partitioner  orbit.Partitioner
	disconnected bool
	maxResults   int
	timeout      time.Duration
	workers      int
	logger       *log.Logger
}

// Option configures a [Generator].
type Option func(*Generator)

// WithPartitioner selects the orbit partitioner. The default is
// [orbit.Signature]. Output does not depend on the choice.
func WithPartitioner(p orbit.Partitioner) Option {
	return func(g *Generator) {
		if p != nil {
			g.partitioner = p
		}
	}
}

// WithDisconnected reports disconnected realizations as well. By default
// only graphs whose positive-degree vertices form one component are
// reported, and a partial graph whose component of vertex 0 is already
// saturated is abandoned.
func WithDisconnected() Option {
	return func(g *Generator) { g.disconnected = true }
}

// WithMaxResults stops the run after k graphs. Zero means no limit.
func WithMaxResults(k int) Option {
	return func(g *Generator) { g.maxResults = max(k, 0) }
}

// WithTimeout bounds the run's duration. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = max(d, 0) }
}

// WithWorkers explores the branches below vertex 0 on up to k goroutines.
// Sink calls stay serialized; the order of reported graphs is unspecified.
func WithWorkers(k int) Option {
	return func(g *Generator) { g.workers = max(k, 1) }
}

// WithLogger sets the logger for debug tracing and engine failures.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New returns a generator reporting to sink.
func New(sink Sink, opts ...Option) *Generator {
	g := &Generator{
		sink:        sink,
		partitioner: orbit.Signature{},
		workers:     1,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate reports every simple graph realizing seq, up to isomorphism,
// exactly once.
//
// seq must be sorted non-increasing with non-negative entries; otherwise
// Generate fails with [ErrUnsorted] or [ErrNegativeDegree] before calling
// the sink. A sequence with no realization completes with zero graphs.
//
// A run stopped by the result cap or the timeout returns a nil error and
// [StatusAborted]. Cancellation of ctx returns ctx.Err(). Sink and engine
// failures are returned wrapped. Sink.Finish is called in every case once
// Begin has been.
func (gen *Generator) Generate(ctx context.Context, seq Sequence) (Result, error) {
	if err := seq.Validate(); err != nil {
		return Result{}, err
	}
	parent := ctx
	if gen.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gen.timeout)
		defer cancel()
	}

	name := orbit.NameOf(gen.partitioner)
	hooks := observability.Generator()
	hooks.OnRunStart(ctx, seq, name)
	gen.logger.Debug("generation started", "degrees", seq, "partitioner", name, "disconnected", gen.disconnected)

	start := time.Now()
	r := &run{
		shared: &shared{gen: gen, seq: seq, orbits: seq.Orbits(), n: len(seq)},
		ctx:    ctx,
	}
	gen.sink.Begin()
	err := r.root()
	gen.sink.Finish()

	res := Result{
		Count:      r.count,
		Status:     StatusExhausted,
		Candidates: r.candidates.Load(),
		Pruned:     r.pruned.Load(),
		Elapsed:    time.Since(start),
	}
	switch {
	case err == nil:
	case errors.Is(err, errMaxResults):
		res.Status, res.Reason, err = StatusAborted, "max results reached", nil
	case parent.Err() != nil:
		res.Status, res.Reason, err = StatusAborted, "canceled", parent.Err()
	case errors.Is(err, context.DeadlineExceeded):
		res.Status, res.Reason, err = StatusAborted, "timeout", nil
	default:
		res.Status, res.Reason = StatusAborted, err.Error()
	}

	hooks.OnRunComplete(ctx, seq, res.Count, string(res.Status), res.Elapsed, err)
	gen.logger.Debug("generation finished", "count", res.Count, "status", res.Status,
		"candidates", res.Candidates, "pruned", res.Pruned, "elapsed", res.Elapsed)
	return res, err
}

// shared is the state common to every goroutine of one run.
type shared struct {
	gen    *Generator
	seq    Sequence
	orbits partition.Partition
	n      int

	mu    sync.Mutex // guards count and the sink
	count int

	candidates atomic.Int64
	pruned     atomic.Int64
}

// run is one goroutine's view of a generation run.
type run struct {
	*shared
	ctx context.Context
}

func (r *run) root() error {
	g := graph.New(r.n)
	if r.n == 0 {
		return r.candidate(nil, g)
	}
	work := r.orbits.Cell(0)
	if r.gen.workers <= 1 || r.seq[0] == 0 {
		return r.saturateCell(g, g, work)
	}

	var children []*graph.Graph
	err := r.saturateVertex(g, 0, 1, r.seq[0], func(h *graph.Graph) error {
		children = append(children, h)
		return nil
	})
	if err != nil {
		return err
	}
	eg, ctx := errgroup.WithContext(r.ctx)
	eg.SetLimit(r.gen.workers)
	for _, h := range children {
		child := &run{shared: r.shared, ctx: ctx}
		eg.Go(func() error { return child.saturateCell(g, h, work[1:]) })
	}
	return eg.Wait()
}

// saturateCell walks the per-frame work list of one orbit. Members already at
// their target are skipped. The walk ends, and g becomes a candidate, when
// the list runs out or its next member is not the lowest unsaturated vertex.
func (r *run) saturateCell(parent, g *graph.Graph, work []int) error {
	for len(work) > 0 {
		v := work[0]
		if g.Degree(v) == r.seq[v] {
			work = work[1:]
			continue
		}
		if v != r.lowestUnsaturated(g) {
			break
		}
		rest := work[1:]
		return r.saturateVertex(g, v, v+1, r.seq[v]-g.Degree(v), func(h *graph.Graph) error {
			return r.saturateCell(parent, h, rest)
		})
	}
	return r.candidate(parent, g)
}

// saturateVertex adds need edges from v to unsaturated vertices at or after
// from, calling next for every choice.
func (r *run) saturateVertex(g *graph.Graph, v, from, need int, next func(*graph.Graph) error) error {
	if need == 0 {
		return next(g)
	}
	if err := r.ctx.Err(); err != nil {
		return err
	}
	for w := from; w+need <= r.n; w++ {
		if g.Degree(w) >= r.seq[w] {
			continue
		}
		if err := r.saturateVertex(g.WithEdge(v, w), v, w+1, need-1, next); err != nil {
			return err
		}
	}
	return nil
}

// candidate classifies g after a saturation step and either reports it,
// discards it, or continues from its first unsaturated orbit.
func (r *run) candidate(parent, g *graph.Graph) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	r.candidates.Add(1)

	k := r.lowestUnsaturated(g)
	if k == r.n {
		if !r.gen.disconnected && !r.spansPositive(g.Component(0)) {
			return r.prune(PruneSaturated, g)
		}
		return r.complete(parent, g)
	}
	if !r.gen.disconnected && r.componentSaturated(g) {
		return r.prune(PruneSaturated, g)
	}

	ok, err := refine.New(g).IsCanonical(r.orbits, k)
	if err != nil {
		return r.engineFailure(g, r.orbits, err)
	}
	if !ok {
		return r.prune(PruneNotCanonical, g)
	}

	next := r.gen.partitioner.Orbits(g, r.residual(g))
	ci := r.firstUnsaturatedCell(g, next)
	if ci < 0 {
		return r.engineFailure(g, next, fmt.Errorf("%w: vertex %d unsaturated but no orbit found", refine.ErrInconsistent, k))
	}
	return r.saturateCell(g, g, next.Cell(ci))
}

// complete runs the exact canonicity check on a saturated graph and reports
// it if it passes. Zero-degree vertices trail the sequence and are dropped
// first.
func (r *run) complete(parent, g *graph.Graph) error {
	h, _ := g.Compact()
	orbits := partition.FromDegrees(h.Degrees())
	ok, err := refine.New(h).IsCanonical(orbits, h.VertexCount())
	if err != nil {
		return r.engineFailure(h, orbits, err)
	}
	if !ok {
		return r.prune(PruneDuplicate, g)
	}
	return r.accept(parent, g)
}

func (r *run) accept(parent, g *graph.Graph) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	limit := r.gen.maxResults
	if limit > 0 && r.count >= limit {
		return errMaxResults
	}
	if err := r.gen.sink.Accept(parent, g); err != nil {
		return fmt.Errorf("sink rejected %s: %w", g, err)
	}
	r.count++
	observability.Generator().OnAccept(r.ctx, g.EdgeCount())
	if limit > 0 && r.count == limit {
		return errMaxResults
	}
	return nil
}

func (r *run) prune(rule string, g *graph.Graph) error {
	r.pruned.Add(1)
	observability.Generator().OnPrune(r.ctx, rule)
	r.gen.logger.Debug("pruned", "rule", rule, "graph", g)
	return nil
}

func (r *run) engineFailure(g *graph.Graph, p partition.Partition, err error) error {
	r.gen.logger.Error("refinement failed", "graph", g, "partition", p, "err", err)
	return fmt.Errorf("%w: graph %s with orbits %s: %w", ErrEngine, g, p, err)
}

func (r *run) lowestUnsaturated(g *graph.Graph) int {
	for v := range r.n {
		if g.Degree(v) < r.seq[v] {
			return v
		}
	}
	return r.n
}

func (r *run) residual(g *graph.Graph) []int {
	out := make([]int, r.n)
	for v := range r.n {
		out[v] = r.seq[v] - g.Degree(v)
	}
	return out
}

// componentSaturated reports whether every vertex reachable from vertex 0 is
// at its target degree.
func (r *run) componentSaturated(g *graph.Graph) bool {
	comp := g.Component(0)
	saturated := true
	comp.IterateOnes(func(v int) bool {
		saturated = g.Degree(v) == r.seq[v]
		return saturated
	})
	return saturated
}

// spansPositive reports whether comp holds every vertex with a positive
// target.
func (r *run) spansPositive(comp bits.Bits) bool {
	for v, d := range r.seq {
		if d > 0 && comp.Bit(v) == 0 {
			return false
		}
	}
	return true
}

func (r *run) firstUnsaturatedCell(g *graph.Graph, p partition.Partition) int {
	for i := range p.Size() {
		if v := p.First(i); v >= 0 && g.Degree(v) < r.seq[v] {
			return i
		}
	}
	return -1
}
