package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/matzehuels/orbitgen/pkg/degseq"
	"github.com/matzehuels/orbitgen/pkg/errors"
	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/observability"
	"github.com/matzehuels/orbitgen/pkg/partition"
	"github.com/matzehuels/orbitgen/pkg/refine"
	"github.com/matzehuels/orbitgen/pkg/rigidity"
)

// Analysis describes the symmetry of one graph.
type Analysis struct {
	Graph      string   `json:"graph"`
	Vertices   int      `json:"vertices"`
	Degrees    []int    `json:"degrees"`
	Order      string   `json:"order"` // decimal, may exceed int64
	Generators []string `json:"generators"`
	Orbits     [][]int  `json:"orbits"`
	Rigid      bool     `json:"rigid"`
	Easy       bool     `json:"easy"`
	Canonical  string   `json:"canonical"`
}

// ParseDegrees parses a degree sequence such as "3,3,2,2,1,1" and checks it
// against the generator's preconditions.
func ParseDegrees(s string) ([]int, error) {
	if err := errors.ValidateInput("degrees", s); err != nil {
		return nil, err
	}
	seq, err := degseq.Parse(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSequence, err, "cannot parse degrees %q", s)
	}
	if err := errors.ValidateDegrees(seq); err != nil {
		return nil, err
	}
	return seq, nil
}

// ParseGraph parses the text form of a graph such as "0:1,1:2".
func ParseGraph(s string) (*graph.Graph, error) {
	if err := errors.ValidateGraphText(s); err != nil {
		return nil, err
	}
	g, err := graph.ParseLimit(s, errors.MaxVertices)
	if stderrors.Is(err, graph.ErrVertexRange) {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err,
			"graph exceeds the limit of %d vertices", errors.MaxVertices)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "cannot parse graph %q", s)
	}
	return g, nil
}

// Analyze computes the automorphism group of g under the trivial colouring,
// along with its rigidity classification and canonical form.
func (r *Runner) Analyze(ctx context.Context, g *graph.Graph) (*Analysis, error) {
	key := r.Keyer.GraphKey("analysis", analysisKey(g))
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var a Analysis
		if json.Unmarshal(data, &a) == nil {
			observability.Cache().OnCacheHit(ctx, "analysis")
			return &a, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "analysis")

	res, err := refine.New(g).Automorphisms(partition.Unit(g.VertexCount()))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "automorphisms of %s", g)
	}
	easy, err := rigidity.IsEasy(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rigidity of %s", g)
	}

	a := &Analysis{
		Graph:     g.String(),
		Vertices:  g.VertexCount(),
		Degrees:   g.Degrees(),
		Order:     res.Group.Order().String(),
		Orbits:    res.Group.Orbits(),
		Rigid:     res.Group.IsTrivial(),
		Easy:      easy,
		Canonical: res.Canonical(g).String(),
	}
	a.Generators = make([]string, 0, len(res.Group.Generators()))
	for _, p := range res.Group.Generators() {
		a.Generators = append(a.Generators, p.String())
	}
	r.Logger.Debug("analyzed graph", "graph", a.Graph, "order", a.Order, "leaves", res.Leaves)

	if data, err := json.Marshal(a); err == nil {
		if r.Cache.Set(ctx, key, data, r.TTL) == nil {
			observability.Cache().OnCacheSet(ctx, "analysis", len(data))
		}
	}
	return a, nil
}

// analysisKey includes the vertex count, which the text form drops for
// trailing isolated vertices.
func analysisKey(g *graph.Graph) string {
	data, _ := json.Marshal(g)
	return string(data)
}
