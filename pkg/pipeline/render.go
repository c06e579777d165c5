package pipeline

import (
	"context"

	"github.com/matzehuels/orbitgen/pkg/errors"
	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/observability"
	"github.com/matzehuels/orbitgen/pkg/partition"
	"github.com/matzehuels/orbitgen/pkg/refine"
	"github.com/matzehuels/orbitgen/pkg/render"
	"github.com/matzehuels/orbitgen/pkg/render/nodelink"
)

// RenderOptions configures [Runner.Render].
type RenderOptions struct {
	Format      render.Format
	Title       string
	ShowDegrees bool

	// ColorOrbits fills vertices of each automorphism orbit alike.
	ColorOrbits bool
}

// Render draws g in the requested format. Artifacts are cached by their DOT
// source, so any option change yields a fresh rendering.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, opts RenderOptions) ([]byte, error) {
	format, err := render.ParseFormat(string(opts.Format))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "render format %q", opts.Format)
	}
	opts.Format = format
	nl := nodelink.Options{Title: opts.Title, ShowDegrees: opts.ShowDegrees}
	if opts.ColorOrbits {
		res, err := refine.New(g).Automorphisms(partition.Unit(g.VertexCount()))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "automorphisms of %s", g)
		}
		nl.Orbits = res.Group.Orbits()
	}
	dot := nodelink.ToDOT(g, nl)
	if opts.Format == render.FormatDOT {
		return []byte(dot), nil
	}

	key := r.Keyer.GraphKey(string(opts.Format), dot)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	data, err := nodelink.Render(ctx, dot, opts.Format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
	}
	if r.Cache.Set(ctx, key, data, r.TTL) == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, nil
}
