package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/render"
)

// Options configures node-link rendering.
type Options struct {
	// Title is drawn above the diagram when non-empty.
	Title string

	// ShowDegrees appends each vertex's degree to its label.
	ShowDegrees bool

	// Orbits colours the vertices of each listed cell alike. Vertices not
	// listed stay white.
	Orbits [][]int
}

// palette holds the orbit fill colours, reused cyclically.
var palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// ToDOT converts g to Graphviz DOT source. The output is deterministic:
// vertices appear in index order and edges in sorted order.
func ToDOT(g *graph.Graph, opts Options) string {
	fill := make(map[int]string)
	for i, cell := range opts.Orbits {
		if len(cell) < 2 {
			continue
		}
		for _, v := range cell {
			fill[v] = palette[i%len(palette)]
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	for v := range g.VertexCount() {
		label := strconv.Itoa(v)
		if opts.ShowDegrees {
			label = fmt.Sprintf("%d\\n(%d)", v, g.Degree(v))
		}
		attrs := fmt.Sprintf("label=\"%s\"", label)
		if c, ok := fill[v]; ok {
			attrs += fmt.Sprintf(", fillcolor=%q", c)
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.SortedEdges() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.A, e.B)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Render lays out DOT source and returns it in the requested format.
// [render.FormatDOT] returns the source unchanged.
func Render(ctx context.Context, dot string, format render.Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		gvFormat = graphviz.SVG
	case render.FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("%w: %q", render.ErrUnknownFormat, format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	if format == render.FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized svg element with one whose
// width and height match the viewBox, so browsers scale it consistently.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
