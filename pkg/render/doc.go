// Package render turns enumerated graphs into pictures.
//
// # Overview
//
// The output formats are shared by every renderer:
//
//   - [FormatDOT]: Graphviz source text, produced without any external tool
//   - [FormatSVG]: vector output laid out by Graphviz
//   - [FormatPNG]: raster output laid out by Graphviz
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage draws a graph as circles joined by lines, with
// vertices of one orbit sharing a fill colour:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Orbits: orbits})
//	svg, err := nodelink.Render(ctx, dot, render.FormatSVG)
//
// [nodelink]: github.com/matzehuels/orbitgen/pkg/render/nodelink
package render
