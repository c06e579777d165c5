// Package nodelink renders graphs as node-link diagrams.
//
// # Overview
//
// [ToDOT] writes an undirected Graphviz graph with one circle per vertex.
// Vertices are labelled with their index, optionally followed by their
// degree, and vertices in the same orbit share a fill colour so symmetric
// positions stand out. [Render] lays the DOT source out with the embedded
// Graphviz build from go-graphviz, so no system installation is needed.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{ShowDegrees: true})
//	svg, err := nodelink.Render(ctx, dot, render.FormatSVG)
package nodelink
