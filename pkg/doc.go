// Package pkg provides the libraries behind orbitgen, an isomorph-free
// generator of simple graphs with a prescribed degree sequence.
//
// # Overview
//
// Given a non-increasing degree sequence, orbitgen reports every simple graph
// realizing it exactly once per isomorphism class. It builds graphs edge by
// edge and cuts every branch that could only repeat a class already reached,
// using a partition-refinement canonicity test instead of storing the graphs
// seen so far.
//
// # Architecture
//
// Leaves first:
//
//	[graph]        simple undirected graph value, text/JSON/YAML forms
//	    ↓
//	[partition]    ordered vertex colourings
//	    ↓
//	[orbit]        cheap orbit estimates (degree signature, Morgan)
//	    ↓
//	[refine]       equitable refinement, automorphisms, canonicity
//	    ↓          (permutation groups in [perm])
//	[degseq]       the orbit-saturating generator and its result sinks
//
// The core never does I/O. Around it sit [pipeline] (validation, caching and
// logging shared by every entry point), [cache], [render] and
// [render/nodelink] for Graphviz drawings, [rigidity], [errors] for coded
// boundary errors, and [observability] hooks.
//
// # Quick Start
//
// Enumerate the connected graphs with degrees 3,3,2,2,1,1:
//
//	col := &degseq.Collector{}
//	res, err := degseq.New(col).Generate(ctx, degseq.Sequence{3, 3, 2, 2, 1, 1})
//	if err != nil {
//	    return err
//	}
//	for _, g := range col.Graphs() {
//	    fmt.Println(g)
//	}
//	fmt.Println(res.Count, res.Status)
//
// Inspect the symmetry of one graph:
//
//	g, _ := graph.Parse("0:1,0:2,0:3")
//	res, _ := refine.New(g).Automorphisms(partition.Unit(g.VertexCount()))
//	fmt.Println(res.Group.Order(), res.Group.Orbits())
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/degseq/...   # Generator only
//	go test -run Example ./... # Examples only
package pkg
