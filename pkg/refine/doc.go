// Package refine implements discrete partition refinement over a graph with
// a vertex colouring.
//
// # Overview
//
// A [Refiner] is bound to one graph by [New] and answers three kinds of
// query:
//
//   - [Refiner.Equitable] splits the cells of a colouring until every vertex
//     in a cell has the same number of neighbours in each other cell.
//   - [Refiner.Automorphisms] walks the individualization-refinement tree and
//     returns the automorphism group as a perm.Group together with a
//     canonical labelling.
//   - [Refiner.IsCanonical] decides whether the graph, as labelled, is the
//     representative of its isomorphism class that the generator in package
//     degseq keeps.
//
// # Canonical Form
//
// The adjacency code of a labelled graph is the upper triangle of its
// adjacency matrix read row by row. Among all relabellings that keep every
// colour class in place, the canonical one has the greatest code. Because
// adding an edge only ever raises a code, a graph whose first k rows are
// already final can be rejected as soon as some relabelling beats those k
// rows, however the later rows are filled in.
//
// The labelling returned by [Refiner.Automorphisms] is canonical in the
// weaker sense that isomorphic inputs map to identical graphs. It is the best
// leaf of the refinement tree and need not have the greatest code overall.
//
// # Errors
//
// A colouring that does not cover the graph's vertices yields
// [ErrPartitionMismatch]. [ErrInconsistent] reports a broken search
// invariant. Neither is ever folded into a yes/no answer.
//
// # Concurrency
//
// A Refiner is read-only after construction, but each query allocates its own
// search state, so the usual pattern is one Refiner per query.
package refine
