// Package graph provides the simple undirected graph value used throughout
// orbitgen.
//
// # Value Semantics
//
// Backtracking search treats graphs as persistent values. Branching uses
// [Graph.WithEdge], which copies, so abandoning a branch needs no rollback:
//
//	child := parent.WithEdge(0, 3) // parent is unchanged
//
// [Graph.AddEdge] mutates in place and is used where a single branch is being
// accumulated, for example when parsing or relabelling.
//
// # Text Form
//
// At I/O boundaries a graph is written as comma-separated "a:b" edge tokens:
//
//	g, _ := graph.Parse("0:1,0:2,1:2") // triangle
//	fmt.Println(g)                     // 0:1,0:2,1:2
//
// The text form is for fixtures and debugging; [Wire] is the structured form
// used for JSON and YAML.
//
// # Concurrency
//
// Reads are safe from multiple goroutines. Mutation with AddEdge is not.
package graph
