// Package degseq enumerates the simple graphs that realize a degree
// sequence, one graph per isomorphism class.
//
// # Overview
//
// A [Generator] starts from the edgeless graph on len(seq) vertices and
// saturates vertices one at a time, lowest index first. Saturating a vertex
// means choosing, in every possible way, which higher unsaturated vertices
// receive its remaining edges. After each step the partial graph is a
// candidate and is classified:
//
//   - If every vertex is saturated, the graph is reported when it is the
//     canonical member of its isomorphism class (see package refine).
//   - If the component of vertex 0 is saturated but other vertices are not,
//     no connected completion exists and the branch is dropped. This rule is
//     disabled by [WithDisconnected].
//   - Otherwise the rows fixed so far must be canonical, and the search
//     continues from the first orbit, as computed by an [orbit.Partitioner],
//     whose representative is unsaturated.
//
// # Sinks
//
// Reported graphs go to a [Sink]. [Collector] keeps them, [WriterSink]
// streams them as text, JSON or YAML, and [IsomorphCounter] groups them by
// isomorphism class. [FuncSink] adapts a plain function.
//
// # Usage
//
//	var out degseq.Collector
//	gen := degseq.New(&out, degseq.WithPartitioner(orbit.Morgan{}))
//	res, err := gen.Generate(ctx, degseq.Sequence{3, 3, 2, 2, 1, 1})
//
// # Concurrency
//
// A Generator may be reused for consecutive runs but not for concurrent ones,
// since both would drive the same Sink.
package degseq
