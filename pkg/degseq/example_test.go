package degseq_test

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/orbitgen/pkg/degseq"
	"github.com/matzehuels/orbitgen/pkg/orbit"
)

func ExampleGenerator_Generate() {
	sink := degseq.NewWriterSink(os.Stdout, degseq.FormatText)
	gen := degseq.New(sink, degseq.WithPartitioner(orbit.Morgan{}))

	res, err := gen.Generate(context.Background(), degseq.Sequence{2, 2, 2})
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Count, res.Status)
	// Output:
	// 0:1,0:2,1:2
	// 1 exhausted
}

func ExampleWithDisconnected() {
	var out degseq.Collector
	gen := degseq.New(&out, degseq.WithDisconnected())

	if _, err := gen.Generate(context.Background(), degseq.Sequence{1, 1, 1, 1}); err != nil {
		panic(err)
	}
	for _, g := range out.Graphs() {
		fmt.Println(g)
	}
	// Output:
	// 0:1,2:3
}

func ExampleParse() {
	seq, err := degseq.Parse("3 3 2 2 1 1")
	if err != nil {
		panic(err)
	}
	fmt.Println(seq, seq.IsGraphical())
	// Output:
	// 3,3,2,2,1,1 true
}
