package rigidity_test

import (
	"fmt"

	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/rigidity"
)

func ExampleIsRigid() {
	for _, s := range []string{"0:1,1:2,2:3", "0:1,1:2,2:3,3:4,4:5,2:6"} {
		rigid, err := rigidity.IsRigid(graph.MustParse(s))
		if err != nil {
			panic(err)
		}
		fmt.Println(s, rigid)
	}
	// Output:
	// 0:1,1:2,2:3 false
	// 0:1,1:2,2:3,3:4,4:5,2:6 true
}
