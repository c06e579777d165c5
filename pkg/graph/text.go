package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

var (
	// ErrSelfLoop is returned by [Parse] for a token whose endpoints coincide.
	ErrSelfLoop = errors.New("self-loop")

	// ErrVertexRange is returned by [ParseLimit] for an endpoint at or beyond
	// the limit.
	ErrVertexRange = errors.New("vertex out of range")
)

// edgeListExpr is the grammar of the text form: comma-separated "a:b" tokens.
type edgeListExpr struct {
	Edges []*edgeExpr `parser:"(@@ (\",\" @@)*)?"`
}

type edgeExpr struct {
	A int `parser:"@Int \":\""`
	B int `parser:"@Int"`
}

var parseEdgeList = participle.MustBuild[edgeListExpr]()

// Parse reads the text form produced by [Graph.String], for example
// "0:1,0:2,1:2". Token order is insignificant and whitespace is ignored. The
// vertex range is one past the largest endpoint.
func Parse(s string) (*Graph, error) {
	return ParseLimit(s, 0)
}

// ParseLimit is like [Parse] but rejects any endpoint >= limit before the
// graph is allocated. A limit <= 0 means unbounded.
func ParseLimit(s string, limit int) (*Graph, error) {
	expr, err := parseEdgeList.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parse graph: %w", err)
	}
	n := 0
	for _, e := range expr.Edges {
		if e.A == e.B {
			return nil, fmt.Errorf("parse graph: %w at vertex %d", ErrSelfLoop, e.A)
		}
		hi := max(e.A, e.B)
		if limit > 0 && hi >= limit {
			return nil, fmt.Errorf("parse graph: %w: vertex %d, limit %d", ErrVertexRange, hi, limit)
		}
		n = max(n, hi+1)
	}
	g := New(n)
	for _, e := range expr.Edges {
		g.AddEdge(e.A, e.B)
	}
	return g, nil
}

// MustParse is like [Parse] but panics on error. It is intended for fixtures.
func MustParse(s string) *Graph {
	g, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}

// String returns the text form with edges sorted, e.g. "0:1,0:2,1:2".
func (g *Graph) String() string {
	var b strings.Builder
	for i, e := range g.SortedEdges() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(e.A))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(e.B))
	}
	return b.String()
}
