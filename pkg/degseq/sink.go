package degseq

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/emirpasic/gods/maps/treemap"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/partition"
	"github.com/matzehuels/orbitgen/pkg/refine"
)

// Sink receives the graphs of one generation run.
//
// Begin is called once before the first graph and Finish once after the
// last, including after an aborted run. Accept is called once per reported
// graph with the partial graph it was completed from; a non-nil error stops
// the run and is returned by [Generator.Generate]. The generator never calls
// a Sink from two goroutines at once.
type Sink interface {
	Begin()
	Accept(parent, g *graph.Graph) error
	Finish()
}

// =============================================================================
// FuncSink
// =============================================================================

// FuncSink adapts a function to [Sink]. Begin and Finish do nothing.
type FuncSink func(parent, g *graph.Graph) error

func (FuncSink) Begin()  {}
func (FuncSink) Finish() {}

// Accept calls f.
func (f FuncSink) Accept(parent, g *graph.Graph) error { return f(parent, g) }

// =============================================================================
// Collector
// =============================================================================

// Collector keeps every reported graph in arrival order.
type Collector struct {
	graphs []*graph.Graph
}

// Begin clears graphs from a previous run.
func (c *Collector) Begin() { c.graphs = nil }

// Accept stores g.
func (c *Collector) Accept(_, g *graph.Graph) error {
	c.graphs = append(c.graphs, g)
	return nil
}

func (c *Collector) Finish() {}

// Graphs returns the collected graphs.
func (c *Collector) Graphs() []*graph.Graph { return c.graphs }

// Len returns the number of collected graphs.
func (c *Collector) Len() int { return len(c.graphs) }

// =============================================================================
// WriterSink
// =============================================================================

// Format selects the encoding used by [WriterSink].
type Format string

const (
	// FormatText writes one "a:b,..." line per graph.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
	// FormatYAML writes one YAML document per graph.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty name selects [FormatText].
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// WriterSink streams graphs to an io.Writer as they are reported. Write and
// flush failures are kept and reported by [WriterSink.Err].
type WriterSink struct {
	w       io.Writer
	format  Format
	jsonEnc *json.Encoder
	yamlEnc *yaml.Encoder
	err     error
}

// NewWriterSink returns a sink writing to w in the given format.
func NewWriterSink(w io.Writer, format Format) *WriterSink {
	return &WriterSink{w: w, format: format}
}

// Begin starts a new stream and clears any earlier error.
func (s *WriterSink) Begin() {
	s.jsonEnc, s.yamlEnc, s.err = nil, nil, nil
}

// Accept writes g. Encoders are created on first use, so Begin is optional.
func (s *WriterSink) Accept(_, g *graph.Graph) error {
	var err error
	switch s.format {
	case FormatJSON:
		if s.jsonEnc == nil {
			s.jsonEnc = json.NewEncoder(s.w)
		}
		err = s.jsonEnc.Encode(graph.ToWire(g))
	case FormatYAML:
		if s.yamlEnc == nil {
			s.yamlEnc = yaml.NewEncoder(s.w)
			s.yamlEnc.SetIndent(2)
		}
		err = s.yamlEnc.Encode(graph.ToWire(g))
	default:
		_, err = fmt.Fprintln(s.w, g)
	}
	if err != nil && s.err == nil {
		s.err = err
	}
	return err
}

// Err returns the first write or flush error since Begin.
func (s *WriterSink) Err() error { return s.err }

// Finish flushes the YAML stream.
func (s *WriterSink) Finish() {
	if s.yamlEnc != nil {
		if err := s.yamlEnc.Close(); err != nil && s.err == nil {
			s.err = err
		}
		s.yamlEnc = nil
	}
}

// =============================================================================
// IsomorphCounter
// =============================================================================

// Class is one isomorphism class seen by an [IsomorphCounter].
type Class struct {
	Signature string       // canonical text form
	Graph     *graph.Graph // first graph reported in the class
	Count     int          // number of graphs reported in the class
}

// IsomorphCounter groups reported graphs by isomorphism class. With a
// correct generator every class has count one; the counter exists to check
// that claim and to tally the output of other generators.
type IsomorphCounter struct {
	ignoreDisconnected bool
	classes            *treemap.Map // signature -> *Class
}

// NewIsomorphCounter returns an empty counter. When ignoreDisconnected is
// set, disconnected graphs are dropped without being counted.
func NewIsomorphCounter(ignoreDisconnected bool) *IsomorphCounter {
	return &IsomorphCounter{
		ignoreDisconnected: ignoreDisconnected,
		classes:            treemap.NewWithStringComparator(),
	}
}

// Begin clears classes from a previous run.
func (c *IsomorphCounter) Begin() { c.classes.Clear() }

// Accept files g under its canonical signature.
func (c *IsomorphCounter) Accept(_, g *graph.Graph) error {
	if c.ignoreDisconnected && !g.IsConnected() {
		return nil
	}
	sig, err := CanonicalSignature(g)
	if err != nil {
		return err
	}
	if v, ok := c.classes.Get(sig); ok {
		v.(*Class).Count++
		return nil
	}
	c.classes.Put(sig, &Class{Signature: sig, Graph: g, Count: 1})
	return nil
}

func (c *IsomorphCounter) Finish() {}

// Len returns the number of distinct classes.
func (c *IsomorphCounter) Len() int { return c.classes.Size() }

// Classes returns the classes ordered by signature.
func (c *IsomorphCounter) Classes() []Class {
	out := make([]Class, 0, c.classes.Size())
	it := c.classes.Iterator()
	for it.Next() {
		out = append(out, *it.Value().(*Class))
	}
	return out
}

// Duplicates returns how many reported graphs repeated an earlier class.
func (c *IsomorphCounter) Duplicates() int {
	dup := 0
	it := c.classes.Iterator()
	for it.Next() {
		dup += it.Value().(*Class).Count - 1
	}
	return dup
}

// CanonicalSignature returns a string that two graphs share exactly when
// they are isomorphic.
func CanonicalSignature(g *graph.Graph) (string, error) {
	n := g.VertexCount()
	res, err := refine.New(g).Automorphisms(partition.Unit(n))
	if err != nil {
		return "", fmt.Errorf("canonical signature of %s: %w", g, err)
	}
	return fmt.Sprintf("%d|%s", n, res.Canonical(g)), nil
}
