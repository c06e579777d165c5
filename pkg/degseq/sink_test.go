package degseq

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/orbitgen/pkg/graph"
)

func feed(t *testing.T, s Sink, graphs ...string) {
	t.Helper()
	s.Begin()
	for _, text := range graphs {
		if err := s.Accept(nil, graph.MustParse(text)); err != nil {
			t.Fatal(err)
		}
	}
	s.Finish()
}

func TestWriterSink(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "0:1,1:2\n0:1,0:2,1:2\n"},
		{FormatJSON, "{\"n\":3,\"edges\":[[0,1],[1,2]]}\n{\"n\":3,\"edges\":[[0,1],[0,2],[1,2]]}\n"},
		{FormatYAML, "n: 3\nedges: [[0, 1], [1, 2]]\n---\nn: 3\nedges: [[0, 1], [0, 2], [1, 2]]\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			feed(t, NewWriterSink(&buf, tt.format), "0:1,1:2", "0:1,0:2,1:2")
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

// failingWriter accepts limit bytes and then fails every write.
type failingWriter struct{ limit int }

var errDiskFull = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		n := w.limit
		w.limit = 0
		return n, errDiskFull
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestWriterSinkWithoutBegin(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		s := NewWriterSink(&buf, format)
		if err := s.Accept(nil, graph.MustParse("0:1")); err != nil {
			t.Errorf("%s: Accept without Begin: %v", format, err)
		}
		s.Finish()
		if s.Err() != nil || buf.Len() == 0 {
			t.Errorf("%s: Err() = %v, output %q", format, s.Err(), buf.String())
		}
	}
}

func TestWriterSinkErr(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON, FormatYAML} {
		s := NewWriterSink(&failingWriter{}, format)
		s.Begin()
		_ = s.Accept(nil, graph.MustParse("0:1,1:2"))
		s.Finish()
		// yaml.v3 reports writer failures as text, not wrapped errors.
		if err := s.Err(); err == nil || !strings.Contains(err.Error(), errDiskFull.Error()) {
			t.Errorf("%s: Err() = %v, want %v", format, err, errDiskFull)
		}

		s.Begin()
		if s.Err() != nil {
			t.Errorf("%s: Begin did not clear Err(): %v", format, s.Err())
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"", "text", "json", "yaml"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestIsomorphCounter(t *testing.T) {
	c := NewIsomorphCounter(false)
	feed(t, c,
		"0:1,1:2,2:3",     // path
		"0:2,2:1,1:3",     // path, relabelled
		"0:1,0:2,0:3",     // claw
		"1:0,1:2,1:3",     // claw, relabelled
		"3:0,3:1,3:2",     // claw again
		"0:1,2:3",         // matching
	)
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if c.Duplicates() != 3 {
		t.Errorf("Duplicates() = %d, want 3", c.Duplicates())
	}
	total := 0
	classes := c.Classes()
	for i, cl := range classes {
		total += cl.Count
		if i > 0 && strings.Compare(classes[i-1].Signature, cl.Signature) >= 0 {
			t.Errorf("classes not ordered by signature: %q before %q", classes[i-1].Signature, cl.Signature)
		}
	}
	if total != 6 {
		t.Errorf("counts sum to %d, want 6", total)
	}

	c.Begin()
	if c.Len() != 0 {
		t.Error("Begin should reset the counter")
	}
}

func TestIsomorphCounter_IgnoreDisconnected(t *testing.T) {
	c := NewIsomorphCounter(true)
	feed(t, c, "0:1,2:3", "0:1,1:2,2:3")
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCollector_BeginResets(t *testing.T) {
	var c Collector
	feed(t, &c, "0:1")
	feed(t, &c, "0:1", "1:2")
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}
