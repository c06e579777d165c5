package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// keyVersion changes whenever the stored result layout or the generator's
// output changes, invalidating older entries.
const keyVersion = 1

// RunKeyOpts are the inputs that determine a generation run's output.
type RunKeyOpts struct {
	Degrees      []int  `json:"degrees"`
	Partitioner  string `json:"partitioner"`
	Disconnected bool   `json:"disconnected"`
	MaxResults   int    `json:"max_results"`
}

// material renders the options as "d=3,3,2,2,1,1;p=signature;c=1;m=0".
// Workers and timeouts are not part of it.
func (o RunKeyOpts) material() string {
	var b strings.Builder
	b.WriteString("d=")
	for i, d := range o.Degrees {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(d))
	}
	connected := 1
	if o.Disconnected {
		connected = 0
	}
	fmt.Fprintf(&b, ";p=%s;c=%d;m=%d", o.Partitioner, connected, o.MaxResults)
	return b.String()
}

// Keyer derives cache keys.
type Keyer interface {
	// RunKey returns the key of a generation result.
	RunKey(opts RunKeyOpts) string

	// GraphKey returns the key of a per-graph artifact, such as an
	// automorphism report or a rendering, of the given kind.
	GraphKey(kind, graph string) string
}

// DefaultKeyer hashes run inputs into fixed-length keys of the form
// "run:v1:<sha256>" and "graph:<kind>:v1:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RunKey implements Keyer.
func (DefaultKeyer) RunKey(opts RunKeyOpts) string {
	return digest(fmt.Sprintf("run:v%d", keyVersion), opts.material())
}

// GraphKey implements Keyer. The graph text is hashed as given.
func (DefaultKeyer) GraphKey(kind, graph string) string {
	return digest(fmt.Sprintf("graph:%s:v%d", kind, keyVersion), graph)
}

func digest(prefix, material string) string {
	sum := sha256.Sum256([]byte(material))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
