package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned by [ParseFormat] for an unrecognized name.
var ErrUnknownFormat = errors.New("unknown render format")

// Format names an output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatDOT, FormatSVG, FormatPNG}

// ParseFormat resolves a format name, ignoring case. The empty name selects
// SVG.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatSVG, nil
	}
	f := Format(strings.ToLower(name))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be one of: dot, svg, png)", ErrUnknownFormat, name)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string { return "." + string(f) }
