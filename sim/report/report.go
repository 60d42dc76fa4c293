// Package report renders sweep output. Every sink implements sim.Reporter.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/inference-sim/checkpoint-sim/sim"
)

// Format names a report rendering.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var constructors = map[Format]func(io.Writer) sim.Reporter{
	FormatText: func(w io.Writer) sim.Reporter { return NewTextReporter(w) },
	FormatCSV:  func(w io.Writer) sim.Reporter { return NewCSVReporter(w) },
	FormatJSON: func(w io.Writer) sim.Reporter { return NewDocumentReporter(w, FormatJSON) },
	FormatYAML: func(w io.Writer) sim.Reporter { return NewDocumentReporter(w, FormatYAML) },
}

// Formats lists the accepted format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(constructors))
	for f := range constructors {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// New returns the sink for format writing to w.
func New(format string, w io.Writer) (sim.Reporter, error) {
	ctor, ok := constructors[Format(format)]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q (valid: %v)", format, Formats())
	}
	return ctor(w), nil
}
