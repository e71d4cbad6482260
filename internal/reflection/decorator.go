package reflection

import (
	"basedef/internal/ast"
	"basedef/internal/source"
)

// Marker is the capture-time classification of a decorator by its imported name.
type Marker uint8

const (
	MarkerUnknown Marker = iota
	MarkerInput
	MarkerOutput
	MarkerPrimary // Component, Directive, NgModule
)

var markerNames = [...]string{
	MarkerUnknown: "unknown",
	MarkerInput:   "input",
	MarkerOutput:  "output",
	MarkerPrimary: "primary",
}

func (m Marker) String() string {
	if int(m) < len(markerNames) {
		return markerNames[m]
	}
	return "invalid"
}

// markersByName — каталог распознаваемых декораторов.
var markersByName = map[string]Marker{
	"Input":     MarkerInput,
	"Output":    MarkerOutput,
	"Component": MarkerPrimary,
	"Directive": MarkerPrimary,
	"NgModule":  MarkerPrimary,
}

// MarkerOf classifies a decorator name.
func MarkerOf(name string) Marker {
	return markersByName[name]
}

// Import is the origin of a decorator: the exported name and module it came from.
type Import struct {
	Name string
	From string
}

// Decorator is a resolved, classified decorator application.
type Decorator struct {
	// Name is the imported name when the decorator resolves to an import,
	// otherwise the identifier as written.
	Name    string
	Local   string
	Import  *Import
	Args    []ast.ExprID
	Span    source.Span
	Marker  Marker
	Trusted bool
}

// Is reports whether d is a trusted decorator with the given marker.
func (d Decorator) Is(m Marker) bool {
	return d.Trusted && d.Marker == m
}
