package annotations

import (
	"basedef/internal/reflection"
)

// Candidate is a member bound by a trusted @Input or @Output.
type Candidate struct {
	Property  string
	Decorator reflection.Decorator
}

// BaseDefDetection holds the input and output candidates of a class in
// declaration order. Both slices are always non-nil.
type BaseDefDetection struct {
	Inputs  []Candidate
	Outputs []Candidate
}

// Empty reports whether no member was bound.
func (d BaseDefDetection) Empty() bool {
	return len(d.Inputs) == 0 && len(d.Outputs) == 0
}

// scanMembers buckets trusted input/output decorators. A member carrying both
// lands in both buckets; a member with two inputs appears twice.
func scanMembers(members []reflection.ClassMember) BaseDefDetection {
	det := BaseDefDetection{
		Inputs:  []Candidate{},
		Outputs: []Candidate{},
	}
	for _, m := range members {
		for _, d := range m.Decorators {
			switch {
			case d.Is(reflection.MarkerInput):
				det.Inputs = append(det.Inputs, Candidate{Property: m.Name, Decorator: d})
			case d.Is(reflection.MarkerOutput):
				det.Outputs = append(det.Outputs, Candidate{Property: m.Name, Decorator: d})
			}
		}
	}
	return det
}
