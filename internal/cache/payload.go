package cache

import (
	"basedef/internal/diag"
	"basedef/internal/project"
	"basedef/internal/source"
)

// Current schema version - increment when Payload format changes
const SchemaVersion uint16 = 1

// Payload is the cached compile result of one file. Spans are stored as byte
// offsets into the file the payload was produced from.
type Payload struct {
	Schema      uint16
	Path        string
	Hash        project.Digest
	Imports     []string // import statements the printed fields rely on
	Classes     []ClassPayload
	Diagnostics []DiagPayload
}

type ClassPayload struct {
	Name   string
	Start  uint32
	End    uint32
	Fields []FieldPayload
}

// FieldPayload is a rendered static field: `Name = Initializer` typed as Type.
type FieldPayload struct {
	Name        string
	Initializer string
	Type        string
}

type DiagPayload struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []NotePayload
}

type NotePayload struct {
	Message string
	Start   uint32
	End     uint32
}

// Valid reports whether p was written by this schema for hash.
func (p *Payload) Valid(hash project.Digest) bool {
	return p != nil && p.Schema == SchemaVersion && p.Hash == hash
}

// EncodeDiagnostics captures diagnostics of one file. ok is false when a
// diagnostic points outside file; such results are not cacheable.
func EncodeDiagnostics(file source.FileID, items []diag.Diagnostic) (out []DiagPayload, ok bool) {
	out = make([]DiagPayload, 0, len(items))
	for _, d := range items {
		if d.Primary.File != file {
			return nil, false
		}
		dp := DiagPayload{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			if n.Span.File != file {
				return nil, false
			}
			dp.Notes = append(dp.Notes, NotePayload{Message: n.Msg, Start: n.Span.Start, End: n.Span.End})
		}
		out = append(out, dp)
	}
	return out, true
}

// DecodeDiagnostics rebuilds diagnostics against the current FileID.
func DecodeDiagnostics(file source.FileID, in []DiagPayload) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(in))
	for _, dp := range in {
		d := diag.New(diag.Severity(dp.Severity), diag.Code(dp.Code),
			source.Span{File: file, Start: dp.Start, End: dp.End}, dp.Message)
		for _, n := range dp.Notes {
			d = d.WithNote(source.Span{File: file, Start: n.Start, End: n.End}, n.Message)
		}
		out = append(out, d)
	}
	return out
}
