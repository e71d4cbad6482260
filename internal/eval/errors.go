package eval

import (
	"fmt"

	"basedef/internal/source"
)

// Reason says why an expression could not be folded to a constant.
type Reason uint8

const (
	ReasonUnsupported Reason = iota
	ReasonUnknownIdentifier
	ReasonCycle
	ReasonMissingImport
	ReasonInvalid
)

var reasonNames = [...]string{
	ReasonUnsupported:       "unsupported expression",
	ReasonUnknownIdentifier: "unknown identifier",
	ReasonCycle:             "cyclic constant",
	ReasonMissingImport:     "missing import target",
	ReasonInvalid:           "invalid expression",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown reason"
}

// DynamicError reports a value that is not statically known.
type DynamicError struct {
	Reason Reason
	Span   source.Span
	Detail string
}

func (e *DynamicError) Error() string {
	if e.Detail == "" {
		return "value is not statically known: " + e.Reason.String()
	}
	return fmt.Sprintf("value is not statically known: %s: %s", e.Reason, e.Detail)
}

func dynamic(reason Reason, sp source.Span, format string, args ...any) *DynamicError {
	return &DynamicError{Reason: reason, Span: sp, Detail: fmt.Sprintf(format, args...)}
}

// ErrorSpan points at the expression that could not be folded.
func (e *DynamicError) ErrorSpan() source.Span {
	return e.Span
}
