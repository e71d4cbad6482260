package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedBlock  Code = 1003
	LexBadNumber          Code = 1004
	LexInvalidUTF8        Code = 1005

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectExpression   Code = 2004
	SynUnclosedDelimiter  Code = 2005
	SynExpectModulePath   Code = 2006
	SynDecoratorNoTarget  Code = 2007
	SynExpectClassBody    Code = 2008

	// Семантические
	SemaInfo                    Code = 3000
	SemaAliasNotString          Code = 3101
	SemaNotConstant             Code = 3102
	SemaAnalysisFailed          Code = 3103
	SemaMultiplePrimaryHandlers Code = 3104
	SemaDuplicateBinding        Code = 3105

	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	ProjInfo            Code = 5000
	ProjInvalidManifest Code = 5001
	ProjNoSources       Code = 5002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlock:        "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexInvalidUTF8:              "Invalid UTF-8 in string literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected expression",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynExpectModulePath:         "Expected module path string",
	SynDecoratorNoTarget:        "Decorator is not followed by a class or member",
	SynExpectClassBody:          "Expected class body",
	SemaInfo:                    "Semantic information",
	SemaAliasNotString:          "Binding alias does not resolve to a string value",
	SemaNotConstant:             "Expression is not a compile-time constant",
	SemaAnalysisFailed:          "Class analysis failed",
	SemaMultiplePrimaryHandlers: "Class is claimed by more than one primary handler",
	SemaDuplicateBinding:        "Member bound more than once",
	IOLoadFileError:             "I/O load file error",
	IOCacheError:                "Disk cache error",
	ProjInfo:                    "Project information",
	ProjInvalidManifest:         "Invalid project manifest",
	ProjNoSources:               "No source files found",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Global reports whether diagnostics with this code are about the run rather
// than a source location; their Primary span is meaningless.
func (c Code) Global() bool {
	return c == IOLoadFileError || c >= ProjInfo
}
