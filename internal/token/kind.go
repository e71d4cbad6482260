package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	StringLit   // '...' or "..."
	TemplateLit // `...`
	NumberLit

	KwImport
	KwExport
	KwConst
	KwLet
	KwClass
	KwExtends
	KwImplements
	KwAbstract
	KwTrue
	KwFalse
	KwNull
	KwUndefined

	At        // @
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Dot       // .
	Ellipsis  // ...
	Semicolon // ;
	Colon     // :
	Question  // ?
	Bang      // !
	Assign    // =
	Arrow     // =>
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Lt        // <
	Gt        // >
	Pipe      // |
	Amp       // &
	Other     // any other operator character; only meaningful inside skipped regions
)

var kindNames = [...]string{
	Invalid:      "invalid",
	EOF:          "end of file",
	Ident:        "identifier",
	StringLit:    "string literal",
	TemplateLit:  "template literal",
	NumberLit:    "number literal",
	KwImport:     "'import'",
	KwExport:     "'export'",
	KwConst:      "'const'",
	KwLet:        "'let'",
	KwClass:      "'class'",
	KwExtends:    "'extends'",
	KwImplements: "'implements'",
	KwAbstract:   "'abstract'",
	KwTrue:       "'true'",
	KwFalse:      "'false'",
	KwNull:       "'null'",
	KwUndefined:  "'undefined'",
	At:           "'@'",
	LParen:       "'('",
	RParen:       "')'",
	LBrace:       "'{'",
	RBrace:       "'}'",
	LBracket:     "'['",
	RBracket:     "']'",
	Comma:        "','",
	Dot:          "'.'",
	Ellipsis:     "'...'",
	Semicolon:    "';'",
	Colon:        "':'",
	Question:     "'?'",
	Bang:         "'!'",
	Assign:       "'='",
	Arrow:        "'=>'",
	Plus:         "'+'",
	Minus:        "'-'",
	Star:         "'*'",
	Slash:        "'/'",
	Lt:           "'<'",
	Gt:           "'>'",
	Pipe:         "'|'",
	Amp:          "'&'",
	Other:        "operator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
