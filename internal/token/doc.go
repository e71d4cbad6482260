// Package token defines the lexical vocabulary of the decorated-class dialect:
// a TypeScript subset large enough to describe classes, their decorators,
// imports and constant declarations.
//
// Only reserved words that can never be member names are keywords. Contextual
// words (from, as, get, set, static, readonly, public, private, protected)
// are lexed as Ident and recognised by the parser.
package token
