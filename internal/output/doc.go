// Package output holds the generated-code AST, the printer that renders it
// as TypeScript, and the emission of base definitions from metadata.
package output
