// Package annotations implements the base-definition handler: classes that
// declare input/output bindings on their members without being a component,
// directive or module themselves get a generated `ngBaseDef` field.
//
// The handler runs with weak precedence, so any stronger handler that claims
// the class wins.
package annotations
