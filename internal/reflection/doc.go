// Package reflection exposes parsed classes the way the compiler handlers
// consume them: decorators resolved to their imports and classified once,
// members in declaration order.
package reflection
