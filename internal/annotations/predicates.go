package annotations

import (
	"basedef/internal/reflection"
)

// IsTrustedOrigin reports whether d resolved to an import from the core module.
func IsTrustedOrigin(d reflection.Decorator) bool {
	return d.Trusted
}

// HasPrimaryAnnotation reports whether decorators contain a trusted
// Component, Directive or NgModule.
func HasPrimaryAnnotation(decorators []reflection.Decorator) bool {
	for _, d := range decorators {
		if d.Marker == reflection.MarkerPrimary && IsTrustedOrigin(d) {
			return true
		}
	}
	return false
}
