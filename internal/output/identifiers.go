package output

// DefaultCoreModule is the framework module trusted decorators come from and
// generated definitions import their runtime from.
const DefaultCoreModule = "@angular/core"

// Identifiers are the runtime symbols generated code refers to.
type Identifiers struct {
	DefineBase ExternalReference
	BaseDef    ExternalReference
}

// IdentifiersFor returns the runtime symbols exported by module.
// An empty module means DefaultCoreModule.
func IdentifiersFor(module string) Identifiers {
	if module == "" {
		module = DefaultCoreModule
	}
	return Identifiers{
		DefineBase: ExternalReference{ModuleName: module, Name: "ɵɵdefineBase"},
		BaseDef:    ExternalReference{ModuleName: module, Name: "ɵɵBaseDef"},
	}
}
