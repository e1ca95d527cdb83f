package protocol

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"plugin-compiler/internal/diagnostic"
)

// FuncRef is an opaque reference to an activation or deactivation
// function. The compiler never calls it; it is handed to the protocol as
// is and must stay valid for the lifetime of the process that loads the
// module.
type FuncRef struct {
	Loader string
	Symbol string
}

func (f FuncRef) String() string {
	return f.Loader + "::" + f.Symbol
}

// Loader supplies the callbacks of the modules it activates.
type Loader interface {
	Activate(kind string) FuncRef
	// Deactivate returns false when the module has no deactivation step.
	Deactivate(kind string) (FuncRef, bool)
}

// KindPlaceholder is replaced by the module kind in SymbolLoader symbols.
const KindPlaceholder = "{kind}"

// SymbolLoader resolves callbacks to fixed symbol names.
type SymbolLoader struct {
	Name             string
	ActivateSymbol   string
	DeactivateSymbol string
}

// Activate implements Loader.
func (l SymbolLoader) Activate(kind string) FuncRef {
	return FuncRef{Loader: l.Name, Symbol: strings.ReplaceAll(l.ActivateSymbol, KindPlaceholder, kind)}
}

// Deactivate implements Loader.
func (l SymbolLoader) Deactivate(kind string) (FuncRef, bool) {
	if l.DeactivateSymbol == "" {
		return FuncRef{}, false
	}

	return FuncRef{Loader: l.Name, Symbol: strings.ReplaceAll(l.DeactivateSymbol, KindPlaceholder, kind)}, true
}

// ConventionLoader is used for loaders that are not registered when the
// registry allows it: `activate_{kind}` and no deactivation.
func ConventionLoader(name string) Loader {
	return SymbolLoader{Name: name, ActivateSymbol: "activate_" + KindPlaceholder}
}

// Registry maps loader identifiers to loaders.
type Registry struct {
	loaders map[string]Loader
	// Fallback, when set, resolves loaders that were not registered.
	Fallback func(name string) Loader
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{loaders: map[string]Loader{}}
}

// Register adds or replaces the loader for name.
func (r *Registry) Register(name string, l Loader) {
	r.loaders[name] = l
}

// Names returns the registered loader names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.loaders))
	for n := range r.loaders {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Lookup resolves a loader. rng locates the loader identifier in the
// source for the error.
func (r *Registry) Lookup(name string, rng hcl.Range) (Loader, error) {
	if l, ok := r.loaders[name]; ok {
		return l, nil
	}

	if r.Fallback != nil {
		if l := r.Fallback(name); l != nil {
			return l, nil
		}
	}

	err := diagnostic.Newf(diagnostic.KindLoader, rng, "loader `%s` is not registered", name).WithKey(name)
	if len(r.loaders) == 0 {
		return nil, err.WithSuggestion("no loaders are configured")
	}

	return nil, err.WithSuggestion(fmt.Sprintf("known loaders: %s", strings.Join(r.Names(), ", ")))
}
