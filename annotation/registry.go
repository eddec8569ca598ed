package annotation

import (
	"sort"

	"github.com/dhamidi/phpgen/php/reflection"
)

// Factory binds an annotation to its target and arguments. Returning an
// error refuses the binding, for example when the target kind or the
// arguments do not fit.
type Factory func(target reflection.Reflection, args []Value) (Annotation, error)

// Registry maps annotation names to factories.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a new registry holding the built-in annotations.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ArrayPropertyName, NewArrayProperty)
	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
