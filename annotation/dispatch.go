package annotation

import (
	"github.com/dhamidi/phpgen/php/ast"
	"github.com/dhamidi/phpgen/php/reflection"
	"github.com/tliron/commonlog"
)

type DispatchOption func(*Dispatcher)

func WithLogger(log commonlog.Logger) DispatchOption {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// Dispatcher scans doc comments, resolves the annotations found against a
// registry and applies them.
type Dispatcher struct {
	registry *Registry
	scanner  *Scanner
	log      commonlog.Logger
}

func NewDispatcher(registry *Registry, scanner *Scanner, opts ...DispatchOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		scanner:  scanner,
		log:      commonlog.GetLogger("phpgen.annotation"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolve binds every instance, nested arguments included, to target. It
// stops at the first instance that cannot be bound.
func (d *Dispatcher) Resolve(instances []*Instance, target reflection.Reflection) error {
	for _, inst := range instances {
		for _, arg := range inst.Args {
			if nested, ok := arg.(Nested); ok && nested.Instance != nil {
				if err := d.Resolve([]*Instance{nested.Instance}, target); err != nil {
					return err
				}
			}
		}
		factory, ok := d.registry.Lookup(inst.Name)
		if !ok {
			return &ResolutionError{Name: inst.Name, Line: inst.Line, Err: ErrNotRegistered}
		}
		a, err := factory(target, inst.Args)
		if err != nil {
			return &ResolutionError{Name: inst.Name, Line: inst.Line, Err: err}
		}
		inst.Annotation = a
	}
	return nil
}

// Dispatch scans the doc comment of target, resolves all annotations and
// then applies the top-level ones in the order they appear. Each
// application sees the mutations of the ones before it.
func (d *Dispatcher) Dispatch(target reflection.Reflection) ([]*Instance, error) {
	doc := target.DocComment()
	if doc == "" {
		return nil, nil
	}
	instances, err := d.scanner.Scan(doc, docStartLine(target.Line(), doc))
	if err != nil {
		return nil, err
	}
	if err := d.Resolve(instances, target); err != nil {
		return nil, err
	}
	for _, inst := range instances {
		d.log.Debugf("line %d: applying %s", inst.Line, inst)
		if err := inst.Annotation.Apply(); err != nil {
			return nil, &ApplyError{Name: inst.Name, Line: inst.Line, Err: err}
		}
	}
	return instances, nil
}

// DispatchTree dispatches the annotations of every class, function and
// variable of root, in document order. Nodes added by an annotation are not
// visited.
func (d *Dispatcher) DispatchTree(root *ast.Root) ([]*Instance, error) {
	var applied []*Instance
	for _, n := range ast.Structural(root) {
		target := reflection.For(n)
		if target == nil {
			continue
		}
		instances, err := d.Dispatch(target)
		if err != nil {
			return applied, err
		}
		applied = append(applied, instances...)
	}
	return applied, nil
}

// docStartLine estimates the line a doc comment starts on from the line of
// the declaration it documents.
func docStartLine(declLine int, doc string) int {
	if declLine == 0 {
		return 0
	}
	lines := 1
	for _, r := range doc {
		if r == '\n' {
			lines++
		}
	}
	if start := declLine - lines; start > 0 {
		return start
	}
	return 1
}
