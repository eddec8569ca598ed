// Package annotation finds @Name(args) markers in doc comments, binds them
// to registered implementations and applies them to the annotated node.
package annotation

import (
	"errors"
	"fmt"
	"strings"
)

// Annotation is a bound transformation, ready to mutate the tree.
type Annotation interface {
	Apply() error
}

// Instance is one annotation found in a doc comment.
type Instance struct {
	Name string
	Args []Value
	// Line is the source line of the '@'.
	Line int
	// Annotation is set once the instance has been resolved.
	Annotation Annotation
}

func (i *Instance) String() string {
	if len(i.Args) == 0 {
		return "@" + i.Name
	}
	args := make([]string, len(i.Args))
	for n, a := range i.Args {
		args[n] = a.String()
	}
	return "@" + i.Name + "(" + strings.Join(args, ", ") + ")"
}

var (
	ErrNotRegistered = errors.New("no annotation registered")
	ErrUnterminated  = errors.New("unterminated argument list")
)

// ResolutionError reports an annotation that could not be bound to an
// implementation, either because none is registered under its name or
// because the factory refused the target or arguments.
type ResolutionError struct {
	Name string
	Line int
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("line %d: annotation @%s: %v", e.Line, e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ApplyError reports a failure inside an annotation's transformation.
type ApplyError struct {
	Name string
	Line int
	Err  error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("line %d: applying @%s: %v", e.Line, e.Name, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }
