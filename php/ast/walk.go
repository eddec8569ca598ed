package ast

// Conditional is implemented by constructs that carry a condition.
type Conditional interface {
	Node
	ConditionText() string
}

func (c *Control) ConditionText() string { return c.Condition }

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// ChildrenOfKind returns the direct children of n with the given kind.
func ChildrenOfKind(n Node, kind Kind) []Node {
	var out []Node
	for i := 0; i < n.NumChildren(); i++ {
		if c := n.ChildAt(i); c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

func FirstChildOfKind(n Node, kind Kind) Node {
	for i := 0; i < n.NumChildren(); i++ {
		if c := n.ChildAt(i); c.Kind() == kind {
			return c
		}
	}
	return nil
}

// FindNamed returns the first direct child of the given kind whose name
// equals name.
func FindNamed(n Node, kind Kind, name string) Named {
	for i := 0; i < n.NumChildren(); i++ {
		c := n.ChildAt(i)
		if c.Kind() != kind {
			continue
		}
		if named, ok := c.(Named); ok && named.Name() == name {
			return named
		}
	}
	return nil
}

// Structural returns every class, function and variable node under n in
// document order. The result is a snapshot; mutating the tree does not
// change it.
func Structural(n Node) []Node {
	var out []Node
	Walk(n, func(c Node) bool {
		if c.Kind().IsStructural() {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Enclosing returns the nearest ancestor of n with the given kind.
func Enclosing(n Node, kind Kind) Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == kind {
			return p
		}
	}
	return nil
}
