package ast

import "strings"

type Modifier int

const (
	ModifierPublic Modifier = iota + 1
	ModifierPrivate
	ModifierProtected
	ModifierStatic
	ModifierAbstract
	ModifierFinal
)

var modifierNames = map[Modifier]string{
	ModifierPublic:    "public",
	ModifierPrivate:   "private",
	ModifierProtected: "protected",
	ModifierStatic:    "static",
	ModifierAbstract:  "abstract",
	ModifierFinal:     "final",
}

func (m Modifier) String() string {
	if name, ok := modifierNames[m]; ok {
		return name
	}
	return "unknown"
}

// IsVisibility reports whether m is one of public, private or protected.
func (m Modifier) IsVisibility() bool {
	return m == ModifierPublic || m == ModifierPrivate || m == ModifierProtected
}

// ParseModifier resolves a symbolic modifier name. Matching is
// case-insensitive and "var" is read as public.
func ParseModifier(name string) (Modifier, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "var" {
		return ModifierPublic, true
	}
	for m, n := range modifierNames {
		if n == name {
			return m, true
		}
	}
	return 0, false
}

// Attribute is a modifier attached to a node.
type Attribute struct {
	Modifier Modifier
	Line     int
	owner    Node
}

func NewAttribute(m Modifier, line int) *Attribute {
	return &Attribute{Modifier: m, Line: line}
}

// Owner returns the node the attribute is attached to, or nil.
func (a *Attribute) Owner() Node {
	return a.owner
}

func (a *Attribute) Generate() string {
	return a.Modifier.String()
}
