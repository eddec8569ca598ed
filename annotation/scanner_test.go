package annotation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(instances []*Instance) []string {
	var out []string
	for _, i := range instances {
		out = append(out, i.Name)
	}
	return out
}

func TestScanFindsAnnotations(t *testing.T) {
	doc := "/**\n * Holds items.\n *\n * @ArrayProperty(\"items\")\n * @Cached\n */"
	got, err := NewScanner().Scan(doc, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "ArrayProperty", got[0].Name)
	assert.Equal(t, []Value{String("items")}, got[0].Args)
	assert.Equal(t, 13, got[0].Line)
	assert.Equal(t, "Cached", got[1].Name)
	assert.Empty(t, got[1].Args)
	assert.Equal(t, 14, got[1].Line)
}

func TestScanIgnoresDocumentationTags(t *testing.T) {
	tests := []string{
		"@param string $name the name",
		"@param(string $name)",
		"@return int",
		"@author Someone <someone@example.com>",
		"@var array",
		"@see Foo::bar()",
		"mail me at me@example.com",
		"a lone @ sign",
	}

	for _, doc := range tests {
		t.Run(doc, func(t *testing.T) {
			got, err := NewScanner().Scan(doc, 1)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestScanIgnoreIsCaseSensitive(t *testing.T) {
	got, err := NewScanner().Scan("@Param @param", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Param"}, names(got))
}

func TestScanWithIgnored(t *testing.T) {
	s := NewScanner(WithIgnored("Internal", "Generated"))
	got, err := s.Scan("@Internal @Generated(\"x\") @Keep", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Keep"}, names(got))
	assert.True(t, s.IsIgnored("Internal"))
	assert.False(t, NewScanner().IsIgnored("Internal"))
}

func TestScanArgumentTypes(t *testing.T) {
	doc := `@Foo(1, -2, true, FALSE, null, "s", 'q\'t', CONST_X, Foo::BAR, "a, b)")`
	got, err := NewScanner().Scan(doc, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []Value{
		Int(1),
		Int(-2),
		Bool(true),
		Bool(false),
		Null{},
		String("s"),
		String("q't"),
		Raw("CONST_X"),
		Raw("Foo::BAR"),
		String("a, b)"),
	}, got[0].Args)
}

func TestScanNestedAnnotation(t *testing.T) {
	got, err := NewScanner().Scan(`@Outer(@Inner("x"))`, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	outer := got[0]
	assert.Equal(t, "Outer", outer.Name)
	require.Len(t, outer.Args, 1)
	nested, ok := outer.Args[0].(Nested)
	require.True(t, ok, "first argument is %T", outer.Args[0])
	assert.Equal(t, "Inner", nested.Instance.Name)
	assert.Equal(t, []Value{String("x")}, nested.Instance.Args)
	assert.Equal(t, `@Outer(@Inner("x"))`, outer.String())
}

func TestScanNestedWithSiblings(t *testing.T) {
	got, err := NewScanner().Scan(`@Outer(@Inner("a", 2), 3) @Next`, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Outer", "Next"}, names(got))

	inner := got[0].Args[0].(Nested).Instance
	assert.Equal(t, []Value{String("a"), Int(2)}, inner.Args)
	assert.Equal(t, Int(3), got[0].Args[1])
}

func TestScanMultilineArguments(t *testing.T) {
	doc := "/**\n * @Route(\"/users\",\n *        GET)\n */"
	got, err := NewScanner().Scan(doc, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []Value{String("/users"), Raw("GET")}, got[0].Args)
}

func TestScanUnterminated(t *testing.T) {
	_, err := NewScanner().Scan("\n@Broken(\"x\"", 4)
	var resErr *ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "Broken", resErr.Name)
	assert.Equal(t, 5, resErr.Line)
	assert.True(t, errors.Is(err, ErrUnterminated))
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Int(42), "42"},
		{Bool(false), "false"},
		{Null{}, "null"},
		{String(`a"b`), `"a\"b"`},
		{Raw("X::Y"), "X::Y"},
		{Nested{Instance: &Instance{Name: "A"}}, "@A"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}
