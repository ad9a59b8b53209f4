package types_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appsworld/go-cppdecl/internal/parser"
	"github.com/appsworld/go-cppdecl/types"
)

func parse(t *testing.T, input string) types.MaybeAmbiguousDecl {
	t.Helper()
	d, rest, err := parser.ParseDecl(input, parser.AcceptEverything)
	require.NoError(t, err, input)
	require.Empty(t, rest, input)
	return d
}

func visitedNames(n types.Node, flags types.VisitFlags) []string {
	var names []string
	types.VisitEachQualifiedName(n, flags, func(q *types.QualifiedName) {
		names = append(names, q.ToCode(0))
	})
	return names
}

func TestVisitEachQualifiedName(t *testing.T) {
	d := parse(t, "std::map<A, B::C> f(D d)")

	tests := []struct {
		flags types.VisitFlags
		want  []string
	}{
		{0, []string{"std::map<A, B::C>", "A", "B::C", "D", "d", "f"}},
		{types.VisitOnlyTypes, []string{"std::map<A, B::C>", "A", "B::C", "D"}},
		{types.VisitNoRecurseIntoNames, []string{"std::map<A, B::C>", "D", "d", "f"}},
		{types.VisitOnlyTypes | types.VisitNoRecurseIntoNames, []string{"std::map<A, B::C>", "D"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, visitedNames(&d, tt.flags)); diff != "" {
			t.Errorf("flags %d (-want +got):\n%s", tt.flags, diff)
		}
	}
}

func TestVisitComponentsIsPostOrder(t *testing.T) {
	d := parse(t, "std::vector<std::pair<A, B>> v")

	var names []string
	simpleTypes := 0
	types.VisitComponents(&d, types.ComponentVisitor{
		QualifiedName: func(q *types.QualifiedName) { names = append(names, q.ToCode(0)) },
		SimpleType:    func(*types.SimpleType) { simpleTypes++ },
	})
	assert.Equal(t, []string{"A", "B", "std::pair<A, B>", "std::vector<std::pair<A, B>>", "v"}, names)
	assert.Equal(t, 4, simpleTypes)
}

func TestCloneIsDeep(t *testing.T) {
	d := parse(t, "std::vector<int> f(const A &a)")
	c := d.Clone()
	require.True(t, d.Equal(&c))

	types.VisitComponents(&c, types.ComponentVisitor{
		CvQualifiers: func(q *types.CvQualifiers) { *q = 0 },
		QualifiedName: func(q *types.QualifiedName) {
			if q.AsSingleWord() == "int" {
				*q = types.NewQualifiedName("long")
			}
		},
	})
	assert.Equal(t, "std::vector<int> f(const A &a)", d.ToCode(0))
	assert.Equal(t, "std::vector<long> f(A &a)", c.ToCode(0))
	assert.False(t, d.Equal(&c))
}

func TestToStringPretty(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"int *x", "`x`, a pointer to `int`"},
		{"const int", "unnamed of type const `int`"},
		{"int &", "unnamed lvalue reference to `int`"},
	}
	for _, tt := range tests {
		d := parse(t, tt.input)
		assert.Equal(t, tt.want, d.ToString(types.Pretty), tt.input)
	}
}

func TestToStringDebug(t *testing.T) {
	d := parse(t, "int x")
	assert.Equal(t,
		`{type="{flags=[],quals=[],name={global_scope=false,parts=[{name="int"}]}}",name="{global_scope=false,parts=[{name="x"}]}"}`,
		d.ToString(types.Debug))
}

func TestToCodeEastConst(t *testing.T) {
	d := parse(t, "const char *const p")
	assert.Equal(t, "const char *const p", d.ToCode(0))
	assert.Equal(t, "char const *const p", d.ToCode(types.CodeEastConst))
}

func TestToCodeParenthesizes(t *testing.T) {
	for _, input := range []string{
		"int (*x)[3]",
		"void (&f)(int)",
		"void (A::*p)()",
	} {
		d := parse(t, input)
		assert.Equal(t, input, d.ToCode(0))

		again := parse(t, d.ToCode(0))
		assert.True(t, d.Equal(&again), input)
	}
}

func TestPrintTree(t *testing.T) {
	d := parse(t, "int *x")
	var sb strings.Builder
	types.PrintTree(&sb, &d)
	want := `  - decl
    - name
      - x
    - type
      - pointer to
      - simple type
        - int
`
	assert.Equal(t, want, sb.String())
}

func TestContainsUnnamedTypes(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"std::vector<int>", false},
		{"{lambda(int)#1}", true},
		{"foo()::{unnamed type#1}", true},
		{"void f() [with T = <lambda()>]", true},
		{"(lambda at foo.cpp:3:5)", true},
		{"(anonymous namespace)::(unnamed struct at a.cpp:1:1)", true},
		{"`anonymous namespace'::<lambda_1>", true},
		{"A<$_0>", true},
		{"S<<unnamed struct>>", true},
		{`f<"{lambda(">`, false},
		{`g<'$_'>`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, types.ContainsUnnamedTypes(tt.text), tt.text)
	}
}

func TestQualifierPlacement(t *testing.T) {
	d := parse(t, "int * const x")
	require.Len(t, d.Type.Modifiers, 1)
	ptr, ok := d.Type.Modifiers[0].(*types.Pointer)
	require.True(t, ok)
	assert.Equal(t, types.Const, ptr.Quals)
	assert.Zero(t, d.Type.SimpleType.Quals)
	assert.True(t, d.Type.IsConst())

	east := parse(t, "int const * x")
	west := parse(t, "const int * x")
	assert.True(t, east.Equal(&west))
	assert.False(t, west.Type.IsConst())
}

func TestTopLevelQualifiers(t *testing.T) {
	d := parse(t, "int *x")
	d.Type.AddTopLevelQualifiers(types.Const | types.Volatile)
	assert.Equal(t, "int *const volatile x", d.ToCode(0))
	d.Type.RemoveTopLevelQualifiers(types.Volatile)
	assert.Equal(t, "int *const x", d.ToCode(0))

	f := parse(t, "void f()")
	assert.Nil(t, f.Type.TopLevelQualifiersMut())
	assert.Panics(t, func() { f.Type.AddTopLevelQualifiers(types.Const) })
}

func TestIsBuiltInTypeName(t *testing.T) {
	tests := []struct {
		name  types.QualifiedName
		flags types.BuiltInTypeFlags
		want  bool
	}{
		{types.NewQualifiedName("int"), types.AllowIntegral, true},
		{types.NewQualifiedName("int"), types.AllowFloatingPoint, false},
		{types.NewQualifiedName("double"), types.AllowArithmetic, true},
		{types.NewQualifiedName("void"), types.AllowArithmetic, false},
		{types.NewQualifiedName("void"), types.AllowAll, true},
		{types.NewQualifiedName("std", "size_t"), types.AllowAll, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.name.IsBuiltInTypeName(tt.flags), tt.name.ToCode(0))
	}
}

func TestDestructorRendering(t *testing.T) {
	d := parse(t, "~Foo()")
	s := d.ToString(types.Pretty)
	assert.Contains(t, s, "a destructor")
	assert.NotContains(t, s, "returning nothing")
}
