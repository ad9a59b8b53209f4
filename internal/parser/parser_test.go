package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appsworld/go-cppdecl/types"
)

func mustParse(t *testing.T, input string, flags Flags) types.MaybeAmbiguousDecl {
	t.Helper()
	d, rest, err := ParseDecl(input, flags)
	require.NoError(t, err, input)
	require.Empty(t, rest, input)
	return d
}

func TestParseDeclRoundTrip(t *testing.T) {
	for _, input := range []string{
		"int x",
		"int *x",
		"const char *const s",
		"const volatile int x",
		"int (*f)(int)",
		"void (A::*p)() const",
		"int A::*p",
		"std::map<int, std::string> m",
		"std::array<int, 3> a",
		"std::function<void(int)> f",
		"unsigned x",
		"long long int x",
		"typename T::type x",
		"A::~A()",
		"operator int()",
		"bool operator<(const A &, const A &)",
		"void A::operator()(int) const",
		`int operator""_km(long double)`,
		"void *operator new[](std::size_t)",
		"int a[10]",
		"int a[]",
		"void f(...)",
		"void f(int, ...)",
		"void f(void)",
		"int &&r",
		"void f() noexcept",
		"void f() const &",
		"auto f() -> int",
		"x",
	} {
		d := mustParse(t, input, AcceptEverything)
		if got := d.ToCode(0); got != input {
			t.Fatalf("round trip mismatch: got %q, want %q", got, input)
		}
	}
}

func TestParseDeclPretty(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"int x", "`x` of type `int`"},
		{"const int *x", "`x`, a pointer to const `int`"},
		{"int const *x", "`x`, a pointer to const `int`"},
		{"int *const x", "`x`, a const pointer to `int`"},
		{"int &x", "`x`, an lvalue reference to `int`"},
		{"A::~A()", "`A`::destructor for type [`A`], a destructor taking no parameters"},
		{"int *", "unnamed pointer to `int`"},
	}
	for _, tt := range tests {
		d := mustParse(t, tt.input, AcceptEverything)
		assert.Equal(t, tt.want, d.ToString(types.Pretty), tt.input)
	}
}

func TestParseSimpleTypeWords(t *testing.T) {
	tests := []struct {
		input string
		name  string
		flags types.SimpleTypeFlags
		quals types.CvQualifiers
	}{
		{"unsigned", "int", types.Unsigned | types.ImpliedInt, 0},
		{"signed char", "char", types.ExplicitlySigned, 0},
		{"long unsigned int", "long", types.Unsigned | types.RedundantInt, 0},
		{"int long long", "long long", types.RedundantInt, 0},
		{"long double", "long double", 0, 0},
		{"double long", "long double", 0, 0},
		{"short const int", "short", types.RedundantInt, types.Const},
		{"volatile std::size_t", "", 0, types.Volatile},
	}
	for _, tt := range tests {
		typ, rest, err := ParseType(tt.input)
		require.NoError(t, err, tt.input)
		require.Empty(t, rest, tt.input)
		st := typ.SimpleType
		if tt.name != "" {
			assert.Equal(t, tt.name, st.Name.AsSingleWord(), tt.input)
		}
		assert.Equal(t, tt.flags, st.Flags, tt.input)
		assert.Equal(t, tt.quals, st.Quals, tt.input)
	}
}

func TestParseTypeStopsAtName(t *testing.T) {
	typ, rest, err := ParseType("int x")
	require.NoError(t, err)
	assert.Equal(t, "x", rest)
	assert.Equal(t, "int", typ.ToCode(0))

	_, rest, err = ParseDecl("int x, y", AcceptEverything)
	require.NoError(t, err)
	assert.Equal(t, ", y", rest)
}

func TestParseDeclErrors(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{"", 0},
		{"int int", 4},
		{"const const int", 6},
		{"unsigned float", 0},
		{"void ~A()", 5},
		{"int f() -> int", 0},
		{"int f(int", 9},
		{"std::vector<int", 15},
	}
	for _, tt := range tests {
		_, rest, err := ParseDecl(tt.input, AcceptEverything)
		require.Error(t, err, tt.input)
		assert.Equal(t, tt.input, rest)
		var pe *ParseError
		require.True(t, errors.As(err, &pe), tt.input)
		assert.Equal(t, tt.offset, pe.Offset, "%s: %v", tt.input, err)
	}
}

func TestParseDeclTooDeep(t *testing.T) {
	input := strings.Repeat("A<", 300) + "int" + strings.Repeat(">", 300)
	_, _, err := ParseDecl(input, AcceptEverything)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooDeep))

	input = "int a[" + strings.Repeat("(", 300) + "]"
	_, _, err = ParseDecl(input, AcceptEverything)
	assert.True(t, errors.Is(err, ErrTooDeep))

	_, _, err = ParseDecl("A<A<A<int>>> x", AcceptEverything, WithMaxDepth(2))
	assert.True(t, errors.Is(err, ErrTooDeep))
}

func TestNestedAmbiguity(t *testing.T) {
	d := mustParse(t, "void f(int(x))", AcceptEverything)
	require.Nil(t, d.Alternative)
	assert.True(t, d.HasNestedAmbiguities)
	assert.True(t, d.IsAmbiguous())

	f := d.Type.TopFunction()
	require.NotNil(t, f)
	require.Len(t, f.Params, 1)
	alts := f.Params[0].Alternatives()
	require.Len(t, alts, 2)

	assert.Equal(t, "x", alts[0].Name.AsSingleWord())
	assert.Equal(t, "int", alts[0].Type.AsSingleWord())

	assert.True(t, alts[1].Name.IsEmpty())
	inner := alts[1].Type.TopFunction()
	require.NotNil(t, inner)
	require.Len(t, inner.Params, 1)
	assert.Equal(t, "x", inner.Params[0].Type.AsSingleWord())
}

func TestConstructorAmbiguity(t *testing.T) {
	d := mustParse(t, "A(x)", AcceptEverything)
	alts := d.Alternatives()
	require.Len(t, alts, 3)

	// A variable `x` of type `A`.
	assert.Equal(t, "x", alts[0].Name.AsSingleWord())
	assert.Equal(t, "A", alts[0].Type.AsSingleWord())
	// An unnamed function taking `x` and returning `A`.
	assert.True(t, alts[1].Name.IsEmpty())
	require.NotNil(t, alts[1].Type.TopFunction())
	// A constructor of `A` taking `x`.
	assert.Equal(t, "A", alts[2].Name.AsSingleWord())
	assert.True(t, alts[2].Type.SimpleType.IsEmpty())
	require.NotNil(t, alts[2].Type.TopFunction())

	d = mustParse(t, "A(x)", AcceptUnqualifiedNamed)
	assert.Len(t, d.Alternatives(), 2)

	d, _, err := ParseDecl("A(x)", AcceptEverything, WithMaxAlternatives(1))
	require.NoError(t, err)
	assert.Len(t, d.Alternatives(), 1)
}

func TestConstructorTakesOneParameterList(t *testing.T) {
	d, _, err := ParseDecl("f(int)(int)", AcceptEverything)
	if err == nil {
		for _, alt := range d.Alternatives() {
			assert.False(t, alt.Type.SimpleType.IsEmpty(), alt.ToString(types.Pretty))
		}
	}

	_, _, err = ParseDecl("f(int)(int)", AcceptEverything|ForceEmptyReturnType)
	assert.Error(t, err)

	d = mustParse(t, "f(int)", AcceptEverything|ForceEmptyReturnType)
	assert.True(t, d.Type.SimpleType.IsEmpty())
}

func TestQualifiedConstructor(t *testing.T) {
	d := mustParse(t, "A::A()", AcceptEverything)
	require.Nil(t, d.Alternative)
	assert.True(t, d.Type.SimpleType.IsEmpty())
	assert.Equal(t, "A::A", d.Name.ToCode(0))
	assert.Equal(t, "`A`::`A`, a constructor taking no parameters", d.ToString(types.Pretty))

	d = mustParse(t, "A::B()", AcceptEverything)
	assert.Len(t, d.Alternatives(), 2)

	_, _, err := ParseDecl("A::~A()", AcceptEverything|ForceNonEmptyReturnType)
	assert.Error(t, err)
}

func TestTemplateArguments(t *testing.T) {
	typ, _, err := ParseType("std::array<int, 3>")
	require.NoError(t, err)
	args := typ.SimpleType.Name.Parts[1].TemplateArgs.Args
	require.Len(t, args, 2)
	assert.NotNil(t, args[0].AsType())
	require.NotNil(t, args[1].AsPseudoExpr())
	assert.Equal(t, "3", args[1].AsPseudoExpr().ToCode(0))

	typ, _, err = ParseType("A<(1 > 2)>")
	require.NoError(t, err)
	e := typ.SimpleType.Name.Parts[0].TemplateArgs.Args[0].AsPseudoExpr()
	require.NotNil(t, e)
	require.Len(t, e.Tokens, 1)
	list, ok := e.Tokens[0].(*types.PseudoExprList)
	require.True(t, ok)
	assert.Equal(t, types.ListParentheses, list.Kind)

	typ, rest, err := ParseType("A<B<int>>")
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "A<B<int>>", typ.ToCode(0))

	typ, _, err = ParseType("A<>")
	require.NoError(t, err)
	require.NotNil(t, typ.SimpleType.Name.Parts[0].TemplateArgs)
	assert.Empty(t, typ.SimpleType.Name.Parts[0].TemplateArgs.Args)
}

func TestMsvcPointerQualifiers(t *testing.T) {
	d := mustParse(t, "int *__ptr64 p", AcceptEverything)
	p, ok := d.Type.Top().(*types.Pointer)
	require.True(t, ok)
	assert.Equal(t, types.MsvcPtr64, p.Quals)

	d = mustParse(t, "int & __ptr64 r", AcceptEverything)
	r, ok := d.Type.Top().(*types.Reference)
	require.True(t, ok)
	assert.Equal(t, types.MsvcPtr64, r.Quals)

	_, _, err := ParseDecl("int & const r", AcceptEverything)
	assert.Error(t, err)
}

func TestParsePseudoExpr(t *testing.T) {
	e, rest, err := ParsePseudoExpr(`u8"hi"_x`)
	require.NoError(t, err)
	assert.Empty(t, rest)
	require.Len(t, e.Tokens, 1)
	lit := e.Tokens[0].(*types.StringOrCharLiteral)
	assert.Equal(t, types.EncodingU8, lit.Encoding)
	assert.Equal(t, "hi", lit.Value)
	assert.Equal(t, "_x", lit.LiteralSuffix)

	e, _, err = ParsePseudoExpr(`R"d(a)b)d"`)
	require.NoError(t, err)
	lit = e.Tokens[0].(*types.StringOrCharLiteral)
	assert.Equal(t, types.LiteralRawString, lit.Kind)
	assert.Equal(t, "d", lit.RawStringDelim)
	assert.Equal(t, "a)b", lit.Value)

	for _, num := range []string{"1'000'000ull", "1e+5f", "0x1p-3", ".5"} {
		e, rest, err = ParsePseudoExpr(num)
		require.NoError(t, err, num)
		assert.Empty(t, rest, num)
		assert.Equal(t, []types.PseudoExprToken{types.NumberToken{Value: num}}, e.Tokens)
	}

	e, _, err = ParsePseudoExpr("a < b")
	require.NoError(t, err)
	assert.Len(t, e.Tokens, 3)

	e, _, err = ParsePseudoExpr("{1, 2,}")
	require.NoError(t, err)
	list := e.Tokens[0].(*types.PseudoExprList)
	assert.Equal(t, types.ListCurly, list.Kind)
	assert.Len(t, list.Elems, 2)
	assert.True(t, list.HasTrailingComma)

	e, rest, err = ParsePseudoExpr("sizeof(int), 2")
	require.NoError(t, err)
	assert.Equal(t, ", 2", rest)
	assert.Len(t, e.Tokens, 2)

	_, _, err = ParsePseudoExpr(`"abc`)
	assert.Error(t, err)
	_, _, err = ParsePseudoExpr("(1, 2,)")
	assert.Error(t, err)
}

func TestParseQualifiedName(t *testing.T) {
	n, rest, err := ParseQualifiedName("::std::vector<int>::operator[] x")
	require.NoError(t, err)
	assert.Equal(t, "x", rest)
	assert.True(t, n.ForceGlobalScope)
	require.Len(t, n.Parts, 3)
	assert.Equal(t, types.OverloadedOperator{Token: "[]"}, n.Parts[2].Var)
}

func TestNextChoices(t *testing.T) {
	next, ok := nextChoices([]decision{{0, 2}, {1, 2}})
	require.True(t, ok)
	assert.Equal(t, []int{1}, next)

	next, ok = nextChoices([]decision{{0, 2}, {0, 3}})
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, next)

	_, ok = nextChoices([]decision{{1, 2}, {2, 3}})
	assert.False(t, ok)
}
