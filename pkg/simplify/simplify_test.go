package simplify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appsworld/go-cppdecl/internal/parser"
	"github.com/appsworld/go-cppdecl/types"
)

func parseType(t *testing.T, input string) types.Type {
	t.Helper()
	m, rest, err := parser.ParseType(input)
	require.NoError(t, err, input)
	require.Empty(t, rest, input)
	require.False(t, m.IsAmbiguous(), input)
	return m.Type
}

func parseDecl(t *testing.T, input string) types.Decl {
	t.Helper()
	m, rest, err := parser.ParseDecl(input, parser.AcceptEverything)
	require.NoError(t, err, input)
	require.Empty(t, rest, input)
	return m.Decl
}

type simplifyTest struct {
	flags Flags
	input string
	want  string
}

func runSimplifyTests(t *testing.T, tests []simplifyTest, opts ...Option) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			typ := parseType(t, tt.input)
			s := New(tt.flags, opts...)
			s.Simplify(&typ)
			if got := typ.ToCode(0); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}

			again := typ.Clone()
			s.Simplify(&again)
			if diff := cmp.Diff(typ.ToString(types.Debug), again.ToString(types.Debug)); diff != "" {
				t.Fatalf("not idempotent (-once +twice):\n%s", diff)
			}
		})
	}
}

func TestSimplifyCommon(t *testing.T) {
	runSimplifyTests(t, []simplifyTest{
		{Common, "std::basic_string<char, std::char_traits<char>, std::allocator<char>>", "std::string"},
		{Common, "std::basic_string<wchar_t, std::char_traits<wchar_t>, std::allocator<wchar_t>>", "std::wstring"},
		{Common, "std::basic_string<char16_t>", "std::u16string"},
		{Common, "std::basic_string_view<char8_t, std::char_traits<char8_t>>", "std::u8string_view"},
		{Common, "std::basic_ostream<wchar_t, std::char_traits<wchar_t>>", "std::wostream"},
		{Common, "std::basic_ostream<char16_t>", "std::basic_ostream<char16_t>"},
		{Common, "std::basic_string<unsigned char>", "std::basic_string<unsigned char>"},
		{Common, "std::basic_string<char, std::char_traits<char>, MyAlloc<char>>", "std::basic_string<char, std::char_traits<char>, MyAlloc<char>>"},

		{Common, "std::vector<int, std::allocator<int>>", "std::vector<int>"},
		{Common, "std::vector<int, std::allocator<float>>", "std::vector<int, std::allocator<float>>"},
		{Common, "std::vector<int, MyAlloc<int>>", "std::vector<int, MyAlloc<int>>"},
		{Common, "std::vector<std::vector<int, std::allocator<int>>, std::allocator<std::vector<int, std::allocator<int>>>>", "std::vector<std::vector<int>>"},
		{Common, "std::set<int, std::less<int>, std::allocator<int>>", "std::set<int>"},
		{Common, "std::set<int, std::greater<int>, std::allocator<int>>", "std::set<int, std::greater<int>>"},
		{Common, "std::map<int, float, std::less<int>, std::allocator<std::pair<const int, float>>>", "std::map<int, float>"},
		{Common, "std::map<int, float, std::less<int>, std::allocator<std::pair<int, float>>>", "std::map<int, float, std::less<int>, std::allocator<std::pair<int, float>>>"},
		{Common, "std::unordered_set<int, std::hash<int>, std::equal_to<int>, std::allocator<int>>", "std::unordered_set<int>"},
		{Common, "std::unordered_map<int, float, std::hash<int>, std::equal_to<int>, std::allocator<std::pair<const int, float>>>", "std::unordered_map<int, float>"},
		{Common, "std::unordered_map<int, float, MyHash, std::equal_to<int>>", "std::unordered_map<int, float, MyHash>"},

		{Common, "struct A", "A"},
		{Common, "typename T::type", "T::type"},
		{Common, "signed int", "int"},
		{Common, "signed", "int"},
		{Common, "signed long int", "long int"},
		{Common, "signed char", "signed char"},
		{Common, "unsigned char", "unsigned char"},

		{CommonRemoveDefArgAllocator, "std::basic_string<char, std::char_traits<char>, std::allocator<char>>", "std::basic_string<char, std::char_traits<char>>"},
		{CommonRemoveDefArgCharTraits, "std::basic_string<char, std::char_traits<char>, std::allocator<char>>", "std::basic_string<char, std::char_traits<char>, std::allocator<char>>"},
	})
}

func TestSimplifyQuirks(t *testing.T) {
	runSimplifyTests(t, []simplifyTest{
		{C, "_Bool", "bool"},
		{Common, "_Bool", "_Bool"},
		{CompilerMsvcLike, "int *__ptr64", "int *"},
		{CompilerMsvcLike, "int *const __ptr32", "int *const"},
		{LibstdcxxRemoveCxx11Namespace, "std::__cxx11::list<int>", "std::list<int>"},
		{LibstdcxxRemoveCxx11Namespace, "std::__1::list<int>", "std::__1::list<int>"},
		{RemoveStdVersionNamespace, "std::__1::list<std::__1::list<int>>", "std::list<std::list<int>>"},
		{RemoveStdVersionNamespace, "foo::__1::list<int>", "foo::__1::list<int>"},
		{0, "struct std::__cxx11::list<int, std::allocator<int>>", "struct std::__cxx11::list<int, std::allocator<int>>"},
	})
}

func TestNormalizeIterators(t *testing.T) {
	runSimplifyTests(t, []simplifyTest{
		// libstdc++
		{All, "__gnu_cxx::__normal_iterator<int *, std::vector<int, std::allocator<int>>>", "std::vector<int>::iterator"},
		{All, "__gnu_cxx::__normal_iterator<const int *, std::vector<int>>", "std::vector<int>::const_iterator"},
		{All, "__gnu_cxx::__normal_iterator<float *, std::vector<int>>", "__gnu_cxx::__normal_iterator<float *, std::vector<int>>"},
		{All, "__gnu_cxx::__normal_iterator<char *, std::__cxx11::basic_string<char, std::char_traits<char>, std::allocator<char>>>", "std::string::iterator"},
		{All, "std::_Deque_iterator<int, const int &, const int *>", "std::deque<int>::const_iterator"},
		{All, "std::_Deque_iterator<int, int &, int *>", "std::deque<int>::iterator"},
		{All, "std::_List_iterator<int>", "std::list<int>::iterator"},
		{All, "std::_Fwd_list_const_iterator<int>", "std::forward_list<int>::const_iterator"},
		{All, "std::_Rb_tree_const_iterator<int>", "std::set<int>::const_iterator"},
		{All, "std::_Rb_tree_iterator<int>", "std::_Rb_tree_iterator<int>"},
		{All, "std::_Rb_tree_iterator<std::pair<const int, float>>", "std::map<int, float>::iterator"},
		{All, "std::__detail::_Node_iterator<std::pair<const int, float>, false, false>", "std::unordered_map<int, float>::iterator"},
		{All, "std::__detail::_Node_const_iterator<int, true, false>", "std::unordered_set<int>::const_iterator"},
		{All, "std::__detail::_Node_const_iterator<int, true, true>", "std::__detail::_Node_const_iterator<int, true, true>"},

		// libc++
		{All, "std::__1::__list_iterator<int, void *>", "std::list<int>::iterator"},
		{StdlibLibcpp &^ LibcppRemove1Namespace, "std::__1::__list_const_iterator<int, void *>", "std::__1::list<int>::const_iterator"},
		{All, "std::__1::__forward_list_iterator<std::__1::__forward_list_node<int, void *> *>", "std::forward_list<int>::iterator"},
		{All, "std::__1::__deque_iterator<int, int *, int &, int **, long, 1024>", "std::deque<int>::iterator"},
		{All, "std::__1::__deque_iterator<int, const int *, const int &, const int *const *, long>", "std::deque<int>::const_iterator"},
		{All, "std::__1::__tree_const_iterator<int, std::__1::__tree_node<int, void *> *, long>", "std::set<int>::const_iterator"},
		{All, "std::__1::__map_iterator<std::__1::__tree_iterator<std::__1::__value_type<int, float>, std::__1::__tree_node<std::__1::__value_type<int, float>, void *> *, long>>", "std::map<int, float>::iterator"},
		{All, "std::__1::__hash_const_iterator<std::__1::__hash_node<int, void *> *>", "std::unordered_set<int>::const_iterator"},
		{All, "std::__1::__hash_map_const_iterator<std::__1::__hash_const_iterator<std::__1::__hash_node<std::__1::__hash_value_type<int, float>, void *> *>>", "std::unordered_map<int, float>::const_iterator"},

		// MSVC STL
		{All, "std::_Vector_iterator<std::_Vector_val<std::_Simple_types<int>>>", "std::vector<int>::iterator"},
		{All, "std::_String_const_iterator<std::_String_val<std::_Simple_types<char>>>", "std::string::const_iterator"},
		{All, "std::_String_view_iterator<std::char_traits<char>>", "std::string_view::const_iterator"},
		{All, "std::_List_iterator<std::_List_val<std::_List_simple_types<int>>>", "std::list<int>::iterator"},
		{All, "std::_Flist_const_iterator<std::_Flist_val<std::_Flist_simple_types<int>>>", "std::forward_list<int>::const_iterator"},
		{All, "std::_Deque_iterator<std::_Deque_val<std::_Deque_simple_types<int>>>", "std::deque<int>::iterator"},
		{All, "std::_Tree_const_iterator<std::_Tree_val<std::_Tree_simple_types<int>>>", "std::set<int>::const_iterator"},
		{All, "std::_Tree_iterator<std::_Tree_val<std::_Tree_simple_types<std::pair<const int, float>>>>", "std::map<int, float>::iterator"},

		// Only the selected standard library is recognized.
		{StdlibLibstdcxx, "std::_Vector_iterator<std::_Vector_val<std::_Simple_types<int>>>", "std::_Vector_iterator<std::_Vector_val<std::_Simple_types<int>>>"},
		{StdlibMsvcStl, "std::_Rb_tree_const_iterator<int>", "std::_Rb_tree_const_iterator<int>"},
	})
}

func TestIteratorMatchesHandBuiltType(t *testing.T) {
	typ := parseType(t, "__gnu_cxx::__normal_iterator<int *, std::vector<int, std::allocator<int>>>")
	Simplify(All, &typ, nil)

	want := types.NewType(types.SimpleType{Name: types.QualifiedName{Parts: []types.UnqualifiedName{
		{Var: types.Identifier("std")},
		{Var: types.Identifier("vector"), TemplateArgs: &types.TemplateArgumentList{
			Args: []types.TemplateArgument{types.TypeArg(types.NewType(types.NewSimpleType("int")))},
		}},
		{Var: types.Identifier("iterator")},
	}}})
	assert.Equal(t, want.ToString(types.Pretty), typ.ToString(types.Pretty))
	assert.True(t, want.Equal(&typ))
}

func TestStringCollapsesToTypedef(t *testing.T) {
	typ := parseType(t, "std::basic_string<char, std::char_traits<char>, std::allocator<char>>")
	Simplify(Common, &typ, nil)
	want := types.NewType(types.SimpleType{Name: types.NewQualifiedName("std", "string")})
	if !want.Equal(&typ) {
		t.Fatalf("got %s, want %s", typ.ToString(types.Debug), want.ToString(types.Debug))
	}
}

func TestSimplifyDecl(t *testing.T) {
	d := parseDecl(t, "std::vector<std::__cxx11::basic_string<char, std::char_traits<char>, std::allocator<char>>, std::allocator<std::__cxx11::basic_string<char, std::char_traits<char>, std::allocator<char>>>> f(struct A *__ptr64, signed x)")
	Simplify(All, &d, nil)
	assert.Equal(t, "std::vector<std::string> f(A *, int x)", d.ToCode(0))
}

func TestSimplifyAmbiguousDecl(t *testing.T) {
	m, _, err := parser.ParseDecl("A(std::basic_string<char>)", parser.AcceptEverything)
	require.NoError(t, err)
	require.True(t, m.IsAmbiguous())

	Simplify(Common, &m, nil)
	for _, alt := range m.Alternatives() {
		assert.NotContains(t, alt.Decl.ToCode(0), "basic_string")
	}
}

func TestSimplifyNoFlags(t *testing.T) {
	const input = "std::map<int, float, std::less<int>, std::allocator<std::pair<const int, float>>>"
	typ := parseType(t, input)
	orig := typ.Clone()
	Simplify(0, &typ, nil)
	assert.True(t, orig.Equal(&typ))
}

func TestConfigTraits(t *testing.T) {
	tr := NewConfigTraits(ConfigTraits{
		VectorLike:       []string{"boost::container::vector"},
		UnorderedMapLike: []string{"absl::flat_hash_map"},
		Allocators:       []string{"boost::container::new_allocator"},
	})
	runSimplifyTests(t, []simplifyTest{
		{Common, "boost::container::vector<int, std::allocator<int>>", "boost::container::vector<int>"},
		{Common, "boost::container::vector<int, boost::container::new_allocator<int>>", "boost::container::vector<int>"},
		{Common, "absl::flat_hash_map<int, float, std::hash<int>, std::equal_to<int>, std::allocator<std::pair<const int, float>>>", "absl::flat_hash_map<int, float>"},
		{Common, "absl::node_hash_map<int, float, std::hash<int>>", "absl::node_hash_map<int, float, std::hash<int>>"},
		{Common, "std::vector<int, std::allocator<int>>", "std::vector<int>"},
	}, WithTraits(tr))
}

func TestDefaultTraitsStdName(t *testing.T) {
	tr := &DefaultTraits{}
	tests := []struct {
		name  types.QualifiedName
		word  string
		index int
		ok    bool
	}{
		{types.NewQualifiedName("std", "vector"), "vector", 1, true},
		{types.NewQualifiedName("std", "__1", "vector"), "vector", 2, true},
		{types.NewQualifiedName("std", "__cxx11", "list", "iterator"), "list", 2, true},
		{types.NewQualifiedName("std"), "", 0, false},
		{types.NewQualifiedName("std", "__1"), "", 0, false},
		{types.NewQualifiedName("boost", "vector"), "", 0, false},
	}
	for _, tt := range tests {
		word, index, ok := tr.StdName(&tt.name)
		assert.Equal(t, tt.ok, ok, tt.name.ToCode(0))
		if tt.ok {
			assert.Equal(t, tt.word, word)
			assert.Equal(t, tt.index, index)
		}
	}
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags("common, stdlib_libcpp")
	require.NoError(t, err)
	assert.Equal(t, Common|StdlibLibcpp, f)

	f, err = ParseFlags("")
	require.NoError(t, err)
	assert.Equal(t, Flags(0), f)

	f, err = ParseFlags("C_NORMALIZE_BOOL,msvc_remove_ptr32_ptr64")
	require.NoError(t, err)
	assert.Equal(t, CNormalizeBool|MsvcRemovePtr32Ptr64, f)

	_, err = ParseFlags("common,bogus")
	assert.ErrorContains(t, err, `"bogus"`)

	for _, f := range []Flags{0, All, Common, StdlibLibstdcxx, CNormalizeBool} {
		back, err := ParseFlags(f.String())
		require.NoError(t, err, f.String())
		assert.Equal(t, f, back)
	}
	assert.Equal(t, "none", Flags(0).String())
	assert.Equal(t, "libstdcxx_remove_cxx11_namespace_in_std,libcpp_remove_1_namespace_in_std", RemoveStdVersionNamespace.String())
}
