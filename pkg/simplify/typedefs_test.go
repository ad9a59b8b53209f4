package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/appsworld/go-cppdecl/types"
)

func TestClassifyTypedef(t *testing.T) {
	tests := []struct {
		name types.QualifiedName
		want TypedefCategory
	}{
		{types.NewQualifiedName("size_t"), TypedefUnsignedLike},
		{types.NewQualifiedName("std", "size_t"), TypedefUnsignedLike},
		{types.NewQualifiedName("std", "uintptr_t"), TypedefUnsignedLike},
		{types.NewQualifiedName("int64_t"), TypedefSignedLike},
		{types.NewQualifiedName("std", "ptrdiff_t"), TypedefSignedLike},
		{types.NewQualifiedName("int32_t"), TypedefNone},
		{types.NewQualifiedName("foo", "size_t"), TypedefNone},
		{types.NewQualifiedName("std", "foo", "size_t"), TypedefNone},
	}
	for _, tt := range tests {
		if got := ClassifyTypedef(&tt.name); got != tt.want {
			t.Errorf("ClassifyTypedef(%s) = %v, want %v", tt.name.ToCode(0), got, tt.want)
		}
	}
}

func TestMirrorTypedefsDecl(t *testing.T) {
	canonical := parseDecl(t, "std::vector<unsigned long> f(long long, const unsigned long &, signed long)")
	pretty := parseDecl(t, "std::vector<std::size_t> f(std::int64_t, const size_t &, ptrdiff_t)")

	assert.True(t, MirrorTypedefsDecl(&canonical, &pretty))
	assert.Equal(t, pretty.ToCode(0), canonical.ToCode(0))
}

func TestMirrorTypedefsType(t *testing.T) {
	tests := []struct {
		canonical string
		pretty    string
		ok        bool
		want      string
	}{
		{"unsigned long", "size_t", true, "size_t"},
		{"unsigned long long int", "std::uint64_t", true, "std::uint64_t"},
		{"size_t", "size_t", true, "size_t"},
		{"int", "int", true, "int"},
		// Signedness must agree.
		{"long", "size_t", false, "long"},
		{"unsigned long", "intptr_t", false, "unsigned long"},
		{"int", "size_t", false, "int"},
		// Different shapes are left alone.
		{"unsigned long *", "size_t", false, "unsigned long *"},
		{"std::array<unsigned long, 3>", "std::array<size_t, 3>", true, "std::array<size_t, 3>"},
		// Names must agree before template arguments are compared.
		{"Foo<unsigned long>", "Bar<std::size_t>", false, "Foo<unsigned long>"},
		{"a::Foo<unsigned long>", "b::Foo<std::size_t>", false, "a::Foo<unsigned long>"},
		{"Foo<unsigned long>", "Foo<std::size_t>", true, "Foo<std::size_t>"},
	}
	for _, tt := range tests {
		t.Run(tt.canonical, func(t *testing.T) {
			canonical := parseType(t, tt.canonical)
			pretty := parseType(t, tt.pretty)
			assert.Equal(t, tt.ok, MirrorTypedefsType(&canonical, &pretty))
			assert.Equal(t, tt.want, canonical.ToCode(0))
		})
	}
}
