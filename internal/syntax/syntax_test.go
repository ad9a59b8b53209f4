package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadIdentifier(t *testing.T) {
	tests := []struct {
		input string
		pos   int
		word  string
		end   int
	}{
		{"foo_1 bar", 0, "foo_1", 5},
		{"foo_1 bar", 6, "bar", 9},
		{"$_0", 0, "$_0", 3},
		{"1abc", 0, "", 0},
		{"::x", 0, "", 0},
		{"", 0, "", 0},
	}
	for _, tt := range tests {
		word, end := ReadIdentifier(tt.input, tt.pos)
		assert.Equal(t, tt.word, word, tt.input)
		assert.Equal(t, tt.end, end, tt.input)
	}
}

func TestStartsWithWord(t *testing.T) {
	assert.True(t, StartsWithWord("const int", 0, "const"))
	assert.True(t, StartsWithWord("const", 0, "const"))
	assert.True(t, StartsWithWord("const*", 0, "const"))
	assert.False(t, StartsWithWord("constant", 0, "const"))
	assert.False(t, StartsWithWord("int const", 0, "const"))
	assert.True(t, StartsWithWord("int const", 4, "const"))
}

func TestKeywords(t *testing.T) {
	for _, w := range []string{"int", "long", "double", "void", "unsigned", "const", "__restrict", "__ptr64", "typename"} {
		assert.True(t, IsTypeRelatedKeyword(w), w)
		assert.True(t, IsReservedWord(w), w)
	}
	for _, w := range []string{"sizeof", "nullptr", "decltype", "operator"} {
		assert.False(t, IsTypeRelatedKeyword(w), w)
		assert.True(t, IsReservedWord(w), w)
	}
	for _, w := range []string{"bool", "wchar_t", "size_t", "std"} {
		assert.False(t, IsReservedWord(w), w)
	}
}

func TestConsumeOperatorToken(t *testing.T) {
	tests := []struct {
		input string
		tok   string
		end   int
		ok    bool
	}{
		{"<=>", "<=>", 3, true},
		{"<<=x", "<<=", 3, true},
		{"->*", "->*", 3, true},
		{"<int>", "<", 1, true},
		{"( )", "()", 3, true},
		{"[]", "[]", 2, true},
		{"(int)", "", 0, false},
		{"x", "", 0, false},
	}
	for _, tt := range tests {
		tok, end, ok := ConsumeOperatorToken(tt.input, 0)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.tok, tok, tt.input)
		assert.Equal(t, tt.end, end, tt.input)
	}
}

func TestConsumePunctuation(t *testing.T) {
	tok, end, ok := ConsumePunctuation("...)", 0)
	assert.True(t, ok)
	assert.Equal(t, "...", tok)
	assert.Equal(t, 3, end)

	tok, _, ok = ConsumePunctuation("::x", 0)
	assert.True(t, ok)
	assert.Equal(t, "::", tok)

	_, _, ok = ConsumePunctuation("x", 0)
	assert.False(t, ok)
}

func TestNeedsSpace(t *testing.T) {
	tests := []struct {
		left, right string
		want        bool
	}{
		{"unsigned", "int", true},
		{"int", "*", false},
		{"*", "p", false},
		{"*", "*", false},
		{"-", ">", true},
		{"&", "&", true},
		{"operator<", "<int>", true},
		{"<", "=", true},
		{"+", "-", false},
		{"", "x", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NeedsSpace(tt.left, tt.right), "%q %q", tt.left, tt.right)
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "const char*p", Join("const", "char", "*", "p"))
	assert.Equal(t, "a::b", Join("a", "::", "b"))
	assert.Equal(t, "operator< <int>", Join("operator<", "", "<int>"))
}
