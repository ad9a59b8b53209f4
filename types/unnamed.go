package types

import (
	"strings"

	"github.com/appsworld/go-cppdecl/internal/syntax"
)

// Spellings of unnamed types and lambdas in compiler output, which can't be
// parsed back since they contain free-form text.
var unnamedTypeMarkers = []string{
	// GCC typeid.
	"{unnamed type#",
	"{lambda(",
	// GCC __PRETTY_FUNCTION__.
	"<lambda(",
	// GCC names passed through llvm-cxxfilt.
	"'unnamed'",
	"'lambda'",
	// Clang typeid.
	"$_",
	// Clang __PRETTY_FUNCTION__.
	"(lambda at ",
	// MSVC.
	"<unnamed-type-",
	"<lambda_",
}

var unnamedTypeKeywords = []string{"struct", "class", "union", "enum"}

// ContainsUnnamedTypes reports whether text looks like it contains a
// compiler spelling of an unnamed type or a lambda. String and character
// literals are ignored.
func ContainsUnnamedTypes(text string) bool {
	for _, part := range splitOutsideLiterals(text) {
		for _, marker := range unnamedTypeMarkers {
			if strings.Contains(part, marker) {
				return true
			}
		}
		for _, kw := range unnamedTypeKeywords {
			// GCC __PRETTY_FUNCTION__ and Clang __PRETTY_FUNCTION__.
			if strings.Contains(part, "<unnamed "+kw+">") || strings.Contains(part, "(unnamed "+kw+" at ") {
				return true
			}
		}
	}
	return false
}

// splitOutsideLiterals returns the parts of text between string and
// character literals. A quote only starts a character literal when it
// isn't preceded by an identifier character (digit separators) and closes
// within a few characters.
func splitOutsideLiterals(text string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '"' && c != '\'' {
			continue
		}
		if i > 0 && syntax.IsIdentifierChar(text[i-1]) && !isEncodingPrefixEnd(text, i) {
			continue
		}
		end := literalEnd(text, i)
		if end < 0 || (c == '\'' && end-i > 6) {
			continue
		}
		parts = append(parts, text[start:i])
		start = end
		i = end - 1
	}
	return append(parts, text[start:])
}

func isEncodingPrefixEnd(text string, quote int) bool {
	for _, p := range [...]string{"u8", "u", "U", "L", "R", "u8R", "uR", "UR", "LR"} {
		if strings.HasSuffix(text[:quote], p) {
			before := quote - len(p)
			if before == 0 || !syntax.IsIdentifierChar(text[before-1]) {
				return true
			}
		}
	}
	return false
}

// literalEnd returns the position after the literal starting at the quote
// at pos, or -1 if it isn't terminated.
func literalEnd(text string, pos int) int {
	q := text[pos]
	for i := pos + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case q:
			return i + 1
		}
	}
	return -1
}
