// Package syntax holds the character classes, keyword tables and token
// helpers shared by the declaration parser and the code emitter.
package syntax

import "strings"

func IsWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func IsAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsNonDigitIdentifierChar reports whether c may start an identifier.
// `$` is accepted since several compilers emit it in generated names.
func IsNonDigitIdentifierChar(c byte) bool {
	return IsAlpha(c) || c == '_' || c == '$'
}

func IsIdentifierChar(c byte) bool {
	return IsNonDigitIdentifierChar(c) || IsDigit(c)
}

// SkipWhitespace returns the first non-whitespace position at or after pos.
func SkipWhitespace(s string, pos int) int {
	for pos < len(s) && IsWhitespace(s[pos]) {
		pos++
	}
	return pos
}

// StartsWithWord reports whether s[pos:] starts with word followed by a
// character that can't continue an identifier.
func StartsWithWord(s string, pos int, word string) bool {
	if !strings.HasPrefix(s[pos:], word) {
		return false
	}
	end := pos + len(word)
	return end >= len(s) || !IsIdentifierChar(s[end])
}

// ReadIdentifier reads the identifier at pos. It returns an empty string if
// there is none.
func ReadIdentifier(s string, pos int) (string, int) {
	if pos >= len(s) || !IsNonDigitIdentifierChar(s[pos]) {
		return "", pos
	}
	end := pos + 1
	for end < len(s) && IsIdentifierChar(s[end]) {
		end++
	}
	return s[pos:end], end
}

// PeekWord returns the identifier at pos without consuming anything.
func PeekWord(s string, pos int) string {
	w, _ := ReadIdentifier(s, pos)
	return w
}

func IsTypeNameKeywordIntegral(name string) bool {
	switch name {
	case "char", "short", "int", "long":
		return true
	}
	return false
}

func IsTypeNameKeywordFloatingPoint(name string) bool {
	return name == "float" || name == "double"
}

// IsTypeNameKeyword reports whether name is a single-word built-in type.
// `bool`, `wchar_t` and the charN_t types are ordinary identifiers for
// the purposes of this package since they don't combine with other words.
func IsTypeNameKeyword(name string) bool {
	return IsTypeNameKeywordIntegral(name) || IsTypeNameKeywordFloatingPoint(name) || name == "void"
}

func IsCvQualifierWord(name string) bool {
	switch name {
	case "const", "volatile", "__restrict", "__restrict__", "restrict":
		return true
	}
	return false
}

// IsMsvcPointerQualifierWord reports whether name is `__ptr32` or
// `__ptr64`, which MSVC writes after `*` and `&`.
func IsMsvcPointerQualifierWord(name string) bool {
	return name == "__ptr32" || name == "__ptr64"
}

func IsSignednessWord(name string) bool {
	return name == "signed" || name == "unsigned"
}

func IsTypePrefixWord(name string) bool {
	switch name {
	case "struct", "class", "union", "enum", "typename":
		return true
	}
	return false
}

// IsTypeRelatedKeyword reports whether name is a keyword that can appear in
// decl-specifiers and therefore can't be a declared name.
func IsTypeRelatedKeyword(name string) bool {
	return IsTypeNameKeyword(name) ||
		IsSignednessWord(name) ||
		IsCvQualifierWord(name) ||
		IsMsvcPointerQualifierWord(name) ||
		IsTypePrefixWord(name)
}

// IsExpressionKeyword reports whether name is a keyword that can only be
// part of an expression, never of a type.
func IsExpressionKeyword(name string) bool {
	switch name {
	case "true", "false", "nullptr", "this", "sizeof", "alignof", "noexcept",
		"new", "delete", "throw", "typeid", "requires",
		"static_cast", "dynamic_cast", "const_cast", "reinterpret_cast",
		"co_await", "co_yield", "co_return", "decltype":
		return true
	}
	return false
}

// IsReservedWord reports whether name can't be used as an identifier
// inside a qualified name.
func IsReservedWord(name string) bool {
	return IsTypeRelatedKeyword(name) || IsExpressionKeyword(name) || name == "operator"
}

// Overloadable multi-character operators, longest first.
var multiCharOperators = []string{
	"<=>", "<<=", ">>=", "->*",
	"->", "+=", "-=", "*=", "/=", "%=", "^=", "&=", "|=",
	"==", "!=", "<=", ">=", "&&", "||", "<<", ">>", "++", "--",
}

var singleCharOperators = "~!+-*/%^&|=<>,"

// ConsumeOperatorToken reads a token that may follow `operator` at pos.
// `(  )` and `[  ]` are accepted with any inner whitespace and returned
// condensed.
func ConsumeOperatorToken(s string, pos int) (string, int, bool) {
	return consumeOperatorToken(s, pos, false)
}

func consumeOperatorToken(s string, pos int, multiOnly bool) (string, int, bool) {
	rest := s[pos:]
	for _, tok := range multiCharOperators {
		if strings.HasPrefix(rest, tok) {
			return tok, pos + len(tok), true
		}
	}
	if !multiOnly && rest != "" && strings.IndexByte(singleCharOperators, rest[0]) >= 0 {
		return rest[:1], pos + 1, true
	}
	for _, pair := range [...]string{"()", "[]"} {
		if rest != "" && rest[0] == pair[0] {
			end := SkipWhitespace(s, pos+1)
			if end < len(s) && s[end] == pair[1] {
				return pair, end + 1, true
			}
		}
	}
	return "", pos, false
}

// Punctuation recognized in pseudo-expressions, longest first.
var punctuation = []string{
	"<=>", "<<=", ">>=", "->*", "...",
	"::", "->", ".*", "+=", "-=", "*=", "/=", "%=", "^=", "&=", "|=",
	"==", "!=", "<=", ">=", "&&", "||", "<<", ">>", "++", "--",
	"~", "!", "+", "-", "*", "/", "%", "^", "&", "|", "=", "<", ">",
	",", ".", "?", ":", ";", "#",
}

// ConsumePunctuation reads the longest punctuation token at pos.
func ConsumePunctuation(s string, pos int) (string, int, bool) {
	rest := s[pos:]
	for _, tok := range punctuation {
		if strings.HasPrefix(rest, tok) {
			return tok, pos + len(tok), true
		}
	}
	return "", pos, false
}

// NeedsSpace reports whether a space must separate left and right when
// they are concatenated, either because both sides are identifier-like or
// because maximum munch would fuse the punctuation at the junction.
func NeedsSpace(left, right string) bool {
	if left == "" || right == "" {
		return false
	}
	l, r := left[len(left)-1], right[0]
	if IsIdentifierChar(l) && IsIdentifierChar(r) {
		return true
	}
	if IsIdentifierChar(l) || IsIdentifierChar(r) {
		return false
	}
	// Try every junction of up to three characters.
	for lt := 1; lt <= 2 && lt <= len(left); lt++ {
		for rt := 1; rt <= 2 && lt+rt <= 3 && rt <= len(right); rt++ {
			joined := left[len(left)-lt:] + right[:rt]
			if tok, end, ok := consumeOperatorToken(joined, 0, true); ok && end == len(joined) && len(tok) == len(joined) {
				return true
			}
			if tok, end, ok := ConsumePunctuation(joined, 0); ok && end == len(joined) && len(tok) > 1 {
				return true
			}
		}
	}
	return false
}

// Join concatenates tokens, inserting a space only where NeedsSpace says so.
func Join(tokens ...string) string {
	var sb strings.Builder
	prev := ""
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if NeedsSpace(prev, tok) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok)
		prev = sb.String()
	}
	return sb.String()
}
