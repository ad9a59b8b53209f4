package types

// PseudoExpr is a loosely tokenized expression, used for array bounds and
// non-type template arguments. It is not parsed any further.
type PseudoExpr struct {
	Tokens []PseudoExprToken
}

// PseudoExprToken is one of *SimpleType (identifiers are stored as types),
// PunctuationToken, NumberToken, *StringOrCharLiteral, *PseudoExprList or
// *TemplateArgumentList.
type PseudoExprToken interface {
	isPseudoExprToken()
}

type PunctuationToken struct {
	Value string
}

// NumberToken is anything that looks like a number, suffixes and digit
// separators included.
type NumberToken struct {
	Value string
}

type LiteralKind uint8

const (
	LiteralCharacter LiteralKind = iota
	LiteralString
	LiteralRawString
)

// LiteralEncoding is the encoding prefix of a literal.
type LiteralEncoding uint8

const (
	EncodingNormal LiteralEncoding = iota
	EncodingWide
	EncodingU8
	EncodingU16
	EncodingU32
)

func (e LiteralEncoding) Prefix() string {
	switch e {
	case EncodingWide:
		return "L"
	case EncodingU8:
		return "u8"
	case EncodingU16:
		return "u"
	case EncodingU32:
		return "U"
	}
	return ""
}

type StringOrCharLiteral struct {
	Kind     LiteralKind
	Encoding LiteralEncoding
	// Value is the text between the quotes (or the raw delimiters). Escapes
	// are kept as written.
	Value string
	// LiteralSuffix is a user-defined literal suffix, if any.
	LiteralSuffix string
	// RawStringDelim is the delimiter between `"` and `(` of a raw string.
	RawStringDelim string
}

type ListKind uint8

const (
	ListParentheses ListKind = iota
	ListCurly
	ListSquare
)

// Brackets returns the opening and closing characters of the list.
func (k ListKind) Brackets() (string, string) {
	switch k {
	case ListCurly:
		return "{", "}"
	case ListSquare:
		return "[", "]"
	}
	return "(", ")"
}

// PseudoExprList is `(...)`, `{...}` or `[...]`.
type PseudoExprList struct {
	Kind  ListKind
	Elems []PseudoExpr
	// HasTrailingComma is only set for braced lists.
	HasTrailingComma bool
}

func (*SimpleType) isPseudoExprToken()           {}
func (PunctuationToken) isPseudoExprToken()      {}
func (NumberToken) isPseudoExprToken()           {}
func (*StringOrCharLiteral) isPseudoExprToken()  {}
func (*PseudoExprList) isPseudoExprToken()       {}
func (*TemplateArgumentList) isPseudoExprToken() {}

func (e *PseudoExpr) IsEmpty() bool {
	return len(e.Tokens) == 0
}

// NewNumberExpr returns an expression made of a single number.
func NewNumberExpr(value string) PseudoExpr {
	return PseudoExpr{Tokens: []PseudoExprToken{NumberToken{Value: value}}}
}

// AsSingleIdentifier returns the word if the expression is one plain
// identifier, such as `true`.
func (e *PseudoExpr) AsSingleIdentifier() string {
	if len(e.Tokens) != 1 {
		return ""
	}
	if st, ok := e.Tokens[0].(*SimpleType); ok && st.IsOnlyQualifiedName() {
		return st.Name.AsSingleWord()
	}
	return ""
}
