package types

import "strings"

// CvQualifiers is a set of cv-qualifiers, `restrict`, and the MSVC pointer
// size qualifiers.
type CvQualifiers uint8

const (
	Const CvQualifiers = 1 << iota
	Volatile
	Restrict
	// MsvcPtr32 and MsvcPtr64 only appear on pointers.
	MsvcPtr32
	MsvcPtr64

	CvMask      = Const | Volatile
	MsvcPtrMask = MsvcPtr32 | MsvcPtr64
)

func (q CvQualifiers) Has(other CvQualifiers) bool {
	return q&other == other
}

// Words returns the qualifier names in canonical order. Restrict is
// spelled `restrict`.
func (q CvQualifiers) Words() []string {
	var words []string
	if q&Const != 0 {
		words = append(words, "const")
	}
	if q&Volatile != 0 {
		words = append(words, "volatile")
	}
	if q&Restrict != 0 {
		words = append(words, "restrict")
	}
	if q&MsvcPtr32 != 0 {
		words = append(words, "__ptr32")
	}
	if q&MsvcPtr64 != 0 {
		words = append(words, "__ptr64")
	}
	return words
}

// SimpleTypeFlags records how the signedness and `int` were spelled.
type SimpleTypeFlags uint8

const (
	Unsigned SimpleTypeFlags = 1 << iota
	// ExplicitlySigned is mutually exclusive with Unsigned. It only matters
	// for `char`.
	ExplicitlySigned
	// RedundantInt is set for `long int`, `short int` and friends. The `int`
	// isn't kept in the name. Not set for `signed int` or `unsigned int`.
	RedundantInt
	// ImpliedInt is set for a lone `signed`/`unsigned`, in which case the
	// name is synthesized as `int`.
	ImpliedInt
)

func (f SimpleTypeFlags) Words() []string {
	var words []string
	if f&Unsigned != 0 {
		words = append(words, "unsigned")
	}
	if f&ExplicitlySigned != 0 {
		words = append(words, "explicitly_signed")
	}
	if f&RedundantInt != 0 {
		words = append(words, "redundant_int")
	}
	if f&ImpliedInt != 0 {
		words = append(words, "implied_int")
	}
	return words
}

// SimpleTypePrefix is an elaborated type specifier or `typename`.
type SimpleTypePrefix uint8

const (
	PrefixNone SimpleTypePrefix = iota
	PrefixStruct
	PrefixClass
	PrefixUnion
	PrefixEnum
	PrefixTypename
)

func (p SimpleTypePrefix) String() string {
	switch p {
	case PrefixStruct:
		return "struct"
	case PrefixClass:
		return "class"
	case PrefixUnion:
		return "union"
	case PrefixEnum:
		return "enum"
	case PrefixTypename:
		return "typename"
	}
	return ""
}

// SimpleTypePrefixFromWord returns the prefix spelled by word.
func SimpleTypePrefixFromWord(word string) (SimpleTypePrefix, bool) {
	switch word {
	case "struct":
		return PrefixStruct, true
	case "class":
		return PrefixClass, true
	case "union":
		return PrefixUnion, true
	case "enum":
		return PrefixEnum, true
	case "typename":
		return PrefixTypename, true
	}
	return PrefixNone, false
}

// SimpleType is the decl-specifier part of a type: the part shared by every
// declarator in a declaration.
type SimpleType struct {
	Quals  CvQualifiers
	Flags  SimpleTypeFlags
	Prefix SimpleTypePrefix
	// Name never includes `signed`/`unsigned`. Multi-word built-in types
	// like `long long` are a single identifier.
	Name QualifiedName
}

// NewSimpleType returns an unqualified type named by words.
func NewSimpleType(words ...string) SimpleType {
	return SimpleType{Name: NewQualifiedName(words...)}
}

func (s *SimpleType) IsEmpty() bool {
	if s.Name.IsEmpty() && s.Flags != 0 {
		panic("cppdecl: a simple type with an empty name can't have flags")
	}
	return s.Name.IsEmpty() && s.Quals == 0 && s.Prefix == PrefixNone
}

// IsOnlyQualifiedName reports whether the type has no qualifiers or flags,
// which makes it equivalent to its bare name. The elaborated prefix is
// ignored.
func (s *SimpleType) IsOnlyQualifiedName() bool {
	return s.Quals == 0 && s.Flags == 0
}

// IsNonRedundantlySigned reports whether the type is `signed char`, the
// only case where an explicit `signed` changes the type.
func (s *SimpleType) IsNonRedundantlySigned() bool {
	return s.Flags&ExplicitlySigned != 0 && s.Name.AsSingleWord() == "char"
}

func cvWords(q CvQualifiers, sep string) string {
	return strings.Join(q.Words(), sep)
}
