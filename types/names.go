package types

// QualifiedName is a possibly scoped name such as `std::vector<int>` or
// `::A::~A`. A name with no parts that isn't forced into the global scope is
// the "no name" sentinel.
type QualifiedName struct {
	Parts []UnqualifiedName
	// ForceGlobalScope is set when the name starts with `::`.
	ForceGlobalScope bool
}

// UnqualifiedName is one `::`-separated component of a QualifiedName.
type UnqualifiedName struct {
	Var NameVariant
	// TemplateArgs is nil when there is no template argument list at all,
	// which is different from an empty `<>` list.
	TemplateArgs *TemplateArgumentList
}

// NameVariant is one of Identifier, OverloadedOperator, *ConversionOperator,
// UserDefinedLiteral or *DestructorName.
type NameVariant interface {
	isNameVariant()
}

// Identifier is a plain word.
type Identifier string

// OverloadedOperator is `operator@`. Token is one of the overloadable
// tokens, `()`, `[]`, `new`, `new[]`, `delete`, `delete[]` or `co_await`.
type OverloadedOperator struct {
	Token string
}

// ConversionOperator is `operator T`.
type ConversionOperator struct {
	Target Type
}

// UserDefinedLiteral is `operator""_x`.
type UserDefinedLiteral struct {
	Suffix string
	// SpaceBeforeSuffix records the deprecated `operator"" _x` spelling.
	SpaceBeforeSuffix bool
}

// DestructorName is `~T`.
type DestructorName struct {
	Type SimpleType
}

func (Identifier) isNameVariant()          {}
func (OverloadedOperator) isNameVariant()  {}
func (*ConversionOperator) isNameVariant() {}
func (UserDefinedLiteral) isNameVariant()  {}
func (*DestructorName) isNameVariant()     {}

// TemplateArgumentList is the contents of `<...>`.
type TemplateArgumentList struct {
	Args []TemplateArgument
}

// TemplateArgument holds either a *Type or a *PseudoExpr. Arguments that
// parse as types are stored as types even if they could also be
// expressions.
type TemplateArgument struct {
	Var TemplateArgumentVariant
}

type TemplateArgumentVariant interface {
	isTemplateArgumentVariant()
}

func (*Type) isTemplateArgumentVariant()       {}
func (*PseudoExpr) isTemplateArgumentVariant() {}

// NewQualifiedName builds a name from plain identifiers.
func NewQualifiedName(words ...string) QualifiedName {
	var n QualifiedName
	for _, w := range words {
		n.Parts = append(n.Parts, UnqualifiedName{Var: Identifier(w)})
	}
	return n
}

// TypeArg wraps a type as a template argument.
func TypeArg(t Type) TemplateArgument {
	return TemplateArgument{Var: &t}
}

// AsType returns the argument's type, or nil if it is an expression.
func (a *TemplateArgument) AsType() *Type {
	t, _ := a.Var.(*Type)
	return t
}

// AsPseudoExpr returns the argument's expression, or nil if it is a type.
func (a *TemplateArgument) AsPseudoExpr() *PseudoExpr {
	e, _ := a.Var.(*PseudoExpr)
	return e
}

// AsSingleWord returns the identifier if the part is a plain identifier
// without template arguments.
func (u *UnqualifiedName) AsSingleWord() string {
	if u.TemplateArgs != nil {
		return ""
	}
	return u.AsSingleWordIgnoringTemplateArgs()
}

func (u *UnqualifiedName) AsSingleWordIgnoringTemplateArgs() string {
	if id, ok := u.Var.(Identifier); ok {
		return string(id)
	}
	return ""
}

// IsBuiltInTypeName reports whether the part spells a keyword type allowed
// by flags. Multi-word spellings such as `long long` are stored as a single
// identifier.
func (u *UnqualifiedName) IsBuiltInTypeName(flags BuiltInTypeFlags) bool {
	word := u.AsSingleWord()
	if word == "" {
		return false
	}
	if flags&AllowVoid != 0 && word == "void" {
		return true
	}
	if flags&AllowIntegral != 0 {
		switch word {
		case "char", "short", "int", "long", "long long":
			return true
		}
	}
	if flags&AllowFloatingPoint != 0 {
		switch word {
		case "float", "double", "long double":
			return true
		}
	}
	return false
}

// BuiltInTypeFlags selects which keyword types IsBuiltInTypeName accepts.
type BuiltInTypeFlags uint8

const (
	AllowVoid BuiltInTypeFlags = 1 << iota
	AllowIntegral
	AllowFloatingPoint

	AllowArithmetic = AllowIntegral | AllowFloatingPoint
	AllowAll        = AllowVoid | AllowArithmetic
)

func (n *QualifiedName) IsEmpty() bool {
	return len(n.Parts) == 0 && !n.ForceGlobalScope
}

// IsQualified reports whether the name has more than one part or a leading `::`.
func (n *QualifiedName) IsQualified() bool {
	return n.ForceGlobalScope || len(n.Parts) > 1
}

func (n *QualifiedName) AsSingleWord() string {
	if n.ForceGlobalScope || len(n.Parts) != 1 {
		return ""
	}
	return n.Parts[0].AsSingleWord()
}

func (n *QualifiedName) AsSingleWordIgnoringTemplateArgs() string {
	if n.ForceGlobalScope || len(n.Parts) != 1 {
		return ""
	}
	return n.Parts[0].AsSingleWordIgnoringTemplateArgs()
}

func (n *QualifiedName) IsBuiltInTypeName(flags BuiltInTypeFlags) bool {
	if n.ForceGlobalScope || len(n.Parts) != 1 {
		return false
	}
	return n.Parts[0].IsBuiltInTypeName(flags)
}

// Last returns the last part, or nil if there are none.
func (n *QualifiedName) Last() *UnqualifiedName {
	if len(n.Parts) == 0 {
		return nil
	}
	return &n.Parts[len(n.Parts)-1]
}

func (n *QualifiedName) LastComponentIsNormalString() bool {
	if last := n.Last(); last != nil {
		_, ok := last.Var.(Identifier)
		return ok
	}
	return false
}

func (n *QualifiedName) IsDestructorName() bool {
	if last := n.Last(); last != nil {
		_, ok := last.Var.(*DestructorName)
		return ok
	}
	return false
}

func (n *QualifiedName) IsConversionOperatorName() bool {
	if last := n.Last(); last != nil {
		_, ok := last.Var.(*ConversionOperator)
		return ok
	}
	return false
}

// CertainlyIsQualifiedConstructorName reports whether the last two parts are
// the same identifier, as in `A::A`. Constructors named through a typedef
// (`using B = A; B::A`) are not detected, so this is a best-effort check.
func (n *QualifiedName) CertainlyIsQualifiedConstructorName() bool {
	if len(n.Parts) < 2 {
		return false
	}
	last := &n.Parts[len(n.Parts)-1]
	if last.TemplateArgs != nil {
		return false
	}
	a, ok1 := n.Parts[len(n.Parts)-2].Var.(Identifier)
	b, ok2 := last.Var.(Identifier)
	return ok1 && ok2 && a == b
}

// EmptyReturnType classifies names that may or must be declared without a
// return type.
type EmptyReturnType uint8

const (
	EmptyReturnNo EmptyReturnType = iota
	// EmptyReturnYes is for destructors, conversion operators and `A::A`.
	EmptyReturnYes
	// EmptyReturnMaybeUnqualConstructor is any plain unqualified identifier.
	EmptyReturnMaybeUnqualConstructor
	// EmptyReturnMaybeQualConstructorUsingTypedef is `A::B`, which is a
	// constructor if `A` is a typedef for `B`.
	EmptyReturnMaybeQualConstructorUsingTypedef
)

// IsFunctionNameRequiringEmptyReturnType classifies the name. The
// constructor cases are heuristic since no symbol table is consulted.
func (n *QualifiedName) IsFunctionNameRequiringEmptyReturnType() EmptyReturnType {
	if len(n.Parts) == 0 {
		return EmptyReturnNo
	}
	if n.IsConversionOperatorName() || n.IsDestructorName() || n.CertainlyIsQualifiedConstructorName() {
		return EmptyReturnYes
	}
	if !n.LastComponentIsNormalString() {
		return EmptyReturnNo
	}
	// Constructors can't be spelled with template arguments since C++20.
	if n.Last().TemplateArgs != nil {
		return EmptyReturnNo
	}
	if n.IsBuiltInTypeName(AllowAll) {
		return EmptyReturnNo
	}
	if len(n.Parts) > 1 {
		return EmptyReturnMaybeQualConstructorUsingTypedef
	}
	return EmptyReturnMaybeUnqualConstructor
}
