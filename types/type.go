package types

// Type is a SimpleType plus declarator modifiers. Modifiers[0] is the one
// closest to the declared name, so `int *const *x` is
// [pointer, const pointer] applied to `int`.
type Type struct {
	SimpleType SimpleType
	Modifiers  []TypeModifier
}

// TypeModifier is one of *Pointer, *Reference, *MemberPointer, *Array or
// *Function.
type TypeModifier interface {
	isTypeModifier()
}

type Pointer struct {
	Quals CvQualifiers
}

// RefQualifier is the kind of a reference or the ref-qualifier of a
// member function.
type RefQualifier uint8

const (
	RefNone RefQualifier = iota
	RefLvalue
	RefRvalue
)

// Reference is `&` or `&&`. Kind is never RefNone.
type Reference struct {
	Quals CvQualifiers
	Kind  RefQualifier
}

// MemberPointer is `Base::*`.
type MemberPointer struct {
	Quals CvQualifiers
	Base  QualifiedName
}

// Array is `[Size]`. An empty Size means unknown bound.
type Array struct {
	Size PseudoExpr
}

type Function struct {
	Params []MaybeAmbiguousDecl

	CvQuals  CvQualifiers
	RefQual  RefQualifier
	Noexcept bool

	// UsesTrailingReturnType is set for `auto f() -> R`. The return type is
	// still stored in the enclosing Type as usual.
	UsesTrailingReturnType bool
	// CStyleVoidParams is `f(void)`. Params is empty then.
	CStyleVoidParams bool
	// CStyleVariadic is a trailing `...`.
	CStyleVariadic bool
	// MissingCommaBeforeVariadic is `f(int...)`, which is deprecated.
	MissingCommaBeforeVariadic bool
}

func (*Pointer) isTypeModifier()       {}
func (*Reference) isTypeModifier()     {}
func (*MemberPointer) isTypeModifier() {}
func (*Array) isTypeModifier()         {}
func (*Function) isTypeModifier()      {}

// ModifierQualifiersMut returns the qualifiers of m, or nil if that kind of
// modifier can't be qualified.
func ModifierQualifiersMut(m TypeModifier) *CvQualifiers {
	switch m := m.(type) {
	case *Pointer:
		return &m.Quals
	case *Reference:
		return &m.Quals
	case *MemberPointer:
		return &m.Quals
	case *Array, *Function:
		return nil
	}
	panic("cppdecl: unknown type modifier")
}

// IsPrefixModifier reports whether m is spelled before the declared name.
func IsPrefixModifier(m TypeModifier) bool {
	switch m.(type) {
	case *Pointer, *Reference, *MemberPointer:
		return true
	}
	return false
}

// NewType returns a type with no modifiers.
func NewType(st SimpleType) Type {
	return Type{SimpleType: st}
}

// IsEmpty reports whether there is neither a simple type nor modifiers.
func (t *Type) IsEmpty() bool {
	return t.SimpleType.IsEmpty() && len(t.Modifiers) == 0
}

// IsOnlyQualifiedName reports whether the type is just a name.
func (t *Type) IsOnlyQualifiedName() bool {
	return len(t.Modifiers) == 0 && t.SimpleType.IsOnlyQualifiedName()
}

// AsSingleWord returns the name if the type is a single unqualified word
// with no modifiers.
func (t *Type) AsSingleWord() string {
	if len(t.Modifiers) != 0 {
		return ""
	}
	return t.SimpleType.Name.AsSingleWord()
}

// Top returns the first modifier, or nil if there are none.
func (t *Type) Top() TypeModifier {
	if len(t.Modifiers) == 0 {
		return nil
	}
	return t.Modifiers[0]
}

// TopLevelQualifiers returns the qualifiers of the first modifier, or of
// the simple type if there are no modifiers.
func (t *Type) TopLevelQualifiers() CvQualifiers {
	if q := t.TopLevelQualifiersMut(); q != nil {
		return *q
	}
	return 0
}

// TopLevelQualifiersMut is like TopLevelQualifiers, but returns nil if the
// first modifier can't be qualified.
func (t *Type) TopLevelQualifiersMut() *CvQualifiers {
	if len(t.Modifiers) == 0 {
		return &t.SimpleType.Quals
	}
	return ModifierQualifiersMut(t.Modifiers[0])
}

// AddTopLevelQualifiers panics if the first modifier can't be qualified.
func (t *Type) AddTopLevelQualifiers(q CvQualifiers) {
	p := t.TopLevelQualifiersMut()
	if p == nil {
		panic("cppdecl: this modifier doesn't support cv-qualifiers")
	}
	*p |= q
}

// RemoveTopLevelQualifiers does nothing if the first modifier can't be
// qualified.
func (t *Type) RemoveTopLevelQualifiers(q CvQualifiers) {
	if p := t.TopLevelQualifiersMut(); p != nil {
		*p &^= q
	}
}

func (t *Type) IsConst() bool {
	return t.TopLevelQualifiers()&Const != 0
}

// AddTopLevelModifier inserts m as the new first modifier.
func (t *Type) AddTopLevelModifier(m TypeModifier) {
	t.Modifiers = append([]TypeModifier{m}, t.Modifiers...)
}

// RemoveTopLevelModifier drops the first modifier. It panics if there are
// none.
func (t *Type) RemoveTopLevelModifier() {
	if len(t.Modifiers) == 0 {
		panic("cppdecl: no modifier to remove")
	}
	t.Modifiers = t.Modifiers[1:]
}

// AppendType replaces the empty simple type of t with the one of other, and
// appends the modifiers of other. This attaches a trailing return type to
// the function modifier that owns it.
func (t *Type) AppendType(other Type) {
	if !t.SimpleType.IsEmpty() {
		panic("cppdecl: AppendType on a type with a non-empty simple type")
	}
	t.SimpleType = other.SimpleType
	t.Modifiers = append(t.Modifiers, other.Modifiers...)
}

// TopFunction returns the first modifier if it is a function.
func (t *Type) TopFunction() *Function {
	f, _ := t.Top().(*Function)
	return f
}
