package types

// Structural equality. Nil and empty slices compare equal, a nil template
// argument list does not equal an empty one.

func (n *QualifiedName) Equal(o *QualifiedName) bool {
	if n.ForceGlobalScope != o.ForceGlobalScope || len(n.Parts) != len(o.Parts) {
		return false
	}
	for i := range n.Parts {
		if !n.Parts[i].Equal(&o.Parts[i]) {
			return false
		}
	}
	return true
}

func (u *UnqualifiedName) Equal(o *UnqualifiedName) bool {
	if !nameVariantEqual(u.Var, o.Var) {
		return false
	}
	if (u.TemplateArgs == nil) != (o.TemplateArgs == nil) {
		return false
	}
	return u.TemplateArgs == nil || u.TemplateArgs.Equal(o.TemplateArgs)
}

func nameVariantEqual(a, b NameVariant) bool {
	switch a := a.(type) {
	case Identifier:
		b, ok := b.(Identifier)
		return ok && a == b
	case OverloadedOperator:
		b, ok := b.(OverloadedOperator)
		return ok && a == b
	case UserDefinedLiteral:
		b, ok := b.(UserDefinedLiteral)
		return ok && a == b
	case *ConversionOperator:
		b, ok := b.(*ConversionOperator)
		return ok && a.Target.Equal(&b.Target)
	case *DestructorName:
		b, ok := b.(*DestructorName)
		return ok && a.Type.Equal(&b.Type)
	case nil:
		return b == nil
	}
	panic("cppdecl: unknown name variant")
}

func (l *TemplateArgumentList) Equal(o *TemplateArgumentList) bool {
	if len(l.Args) != len(o.Args) {
		return false
	}
	for i := range l.Args {
		if !l.Args[i].Equal(&o.Args[i]) {
			return false
		}
	}
	return true
}

func (a *TemplateArgument) Equal(o *TemplateArgument) bool {
	switch v := a.Var.(type) {
	case *Type:
		w, ok := o.Var.(*Type)
		return ok && v.Equal(w)
	case *PseudoExpr:
		w, ok := o.Var.(*PseudoExpr)
		return ok && v.Equal(w)
	}
	panic("cppdecl: unknown template argument variant")
}

func (s *SimpleType) Equal(o *SimpleType) bool {
	return s.Quals == o.Quals && s.Flags == o.Flags && s.Prefix == o.Prefix && s.Name.Equal(&o.Name)
}

func (t *Type) Equal(o *Type) bool {
	if !t.SimpleType.Equal(&o.SimpleType) || len(t.Modifiers) != len(o.Modifiers) {
		return false
	}
	for i := range t.Modifiers {
		if !ModifierEqual(t.Modifiers[i], o.Modifiers[i]) {
			return false
		}
	}
	return true
}

func ModifierEqual(a, b TypeModifier) bool {
	switch a := a.(type) {
	case *Pointer:
		b, ok := b.(*Pointer)
		return ok && *a == *b
	case *Reference:
		b, ok := b.(*Reference)
		return ok && *a == *b
	case *MemberPointer:
		b, ok := b.(*MemberPointer)
		return ok && a.Quals == b.Quals && a.Base.Equal(&b.Base)
	case *Array:
		b, ok := b.(*Array)
		return ok && a.Size.Equal(&b.Size)
	case *Function:
		b, ok := b.(*Function)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}
		if a.CvQuals != b.CvQuals || a.RefQual != b.RefQual || a.Noexcept != b.Noexcept ||
			a.UsesTrailingReturnType != b.UsesTrailingReturnType || a.CStyleVoidParams != b.CStyleVoidParams ||
			a.CStyleVariadic != b.CStyleVariadic || a.MissingCommaBeforeVariadic != b.MissingCommaBeforeVariadic {
			return false
		}
		for i := range a.Params {
			if !a.Params[i].Equal(&b.Params[i]) {
				return false
			}
		}
		return true
	}
	panic("cppdecl: unknown type modifier")
}

func (d *Decl) Equal(o *Decl) bool {
	return d.Type.Equal(&o.Type) && d.Name.Equal(&o.Name)
}

// Equal compares every reading and the nested ambiguity flag.
func (m *MaybeAmbiguousDecl) Equal(o *MaybeAmbiguousDecl) bool {
	for {
		if !m.Decl.Equal(&o.Decl) || m.HasNestedAmbiguities != o.HasNestedAmbiguities {
			return false
		}
		if m.Alternative == nil || o.Alternative == nil {
			return m.Alternative == nil && o.Alternative == nil
		}
		m, o = m.Alternative, o.Alternative
	}
}

func (m *MaybeAmbiguousType) Equal(o *MaybeAmbiguousType) bool {
	for {
		if !m.Type.Equal(&o.Type) || m.HasNestedAmbiguities != o.HasNestedAmbiguities {
			return false
		}
		if m.Alternative == nil || o.Alternative == nil {
			return m.Alternative == nil && o.Alternative == nil
		}
		m, o = m.Alternative, o.Alternative
	}
}

func (e *PseudoExpr) Equal(o *PseudoExpr) bool {
	if len(e.Tokens) != len(o.Tokens) {
		return false
	}
	for i := range e.Tokens {
		if !tokenEqual(e.Tokens[i], o.Tokens[i]) {
			return false
		}
	}
	return true
}

func tokenEqual(a, b PseudoExprToken) bool {
	switch a := a.(type) {
	case *SimpleType:
		b, ok := b.(*SimpleType)
		return ok && a.Equal(b)
	case PunctuationToken:
		b, ok := b.(PunctuationToken)
		return ok && a == b
	case NumberToken:
		b, ok := b.(NumberToken)
		return ok && a == b
	case *StringOrCharLiteral:
		b, ok := b.(*StringOrCharLiteral)
		return ok && *a == *b
	case *PseudoExprList:
		b, ok := b.(*PseudoExprList)
		return ok && a.Equal(b)
	case *TemplateArgumentList:
		b, ok := b.(*TemplateArgumentList)
		return ok && a.Equal(b)
	}
	panic("cppdecl: unknown pseudo-expression token")
}

func (l *PseudoExprList) Equal(o *PseudoExprList) bool {
	if l.Kind != o.Kind || l.HasTrailingComma != o.HasTrailingComma || len(l.Elems) != len(o.Elems) {
		return false
	}
	for i := range l.Elems {
		if !l.Elems[i].Equal(&o.Elems[i]) {
			return false
		}
	}
	return true
}
