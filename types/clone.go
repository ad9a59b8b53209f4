package types

// Clone methods return deep copies that share no mutable state with the
// receiver.

func (n *QualifiedName) Clone() QualifiedName {
	ret := QualifiedName{ForceGlobalScope: n.ForceGlobalScope}
	if n.Parts != nil {
		ret.Parts = make([]UnqualifiedName, len(n.Parts))
		for i := range n.Parts {
			ret.Parts[i] = n.Parts[i].Clone()
		}
	}
	return ret
}

func (u *UnqualifiedName) Clone() UnqualifiedName {
	ret := UnqualifiedName{}
	switch v := u.Var.(type) {
	case Identifier, OverloadedOperator, UserDefinedLiteral, nil:
		ret.Var = v
	case *ConversionOperator:
		ret.Var = &ConversionOperator{Target: v.Target.Clone()}
	case *DestructorName:
		ret.Var = &DestructorName{Type: v.Type.Clone()}
	default:
		panic("cppdecl: unknown name variant")
	}
	if u.TemplateArgs != nil {
		targs := u.TemplateArgs.Clone()
		ret.TemplateArgs = &targs
	}
	return ret
}

func (l *TemplateArgumentList) Clone() TemplateArgumentList {
	ret := TemplateArgumentList{}
	if l.Args != nil {
		ret.Args = make([]TemplateArgument, len(l.Args))
		for i := range l.Args {
			ret.Args[i] = l.Args[i].Clone()
		}
	}
	return ret
}

func (a *TemplateArgument) Clone() TemplateArgument {
	switch v := a.Var.(type) {
	case *Type:
		t := v.Clone()
		return TemplateArgument{Var: &t}
	case *PseudoExpr:
		e := v.Clone()
		return TemplateArgument{Var: &e}
	}
	panic("cppdecl: unknown template argument variant")
}

func (s *SimpleType) Clone() SimpleType {
	ret := *s
	ret.Name = s.Name.Clone()
	return ret
}

func (t *Type) Clone() Type {
	ret := Type{SimpleType: t.SimpleType.Clone()}
	if t.Modifiers != nil {
		ret.Modifiers = make([]TypeModifier, len(t.Modifiers))
		for i, m := range t.Modifiers {
			ret.Modifiers[i] = CloneModifier(m)
		}
	}
	return ret
}

func CloneModifier(m TypeModifier) TypeModifier {
	switch m := m.(type) {
	case *Pointer:
		c := *m
		return &c
	case *Reference:
		c := *m
		return &c
	case *MemberPointer:
		return &MemberPointer{Quals: m.Quals, Base: m.Base.Clone()}
	case *Array:
		return &Array{Size: m.Size.Clone()}
	case *Function:
		c := *m
		if m.Params != nil {
			c.Params = make([]MaybeAmbiguousDecl, len(m.Params))
			for i := range m.Params {
				c.Params[i] = m.Params[i].Clone()
			}
		}
		return &c
	}
	panic("cppdecl: unknown type modifier")
}

func (d *Decl) Clone() Decl {
	return Decl{Type: d.Type.Clone(), Name: d.Name.Clone()}
}

func (m *MaybeAmbiguousDecl) Clone() MaybeAmbiguousDecl {
	ret := MaybeAmbiguousDecl{Decl: m.Decl.Clone(), HasNestedAmbiguities: m.HasNestedAmbiguities}
	if m.Alternative != nil {
		alt := m.Alternative.Clone()
		ret.Alternative = &alt
	}
	return ret
}

func (m *MaybeAmbiguousType) Clone() MaybeAmbiguousType {
	ret := MaybeAmbiguousType{Type: m.Type.Clone(), HasNestedAmbiguities: m.HasNestedAmbiguities}
	if m.Alternative != nil {
		alt := m.Alternative.Clone()
		ret.Alternative = &alt
	}
	return ret
}

func (e *PseudoExpr) Clone() PseudoExpr {
	ret := PseudoExpr{}
	if e.Tokens != nil {
		ret.Tokens = make([]PseudoExprToken, len(e.Tokens))
		for i, tok := range e.Tokens {
			ret.Tokens[i] = cloneToken(tok)
		}
	}
	return ret
}

func cloneToken(tok PseudoExprToken) PseudoExprToken {
	switch tok := tok.(type) {
	case *SimpleType:
		c := tok.Clone()
		return &c
	case PunctuationToken, NumberToken:
		return tok
	case *StringOrCharLiteral:
		c := *tok
		return &c
	case *PseudoExprList:
		c := tok.Clone()
		return &c
	case *TemplateArgumentList:
		c := tok.Clone()
		return &c
	}
	panic("cppdecl: unknown pseudo-expression token")
}

func (l *PseudoExprList) Clone() PseudoExprList {
	ret := PseudoExprList{Kind: l.Kind, HasTrailingComma: l.HasTrailingComma}
	if l.Elems != nil {
		ret.Elems = make([]PseudoExpr, len(l.Elems))
		for i := range l.Elems {
			ret.Elems[i] = l.Elems[i].Clone()
		}
	}
	return ret
}
