package types

// Decl is a type with an optional name. Unnamed decls are abstract
// declarators such as the parameter types of `void(int, char *)`.
type Decl struct {
	Type Type
	Name QualifiedName
}

func (d *Decl) IsEmpty() bool {
	return d.Type.IsEmpty()
}

// MaybeAmbiguousDecl is a decl that may have other valid readings of the
// same text chained through Alternative.
type MaybeAmbiguousDecl struct {
	Decl
	Alternative *MaybeAmbiguousDecl
	// HasNestedAmbiguities is set when an ambiguity exists somewhere inside,
	// for example in a function parameter, even if this node has a single
	// reading.
	HasNestedAmbiguities bool
}

func (m *MaybeAmbiguousDecl) IsAmbiguous() bool {
	return m.Alternative != nil || m.HasNestedAmbiguities
}

// Alternatives returns every reading, starting with m itself.
func (m *MaybeAmbiguousDecl) Alternatives() []*MaybeAmbiguousDecl {
	var ret []*MaybeAmbiguousDecl
	for cur := m; cur != nil; cur = cur.Alternative {
		ret = append(ret, cur)
	}
	return ret
}

// MaybeAmbiguousType is the type counterpart of MaybeAmbiguousDecl.
type MaybeAmbiguousType struct {
	Type
	Alternative          *MaybeAmbiguousType
	HasNestedAmbiguities bool
}

func (m *MaybeAmbiguousType) IsAmbiguous() bool {
	return m.Alternative != nil || m.HasNestedAmbiguities
}

func (m *MaybeAmbiguousType) Alternatives() []*MaybeAmbiguousType {
	var ret []*MaybeAmbiguousType
	for cur := m; cur != nil; cur = cur.Alternative {
		ret = append(ret, cur)
	}
	return ret
}

// ToType drops the names of every reading.
func (m *MaybeAmbiguousDecl) ToType() MaybeAmbiguousType {
	ret := MaybeAmbiguousType{Type: m.Type, HasNestedAmbiguities: m.HasNestedAmbiguities}
	if m.Alternative != nil {
		alt := m.Alternative.ToType()
		ret.Alternative = &alt
	}
	return ret
}

// ContainsAmbiguity reports whether any function parameter anywhere in t is
// ambiguous, including inside template arguments.
func (t *Type) ContainsAmbiguity() bool {
	found := false
	t.walk(&walker{
		param: func(p *MaybeAmbiguousDecl) bool {
			if p.IsAmbiguous() {
				found = true
			}
			return !found
		},
	})
	return found
}

// ContainsAmbiguity reports whether the decl's type or name hold an
// ambiguous function parameter.
func (d *Decl) ContainsAmbiguity() bool {
	found := false
	d.walk(&walker{
		param: func(p *MaybeAmbiguousDecl) bool {
			if p.IsAmbiguous() {
				found = true
			}
			return !found
		},
	})
	return found
}
