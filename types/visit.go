package types

// Node is any AST value that can be traversed: *QualifiedName,
// *UnqualifiedName, *TemplateArgumentList, *SimpleType, *Type, *Decl,
// *MaybeAmbiguousDecl, *MaybeAmbiguousType, *PseudoExpr and *PseudoExprList.
type Node interface {
	walk(w *walker)
}

// VisitFlags tune VisitEachQualifiedName.
type VisitFlags uint8

const (
	// VisitOnlyTypes skips names that are declared, leaving only names
	// that are used as types (or as identifiers in expressions).
	VisitOnlyTypes VisitFlags = 1 << iota
	// VisitNoRecurseIntoNames doesn't visit the names nested inside the
	// template arguments of a visited name.
	VisitNoRecurseIntoNames
)

// VisitEachQualifiedName calls fn on every qualified name in n, a name
// before the names nested in it. Every reading of an ambiguous node is
// visited.
func VisitEachQualifiedName(n Node, flags VisitFlags, fn func(*QualifiedName)) {
	n.walk(&walker{flags: flags, preName: fn})
}

// ComponentVisitor receives the components of a tree in post-order: the
// names nested in a name's template arguments are seen before that name.
// Nil callbacks are skipped.
type ComponentVisitor struct {
	QualifiedName func(*QualifiedName)
	SimpleType    func(*SimpleType)
	CvQualifiers  func(*CvQualifiers)
}

// VisitComponents walks every qualified name, simple type and qualifier set
// in n, including decl names and all ambiguous readings.
func VisitComponents(n Node, v ComponentVisitor) {
	n.walk(&walker{postName: v.QualifiedName, simpleType: v.SimpleType, quals: v.CvQualifiers})
}

func (n *QualifiedName) VisitEachQualifiedName(flags VisitFlags, fn func(*QualifiedName)) {
	VisitEachQualifiedName(n, flags, fn)
}

func (t *Type) VisitEachQualifiedName(flags VisitFlags, fn func(*QualifiedName)) {
	VisitEachQualifiedName(t, flags, fn)
}

func (d *Decl) VisitEachQualifiedName(flags VisitFlags, fn func(*QualifiedName)) {
	VisitEachQualifiedName(d, flags, fn)
}

func (m *MaybeAmbiguousDecl) VisitEachQualifiedName(flags VisitFlags, fn func(*QualifiedName)) {
	VisitEachQualifiedName(m, flags, fn)
}

func (m *MaybeAmbiguousType) VisitEachQualifiedName(flags VisitFlags, fn func(*QualifiedName)) {
	VisitEachQualifiedName(m, flags, fn)
}

type walker struct {
	flags      VisitFlags
	preName    func(*QualifiedName)
	postName   func(*QualifiedName)
	simpleType func(*SimpleType)
	quals      func(*CvQualifiers)
	// param decides whether to descend into a function parameter.
	param func(*MaybeAmbiguousDecl) bool
}

func (w *walker) visitQuals(q *CvQualifiers) {
	if w.quals != nil {
		w.quals(q)
	}
}

func (m *MaybeAmbiguousDecl) walk(w *walker) {
	for cur := m; cur != nil; cur = cur.Alternative {
		cur.Decl.walk(w)
	}
}

func (m *MaybeAmbiguousType) walk(w *walker) {
	for cur := m; cur != nil; cur = cur.Alternative {
		cur.Type.walk(w)
	}
}

func (d *Decl) walk(w *walker) {
	d.Type.walk(w)
	if w.flags&VisitOnlyTypes == 0 {
		d.Name.walk(w)
	}
}

func (t *Type) walk(w *walker) {
	t.SimpleType.walk(w)
	for _, m := range t.Modifiers {
		walkModifier(m, w)
	}
}

func walkModifier(m TypeModifier, w *walker) {
	switch m := m.(type) {
	case *Pointer:
		w.visitQuals(&m.Quals)
	case *Reference:
		w.visitQuals(&m.Quals)
	case *MemberPointer:
		m.Base.walk(w)
		w.visitQuals(&m.Quals)
	case *Array:
		m.Size.walk(w)
	case *Function:
		for i := range m.Params {
			p := &m.Params[i]
			if w.param == nil || w.param(p) {
				p.walk(w)
			}
		}
		w.visitQuals(&m.CvQuals)
	default:
		panic("cppdecl: unknown type modifier")
	}
}

func (s *SimpleType) walk(w *walker) {
	s.Name.walk(w)
	w.visitQuals(&s.Quals)
	if w.simpleType != nil {
		w.simpleType(s)
	}
}

func (n *QualifiedName) walk(w *walker) {
	if w.preName != nil {
		w.preName(n)
	}
	if w.flags&VisitNoRecurseIntoNames == 0 {
		for i := range n.Parts {
			n.Parts[i].walk(w)
		}
	}
	if w.postName != nil {
		w.postName(n)
	}
}

func (u *UnqualifiedName) walk(w *walker) {
	switch v := u.Var.(type) {
	case Identifier, OverloadedOperator, UserDefinedLiteral:
	case *ConversionOperator:
		v.Target.walk(w)
	case *DestructorName:
		v.Type.walk(w)
	default:
		panic("cppdecl: unknown name variant")
	}
	if u.TemplateArgs != nil {
		u.TemplateArgs.walk(w)
	}
}

func (l *TemplateArgumentList) walk(w *walker) {
	for i := range l.Args {
		switch v := l.Args[i].Var.(type) {
		case *Type:
			v.walk(w)
		case *PseudoExpr:
			v.walk(w)
		default:
			panic("cppdecl: unknown template argument variant")
		}
	}
}

func (e *PseudoExpr) walk(w *walker) {
	for _, tok := range e.Tokens {
		switch tok := tok.(type) {
		case *SimpleType:
			tok.walk(w)
		case *PseudoExprList:
			tok.walk(w)
		case *TemplateArgumentList:
			tok.walk(w)
		case PunctuationToken, NumberToken, *StringOrCharLiteral:
		default:
			panic("cppdecl: unknown pseudo-expression token")
		}
	}
}

func (l *PseudoExprList) walk(w *walker) {
	for i := range l.Elems {
		l.Elems[i].walk(w)
	}
}
