package simplify

import (
	"github.com/appsworld/go-cppdecl/types"
)

// TypedefCategory classifies the standard typedefs whose underlying type
// depends on the platform.
type TypedefCategory uint8

const (
	TypedefNone TypedefCategory = iota
	// TypedefSignedLike is `long long` on Windows and `long` elsewhere.
	TypedefSignedLike
	// TypedefUnsignedLike is `unsigned long long` on Windows and
	// `unsigned long` elsewhere.
	TypedefUnsignedLike
)

func (c TypedefCategory) String() string {
	switch c {
	case TypedefSignedLike:
		return "signed-like"
	case TypedefUnsignedLike:
		return "unsigned-like"
	}
	return "none"
}

var platformTypedefs = map[string]TypedefCategory{
	"int64_t":       TypedefSignedLike,
	"intmax_t":      TypedefSignedLike,
	"intptr_t":      TypedefSignedLike,
	"int_fast64_t":  TypedefSignedLike,
	"int_least64_t": TypedefSignedLike,
	"ptrdiff_t":     TypedefSignedLike,

	"size_t":         TypedefUnsignedLike,
	"uint64_t":       TypedefUnsignedLike,
	"uintmax_t":      TypedefUnsignedLike,
	"uintptr_t":      TypedefUnsignedLike,
	"uint_fast64_t":  TypedefUnsignedLike,
	"uint_least64_t": TypedefUnsignedLike,
}

// ClassifyTypedef recognizes both `size_t` and `std::size_t`.
func ClassifyTypedef(name *types.QualifiedName) TypedefCategory {
	switch len(name.Parts) {
	case 1:
	case 2:
		if name.Parts[0].AsSingleWord() != "std" {
			return TypedefNone
		}
	default:
		return TypedefNone
	}
	return platformTypedefs[name.Parts[len(name.Parts)-1].AsSingleWord()]
}

// MirrorTypedefsType copies the typedef spellings of pretty into canonical,
// where canonical spells the same type as `long` or `long long`. The two
// usually come from the same declaration, one as written and one with
// typedefs expanded by a compiler. It reports whether every such typedef in
// pretty now also appears in canonical.
func MirrorTypedefsType(canonical *types.Type, pretty *types.Type) bool {
	m := mirror{}
	m.typ(canonical, pretty)
	return m.matched == countTypedefs(pretty)
}

// MirrorTypedefsDecl is MirrorTypedefsType for declarations. Names are
// mirrored too, so `f<std::size_t>` works.
func MirrorTypedefsDecl(canonical *types.Decl, pretty *types.Decl) bool {
	m := mirror{}
	m.typ(&canonical.Type, &pretty.Type)
	m.name(&canonical.Name, &pretty.Name)
	return m.matched == countTypedefs(pretty)
}

func countTypedefs(n types.Node) int {
	count := 0
	types.VisitComponents(n, types.ComponentVisitor{
		SimpleType: func(st *types.SimpleType) {
			if ClassifyTypedef(&st.Name) != TypedefNone {
				count++
			}
		},
	})
	return count
}

// mirror walks two trees in lock-step. Subtrees with different shapes are
// skipped.
type mirror struct {
	matched int
}

func (m *mirror) simpleType(c, p *types.SimpleType) {
	cat := ClassifyTypedef(&p.Name)
	if cat == TypedefNone {
		m.name(&c.Name, &p.Name)
		return
	}
	if c.Equal(p) {
		m.matched++
		return
	}
	if p.Flags != 0 || c.Quals != p.Quals {
		return
	}
	word := c.Name.AsSingleWord()
	if word != "long" && word != "long long" {
		return
	}
	signedness := c.Flags &^ types.RedundantInt
	if cat == TypedefUnsignedLike && signedness != types.Unsigned ||
		cat == TypedefSignedLike && signedness&^types.ExplicitlySigned != 0 {
		return
	}
	c.Flags = 0
	c.Prefix = p.Prefix
	c.Name = p.Name.Clone()
	m.matched++
}

func (m *mirror) typ(c, p *types.Type) {
	if len(c.Modifiers) != len(p.Modifiers) {
		return
	}
	for i := range c.Modifiers {
		if !sameKind(c.Modifiers[i], p.Modifiers[i]) {
			return
		}
	}
	m.simpleType(&c.SimpleType, &p.SimpleType)
	for i := range c.Modifiers {
		m.modifier(c.Modifiers[i], p.Modifiers[i])
	}
}

func sameKind(a, b types.TypeModifier) bool {
	var ok bool
	switch a.(type) {
	case *types.Pointer:
		_, ok = b.(*types.Pointer)
	case *types.Reference:
		_, ok = b.(*types.Reference)
	case *types.MemberPointer:
		_, ok = b.(*types.MemberPointer)
	case *types.Array:
		_, ok = b.(*types.Array)
	case *types.Function:
		_, ok = b.(*types.Function)
	}
	return ok
}

func (m *mirror) modifier(c, p types.TypeModifier) {
	switch c := c.(type) {
	case *types.MemberPointer:
		if p, ok := p.(*types.MemberPointer); ok {
			m.name(&c.Base, &p.Base)
		}
	case *types.Array:
		if p, ok := p.(*types.Array); ok {
			m.expr(&c.Size, &p.Size)
		}
	case *types.Function:
		p, ok := p.(*types.Function)
		if !ok || len(c.Params) != len(p.Params) {
			return
		}
		for i := range c.Params {
			cp, pp := &c.Params[i], &p.Params[i]
			for cp != nil && pp != nil {
				m.typ(&cp.Type, &pp.Type)
				m.name(&cp.Name, &pp.Name)
				cp, pp = cp.Alternative, pp.Alternative
			}
		}
	}
}

func (m *mirror) name(c, p *types.QualifiedName) {
	if len(c.Parts) != len(p.Parts) || c.ForceGlobalScope != p.ForceGlobalScope {
		return
	}
	for i := range c.Parts {
		if !samePart(&c.Parts[i], &p.Parts[i]) {
			return
		}
	}
	for i := range c.Parts {
		cu, pu := &c.Parts[i], &p.Parts[i]
		switch cv := cu.Var.(type) {
		case *types.ConversionOperator:
			m.typ(&cv.Target, &pu.Var.(*types.ConversionOperator).Target)
		case *types.DestructorName:
			m.simpleType(&cv.Type, &pu.Var.(*types.DestructorName).Type)
		}
		if cu.TemplateArgs != nil {
			m.targs(cu.TemplateArgs, pu.TemplateArgs)
		}
	}
}

// samePart reports whether two name parts spell the same thing, apart from
// types nested in conversion targets, destructors and template arguments.
func samePart(c, p *types.UnqualifiedName) bool {
	if (c.TemplateArgs == nil) != (p.TemplateArgs == nil) {
		return false
	}
	switch cv := c.Var.(type) {
	case *types.ConversionOperator:
		_, ok := p.Var.(*types.ConversionOperator)
		return ok
	case *types.DestructorName:
		_, ok := p.Var.(*types.DestructorName)
		return ok
	case types.Identifier:
		pv, ok := p.Var.(types.Identifier)
		return ok && cv == pv
	case types.OverloadedOperator:
		pv, ok := p.Var.(types.OverloadedOperator)
		return ok && cv == pv
	case types.UserDefinedLiteral:
		pv, ok := p.Var.(types.UserDefinedLiteral)
		return ok && cv == pv
	}
	return false
}

func (m *mirror) targs(c, p *types.TemplateArgumentList) {
	if len(c.Args) != len(p.Args) {
		return
	}
	for i := range c.Args {
		switch cv := c.Args[i].Var.(type) {
		case *types.Type:
			if pv := p.Args[i].AsType(); pv != nil {
				m.typ(cv, pv)
			}
		case *types.PseudoExpr:
			if pv := p.Args[i].AsPseudoExpr(); pv != nil {
				m.expr(cv, pv)
			}
		}
	}
}

func (m *mirror) expr(c, p *types.PseudoExpr) {
	if len(c.Tokens) != len(p.Tokens) {
		return
	}
	for i := range c.Tokens {
		switch ct := c.Tokens[i].(type) {
		case *types.SimpleType:
			if pt, ok := p.Tokens[i].(*types.SimpleType); ok {
				m.simpleType(ct, pt)
			}
		case *types.PseudoExprList:
			pt, ok := p.Tokens[i].(*types.PseudoExprList)
			if !ok || len(ct.Elems) != len(pt.Elems) {
				continue
			}
			for j := range ct.Elems {
				m.expr(&ct.Elems[j], &pt.Elems[j])
			}
		case *types.TemplateArgumentList:
			if pt, ok := p.Tokens[i].(*types.TemplateArgumentList); ok {
				m.targs(ct, pt)
			}
		}
	}
}
