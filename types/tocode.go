package types

import (
	"strings"

	"github.com/appsworld/go-cppdecl/internal/syntax"
)

// CodeFlags tune the emitted C++ code.
type CodeFlags uint8

const (
	// CodeEastConst writes cv-qualifiers after the simple type name.
	CodeEastConst CodeFlags = 1 << iota
)

func qualsCode(q CvQualifiers) string {
	var words []string
	for _, w := range q.Words() {
		if w == "restrict" {
			w = "__restrict"
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

func (n *QualifiedName) ToCode(flags CodeFlags) string {
	var sb strings.Builder
	if n.ForceGlobalScope {
		sb.WriteString("::")
	}
	for i := range n.Parts {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(n.Parts[i].ToCode(flags))
	}
	return sb.String()
}

func (u *UnqualifiedName) ToCode(flags CodeFlags) string {
	var ret string
	switch v := u.Var.(type) {
	case Identifier:
		ret = string(v)
	case OverloadedOperator:
		ret = syntax.Join("operator", v.Token)
	case *ConversionOperator:
		ret = "operator " + v.Target.ToCode(flags)
	case UserDefinedLiteral:
		ret = `operator""`
		if v.SpaceBeforeSuffix {
			ret += " "
		}
		ret += v.Suffix
	case *DestructorName:
		ret = "~" + v.Type.ToCode(flags)
	default:
		panic("cppdecl: unknown name variant")
	}
	if u.TemplateArgs != nil {
		targs := u.TemplateArgs.ToCode(flags)
		if syntax.NeedsSpace(ret, "<") {
			ret += " "
		}
		ret += targs
	}
	return ret
}

func (l *TemplateArgumentList) ToCode(flags CodeFlags) string {
	parts := make([]string, len(l.Args))
	for i := range l.Args {
		switch v := l.Args[i].Var.(type) {
		case *Type:
			parts[i] = v.ToCode(flags)
		case *PseudoExpr:
			parts[i] = v.ToCode(flags)
		default:
			panic("cppdecl: unknown template argument variant")
		}
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (s *SimpleType) ToCode(flags CodeFlags) string {
	var words []string
	quals := qualsCode(s.Quals)
	if quals != "" && flags&CodeEastConst == 0 {
		words = append(words, quals)
	}
	if s.Prefix != PrefixNone {
		words = append(words, s.Prefix.String())
	}
	if s.Flags&Unsigned != 0 {
		words = append(words, "unsigned")
	}
	if s.Flags&ExplicitlySigned != 0 {
		words = append(words, "signed")
	}
	if s.Flags&ImpliedInt == 0 && !s.Name.IsEmpty() {
		words = append(words, s.Name.ToCode(flags))
	}
	if s.Flags&RedundantInt != 0 {
		words = append(words, "int")
	}
	if quals != "" && flags&CodeEastConst != 0 {
		words = append(words, quals)
	}
	return strings.Join(words, " ")
}

func (t *Type) ToCode(flags CodeFlags) string {
	return t.DeclaratorToCode("", flags)
}

// DeclaratorToCode emits the type with name placed in its declarator.
// Parentheses are added where a suffix modifier follows a prefix one, and a
// function using a trailing return type is emitted as `auto ... -> R`.
func (t *Type) DeclaratorToCode(name string, flags CodeFlags) string {
	cur := name
	lastWasPrefix := false
	for i, m := range t.Modifiers {
		switch m := m.(type) {
		case *Pointer:
			cur = syntax.Join(syntax.Join("*", qualsCode(m.Quals)), cur)
		case *Reference:
			tok := "&"
			if m.Kind == RefRvalue {
				tok = "&&"
			}
			cur = syntax.Join(syntax.Join(tok, qualsCode(m.Quals)), cur)
		case *MemberPointer:
			cur = syntax.Join(syntax.Join(m.Base.ToCode(flags)+"::*", qualsCode(m.Quals)), cur)
		case *Array:
			if lastWasPrefix {
				cur = "(" + cur + ")"
			}
			cur += "[" + m.Size.ToCode(flags) + "]"
		case *Function:
			if lastWasPrefix {
				cur = "(" + cur + ")"
			}
			cur += m.suffixCode(flags)
			if m.UsesTrailingReturnType {
				ret := Type{SimpleType: t.SimpleType, Modifiers: t.Modifiers[i+1:]}
				return syntax.Join("auto", cur) + " -> " + ret.ToCode(flags)
			}
		default:
			panic("cppdecl: unknown type modifier")
		}
		lastWasPrefix = IsPrefixModifier(m)
	}

	st := t.SimpleType.ToCode(flags)
	switch {
	case st == "":
		return cur
	case cur == "":
		return st
	case name == "" && !t.hasPrefixModifier():
		// `void(int)`, `int[3]`
		return st + cur
	}
	return st + " " + cur
}

func (t *Type) hasPrefixModifier() bool {
	for _, m := range t.Modifiers {
		if IsPrefixModifier(m) {
			return true
		}
	}
	return false
}

func (f *Function) suffixCode(flags CodeFlags) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Params[i].Decl.ToCode(flags))
	}
	if f.CStyleVoidParams {
		sb.WriteString("void")
	}
	if f.CStyleVariadic {
		if len(f.Params) > 0 && !f.MissingCommaBeforeVariadic {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
	}
	sb.WriteByte(')')
	if q := qualsCode(f.CvQuals); q != "" {
		sb.WriteString(" " + q)
	}
	switch f.RefQual {
	case RefLvalue:
		sb.WriteString(" &")
	case RefRvalue:
		sb.WriteString(" &&")
	}
	if f.Noexcept {
		sb.WriteString(" noexcept")
	}
	return sb.String()
}

func (d *Decl) ToCode(flags CodeFlags) string {
	return d.Type.DeclaratorToCode(d.Name.ToCode(flags), flags)
}

// ToCode emits the primary reading. Alternatives can't be expressed in code.
func (m *MaybeAmbiguousDecl) ToCode(flags CodeFlags) string {
	return m.Decl.ToCode(flags)
}

func (m *MaybeAmbiguousType) ToCode(flags CodeFlags) string {
	return m.Type.ToCode(flags)
}

func (e *PseudoExpr) ToCode(flags CodeFlags) string {
	tokens := make([]string, len(e.Tokens))
	for i, tok := range e.Tokens {
		tokens[i] = tokenToCode(tok, flags)
	}
	return syntax.Join(tokens...)
}

func tokenToCode(tok PseudoExprToken, flags CodeFlags) string {
	switch tok := tok.(type) {
	case *SimpleType:
		return tok.ToCode(flags)
	case PunctuationToken:
		return tok.Value
	case NumberToken:
		return tok.Value
	case *StringOrCharLiteral:
		return tok.ToCode()
	case *PseudoExprList:
		return tok.ToCode(flags)
	case *TemplateArgumentList:
		return tok.ToCode(flags)
	}
	panic("cppdecl: unknown pseudo-expression token")
}

func (l *StringOrCharLiteral) ToCode() string {
	var sb strings.Builder
	sb.WriteString(l.Encoding.Prefix())
	switch l.Kind {
	case LiteralCharacter:
		sb.WriteString("'" + l.Value + "'")
	case LiteralString:
		sb.WriteString(`"` + l.Value + `"`)
	case LiteralRawString:
		sb.WriteString(`R"` + l.RawStringDelim + "(" + l.Value + ")" + l.RawStringDelim + `"`)
	}
	sb.WriteString(l.LiteralSuffix)
	return sb.String()
}

func (l *PseudoExprList) ToCode(flags CodeFlags) string {
	open, closing := l.Kind.Brackets()
	parts := make([]string, len(l.Elems))
	for i := range l.Elems {
		parts[i] = l.Elems[i].ToCode(flags)
	}
	ret := open + strings.Join(parts, ", ")
	if l.HasTrailingComma {
		ret += ","
	}
	return ret + closing
}

func (n QualifiedName) String() string      { return n.ToCode(0) }
func (s SimpleType) String() string         { return s.ToCode(0) }
func (t Type) String() string               { return t.ToCode(0) }
func (d Decl) String() string               { return d.ToCode(0) }
func (m MaybeAmbiguousDecl) String() string { return m.ToCode(0) }
