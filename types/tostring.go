package types

import (
	"strconv"
	"strings"
)

// ToStringMode selects the serializer output.
type ToStringMode uint8

const (
	// Pretty is natural-language prose.
	Pretty ToStringMode = iota
	// Debug is a structural dump with explicit field labels.
	Debug
)

func (m ToStringMode) String() string {
	if m == Debug {
		return "debug"
	}
	return "pretty"
}

// CvQualifiersToString joins the qualifier names with sep.
func CvQualifiersToString(q CvQualifiers, sep string) string {
	return cvWords(q, sep)
}

func (l *TemplateArgumentList) ToString(mode ToStringMode) string {
	var sb strings.Builder
	if mode == Debug {
		sb.WriteByte('[')
		for i := range l.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(l.Args[i].ToString(mode))
		}
		sb.WriteByte(']')
		return sb.String()
	}

	if len(l.Args) == 0 {
		return "empty template arguments"
	}
	sb.WriteString(countNoun(len(l.Args), "template argument"))
	sb.WriteString(": [")
	writeNumbered(&sb, len(l.Args), func(i int) string { return l.Args[i].ToString(mode) })
	sb.WriteByte(']')
	return sb.String()
}

func (a *TemplateArgument) ToString(mode ToStringMode) string {
	switch v := a.Var.(type) {
	case *Type:
		if mode == Debug {
			return "type:" + v.ToString(mode)
		}
		return "possibly type: " + strings.TrimPrefix(v.ToString(mode), "type ")
	case *PseudoExpr:
		if mode == Debug {
			return "expr" + v.ToString(mode)
		}
		return "non-type: " + v.ToString(mode)
	}
	panic("cppdecl: unknown template argument variant")
}

func (u *UnqualifiedName) ToString(mode ToStringMode) string {
	var sb strings.Builder
	if mode == Debug {
		sb.WriteByte('{')
		switch v := u.Var.(type) {
		case Identifier:
			sb.WriteString(`name="` + string(v) + `"`)
		case OverloadedOperator:
			sb.WriteString("op=`" + v.Token + "`")
		case *ConversionOperator:
			sb.WriteString("conv=`" + v.Target.ToString(mode) + "`")
		case UserDefinedLiteral:
			sb.WriteString("udl=`" + v.Suffix + "`")
			if v.SpaceBeforeSuffix {
				sb.WriteString("(with space before suffix)")
			}
		case *DestructorName:
			sb.WriteString("dtor=`" + v.Type.ToString(mode) + "`")
		default:
			panic("cppdecl: unknown name variant")
		}
		if u.TemplateArgs != nil {
			sb.WriteString(",targs=" + u.TemplateArgs.ToString(mode))
		}
		sb.WriteByte('}')
		return sb.String()
	}

	switch v := u.Var.(type) {
	case Identifier:
		sb.WriteString("`" + string(v) + "`")
	case OverloadedOperator:
		sb.WriteString("overloaded operator `" + v.Token + "`")
	case *ConversionOperator:
		sb.WriteString("conversion operator to [" + v.Target.ToString(mode) + "]")
	case UserDefinedLiteral:
		sb.WriteString("user-defined literal `" + v.Suffix + "`")
		if v.SpaceBeforeSuffix {
			sb.WriteString(" (with deprecated space before suffix)")
		}
	case *DestructorName:
		sb.WriteString("destructor for type [" + v.Type.ToString(mode) + "]")
	default:
		panic("cppdecl: unknown name variant")
	}
	if u.TemplateArgs != nil {
		sb.WriteString(" with " + u.TemplateArgs.ToString(mode))
	}
	return sb.String()
}

func (n *QualifiedName) ToString(mode ToStringMode) string {
	var sb strings.Builder
	if mode == Debug {
		sb.WriteString("{global_scope=" + strconv.FormatBool(n.ForceGlobalScope) + ",parts=[")
		for i := range n.Parts {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(n.Parts[i].ToString(mode))
		}
		sb.WriteString("]}")
		return sb.String()
	}

	if n.IsEmpty() {
		return "nothing"
	}
	if n.ForceGlobalScope {
		sb.WriteString("::")
	}
	for i := range n.Parts {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(n.Parts[i].ToString(mode))
	}
	return sb.String()
}

func (s *SimpleType) ToString(mode ToStringMode) string {
	var sb strings.Builder
	if mode == Debug {
		sb.WriteString("{flags=[" + strings.Join(s.Flags.Words(), ","))
		sb.WriteString("],quals=[" + CvQualifiersToString(s.Quals, ","))
		sb.WriteString("],")
		if s.Prefix != PrefixNone {
			sb.WriteString("prefix=" + s.Prefix.String() + ",")
		}
		sb.WriteString("name=" + s.Name.ToString(mode) + "}")
		return sb.String()
	}

	if s.Quals != 0 {
		sb.WriteString(CvQualifiersToString(s.Quals, " ") + " ")
	}
	if s.Prefix != PrefixNone {
		sb.WriteString(s.Prefix.String() + " ")
	}
	if s.Flags&Unsigned != 0 {
		sb.WriteString("unsigned ")
	}
	if s.Flags&ExplicitlySigned != 0 {
		sb.WriteString("explicitly signed ")
	}
	sb.WriteString(s.Name.ToString(mode))
	if s.Flags&RedundantInt != 0 {
		sb.WriteString(" with explicit `int`")
	}
	return sb.String()
}

func (t *Type) ToString(mode ToStringMode) string {
	if mode == Pretty && t.IsEmpty() {
		return "no type"
	}
	var sb strings.Builder
	for _, m := range t.Modifiers {
		sb.WriteString(ModifierToString(m, mode))
		sb.WriteByte(' ')
	}
	sb.WriteString(t.SimpleType.ToString(mode))
	return sb.String()
}

// ModifierToString renders one modifier as a phrase that reads well when
// followed by the rest of the type.
func ModifierToString(m TypeModifier, mode ToStringMode) string {
	quals := func(q CvQualifiers) string {
		if q == 0 {
			return ""
		}
		return CvQualifiersToString(q, " ") + " "
	}
	article := func(s string) string {
		if mode == Debug {
			return s
		}
		if strings.HasPrefix(s, "a") || strings.HasPrefix(s, "e") || strings.HasPrefix(s, "i") ||
			strings.HasPrefix(s, "o") || strings.HasPrefix(s, "u") {
			return "an " + s
		}
		return "a " + s
	}

	switch m := m.(type) {
	case *Pointer:
		return article(quals(m.Quals) + "pointer to")
	case *Reference:
		kind := "lvalue"
		switch m.Kind {
		case RefLvalue:
		case RefRvalue:
			kind = "rvalue"
		default:
			panic("cppdecl: reference without a kind")
		}
		if mode == Pretty && m.Quals == 0 {
			return "an " + kind + " reference to"
		}
		if mode == Pretty {
			return "a " + quals(m.Quals) + kind + " reference to"
		}
		return quals(m.Quals) + kind + " reference to"
	case *MemberPointer:
		return article(quals(m.Quals) + "pointer-to-member of class " + m.Base.ToString(mode) + " of type")
	case *Array:
		if m.Size.IsEmpty() {
			return article("array of unknown bound of")
		}
		return article("array of size " + m.Size.ToString(mode) + " of")
	case *Function:
		return m.toString(mode)
	}
	panic("cppdecl: unknown type modifier")
}

func (f *Function) toString(mode ToStringMode) string {
	var sb strings.Builder
	sb.WriteString("a function ")

	var details []string
	if f.CvQuals != 0 {
		details = append(details, CvQualifiersToString(f.CvQuals, "-")+"-qualified")
	}
	switch f.RefQual {
	case RefLvalue:
		details = append(details, "lvalue-ref-qualified")
	case RefRvalue:
		details = append(details, "rvalue-ref-qualified")
	}
	if f.Noexcept {
		details = append(details, "noexcept")
	}
	if len(details) > 0 {
		sb.WriteString("(" + strings.Join(details, ", ") + ") ")
	}

	sb.WriteString("taking ")
	if len(f.Params) == 0 {
		sb.WriteString("no parameters")
		if f.CStyleVoidParams {
			sb.WriteString(" (spelled with C-style void)")
		}
	} else {
		sb.WriteString(countNoun(len(f.Params), "parameter"))
		sb.WriteString(": [")
		writeNumbered(&sb, len(f.Params), func(i int) string { return f.Params[i].ToString(mode) })
		sb.WriteByte(']')
	}
	if f.CStyleVariadic {
		sb.WriteString(" and a C-style variadic parameter")
		if f.MissingCommaBeforeVariadic {
			sb.WriteString(" (with a missing comma before it)")
		}
	}
	sb.WriteString(", returning")
	if f.UsesTrailingReturnType {
		sb.WriteString(" (via trailing return type)")
	}
	return sb.String()
}

func (d *Decl) ToString(mode ToStringMode) string {
	if mode == Debug {
		return `{type="` + d.Type.ToString(mode) + `",name="` + d.Name.ToString(mode) + `"}`
	}

	typeStr := d.Type.ToString(mode)

	// A function returning nothing is a constructor or a destructor,
	// depending on the name.
	if d.Type.SimpleType.IsEmpty() && d.Type.TopFunction() != nil && strings.HasPrefix(typeStr, "a function") {
		noun := ""
		switch {
		case d.Name.IsDestructorName():
			noun = "a destructor"
		case d.Name.LastComponentIsNormalString():
			noun = "a constructor"
		}
		if noun != "" {
			rest := strings.TrimPrefix(typeStr, "a function")
			rest = strings.TrimSuffix(rest, ", returning nothing")
			typeStr = noun + rest
		}
	}

	var sb strings.Builder
	if d.Name.IsEmpty() {
		sb.WriteString("unnamed")
		switch {
		case strings.HasPrefix(typeStr, "a "):
			sb.WriteString(typeStr[1:])
		case strings.HasPrefix(typeStr, "an "):
			sb.WriteString(typeStr[2:])
		case d.Type.IsEmpty():
			sb.WriteString(" with no type")
		default:
			sb.WriteString(" of type " + typeStr)
		}
		return sb.String()
	}

	sb.WriteString(d.Name.ToString(mode))
	switch {
	case strings.HasPrefix(typeStr, "a ") || strings.HasPrefix(typeStr, "an "):
		sb.WriteString(", " + typeStr)
	case d.Type.IsEmpty():
		switch {
		case d.Name.IsConversionOperatorName() || d.Name.IsDestructorName():
		case d.Name.LastComponentIsNormalString():
			sb.WriteString(", a constructor without a parameter list")
		default:
			sb.WriteString(" with no type")
		}
	default:
		sb.WriteString(" of type " + typeStr)
	}
	return sb.String()
}

func (m *MaybeAmbiguousDecl) ToString(mode ToStringMode) string {
	if m.Alternative == nil {
		return m.Decl.ToString(mode)
	}
	var sb strings.Builder
	if mode == Pretty {
		sb.WriteString("ambiguous, ")
	}
	sb.WriteString("either [" + m.Decl.ToString(mode))
	for cur := m.Alternative; cur != nil; cur = cur.Alternative {
		sb.WriteString("] or [" + cur.Decl.ToString(mode))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (m *MaybeAmbiguousType) ToString(mode ToStringMode) string {
	if m.Alternative == nil {
		return m.Type.ToString(mode)
	}
	var sb strings.Builder
	if mode == Pretty {
		sb.WriteString("ambiguous, ")
	}
	sb.WriteString("either [" + m.Type.ToString(mode))
	for cur := m.Alternative; cur != nil; cur = cur.Alternative {
		sb.WriteString("] or [" + cur.Type.ToString(mode))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (e *PseudoExpr) ToString(mode ToStringMode) string {
	sep := ","
	if mode == Pretty {
		sep = ", "
	}
	parts := make([]string, len(e.Tokens))
	for i, tok := range e.Tokens {
		parts[i] = TokenToString(tok, mode)
	}
	return "[" + strings.Join(parts, sep) + "]"
}

func TokenToString(tok PseudoExprToken, mode ToStringMode) string {
	switch tok := tok.(type) {
	case *SimpleType:
		return tok.ToString(mode)
	case PunctuationToken:
		if mode == Debug {
			return "punct`" + tok.Value + "`"
		}
		return "punctuation `" + tok.Value + "`"
	case NumberToken:
		if mode == Debug {
			return "num`" + tok.Value + "`"
		}
		return "number " + tok.Value
	case *StringOrCharLiteral:
		return tok.ToString(mode)
	case *PseudoExprList:
		return tok.ToString(mode)
	case *TemplateArgumentList:
		return tok.ToString(mode)
	}
	panic("cppdecl: unknown pseudo-expression token")
}

func (l *StringOrCharLiteral) ToString(mode ToStringMode) string {
	var sb strings.Builder
	if mode == Debug {
		switch l.Kind {
		case LiteralCharacter:
			sb.WriteString("char`")
		case LiteralString:
			sb.WriteString("str`")
		case LiteralRawString:
			sb.WriteString("rawstr`")
		}
		sb.WriteString(l.Value + "`")
		if l.LiteralSuffix != "" {
			sb.WriteString("(suffix`" + l.LiteralSuffix + "`)")
		}
		if l.RawStringDelim != "" {
			sb.WriteString("(delim`" + l.RawStringDelim + "`)")
		}
		return sb.String()
	}

	switch l.Kind {
	case LiteralCharacter:
		sb.WriteString("character `")
	case LiteralString:
		sb.WriteString("string `")
	case LiteralRawString:
		sb.WriteString("raw string `")
	}
	sb.WriteString(l.Value + "`")
	if l.LiteralSuffix != "" {
		sb.WriteString(" with suffix `" + l.LiteralSuffix + "`")
	}
	if l.RawStringDelim != "" {
		sb.WriteString(" with delimiter `" + l.RawStringDelim + "`")
	}
	return sb.String()
}

func (l *PseudoExprList) ToString(mode ToStringMode) string {
	open, closing := l.Kind.Brackets()
	sep := ","
	prefix := "list"
	if mode == Pretty {
		sep = ", "
		prefix = "list "
	}
	parts := make([]string, len(l.Elems))
	for i := range l.Elems {
		parts[i] = l.Elems[i].ToString(mode)
	}
	ret := prefix + open + strings.Join(parts, sep)
	if mode == Pretty && l.HasTrailingComma {
		ret += ","
	}
	ret += closing
	if l.HasTrailingComma {
		if mode == Debug {
			ret += "(has trailing comma)"
		} else {
			ret += " with trailing comma"
		}
	}
	return ret
}

func countNoun(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

// writeNumbered writes "1. a, 2. b", or just "a" when there is one item.
func writeNumbered(sb *strings.Builder, n int, item func(int) string) {
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		if n != 1 {
			sb.WriteString(strconv.Itoa(i+1) + ". ")
		}
		sb.WriteString(item(i))
	}
}
