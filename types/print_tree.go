package types

import (
	"fmt"
	"io"
	"strings"
)

// PrintTree dumps the decl as an indented tree (used for debugging).
func PrintTree(w io.Writer, m *MaybeAmbiguousDecl) {
	p := treePrinter{w: w}
	alts := m.Alternatives()
	for i, alt := range alts {
		if len(alts) > 1 {
			p.line(0, "- alternative %d", i+1)
		}
		p.decl(1, &alt.Decl)
	}
}

type treePrinter struct {
	w io.Writer
}

func (p *treePrinter) line(indent int, format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", indent), fmt.Sprintf(format, args...))
}

func (p *treePrinter) decl(indent int, d *Decl) {
	p.line(indent, "- decl")
	if !d.Name.IsEmpty() {
		p.line(indent+1, "- name")
		p.name(indent+2, &d.Name)
	}
	p.typ(indent+1, &d.Type)
}

func (p *treePrinter) typ(indent int, t *Type) {
	p.line(indent, "- type")
	for _, m := range t.Modifiers {
		switch m := m.(type) {
		case *Function:
			p.line(indent+1, "- function (%d params)", len(m.Params))
			for i := range m.Params {
				for _, alt := range m.Params[i].Alternatives() {
					p.decl(indent+2, &alt.Decl)
				}
			}
		case *MemberPointer:
			p.line(indent+1, "- member pointer (%s)", CvQualifiersToString(m.Quals, " "))
			p.name(indent+2, &m.Base)
		default:
			p.line(indent+1, "- %s", ModifierToString(m, Debug))
		}
	}
	p.simpleType(indent+1, &t.SimpleType)
}

func (p *treePrinter) simpleType(indent int, s *SimpleType) {
	var attrs []string
	attrs = append(attrs, s.Quals.Words()...)
	attrs = append(attrs, s.Flags.Words()...)
	if s.Prefix != PrefixNone {
		attrs = append(attrs, s.Prefix.String())
	}
	if len(attrs) > 0 {
		p.line(indent, "- simple type (%s)", strings.Join(attrs, ", "))
	} else {
		p.line(indent, "- simple type")
	}
	if !s.Name.IsEmpty() {
		p.name(indent+1, &s.Name)
	}
}

func (p *treePrinter) name(indent int, n *QualifiedName) {
	if n.ForceGlobalScope {
		p.line(indent, "- ::")
	}
	for i := range n.Parts {
		part := &n.Parts[i]
		switch v := part.Var.(type) {
		case Identifier:
			p.line(indent, "- %s", string(v))
		case OverloadedOperator:
			p.line(indent, "- operator %s", v.Token)
		case UserDefinedLiteral:
			p.line(indent, "- literal operator %s", v.Suffix)
		case *ConversionOperator:
			p.line(indent, "- conversion operator")
			p.typ(indent+1, &v.Target)
		case *DestructorName:
			p.line(indent, "- destructor")
			p.simpleType(indent+1, &v.Type)
		}
		if part.TemplateArgs != nil {
			p.line(indent+1, "- template args (%d)", len(part.TemplateArgs.Args))
			for j := range part.TemplateArgs.Args {
				switch v := part.TemplateArgs.Args[j].Var.(type) {
				case *Type:
					p.typ(indent+2, v)
				case *PseudoExpr:
					p.line(indent+2, "- expr %s", v.ToString(Debug))
				}
			}
		}
	}
}
