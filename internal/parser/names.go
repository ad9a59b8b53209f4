package parser

import (
	"errors"

	"github.com/appsworld/go-cppdecl/internal/syntax"
	"github.com/appsworld/go-cppdecl/types"
)

type nameMode uint8

const (
	// nameAny accepts operators, conversion operators, literal operators
	// and destructors as the last part.
	nameAny nameMode = iota
	// nameType accepts identifiers only.
	nameType
	// nameExpr accepts any identifier, keywords included, and reads
	// template arguments only if they parse.
	nameExpr
)

func (p *parser) parseQualifiedName(mode nameMode) (types.QualifiedName, error) {
	var n types.QualifiedName
	p.skipWS()
	if p.hasPrefix("::") {
		n.ForceGlobalScope = true
		p.pos += 2
	}
	for {
		p.skipWS()
		part, err := p.parseUnqualifiedName(mode)
		if err != nil {
			return n, err
		}
		n.Parts = append(n.Parts, part)
		if _, ok := part.Var.(types.Identifier); !ok {
			return n, nil
		}

		save := p.pos
		p.skipWS()
		if !p.hasPrefix("::") {
			p.pos = save
			return n, nil
		}
		after := syntax.SkipWhitespace(p.input, p.pos+2)
		if after < len(p.input) && p.input[after] == '*' {
			// A member pointer, `A::*`.
			p.pos = save
			return n, nil
		}
		p.pos = after
		if syntax.StartsWithWord(p.input, p.pos, "template") {
			p.pos += len("template")
		}
	}
}

func (p *parser) parseUnqualifiedName(mode nameMode) (types.UnqualifiedName, error) {
	p.skipWS()
	if mode == nameAny {
		switch {
		case p.peek() == '~':
			return p.parseDestructorName()
		case syntax.StartsWithWord(p.input, p.pos, "operator"):
			return p.parseOperatorName()
		}
	}

	word := p.peekWord()
	if word == "" {
		return types.UnqualifiedName{}, p.errorf(p.pos, "expected a name")
	}
	if mode != nameExpr && syntax.IsReservedWord(word) {
		return types.UnqualifiedName{}, p.errorf(p.pos, "expected a name, got keyword `%s`", word)
	}
	p.pos += len(word)
	part := types.UnqualifiedName{Var: types.Identifier(word)}
	err := p.parseTemplateArgsIfAny(&part, mode == nameExpr)
	return part, err
}

func (p *parser) parseDestructorName() (types.UnqualifiedName, error) {
	p.pos++ // ~
	p.skipWS()
	word := p.peekWord()
	if word == "" || syntax.IsReservedWord(word) {
		return types.UnqualifiedName{}, p.errorf(p.pos, "expected a class name after `~`")
	}
	p.pos += len(word)
	part := types.UnqualifiedName{Var: types.Identifier(word)}
	if err := p.parseTemplateArgsIfAny(&part, false); err != nil {
		return types.UnqualifiedName{}, err
	}
	st := types.SimpleType{Name: types.QualifiedName{Parts: []types.UnqualifiedName{part}}}
	return types.UnqualifiedName{Var: &types.DestructorName{Type: st}}, nil
}

func (p *parser) parseOperatorName() (types.UnqualifiedName, error) {
	p.pos += len("operator")
	p.skipWS()

	var part types.UnqualifiedName
	word := p.peekWord()
	switch {
	case p.hasPrefix(`""`):
		p.pos += 2
		afterQuotes := p.pos
		p.skipWS()
		suffix := p.peekWord()
		if suffix == "" {
			return part, p.errorf(p.pos, "expected a literal suffix")
		}
		part.Var = types.UserDefinedLiteral{Suffix: suffix, SpaceBeforeSuffix: p.pos > afterQuotes}
		p.pos += len(suffix)

	case word == "new" || word == "delete":
		p.pos += len(word)
		tok := word
		save := p.pos
		p.skipWS()
		if p.peek() == '[' {
			if end := syntax.SkipWhitespace(p.input, p.pos+1); end < len(p.input) && p.input[end] == ']' {
				tok += "[]"
				save = end + 1
			}
		}
		p.pos = save
		part.Var = types.OverloadedOperator{Token: tok}

	case word == "co_await":
		p.pos += len(word)
		part.Var = types.OverloadedOperator{Token: word}

	case word == "" && !p.hasPrefix("::"):
		tok, end, ok := syntax.ConsumeOperatorToken(p.input, p.pos)
		if !ok {
			return part, p.errorf(p.pos, "expected an operator after `operator`")
		}
		p.pos = end
		part.Var = types.OverloadedOperator{Token: tok}

	default:
		target, err := p.parseConversionTarget()
		if err != nil {
			return part, err
		}
		part.Var = &types.ConversionOperator{Target: target}
		return part, nil
	}

	err := p.parseTemplateArgsIfAny(&part, false)
	return part, err
}

// parseConversionTarget parses the type after `operator`, which can only
// have pointer-like modifiers.
func (p *parser) parseConversionTarget() (types.Type, error) {
	start := p.pos
	st, err := p.parseSimpleType()
	if err != nil {
		return types.Type{}, err
	}
	if st.IsEmpty() {
		return types.Type{}, p.errorf(start, "expected a type after `operator`")
	}
	ptrs, err := p.parsePointerOps()
	if err != nil {
		return types.Type{}, err
	}
	return types.Type{SimpleType: st.SimpleType, Modifiers: reverseModifiers(ptrs)}, nil
}

// parseTemplateArgsIfAny parses `<...>` after a name part. When tentative,
// a list that fails to parse is left alone, which is how `a < b` in an
// expression is told apart from a template.
func (p *parser) parseTemplateArgsIfAny(part *types.UnqualifiedName, tentative bool) error {
	save := p.pos
	p.skipWS()
	if p.peek() != '<' || p.hasPrefix("<<") || p.hasPrefix("<=") {
		p.pos = save
		return nil
	}
	args, err := p.parseTemplateArgs()
	if err != nil {
		if tentative && !errors.Is(err, ErrTooDeep) {
			p.pos = save
			return nil
		}
		return err
	}
	part.TemplateArgs = args
	return nil
}

func (p *parser) parseTemplateArgs() (*types.TemplateArgumentList, error) {
	p.pos++ // <
	list := &types.TemplateArgumentList{}
	p.skipWS()
	if p.peek() == '>' {
		p.pos++
		return list, nil
	}
	for {
		arg, err := p.parseTemplateArg()
		if err != nil {
			return nil, err
		}
		list.Args = append(list.Args, arg)
		p.skipWS()
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return list, nil
		default:
			return nil, p.errorf(p.pos, "expected `,` or `>` in the template argument list")
		}
	}
}

// parseTemplateArg prefers a type. If the text after the type isn't the end
// of the argument, the argument is read again as an expression.
func (p *parser) parseTemplateArg() (types.TemplateArgument, error) {
	p.skipWS()
	start := p.pos
	t, end, typeErr := p.parseTypeAt(start, p.depth+1)
	if errors.Is(typeErr, ErrTooDeep) {
		return types.TemplateArgument{}, typeErr
	}
	if typeErr == nil {
		after := syntax.SkipWhitespace(p.input, end)
		if after < len(p.input) && (p.input[after] == ',' || p.input[after] == '>') {
			p.pos = end
			if t.IsAmbiguous() && t.Alternative != nil {
				p.log.Debug("ignoring alternative readings of a template argument", "offset", start)
			}
			return types.TypeArg(t.Type), nil
		}
	}

	p.pos = start
	e, exprErr := p.parsePseudoExpr(stopAtComma | stopAtGreater)
	if exprErr == nil && e.IsEmpty() {
		exprErr = p.errorf(p.pos, "expected a template argument")
	}
	if exprErr != nil {
		if typeErr != nil && furthest(typeErr) > furthest(exprErr) {
			return types.TemplateArgument{}, typeErr
		}
		return types.TemplateArgument{}, exprErr
	}
	return types.TemplateArgument{Var: &e}, nil
}

func furthest(err error) int {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Offset
	}
	return -1
}
