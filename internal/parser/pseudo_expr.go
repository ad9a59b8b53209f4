package parser

import (
	"strings"

	"github.com/appsworld/go-cppdecl/internal/syntax"
	"github.com/appsworld/go-cppdecl/types"
)

type exprStop uint8

const (
	stopAtComma exprStop = 1 << iota
	stopAtGreater
)

// parsePseudoExpr reads tokens until a closing bracket that it didn't open,
// the end of input, or a stop character. Brackets are matched but nothing
// else about the expression is checked.
func (p *parser) parsePseudoExpr(stop exprStop) (types.PseudoExpr, error) {
	var e types.PseudoExpr
	for {
		p.skipWS()
		if p.eof() {
			return e, nil
		}
		c := p.peek()
		switch {
		case c == ',' && stop&stopAtComma != 0,
			c == '>' && stop&stopAtGreater != 0,
			c == ')', c == ']', c == '}':
			return e, nil

		case c == '(' || c == '[' || c == '{':
			list, err := p.parsePseudoExprList()
			if err != nil {
				return e, err
			}
			e.Tokens = append(e.Tokens, list)

		case syntax.IsDigit(c) || (c == '.' && p.pos+1 < len(p.input) && syntax.IsDigit(p.input[p.pos+1])):
			e.Tokens = append(e.Tokens, types.NumberToken{Value: p.readNumber()})

		case p.atLiteral():
			lit, err := p.parseLiteral()
			if err != nil {
				return e, err
			}
			e.Tokens = append(e.Tokens, lit)

		case syntax.IsNonDigitIdentifierChar(c) || (p.hasPrefix("::") && p.identifierAfterScope()):
			name, err := p.parseQualifiedName(nameExpr)
			if err != nil {
				return e, err
			}
			e.Tokens = append(e.Tokens, &types.SimpleType{Name: name})

		default:
			tok, end, ok := syntax.ConsumePunctuation(p.input, p.pos)
			if !ok {
				return e, p.errorf(p.pos, "unexpected character `%c`", c)
			}
			p.pos = end
			e.Tokens = append(e.Tokens, types.PunctuationToken{Value: tok})
		}
	}
}

func (p *parser) identifierAfterScope() bool {
	i := syntax.SkipWhitespace(p.input, p.pos+2)
	return i < len(p.input) && syntax.IsNonDigitIdentifierChar(p.input[i])
}

func (p *parser) parsePseudoExprList() (*types.PseudoExprList, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	list := &types.PseudoExprList{}
	switch p.peek() {
	case '[':
		list.Kind = types.ListSquare
	case '{':
		list.Kind = types.ListCurly
	}
	_, closing := list.Kind.Brackets()
	p.pos++

	p.skipWS()
	if p.hasPrefix(closing) {
		p.pos++
		return list, nil
	}
	for {
		elemPos := p.pos
		elem, err := p.parsePseudoExpr(stopAtComma)
		if err != nil {
			return nil, err
		}
		if elem.IsEmpty() {
			return nil, p.errorf(elemPos, "expected an expression")
		}
		list.Elems = append(list.Elems, elem)

		p.skipWS()
		switch {
		case p.peek() == ',':
			p.pos++
			p.skipWS()
			if list.Kind == types.ListCurly && p.hasPrefix(closing) {
				p.pos++
				list.HasTrailingComma = true
				return list, nil
			}
		case p.hasPrefix(closing):
			p.pos++
			return list, nil
		default:
			return nil, p.errorf(p.pos, "expected `,` or `%s`", closing)
		}
	}
}

// readNumber reads a preprocessing number: digits, letters, `.`, digit
// separators and exponent signs.
func (p *parser) readNumber() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		next := byte(0)
		if p.pos+1 < len(p.input) {
			next = p.input[p.pos+1]
		}
		switch {
		case strings.IndexByte("eEpP", c) >= 0 && (next == '+' || next == '-'):
			p.pos += 2
		case c == '\'' && syntax.IsIdentifierChar(next):
			p.pos += 2
		case syntax.IsIdentifierChar(c) || c == '.':
			p.pos++
		default:
			return p.input[start:p.pos]
		}
	}
	return p.input[start:p.pos]
}

var encodingPrefixes = []struct {
	prefix string
	enc    types.LiteralEncoding
}{
	{"u8", types.EncodingU8},
	{"u", types.EncodingU16},
	{"U", types.EncodingU32},
	{"L", types.EncodingWide},
	{"", types.EncodingNormal},
}

// literalPrefix returns the encoding and whether the literal is raw if a
// string or character literal starts here.
func (p *parser) literalPrefix() (enc types.LiteralEncoding, prefixLen int, raw, ok bool) {
	rest := p.input[p.pos:]
	for _, e := range encodingPrefixes {
		if !strings.HasPrefix(rest, e.prefix) {
			continue
		}
		after := rest[len(e.prefix):]
		switch {
		case strings.HasPrefix(after, `R"`):
			return e.enc, len(e.prefix) + 1, true, true
		case strings.HasPrefix(after, `"`), strings.HasPrefix(after, `'`):
			return e.enc, len(e.prefix), false, true
		}
	}
	return 0, 0, false, false
}

func (p *parser) atLiteral() bool {
	_, _, _, ok := p.literalPrefix()
	return ok
}

func (p *parser) parseLiteral() (*types.StringOrCharLiteral, error) {
	start := p.pos
	enc, prefixLen, raw, _ := p.literalPrefix()
	p.pos += prefixLen
	lit := &types.StringOrCharLiteral{Encoding: enc}

	if raw {
		lit.Kind = types.LiteralRawString
		p.pos++ // "
		open := strings.IndexByte(p.input[p.pos:], '(')
		if open < 0 || open > 16 {
			return nil, p.errorf(start, "invalid raw string delimiter")
		}
		lit.RawStringDelim = p.input[p.pos : p.pos+open]
		if strings.ContainsAny(lit.RawStringDelim, " ()\\\t\n") {
			return nil, p.errorf(start, "invalid raw string delimiter")
		}
		p.pos += open + 1
		terminator := ")" + lit.RawStringDelim + `"`
		end := strings.Index(p.input[p.pos:], terminator)
		if end < 0 {
			return nil, p.errorf(start, "unterminated raw string literal")
		}
		lit.Value = p.input[p.pos : p.pos+end]
		p.pos += end + len(terminator)
	} else {
		quote := p.peek()
		lit.Kind = types.LiteralString
		if quote == '\'' {
			lit.Kind = types.LiteralCharacter
		}
		p.pos++
		valueStart := p.pos
		for {
			if p.eof() {
				if quote == '\'' {
					return nil, p.errorf(start, "unterminated character literal")
				}
				return nil, p.errorf(start, "unterminated string literal")
			}
			c := p.input[p.pos]
			if c == '\\' {
				p.pos += 2
				continue
			}
			if c == quote {
				break
			}
			p.pos++
		}
		lit.Value = p.input[valueStart:p.pos]
		p.pos++
	}

	if suffix, end := syntax.ReadIdentifier(p.input, p.pos); suffix != "" {
		lit.LiteralSuffix = suffix
		p.pos = end
	}
	return lit, nil
}
