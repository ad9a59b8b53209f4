package parser

import (
	"strings"

	"github.com/appsworld/go-cppdecl/internal/syntax"
	"github.com/appsworld/go-cppdecl/types"
)

const (
	allQualifiers       = types.CvMask | types.Restrict | types.MsvcPtrMask
	referenceQualifiers = types.Restrict | types.MsvcPtrMask
)

// parseDecl makes one pass over a declaration using the current choices.
func (p *parser) parseDecl() (types.Decl, error) {
	p.skipWS()
	start := p.pos

	st, err := p.parseSimpleType()
	if err != nil {
		return types.Decl{}, err
	}
	p.maybeReadAsConstructor(&st)

	dcl, err := p.parseDeclarator()
	if err != nil {
		return types.Decl{}, err
	}

	d := types.Decl{
		Type: types.Type{SimpleType: st.SimpleType, Modifiers: dcl.mods},
		Name: dcl.name,
	}
	if err := p.validate(&d, start, dcl.namePos); err != nil {
		return types.Decl{}, err
	}
	if dcl.trailing != nil {
		if err := p.attachTrailingReturnType(&d, dcl.trailing, start); err != nil {
			return types.Decl{}, err
		}
	}
	return d, nil
}

type simpleTypeResult struct {
	types.SimpleType
	// namePos is where a user-defined name starts.
	namePos int
	// fromKeywords is set when the name is a built-in type spelled with
	// keywords, which may be combined with more keywords.
	fromKeywords bool
}

func (p *parser) parseSimpleType() (simpleTypeResult, error) {
	var r simpleTypeResult
	p.skipWS()
	start := p.pos

loop:
	for {
		p.skipWS()
		wordPos := p.pos
		word := p.peekWord()
		switch {
		case syntax.IsCvQualifierWord(word):
			q, _ := qualifierFromWord(word)
			if r.Quals&q != 0 {
				return r, p.errorf(wordPos, "repeated `%s`", word)
			}
			r.Quals |= q
			p.pos += len(word)

		case syntax.IsTypePrefixWord(word):
			if r.Prefix != types.PrefixNone || !r.Name.IsEmpty() || r.Flags != 0 {
				return r, p.errorf(wordPos, "unexpected `%s`", word)
			}
			r.Prefix, _ = types.SimpleTypePrefixFromWord(word)
			p.pos += len(word)
			if r.Prefix == types.PrefixEnum {
				save := p.pos
				p.skipWS()
				if w := p.peekWord(); w == "class" || w == "struct" {
					p.pos += len(w)
				} else {
					p.pos = save
				}
			}

		case syntax.IsSignednessWord(word):
			if r.Flags&(types.Unsigned|types.ExplicitlySigned) != 0 {
				return r, p.errorf(wordPos, "repeated signedness")
			}
			if r.Prefix != types.PrefixNone || (!r.Name.IsEmpty() && !r.fromKeywords) {
				return r, p.errorf(wordPos, "unexpected `%s`", word)
			}
			if word == "unsigned" {
				r.Flags |= types.Unsigned
			} else {
				r.Flags |= types.ExplicitlySigned
			}
			p.pos += len(word)

		case syntax.IsTypeNameKeyword(word):
			if r.Prefix != types.PrefixNone || (!r.Name.IsEmpty() && !r.fromKeywords) {
				return r, p.errorf(wordPos, "unexpected `%s`", word)
			}
			existing := r.Name.AsSingleWord()
			name, redundantInt, ok := combineTypeWords(existing, word)
			if !ok {
				return r, p.errorf(wordPos, "`%s` can't be combined with `%s`", word, existing)
			}
			if redundantInt {
				if r.Flags&types.RedundantInt != 0 {
					return r, p.errorf(wordPos, "repeated `int`")
				}
				r.Flags |= types.RedundantInt
			}
			r.Name = types.NewQualifiedName(name)
			r.fromKeywords = true
			p.pos += len(word)

		case word != "" && syntax.IsReservedWord(word):
			break loop

		case word != "" || p.hasPrefix("::"):
			if !r.Name.IsEmpty() || r.Flags != 0 {
				break loop
			}
			name, err := p.parseQualifiedName(nameAny)
			if err != nil {
				return r, err
			}
			// `A::~A` and `A::operator int` are declared names, not types.
			if !name.LastComponentIsNormalString() {
				p.pos = wordPos
				break loop
			}
			r.Name = name
			r.namePos = wordPos

		default:
			break loop
		}
	}

	if r.Flags&(types.Unsigned|types.ExplicitlySigned) != 0 {
		if r.Name.IsEmpty() {
			r.Name = types.NewQualifiedName("int")
			r.Flags |= types.ImpliedInt
		} else if !r.Name.IsBuiltInTypeName(types.AllowIntegral) {
			return r, p.errorf(start, "signedness can't be applied to `%s`", r.Name.AsSingleWord())
		}
	}
	if r.Name.IsEmpty() && (r.Quals != 0 || r.Prefix != types.PrefixNone) {
		return r, p.errorf(p.pos, "expected a type name")
	}
	return r, nil
}

// combineTypeWords merges a built-in type keyword into the keywords seen so
// far. redundantInt is set when an `int` was absorbed, as in `long int`.
func combineTypeWords(existing, word string) (name string, redundantInt, ok bool) {
	switch {
	case existing == "":
		return word, false, true
	case existing == "long" && word == "long":
		return "long long", false, true
	case existing == "long" && word == "double", existing == "double" && word == "long":
		return "long double", false, true
	case word == "int":
		switch existing {
		case "short", "long", "long long":
			return existing, true, true
		}
	case existing == "int":
		switch word {
		case "short", "long":
			return word, true, true
		}
	}
	return "", false, false
}

// maybeReadAsConstructor handles a simple type that is a plain name followed
// by `(`. The name may instead be a constructor declared without a return
// type, which is either certain (`A::A`) or one of two readings.
func (p *parser) maybeReadAsConstructor(st *simpleTypeResult) {
	if p.flags&ForceNonEmptyReturnType != 0 || st.Name.IsEmpty() || st.fromKeywords {
		return
	}
	if !st.IsOnlyQualifiedName() || st.Prefix != types.PrefixNone || !p.peekAfterWS('(') {
		return
	}
	if st.Name.IsQualified() {
		if p.flags&AcceptQualifiedNamed == 0 {
			return
		}
	} else if p.flags&AcceptUnqualifiedNamed == 0 {
		return
	}

	switch st.Name.IsFunctionNameRequiringEmptyReturnType() {
	case types.EmptyReturnYes:
	case types.EmptyReturnMaybeUnqualConstructor, types.EmptyReturnMaybeQualConstructorUsingTypedef:
		if p.flags&ForceEmptyReturnType == 0 && p.decide(2) == 0 {
			return
		}
	default:
		return
	}
	p.pos = st.namePos
	st.SimpleType = types.SimpleType{}
}

func (p *parser) validate(d *types.Decl, start, namePos int) error {
	kind := d.Name.IsFunctionNameRequiringEmptyReturnType()
	if d.Type.SimpleType.IsEmpty() {
		if kind == types.EmptyReturnNo || p.flags&ForceNonEmptyReturnType != 0 {
			return p.errorf(start, "expected a type")
		}
		if kind != types.EmptyReturnYes || len(d.Type.Modifiers) > 0 {
			// Constructors, destructors and conversion operators take exactly
			// one parameter list and return nothing.
			if len(d.Type.Modifiers) != 1 || d.Type.TopFunction() == nil {
				return p.errorf(start, "expected a type")
			}
		}
	} else {
		if kind == types.EmptyReturnYes {
			return p.errorf(namePos, "`%s` can't have a return type", d.Name.ToCode(0))
		}
		if p.flags&ForceEmptyReturnType != 0 {
			return p.errorf(start, "expected a constructor, a destructor or a conversion operator")
		}
	}

	switch {
	case d.Name.IsEmpty():
		if p.flags&AcceptUnnamed == 0 {
			return p.errorf(p.pos, "expected a name")
		}
	case d.Name.IsQualified():
		if p.flags&AcceptQualifiedNamed == 0 {
			return p.errorf(namePos, "a qualified name is not allowed here")
		}
	default:
		if p.flags&AcceptUnqualifiedNamed == 0 {
			return p.errorf(namePos, "a name is not allowed here")
		}
	}
	return nil
}

// attachTrailingReturnType replaces `auto` with the type after `->`.
func (p *parser) attachTrailingReturnType(d *types.Decl, trailing *types.MaybeAmbiguousType, start int) error {
	st := &d.Type.SimpleType
	if !st.IsOnlyQualifiedName() || st.Prefix != types.PrefixNone || st.Name.AsSingleWord() != "auto" {
		return p.errorf(start, "a trailing return type requires `auto`")
	}
	mods := d.Type.Modifiers
	if f, ok := mods[len(mods)-1].(*types.Function); !ok || !f.UsesTrailingReturnType {
		return p.errorf(start, "a function with a trailing return type must be the outermost declarator")
	}
	d.Type.SimpleType = types.SimpleType{}
	d.Type.AppendType(trailing.Type)
	return nil
}

type declarator struct {
	name     types.QualifiedName
	namePos  int
	mods     []types.TypeModifier
	trailing *types.MaybeAmbiguousType
}

// parseDeclarator parses pointer operators, then the name or a
// parenthesized declarator, then array and function suffixes. Modifiers are
// returned outermost first.
func (p *parser) parseDeclarator() (declarator, error) {
	var d declarator
	ptrs, err := p.parsePointerOps()
	if err != nil {
		return d, err
	}

	var inner []types.TypeModifier
	p.skipWS()
	switch {
	case p.peek() == '(':
		if p.parenIsGrouping() {
			p.pos++
			in, err := p.parseDeclarator()
			if err != nil {
				return d, err
			}
			if in.trailing != nil {
				return d, p.errorf(p.pos, "a trailing return type can't be parenthesized")
			}
			p.skipWS()
			if err := p.expect(')'); err != nil {
				return d, err
			}
			d.name, d.namePos = in.name, in.namePos
			inner = in.mods
		}
	case p.atDeclName():
		d.namePos = p.pos
		d.name, err = p.parseQualifiedName(nameAny)
		if err != nil {
			return d, err
		}
	}

	suffixes, trailing, err := p.parseSuffixes()
	if err != nil {
		return d, err
	}
	d.trailing = trailing
	d.mods = append(append(inner, suffixes...), reverseModifiers(ptrs)...)
	return d, nil
}

// atDeclName reports whether a declared name starts here and names are
// accepted at all.
func (p *parser) atDeclName() bool {
	if p.flags&AcceptAllNamed == 0 {
		return false
	}
	pos := p.pos
	if strings.HasPrefix(p.input[pos:], "::") {
		pos = syntax.SkipWhitespace(p.input, pos+2)
	}
	if pos < len(p.input) && p.input[pos] == '~' {
		return true
	}
	word := syntax.PeekWord(p.input, pos)
	return word == "operator" || (word != "" && !syntax.IsReservedWord(word))
}

// atTypeName reports whether a type name that isn't a keyword starts here.
func (p *parser) atTypeName() bool {
	if p.hasPrefix("::") {
		return true
	}
	word := p.peekWord()
	return word != "" && !syntax.IsReservedWord(word)
}

// parsePointerOps returns `*`, `&`, `&&` and `A::*` in source order.
func (p *parser) parsePointerOps() ([]types.TypeModifier, error) {
	var ops []types.TypeModifier
	for {
		p.skipWS()
		switch {
		case p.hasPrefix("&&"):
			p.pos += 2
			q, err := p.parseQualifiers(referenceQualifiers)
			if err != nil {
				return nil, err
			}
			ops = append(ops, &types.Reference{Quals: q, Kind: types.RefRvalue})
		case p.peek() == '&':
			p.pos++
			q, err := p.parseQualifiers(referenceQualifiers)
			if err != nil {
				return nil, err
			}
			ops = append(ops, &types.Reference{Quals: q, Kind: types.RefLvalue})
		case p.peek() == '*':
			p.pos++
			q, err := p.parseQualifiers(allQualifiers)
			if err != nil {
				return nil, err
			}
			ops = append(ops, &types.Pointer{Quals: q})
		default:
			mp, ok, err := p.tryMemberPointer()
			if err != nil {
				return nil, err
			}
			if !ok {
				return ops, nil
			}
			ops = append(ops, mp)
		}
	}
}

// tryMemberPointer parses `A::*` if it is next, and otherwise leaves the
// position alone.
func (p *parser) tryMemberPointer() (*types.MemberPointer, bool, error) {
	start := p.pos
	if !p.atTypeName() {
		return nil, false, nil
	}
	base, err := p.parseQualifiedName(nameType)
	if err != nil {
		p.pos = start
		return nil, false, nil
	}
	p.skipWS()
	if p.hasPrefix("::") {
		after := syntax.SkipWhitespace(p.input, p.pos+2)
		if after < len(p.input) && p.input[after] == '*' {
			p.pos = after + 1
			q, err := p.parseQualifiers(allQualifiers)
			if err != nil {
				return nil, false, err
			}
			return &types.MemberPointer{Quals: q, Base: base}, true, nil
		}
	}
	p.pos = start
	return nil, false, nil
}

// parenIsGrouping decides whether the `(` at the current position starts a
// parenthesized declarator or a parameter list. `T(x)` is both a function
// taking an `x` and a variable named `x`, so that case is a decision point.
func (p *parser) parenIsGrouping() bool {
	look := syntax.SkipWhitespace(p.input, p.pos+1)
	rest := p.input[look:]
	switch {
	case rest == "", rest[0] == ')', strings.HasPrefix(rest, "..."):
		return false
	case rest[0] == '*', rest[0] == '&', rest[0] == '(', rest[0] == '~':
		return true
	}
	word := syntax.PeekWord(p.input, look)
	if word == "" && !strings.HasPrefix(rest, "::") {
		return false
	}
	if word == "operator" {
		return true
	}
	if syntax.IsReservedWord(word) {
		return false
	}

	save := p.pos
	p.pos = look
	_, isMemberPointer, _ := p.tryMemberPointer()
	p.pos = save
	if isMemberPointer {
		return true
	}
	if p.flags&AcceptAllNamed == 0 {
		return false
	}
	return p.decide(2) == 0
}

// parseSuffixes parses array bounds and parameter lists. Parsing stops
// after a trailing return type since nothing can follow it.
func (p *parser) parseSuffixes() ([]types.TypeModifier, *types.MaybeAmbiguousType, error) {
	var mods []types.TypeModifier
	for {
		p.skipWS()
		switch p.peek() {
		case '[':
			p.pos++
			size, err := p.parsePseudoExpr(0)
			if err != nil {
				return nil, nil, err
			}
			p.skipWS()
			if err := p.expect(']'); err != nil {
				return nil, nil, err
			}
			mods = append(mods, &types.Array{Size: size})
		case '(':
			f, trailing, err := p.parseFunction()
			if err != nil {
				return nil, nil, err
			}
			mods = append(mods, f)
			if trailing != nil {
				return mods, trailing, nil
			}
		default:
			return mods, nil, nil
		}
	}
}

func (p *parser) parseFunction() (*types.Function, *types.MaybeAmbiguousType, error) {
	p.pos++ // (
	f := &types.Function{}
	p.skipWS()

	switch {
	case p.peek() == ')':
		p.pos++
	case syntax.StartsWithWord(p.input, p.pos, "void") && p.voidIsWholeParamList():
		f.CStyleVoidParams = true
		p.pos = syntax.SkipWhitespace(p.input, p.pos+len("void")) + 1
	default:
		if err := p.parseParams(f); err != nil {
			return nil, nil, err
		}
	}

	q, err := p.parseQualifiers(allQualifiers)
	if err != nil {
		return nil, nil, err
	}
	f.CvQuals = q

	p.skipWS()
	switch {
	case p.hasPrefix("&&"):
		f.RefQual = types.RefRvalue
		p.pos += 2
	case p.peek() == '&':
		f.RefQual = types.RefLvalue
		p.pos++
	}

	p.skipWS()
	if syntax.StartsWithWord(p.input, p.pos, "noexcept") {
		p.pos += len("noexcept")
		f.Noexcept = true
		if p.peekAfterWS('(') {
			p.skipWS()
			p.pos++
			cond, err := p.parsePseudoExpr(0)
			if err != nil {
				return nil, nil, err
			}
			p.skipWS()
			if err := p.expect(')'); err != nil {
				return nil, nil, err
			}
			f.Noexcept = cond.AsSingleIdentifier() != "false"
		}
	}

	p.skipWS()
	if !p.hasPrefix("->") {
		return f, nil, nil
	}
	p.pos += 2
	ret, end, err := p.parseTypeAt(p.pos, p.depth+1)
	if err != nil {
		return nil, nil, err
	}
	p.pos = end
	f.UsesTrailingReturnType = true
	return f, &ret, nil
}

func (p *parser) voidIsWholeParamList() bool {
	i := syntax.SkipWhitespace(p.input, p.pos+len("void"))
	return i < len(p.input) && p.input[i] == ')'
}

func (p *parser) parseParams(f *types.Function) error {
	for {
		p.skipWS()
		if p.hasPrefix("...") {
			p.pos += 3
			f.CStyleVariadic = true
			p.skipWS()
			return p.expect(')')
		}

		param, end, err := p.parseDeclAt(p.pos, paramFlags, p.depth+1)
		if err != nil {
			return err
		}
		p.pos = end
		f.Params = append(f.Params, param)

		p.skipWS()
		switch {
		case p.hasPrefix("..."):
			p.pos += 3
			f.CStyleVariadic = true
			f.MissingCommaBeforeVariadic = true
			p.skipWS()
			return p.expect(')')
		case p.peek() == ',':
			p.pos++
		case p.peek() == ')':
			p.pos++
			return nil
		default:
			return p.errorf(p.pos, "expected `,` or `)` in the parameter list")
		}
	}
}
