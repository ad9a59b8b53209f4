package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/appsworld/go-cppdecl/internal/syntax"
	"github.com/appsworld/go-cppdecl/types"
)

// session is shared by every parser working on the same input, including
// the ones started for nested parameter and template argument lists.
type session struct {
	input string
	opts  options
	log   *slog.Logger
	// memo holds finished declarations by position, since the readings of
	// an ambiguous declaration often share nested declarations.
	memo map[memoKey]memoEntry
}

type memoKey struct {
	start int
	flags Flags
}

type memoEntry struct {
	decl types.MaybeAmbiguousDecl
	end  int
	err  error
}

func newSession(input string, opts options) *session {
	return &session{
		input: input,
		opts:  opts,
		log:   opts.logger.With(slog.String("component", "parser")),
		memo:  make(map[memoKey]memoEntry),
	}
}

// decision is a point where the grammar allows more than one reading.
type decision struct {
	chosen int
	count  int
}

// parser makes a single pass over one declaration. Ambiguities are resolved
// by replaying the pass with different choices, see parseDeclAt.
type parser struct {
	*session
	pos   int
	flags Flags
	depth int

	choices []int
	trail   []decision
}

func (s *session) newParser(pos int, flags Flags, depth int, choices []int) *parser {
	return &parser{session: s, pos: pos, flags: flags, depth: depth, choices: choices}
}

// decide returns which of count readings to take at the current decision
// point and records the point so that nextChoices can enumerate the rest.
func (p *parser) decide(count int) int {
	i := len(p.trail)
	chosen := 0
	if i < len(p.choices) {
		chosen = p.choices[i]
	}
	p.trail = append(p.trail, decision{chosen: chosen, count: count})
	return chosen
}

// nextChoices advances the rightmost decision that still has untried
// readings. Decisions after it are reset, depth-first.
func nextChoices(trail []decision) ([]int, bool) {
	for i := len(trail) - 1; i >= 0; i-- {
		if trail[i].chosen+1 < trail[i].count {
			next := make([]int, i+1)
			for j := 0; j < i; j++ {
				next[j] = trail[j].chosen
			}
			next[i] = trail[i].chosen + 1
			return next, true
		}
	}
	return nil, false
}

type reading struct {
	decl types.Decl
	end  int
}

// parseDeclAt parses one declaration starting at start, trying every
// reading. Readings that consume the most input are kept, deduplicated, and
// chained in the order they were found. If every reading fails, the error
// that got the furthest is returned.
func (s *session) parseDeclAt(start int, flags Flags, depth int) (types.MaybeAmbiguousDecl, int, error) {
	if depth > s.opts.maxDepth {
		return types.MaybeAmbiguousDecl{}, start, NewParseError(ErrTooDeep, start)
	}
	key := memoKey{start: start, flags: flags}
	if e, ok := s.memo[key]; ok {
		if e.err != nil {
			return types.MaybeAmbiguousDecl{}, start, e.err
		}
		return e.decl.Clone(), e.end, nil
	}
	d, end, err := s.enumerateReadings(start, flags, depth)
	if !errors.Is(err, ErrTooDeep) {
		s.memo[key] = memoEntry{decl: d, end: end, err: err}
	}
	if err != nil {
		return types.MaybeAmbiguousDecl{}, start, err
	}
	return d.Clone(), end, nil
}

func (s *session) enumerateReadings(start int, flags Flags, depth int) (types.MaybeAmbiguousDecl, int, error) {
	var (
		readings []reading
		bestErr  *ParseError
		choices  []int
	)
	for run := 1; ; run++ {
		p := s.newParser(start, flags, depth, choices)
		d, err := p.parseDecl()
		if err != nil {
			var pe *ParseError
			if !errors.As(err, &pe) {
				pe = &ParseError{Message: err.Error(), Offset: p.pos, err: err}
			}
			if errors.Is(err, ErrTooDeep) {
				return types.MaybeAmbiguousDecl{}, start, pe
			}
			if bestErr == nil || pe.Offset > bestErr.Offset {
				bestErr = pe
			}
		} else {
			readings = append(readings, reading{decl: d, end: syntax.SkipWhitespace(s.input, p.pos)})
		}

		next, ok := nextChoices(p.trail)
		if !ok {
			break
		}
		if run >= s.opts.maxAlternatives {
			s.log.Warn("too many readings, ignoring the rest", "offset", start, "limit", s.opts.maxAlternatives)
			break
		}
		choices = next
	}

	if len(readings) == 0 {
		s.log.Debug("no valid reading", "offset", start, "error", bestErr)
		return types.MaybeAmbiguousDecl{}, start, bestErr
	}

	end := 0
	for _, r := range readings {
		end = max(end, r.end)
	}
	var kept []types.Decl
	for i := range readings {
		if readings[i].end != end {
			continue
		}
		dup := false
		for j := range kept {
			if kept[j].Equal(&readings[i].decl) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, readings[i].decl)
		}
	}
	if len(kept) > 1 {
		s.log.Debug("ambiguous declaration", "offset", start, "readings", len(kept))
	}

	var ret *types.MaybeAmbiguousDecl
	for i := len(kept) - 1; i >= 0; i-- {
		ret = &types.MaybeAmbiguousDecl{
			Decl:                 kept[i],
			Alternative:          ret,
			HasNestedAmbiguities: kept[i].ContainsAmbiguity(),
		}
	}
	return *ret, end, nil
}

func (s *session) parseTypeAt(start int, depth int) (types.MaybeAmbiguousType, int, error) {
	d, end, err := s.parseDeclAt(start, typeOnlyFlags, depth)
	if err != nil {
		return types.MaybeAmbiguousType{}, start, err
	}
	return d.ToType(), end, nil
}

func (p *parser) errorf(pos int, format string, args ...interface{}) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Offset: pos}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *parser) peekWord() string {
	return syntax.PeekWord(p.input, p.pos)
}

func (p *parser) skipWS() {
	p.pos = syntax.SkipWhitespace(p.input, p.pos)
}

// peekAfterWS reports whether c is the next non-whitespace character.
func (p *parser) peekAfterWS(c byte) bool {
	i := syntax.SkipWhitespace(p.input, p.pos)
	return i < len(p.input) && p.input[i] == c
}

func (p *parser) expect(c byte) error {
	if p.eof() {
		return p.errorf(p.pos, "expected `%c`, got end of input", c)
	}
	if p.input[p.pos] != c {
		return p.errorf(p.pos, "expected `%c`", c)
	}
	p.pos++
	return nil
}

// enter guards the recursion of bracketed expressions.
func (p *parser) enter() error {
	if p.depth >= p.opts.maxDepth {
		return NewParseError(ErrTooDeep, p.pos)
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func qualifierFromWord(word string) (types.CvQualifiers, bool) {
	switch word {
	case "const":
		return types.Const, true
	case "volatile":
		return types.Volatile, true
	case "__restrict", "__restrict__", "restrict":
		return types.Restrict, true
	case "__ptr32":
		return types.MsvcPtr32, true
	case "__ptr64":
		return types.MsvcPtr64, true
	}
	return 0, false
}

// parseQualifiers reads qualifier words. Words outside allow are an error.
func (p *parser) parseQualifiers(allow types.CvQualifiers) (types.CvQualifiers, error) {
	var q types.CvQualifiers
	for {
		save := p.pos
		p.skipWS()
		word := p.peekWord()
		bit, ok := qualifierFromWord(word)
		if !ok {
			p.pos = save
			return q, nil
		}
		if allow&bit == 0 {
			return q, p.errorf(p.pos, "`%s` is not allowed here", word)
		}
		if q&bit != 0 {
			return q, p.errorf(p.pos, "repeated `%s`", word)
		}
		q |= bit
		p.pos += len(word)
	}
}

func reverseModifiers(mods []types.TypeModifier) []types.TypeModifier {
	ret := make([]types.TypeModifier, len(mods))
	for i, m := range mods {
		ret[len(mods)-1-i] = m
	}
	return ret
}
