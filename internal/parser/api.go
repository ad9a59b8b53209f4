// Package parser turns C++ declarations and types written as text into the
// tree defined by package types.
package parser

import (
	"log/slog"

	"github.com/appsworld/go-cppdecl/types"
)

// Flags control which kinds of declarations are accepted.
type Flags uint8

const (
	// AcceptUnnamed accepts abstract declarators such as `int *`.
	AcceptUnnamed Flags = 1 << iota
	// AcceptUnqualifiedNamed accepts names like `x`.
	AcceptUnqualifiedNamed
	// AcceptQualifiedNamed accepts names like `A::x` and `::x`.
	AcceptQualifiedNamed
	// ForceNonEmptyReturnType rejects constructors, destructors and
	// conversion operators.
	ForceNonEmptyReturnType
	// ForceEmptyReturnType accepts only constructors, destructors and
	// conversion operators.
	ForceEmptyReturnType

	AcceptAllNamed   = AcceptUnqualifiedNamed | AcceptQualifiedNamed
	AcceptEverything = AcceptUnnamed | AcceptAllNamed

	paramFlags       = AcceptUnnamed | AcceptUnqualifiedNamed | ForceNonEmptyReturnType
	typeOnlyFlags    = AcceptUnnamed | ForceNonEmptyReturnType
	defaultMaxDepth  = 256
	defaultMaxChoice = 16
)

type Option func(*options)

type options struct {
	logger          *slog.Logger
	maxAlternatives int
	maxDepth        int
}

// WithLogger sets the logger that receives debug records about ambiguity
// resolution and failed attempts.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMaxAlternatives caps the number of readings tried for one
// declaration. Readings beyond the cap are dropped with a warning.
//
// The cap applies to each declaration separately. Every reading owns its
// subtree, so a parameter that is itself ambiguous is parsed again for each
// enclosing reading, and nested `a(a(...))` input takes time exponential in
// its depth regardless of this setting. Use WithMaxDepth to bound it.
func WithMaxAlternatives(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAlternatives = n
		}
	}
}

// WithMaxDepth caps the nesting of parameter lists, template arguments and
// parenthesized expressions. Since ambiguous nested declarators are
// reparsed per enclosing reading, this is also the bound on parse time for
// hostile input; about 20 levels of `a(a(...))` already take a noticeable
// fraction of a second.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

func buildOptions(opts ...Option) options {
	cfg := options{
		maxAlternatives: defaultMaxChoice,
		maxDepth:        defaultMaxDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = defaultLogger()
	}
	return cfg
}

// ParseDecl parses a declaration at the start of input. It returns the
// unparsed remainder with leading whitespace removed, so a complete parse
// leaves an empty string. On failure the returned error is a *ParseError.
func ParseDecl(input string, flags Flags, opts ...Option) (types.MaybeAmbiguousDecl, string, error) {
	s := newSession(input, buildOptions(opts...))
	d, end, err := s.parseDeclAt(0, flags, 0)
	if err != nil {
		return types.MaybeAmbiguousDecl{}, input, err
	}
	return d, input[end:], nil
}

// ParseType parses a type, without a name, at the start of input.
func ParseType(input string, opts ...Option) (types.MaybeAmbiguousType, string, error) {
	s := newSession(input, buildOptions(opts...))
	t, end, err := s.parseTypeAt(0, 0)
	if err != nil {
		return types.MaybeAmbiguousType{}, input, err
	}
	return t, input[end:], nil
}

// ParseQualifiedName parses a name such as `std::vector<int>::iterator` or
// `A::operator()`.
func ParseQualifiedName(input string, opts ...Option) (types.QualifiedName, string, error) {
	s := newSession(input, buildOptions(opts...))
	p := s.newParser(0, AcceptEverything, 0, nil)
	n, err := p.parseQualifiedName(nameAny)
	if err != nil {
		return types.QualifiedName{}, input, err
	}
	p.skipWS()
	return n, input[p.pos:], nil
}

// ParsePseudoExpr parses an expression up to a top-level `,` or an
// unmatched closing bracket.
func ParsePseudoExpr(input string, opts ...Option) (types.PseudoExpr, string, error) {
	s := newSession(input, buildOptions(opts...))
	p := s.newParser(0, AcceptEverything, 0, nil)
	e, err := p.parsePseudoExpr(stopAtComma)
	if err != nil {
		return types.PseudoExpr{}, input, err
	}
	p.skipWS()
	return e, input[p.pos:], nil
}
