// Package cppdecl parses C++ declarations and type names, such as the ones
// printed by compilers and demanglers, and rewrites them into a canonical
// spelling.
//
//	d, err := cppdecl.Parse("std::__cxx11::basic_string<char> *x",
//		cppdecl.WithSimplify(simplify.All, nil))
//	// d.ToCode(0) == "std::string *x"
package cppdecl

import (
	"log/slog"

	"github.com/appsworld/go-cppdecl/internal/parser"
	"github.com/appsworld/go-cppdecl/pkg/simplify"
	"github.com/appsworld/go-cppdecl/types"
)

// ParseError reports malformed input and the byte offset it was found at.
type ParseError = parser.ParseError

var (
	ErrUnparsedJunk = parser.ErrUnparsedJunk
	ErrTooDeep      = parser.ErrTooDeep
)

// ParseFlags select which kinds of declaration names are accepted.
type ParseFlags = parser.Flags

const (
	AcceptUnnamed           = parser.AcceptUnnamed
	AcceptUnqualifiedNamed  = parser.AcceptUnqualifiedNamed
	AcceptQualifiedNamed    = parser.AcceptQualifiedNamed
	ForceNonEmptyReturnType = parser.ForceNonEmptyReturnType
	ForceEmptyReturnType    = parser.ForceEmptyReturnType
	AcceptAllNamed          = parser.AcceptAllNamed
	AcceptEverything        = parser.AcceptEverything
)

type Option func(*options)

type options struct {
	flags           ParseFlags
	logger          *slog.Logger
	maxAlternatives int
	simplify        simplify.Flags
	traits          simplify.Traits
}

// WithFlags sets the parse flags used by ParseDecl and Parse. The default
// is AcceptEverything.
func WithFlags(f ParseFlags) Option {
	return func(o *options) {
		o.flags = f
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMaxAlternatives caps the readings kept for one ambiguous declaration.
func WithMaxAlternatives(n int) Option {
	return func(o *options) {
		o.maxAlternatives = n
	}
}

// WithSimplify runs the simplifier on every successful parse. A nil traits
// uses simplify.DefaultTraits.
func WithSimplify(flags simplify.Flags, traits simplify.Traits) Option {
	return func(o *options) {
		o.simplify = flags
		o.traits = traits
	}
}

func buildOptions(opts []Option) options {
	o := options{flags: AcceptEverything}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o *options) parserOptions() []parser.Option {
	var popts []parser.Option
	if o.logger != nil {
		popts = append(popts, parser.WithLogger(o.logger))
	}
	if o.maxAlternatives > 0 {
		popts = append(popts, parser.WithMaxAlternatives(o.maxAlternatives))
	}
	return popts
}

func (o *options) simplifier() *simplify.Simplifier {
	sopts := []simplify.Option{simplify.WithTraits(o.traits)}
	if o.logger != nil {
		sopts = append(sopts, simplify.WithLogger(o.logger))
	}
	return simplify.New(o.simplify, sopts...)
}

func (o *options) simplifyNode(n types.Node) {
	if o.simplify != 0 {
		o.simplifier().Simplify(n)
	}
}

// ParseDecl parses a declaration at the start of input and returns the
// rest of the input.
func ParseDecl(input string, opts ...Option) (types.MaybeAmbiguousDecl, string, error) {
	o := buildOptions(opts)
	d, rest, err := parser.ParseDecl(input, o.flags, o.parserOptions()...)
	if err != nil {
		return d, rest, err
	}
	o.simplifyNode(&d)
	return d, rest, nil
}

// ParseType parses an unnamed type at the start of input and returns the
// rest of the input.
func ParseType(input string, opts ...Option) (types.MaybeAmbiguousType, string, error) {
	o := buildOptions(opts)
	t, rest, err := parser.ParseType(input, o.parserOptions()...)
	if err != nil {
		return t, rest, err
	}
	o.simplifyNode(&t)
	return t, rest, nil
}

// Parse parses the whole input as one declaration. Trailing text is an
// error that matches ErrUnparsedJunk.
func Parse(input string, opts ...Option) (types.MaybeAmbiguousDecl, error) {
	d, rest, err := ParseDecl(input, opts...)
	if err != nil {
		return d, err
	}
	if rest != "" {
		return types.MaybeAmbiguousDecl{}, parser.NewParseError(ErrUnparsedJunk, len(input)-len(rest))
	}
	return d, nil
}

// Simplify rewrites n in place. Only WithLogger and the traits passed to
// WithSimplify are used from opts.
func Simplify(flags simplify.Flags, n types.Node, opts ...Option) {
	o := buildOptions(opts)
	o.simplify = flags
	o.simplifyNode(n)
}
