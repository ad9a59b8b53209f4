// Package simplify rewrites parsed declarations into a canonical spelling,
// removing the quirks of particular compilers and standard libraries.
//
// Every rule is idempotent: simplifying twice with the same flags gives the
// same tree as simplifying once.
package simplify

import (
	"log/slog"

	"github.com/appsworld/go-cppdecl/types"
)

// Option configures a Simplifier.
type Option func(*Simplifier)

// WithTraits replaces DefaultTraits.
func WithTraits(t Traits) Option {
	return func(s *Simplifier) {
		if t != nil {
			s.traits = t
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Simplifier) {
		if l != nil {
			s.log = l
		}
	}
}

// Simplifier applies a fixed set of rules. It holds no state between calls
// and is safe for concurrent use if its Traits are.
type Simplifier struct {
	flags  Flags
	traits Traits
	log    *slog.Logger
}

func New(flags Flags, opts ...Option) *Simplifier {
	s := &Simplifier{
		flags:  flags,
		traits: &DefaultTraits{},
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.log = s.log.With(slog.String("component", "simplify"))
	return s
}

func (s *Simplifier) Flags() Flags { return s.flags }

// Simplify rewrites n in place. n is typically a *types.Decl, *types.Type
// or one of the MaybeAmbiguous wrappers, in which case every reading is
// simplified.
func Simplify(flags Flags, n types.Node, traits Traits) {
	New(flags, WithTraits(traits)).Simplify(n)
}

func (s *Simplifier) Simplify(n types.Node) {
	if s.flags == 0 {
		return
	}
	// Nested names are visited first, so the template arguments of a name
	// are already simplified when its own rules compare them.
	types.VisitComponents(n, types.ComponentVisitor{
		QualifiedName: s.qualifiedName,
		SimpleType:    s.simpleType,
		CvQualifiers:  s.cvQualifiers,
	})
}

func (s *Simplifier) cvQualifiers(q *types.CvQualifiers) {
	if s.flags&MsvcRemovePtr32Ptr64 != 0 {
		*q &^= types.MsvcPtrMask
	}
}

func (s *Simplifier) simpleType(st *types.SimpleType) {
	if s.flags&CommonRemoveTypePrefix != 0 {
		st.Prefix = types.PrefixNone
	}
	if s.flags&CommonRemoveRedundantSigned != 0 && st.Flags&types.ExplicitlySigned != 0 && !st.IsNonRedundantlySigned() {
		// A lone `signed` becomes a plain `int`.
		st.Flags &^= types.ExplicitlySigned | types.ImpliedInt
	}
}

func (s *Simplifier) qualifiedName(name *types.QualifiedName) {
	if s.flags&CNormalizeBool != 0 && name.AsSingleWord() == "_Bool" {
		name.Parts[0].Var = types.Identifier("bool")
		return
	}
	if s.flags&RemoveStdVersionNamespace != 0 {
		s.removeVersionNamespace(name)
	}
	if s.flags&NormalizeIterators != 0 {
		s.normalizeIterator(name)
	}
	// Each of these removes the last template argument only, so the order
	// matters.
	if s.flags&CommonRemoveDefArgAllocator != 0 {
		s.removeAllocator(name)
	}
	if s.flags&CommonRemoveDefArgCharTraits != 0 {
		s.removeCharTraits(name)
	}
	if s.flags&CommonRemoveDefArgComparator != 0 {
		s.removeComparator(name)
	}
	if s.flags&CommonRemoveDefArgHashFunctor != 0 {
		s.removeHashFunctor(name)
	}
	if s.flags&CommonRewriteTemplateSpecializationsAsTypedefs != 0 {
		s.rewriteAsTypedef(name)
	}
}

func (s *Simplifier) removeVersionNamespace(name *types.QualifiedName) {
	if len(name.Parts) < 2 || name.Parts[0].AsSingleWord() != "std" {
		return
	}
	switch name.Parts[1].AsSingleWord() {
	case "__cxx11":
		if s.flags&LibstdcxxRemoveCxx11Namespace == 0 {
			return
		}
	case "__1":
		if s.flags&LibcppRemove1Namespace == 0 {
			return
		}
	default:
		return
	}
	name.Parts = append(name.Parts[:1], name.Parts[2:]...)
}

// targs returns the template arguments of a name part, or nil.
func targs(u *types.UnqualifiedName) []types.TemplateArgument {
	if u.TemplateArgs == nil {
		return nil
	}
	return u.TemplateArgs.Args
}

// lastTargs returns the template arguments of the last part of t's name.
func lastTargs(t *types.Type) []types.TemplateArgument {
	if last := t.SimpleType.Name.Last(); last != nil {
		return targs(last)
	}
	return nil
}

// singleTypeArg returns the only template argument of t's name if it is a
// type.
func singleTypeArg(t *types.Type) *types.Type {
	args := lastTargs(t)
	if len(args) != 1 {
		return nil
	}
	return args[0].AsType()
}

func popArg(u *types.UnqualifiedName) {
	u.TemplateArgs.Args = u.TemplateArgs.Args[:len(u.TemplateArgs.Args)-1]
}

// container is the family of a container template, which fixes the
// positions of its default arguments.
type container uint8

const (
	notContainer container = iota
	stringLike
	vectorLike
	orderedSetLike
	orderedMapLike
	unorderedSetLike
	unorderedMapLike
)

func classify(tr Traits, name *types.QualifiedName) (container, int) {
	checks := []struct {
		kind container
		is   func(*types.QualifiedName) (int, bool)
	}{
		{stringLike, tr.IsStringLike},
		{vectorLike, tr.IsVectorLike},
		{orderedSetLike, tr.IsOrderedSetLike},
		{orderedMapLike, tr.IsOrderedMapLike},
		{unorderedSetLike, tr.IsUnorderedSetLike},
		{unorderedMapLike, tr.IsUnorderedMapLike},
	}
	for _, c := range checks {
		if i, ok := c.is(name); ok {
			return c.kind, i
		}
	}
	return notContainer, 0
}

// Positions of the default arguments, by container family. -1 is none.
var (
	allocatorPos  = [...]int{-1, 2, 1, 2, 3, 3, 4}
	comparatorPos = [...]int{-1, -1, -1, 1, 2, 2, 3}
	hashPos       = [...]int{-1, -1, -1, -1, -1, 1, 2}
)

func (s *Simplifier) removeAllocator(name *types.QualifiedName) {
	tr := s.traits
	kind, index := classify(tr, name)
	pos := allocatorPos[kind]
	if pos < 0 {
		return
	}
	isMap := kind == orderedMapLike || kind == unorderedMapLike

	part := &name.Parts[index]
	args := targs(part)
	if len(args) != pos+1 {
		return
	}
	alloc := args[pos].AsType()
	if alloc == nil || !tr.IsAllocator(alloc) {
		return
	}
	allocArg := singleTypeArg(alloc)
	if allocArg == nil {
		return
	}

	if !isMap {
		if elem := args[0].AsType(); elem != nil && elem.Equal(allocArg) {
			popArg(part)
		}
		return
	}

	key, value := args[0].AsType(), args[1].AsType()
	if key == nil || value == nil || !tr.IsPairInAllocatorParam(allocArg) {
		return
	}
	pairArgs := lastTargs(allocArg)
	if len(pairArgs) != 2 {
		return
	}
	pairKey, pairValue := pairArgs[0].AsType(), pairArgs[1].AsType()
	if pairKey == nil || pairValue == nil || !pairKey.IsConst() || !pairValue.Equal(value) {
		return
	}
	if key.TopLevelQualifiersMut() == nil {
		return
	}
	constKey := key.Clone()
	constKey.AddTopLevelQualifiers(types.Const)
	if constKey.Equal(pairKey) {
		popArg(part)
	}
}

func (s *Simplifier) removeCharTraits(name *types.QualifiedName) {
	index, ok := s.traits.HasCharTraits(name)
	if !ok {
		return
	}
	part := &name.Parts[index]
	args := targs(part)
	if len(args) != 2 {
		return
	}
	elem, traits := args[0].AsType(), args[1].AsType()
	if elem == nil || traits == nil || !s.traits.IsCharTraits(traits) {
		return
	}
	if arg := singleTypeArg(traits); arg != nil && arg.Equal(elem) {
		popArg(part)
	}
}

func (s *Simplifier) removeComparator(name *types.QualifiedName) {
	tr := s.traits
	kind, index := classify(tr, name)
	pos := comparatorPos[kind]
	if pos < 0 {
		return
	}
	is := tr.IsLessComparator
	if kind == unorderedSetLike || kind == unorderedMapLike {
		is = tr.IsEqualToComparator
	}
	s.removeFunctor(&name.Parts[index], pos, is)
}

func (s *Simplifier) removeHashFunctor(name *types.QualifiedName) {
	kind, index := classify(s.traits, name)
	if pos := hashPos[kind]; pos >= 0 {
		s.removeFunctor(&name.Parts[index], pos, s.traits.IsHashFunctor)
	}
}

// removeFunctor removes the argument at pos if it is the last one, matches
// is, and is instantiated with the container's first argument.
func (s *Simplifier) removeFunctor(part *types.UnqualifiedName, pos int, is func(*types.Type) bool) {
	args := targs(part)
	if len(args) != pos+1 {
		return
	}
	functor := args[pos].AsType()
	if functor == nil || !is(functor) {
		return
	}
	arg := singleTypeArg(functor)
	if elem := args[0].AsType(); arg != nil && elem != nil && elem.Equal(arg) {
		popArg(part)
	}
}

func (s *Simplifier) rewriteAsTypedef(name *types.QualifiedName) {
	base, allCharTypes, index, ok := s.traits.CharTypedefBase(name)
	if !ok {
		return
	}
	part := &name.Parts[index]
	args := targs(part)
	if len(args) != 1 {
		return
	}
	elem := args[0].AsType()
	if elem == nil {
		return
	}
	var prefix string
	switch elem.AsSingleWord() {
	case "char":
		if elem.SimpleType.Flags != 0 {
			return
		}
	case "wchar_t":
		prefix = "w"
	case "char8_t":
		prefix = "u8"
	case "char16_t":
		prefix = "u16"
	case "char32_t":
		prefix = "u32"
	default:
		return
	}
	if elem.SimpleType.Quals != 0 || (prefix != "" && prefix != "w" && !allCharTypes) {
		return
	}
	part.Var = types.Identifier(prefix + base)
	part.TemplateArgs = nil
}
