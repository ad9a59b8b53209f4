package simplify

import (
	"strings"

	"github.com/appsworld/go-cppdecl/types"
)

// Traits decides which names are standard containers and which template
// arguments are their defaults. The predicates taking a name return the
// index of the matching part in name.Parts, since the name can go on after
// it (`std::vector<int>::iterator`).
type Traits interface {
	// StdName returns the identifier following `std::`, `std::__cxx11::` or
	// `std::__1::`, ignoring its template arguments.
	StdName(name *types.QualifiedName) (word string, index int, ok bool)

	// IsStringLike matches `A<T, std::char_traits<T>, std::allocator<T>>`.
	IsStringLike(name *types.QualifiedName) (int, bool)
	// IsVectorLike matches `A<T, std::allocator<T>>`.
	IsVectorLike(name *types.QualifiedName) (int, bool)
	// IsOrderedSetLike matches `A<T, std::less<T>, std::allocator<T>>`.
	IsOrderedSetLike(name *types.QualifiedName) (int, bool)
	// IsOrderedMapLike matches
	// `A<K, V, std::less<K>, std::allocator<std::pair<const K, V>>>`.
	IsOrderedMapLike(name *types.QualifiedName) (int, bool)
	// IsUnorderedSetLike matches
	// `A<T, std::hash<T>, std::equal_to<T>, std::allocator<T>>`.
	IsUnorderedSetLike(name *types.QualifiedName) (int, bool)
	// IsUnorderedMapLike matches `A<K, V, std::hash<K>, std::equal_to<K>,
	// std::allocator<std::pair<const K, V>>>`.
	IsUnorderedMapLike(name *types.QualifiedName) (int, bool)
	// HasCharTraits matches the templates taking char traits as their
	// second argument.
	HasCharTraits(name *types.QualifiedName) (int, bool)
	// CharTypedefBase reports that `A<char>` can be spelled as base and
	// `A<wchar_t>` as `w` + base. If allCharTypes is set, the `u8`, `u16`
	// and `u32` spellings exist too.
	CharTypedefBase(name *types.QualifiedName) (base string, allCharTypes bool, index int, ok bool)

	IsCharTraits(t *types.Type) bool
	IsAllocator(t *types.Type) bool
	// IsPairInAllocatorParam matches the pair in a map's allocator.
	IsPairInAllocatorParam(t *types.Type) bool
	IsLessComparator(t *types.Type) bool
	IsEqualToComparator(t *types.Type) bool
	IsHashFunctor(t *types.Type) bool
}

// DefaultTraits recognizes the standard library. To recognize more types,
// embed it and set Derived to the embedding value: the default predicates
// then call the overridden ones.
type DefaultTraits struct {
	Derived Traits
}

var _ Traits = (*DefaultTraits)(nil)

func (d *DefaultTraits) self() Traits {
	if d.Derived != nil {
		return d.Derived
	}
	return d
}

func (d *DefaultTraits) StdName(name *types.QualifiedName) (string, int, bool) {
	if len(name.Parts) < 2 || name.Parts[0].AsSingleWord() != "std" {
		return "", 0, false
	}
	i := 1
	if v := name.Parts[1].AsSingleWord(); v == "__cxx11" || v == "__1" {
		i++
	}
	if i >= len(name.Parts) {
		return "", 0, false
	}
	word := name.Parts[i].AsSingleWordIgnoringTemplateArgs()
	return word, i, word != ""
}

// stdTypeName is StdName for a type that is nothing but a name ending with
// the std component.
func stdTypeName(tr Traits, t *types.Type) string {
	if t == nil || !t.IsOnlyQualifiedName() {
		return ""
	}
	word, i, ok := tr.StdName(&t.SimpleType.Name)
	if !ok || i != len(t.SimpleType.Name.Parts)-1 {
		return ""
	}
	return word
}

func (d *DefaultTraits) stdNameIn(name *types.QualifiedName, words ...string) (int, bool) {
	word, i, ok := d.self().StdName(name)
	if !ok {
		return 0, false
	}
	for _, w := range words {
		if w == word {
			return i, true
		}
	}
	return 0, false
}

func (d *DefaultTraits) IsStringLike(name *types.QualifiedName) (int, bool) {
	return d.stdNameIn(name, "basic_string")
}

func (d *DefaultTraits) IsVectorLike(name *types.QualifiedName) (int, bool) {
	return d.stdNameIn(name, "vector", "list", "forward_list", "deque", "hive")
}

func (d *DefaultTraits) IsOrderedSetLike(name *types.QualifiedName) (int, bool) {
	return d.stdNameIn(name, "set", "multiset")
}

func (d *DefaultTraits) IsOrderedMapLike(name *types.QualifiedName) (int, bool) {
	return d.stdNameIn(name, "map", "multimap")
}

func (d *DefaultTraits) IsUnorderedSetLike(name *types.QualifiedName) (int, bool) {
	return d.stdNameIn(name, "unordered_set", "unordered_multiset")
}

func (d *DefaultTraits) IsUnorderedMapLike(name *types.QualifiedName) (int, bool) {
	return d.stdNameIn(name, "unordered_map", "unordered_multimap")
}

// charTraitsTemplates all have typedefs named without the `basic_` prefix.
var charTraitsTemplates = []string{
	"basic_string",
	"basic_string_view",
	"basic_ios",
	"basic_filebuf",
	"basic_streambuf",
	"basic_stringbuf",
	"basic_istream",
	"basic_ostream",
	"basic_iostream",
	"basic_stringstream",
	"basic_istringstream",
	"basic_ostringstream",
	"basic_fstream",
	"basic_ifstream",
	"basic_ofstream",
}

func (d *DefaultTraits) HasCharTraits(name *types.QualifiedName) (int, bool) {
	return d.stdNameIn(name, charTraitsTemplates...)
}

func (d *DefaultTraits) CharTypedefBase(name *types.QualifiedName) (string, bool, int, bool) {
	// Not dispatched: an overridden HasCharTraits may accept names that
	// don't follow the `basic_` convention.
	i, ok := d.HasCharTraits(name)
	if !ok {
		return "", false, 0, false
	}
	word := name.Parts[i].AsSingleWordIgnoringTemplateArgs()
	base, ok := strings.CutPrefix(word, "basic_")
	if !ok {
		return "", false, 0, false
	}
	return base, word == "basic_string" || word == "basic_string_view", i, true
}

func (d *DefaultTraits) IsCharTraits(t *types.Type) bool {
	return stdTypeName(d.self(), t) == "char_traits"
}

func (d *DefaultTraits) IsAllocator(t *types.Type) bool {
	return stdTypeName(d.self(), t) == "allocator"
}

func (d *DefaultTraits) IsPairInAllocatorParam(t *types.Type) bool {
	return stdTypeName(d.self(), t) == "pair"
}

func (d *DefaultTraits) IsLessComparator(t *types.Type) bool {
	return stdTypeName(d.self(), t) == "less"
}

func (d *DefaultTraits) IsEqualToComparator(t *types.Type) bool {
	return stdTypeName(d.self(), t) == "equal_to"
}

func (d *DefaultTraits) IsHashFunctor(t *types.Type) bool {
	return stdTypeName(d.self(), t) == "hash"
}

// ConfigTraits extends DefaultTraits with containers listed by their
// qualified names, such as `boost::container::vector`. The containers must
// take their arguments in the same order as the standard ones.
type ConfigTraits struct {
	DefaultTraits `yaml:"-"`

	StringLike       []string `yaml:"string_like"`
	VectorLike       []string `yaml:"vector_like"`
	OrderedSetLike   []string `yaml:"ordered_set_like"`
	OrderedMapLike   []string `yaml:"ordered_map_like"`
	UnorderedSetLike []string `yaml:"unordered_set_like"`
	UnorderedMapLike []string `yaml:"unordered_map_like"`
	// Allocators are removed like `std::allocator`.
	Allocators []string `yaml:"allocators"`
}

// NewConfigTraits returns c wired so that DefaultTraits dispatches to it.
func NewConfigTraits(c ConfigTraits) *ConfigTraits {
	ret := c
	ret.Derived = &ret
	return &ret
}

// matchPrefix returns the index of the last word of pattern if name starts
// with it. Template arguments are only allowed on that last part.
func matchPrefix(name *types.QualifiedName, pattern string) (int, bool) {
	words := strings.Split(strings.TrimPrefix(pattern, "::"), "::")
	if len(words) > len(name.Parts) {
		return 0, false
	}
	for i, w := range words {
		got := name.Parts[i].AsSingleWord()
		if i == len(words)-1 {
			got = name.Parts[i].AsSingleWordIgnoringTemplateArgs()
		}
		if got != strings.TrimSpace(w) {
			return 0, false
		}
	}
	return len(words) - 1, true
}

func matchAny(name *types.QualifiedName, patterns []string) (int, bool) {
	for _, p := range patterns {
		if i, ok := matchPrefix(name, p); ok {
			return i, true
		}
	}
	return 0, false
}

func (c *ConfigTraits) IsStringLike(name *types.QualifiedName) (int, bool) {
	if i, ok := matchAny(name, c.StringLike); ok {
		return i, true
	}
	return c.DefaultTraits.IsStringLike(name)
}

func (c *ConfigTraits) IsVectorLike(name *types.QualifiedName) (int, bool) {
	if i, ok := matchAny(name, c.VectorLike); ok {
		return i, true
	}
	return c.DefaultTraits.IsVectorLike(name)
}

func (c *ConfigTraits) IsOrderedSetLike(name *types.QualifiedName) (int, bool) {
	if i, ok := matchAny(name, c.OrderedSetLike); ok {
		return i, true
	}
	return c.DefaultTraits.IsOrderedSetLike(name)
}

func (c *ConfigTraits) IsOrderedMapLike(name *types.QualifiedName) (int, bool) {
	if i, ok := matchAny(name, c.OrderedMapLike); ok {
		return i, true
	}
	return c.DefaultTraits.IsOrderedMapLike(name)
}

func (c *ConfigTraits) IsUnorderedSetLike(name *types.QualifiedName) (int, bool) {
	if i, ok := matchAny(name, c.UnorderedSetLike); ok {
		return i, true
	}
	return c.DefaultTraits.IsUnorderedSetLike(name)
}

func (c *ConfigTraits) IsUnorderedMapLike(name *types.QualifiedName) (int, bool) {
	if i, ok := matchAny(name, c.UnorderedMapLike); ok {
		return i, true
	}
	return c.DefaultTraits.IsUnorderedMapLike(name)
}

func (c *ConfigTraits) IsAllocator(t *types.Type) bool {
	if t != nil && t.IsOnlyQualifiedName() {
		if i, ok := matchAny(&t.SimpleType.Name, c.Allocators); ok && i == len(t.SimpleType.Name.Parts)-1 {
			return true
		}
	}
	return c.DefaultTraits.IsAllocator(t)
}
