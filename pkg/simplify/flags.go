package simplify

import (
	"fmt"
	"strings"
)

// Flags selects the rewrite rules. Rules for a compiler or standard library
// do nothing to names produced by a different one.
type Flags uint32

const (
	// MsvcRemovePtr32Ptr64 drops `__ptr32` and `__ptr64` from pointers.
	MsvcRemovePtr32Ptr64 Flags = 1 << iota

	// LibstdcxxRemoveCxx11Namespace rewrites `std::__cxx11::X` as `std::X`.
	LibstdcxxRemoveCxx11Namespace
	// LibcppRemove1Namespace rewrites `std::__1::X` as `std::X`.
	LibcppRemove1Namespace

	// Normalize iterators rewrite the internal iterator classes of each
	// standard library as `Container<T>::iterator` or `::const_iterator`.
	// Containers that share an iterator class can't always be told apart,
	// so this is best effort. It works best together with
	// CommonRemoveDefArgs and RemoveStdVersionNamespace.
	LibstdcxxNormalizeIterators
	LibcppNormalizeIterators
	MsvcStlNormalizeIterators

	// CommonRemoveTypePrefix drops `struct`, `class`, `union`, `enum` and
	// `typename` before type names.
	CommonRemoveTypePrefix
	// CommonRemoveRedundantSigned drops `signed`, except from `signed char`.
	CommonRemoveRedundantSigned

	// The default argument rules remove a template argument only when it is
	// the last one, so each needs the rules after it in this list to have
	// run first. They run in the right order when combined.
	CommonRemoveDefArgAllocator
	CommonRemoveDefArgCharTraits
	CommonRemoveDefArgComparator
	CommonRemoveDefArgHashFunctor

	// CommonRewriteTemplateSpecializationsAsTypedefs rewrites
	// `std::basic_string<char>` as `std::string` and so on. Default
	// arguments must already be gone for it to apply.
	CommonRewriteTemplateSpecializationsAsTypedefs

	// CNormalizeBool rewrites `_Bool` as `bool`.
	CNormalizeBool
)

const (
	RemoveStdVersionNamespace = LibstdcxxRemoveCxx11Namespace | LibcppRemove1Namespace

	NormalizeIterators = LibstdcxxNormalizeIterators | LibcppNormalizeIterators | MsvcStlNormalizeIterators

	CommonRemoveDefArgs = CommonRemoveDefArgAllocator | CommonRemoveDefArgCharTraits |
		CommonRemoveDefArgComparator | CommonRemoveDefArgHashFunctor

	// Common holds the rules that don't depend on the compiler.
	Common = CommonRemoveTypePrefix | CommonRemoveRedundantSigned | CommonRemoveDefArgs |
		CommonRewriteTemplateSpecializationsAsTypedefs

	C = CNormalizeBool

	// CompilerMsvcLike is for MSVC and clang-cl.
	CompilerMsvcLike = MsvcRemovePtr32Ptr64
	CompilerAll      = CompilerMsvcLike

	StdlibLibstdcxx = LibstdcxxRemoveCxx11Namespace | LibstdcxxNormalizeIterators
	StdlibLibcpp    = LibcppRemove1Namespace | LibcppNormalizeIterators
	StdlibMsvcStl   = MsvcStlNormalizeIterators
	StdlibAll       = StdlibLibstdcxx | StdlibLibcpp | StdlibMsvcStl

	// All is every rule. Use it for names that come from an unknown
	// toolchain.
	All = Common | C | CompilerAll | StdlibAll
)

var flagNames = []struct {
	name string
	flag Flags
}{
	{"msvc_remove_ptr32_ptr64", MsvcRemovePtr32Ptr64},
	{"libstdcxx_remove_cxx11_namespace_in_std", LibstdcxxRemoveCxx11Namespace},
	{"libcpp_remove_1_namespace_in_std", LibcppRemove1Namespace},
	{"libstdcxx_normalize_iterators", LibstdcxxNormalizeIterators},
	{"libcpp_normalize_iterators", LibcppNormalizeIterators},
	{"msvcstl_normalize_iterators", MsvcStlNormalizeIterators},
	{"common_remove_type_prefix", CommonRemoveTypePrefix},
	{"common_remove_redundant_signed", CommonRemoveRedundantSigned},
	{"common_remove_defarg_allocator", CommonRemoveDefArgAllocator},
	{"common_remove_defarg_char_traits", CommonRemoveDefArgCharTraits},
	{"common_remove_defarg_comparator", CommonRemoveDefArgComparator},
	{"common_remove_defarg_hash_functor", CommonRemoveDefArgHashFunctor},
	{"common_rewrite_template_specializations_as_typedefs", CommonRewriteTemplateSpecializationsAsTypedefs},
	{"c_normalize_bool", CNormalizeBool},
}

var presetNames = map[string]Flags{
	"none":                         0,
	"remove_std_version_namespace": RemoveStdVersionNamespace,
	"normalize_iterators":          NormalizeIterators,
	"common_remove_defargs":        CommonRemoveDefArgs,
	"common":                       Common,
	"c":                            C,
	"compiler_msvc_like":           CompilerMsvcLike,
	"compiler_all":                 CompilerAll,
	"stdlib_libstdcxx":             StdlibLibstdcxx,
	"stdlib_libcpp":                StdlibLibcpp,
	"stdlib_msvcstl":               StdlibMsvcStl,
	"stdlib_all":                   StdlibAll,
	"all":                          All,
}

// ParseFlags parses a comma separated list of rule and preset names, for
// example "common,stdlib_libcpp". An empty string is no rules.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for _, word := range strings.Split(s, ",") {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		bit, ok := FlagByName(word)
		if !ok {
			return 0, fmt.Errorf("unknown simplification flag %q", word)
		}
		f |= bit
	}
	return f, nil
}

// FlagByName looks up a single rule or preset.
func FlagByName(name string) (Flags, bool) {
	if f, ok := presetNames[name]; ok {
		return f, true
	}
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, true
		}
	}
	return 0, false
}

// String lists the individual rules, so that ParseFlags(f.String()) == f.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
			f &^= fn.flag
		}
	}
	if f != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(f)))
	}
	return strings.Join(names, ",")
}
