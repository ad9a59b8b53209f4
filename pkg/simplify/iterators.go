package simplify

import (
	"github.com/appsworld/go-cppdecl/types"
)

// normalizeIterator rewrites the internal iterator classes of libstdc++,
// libc++ and the MSVC STL as `Container<T>::iterator` or
// `Container<T>::const_iterator`. Each match checks the whole shape of the
// internal name, including that the element types it repeats agree.
func (s *Simplifier) normalizeIterator(name *types.QualifiedName) {
	// MSVC shapes are the most specific: libstdc++ has a `_List_iterator`
	// and a `_Deque_iterator` too, with different arguments.
	if s.flags&MsvcStlNormalizeIterators != 0 && s.msvcIterator(name) {
		s.log.Debug("normalized MSVC STL iterator", "name", name.ToCode(0))
		return
	}
	if s.flags&LibcppNormalizeIterators != 0 && s.libcppIterator(name) {
		s.log.Debug("normalized libc++ iterator", "name", name.ToCode(0))
		return
	}
	if s.flags&LibstdcxxNormalizeIterators != 0 && s.libstdcxxIterator(name) {
		s.log.Debug("normalized libstdc++ iterator", "name", name.ToCode(0))
	}
}

// iterator is a matched internal iterator. The first end parts of the name
// are replaced by `scope::container<args>::iterator`.
type iterator struct {
	end       int
	scope     []types.UnqualifiedName
	container string
	args      []types.Type
	isConst   bool
}

func (it *iterator) apply(name *types.QualifiedName) {
	part := types.UnqualifiedName{Var: types.Identifier(it.container)}
	if len(it.args) > 0 {
		part.TemplateArgs = &types.TemplateArgumentList{}
		for _, a := range it.args {
			part.TemplateArgs.Args = append(part.TemplateArgs.Args, types.TypeArg(a))
		}
	}
	iterWord := "iterator"
	if it.isConst {
		iterWord = "const_iterator"
	}

	parts := make([]types.UnqualifiedName, 0, len(it.scope)+2+len(name.Parts)-it.end)
	for i := range it.scope {
		parts = append(parts, it.scope[i].Clone())
	}
	parts = append(parts, part, types.UnqualifiedName{Var: types.Identifier(iterWord)})
	parts = append(parts, name.Parts[it.end:]...)
	name.Parts = parts
}

// replaceWith replaces the first end parts of the name with container's
// parts and an iterator part.
func replaceWith(name *types.QualifiedName, end int, container types.QualifiedName, isConst bool) {
	word := "iterator"
	if isConst {
		word = "const_iterator"
	}
	parts := append(container.Parts, types.UnqualifiedName{Var: types.Identifier(word)})
	name.Parts = append(parts, name.Parts[end:]...)
}

// internal finds a name part spelled as one of words directly in `std`, or in
// a version namespace in it. It returns the part's index and which word
// matched.
func (s *Simplifier) internal(name *types.QualifiedName, words ...string) (int, string, bool) {
	word, i, ok := s.traits.StdName(name)
	if !ok {
		return 0, "", false
	}
	for _, w := range words {
		if w == word {
			return i, word, true
		}
	}
	return 0, "", false
}

// typeArgs returns the template arguments of u if there are exactly n and
// all are types.
func typeArgs(u *types.UnqualifiedName, n int) []*types.Type {
	args := targs(u)
	if len(args) != n {
		return nil
	}
	ret := make([]*types.Type, n)
	for i := range args {
		if ret[i] = args[i].AsType(); ret[i] == nil {
			return nil
		}
	}
	return ret
}

// stdTemplate returns the type arguments of t if t is `std::word<...>` with
// n arguments, all types.
func (s *Simplifier) stdTemplate(t *types.Type, word string, n int) []*types.Type {
	if stdTypeName(s.traits, t) != word {
		return nil
	}
	return typeArgs(t.SimpleType.Name.Last(), n)
}

// unwrap follows single-argument std templates named by words, returning
// the innermost argument: unwrap(`A<B<T>>`, "A", "B") is T.
func (s *Simplifier) unwrap(t *types.Type, words ...string) *types.Type {
	for _, w := range words {
		args := s.stdTemplate(t, w, 1)
		if args == nil {
			return nil
		}
		t = args[0]
	}
	return t
}

// deref strips one pointer or reference level and the const under it. It
// reports whether that const was there.
func deref(t *types.Type) (types.Type, bool, bool) {
	switch m := t.Top().(type) {
	case *types.Pointer:
		if m.Quals != 0 {
			return types.Type{}, false, false
		}
	case *types.Reference:
		if m.Kind != types.RefLvalue {
			return types.Type{}, false, false
		}
	default:
		return types.Type{}, false, false
	}
	ret := t.Clone()
	ret.RemoveTopLevelModifier()
	isConst := ret.IsConst()
	ret.RemoveTopLevelQualifiers(types.Const)
	return ret, isConst, true
}

// pointee returns the type pointed to by an unqualified pointer.
func pointee(t *types.Type) *types.Type {
	if len(t.Modifiers) != 1 {
		return nil
	}
	if p, ok := t.Modifiers[0].(*types.Pointer); !ok || p.Quals != 0 {
		return nil
	}
	return &types.Type{SimpleType: t.SimpleType}
}

// constPair matches `std::pair<const K, V>` and returns K without the const.
func (s *Simplifier) constPair(t *types.Type) ([]types.Type, bool) {
	args := s.stdTemplate(t, "pair", 2)
	if args == nil || !args[0].IsConst() {
		return nil, false
	}
	key := args[0].Clone()
	key.RemoveTopLevelQualifiers(types.Const)
	return []types.Type{key, args[1].Clone()}, true
}

// constness matches a pair of mutable and const spellings.
func constness(word, mut, cnst string) (isConst, ok bool) {
	switch word {
	case mut:
		return false, true
	case cnst:
		return true, true
	}
	return false, false
}

// stringElement is the character type of a collapsed string typedef.
var stringElement = map[string]string{
	"string":    "char",
	"wstring":   "wchar_t",
	"u8string":  "char8_t",
	"u16string": "char16_t",
	"u32string": "char32_t",
}

// containerElement returns the element type of a vector or string type,
// including strings already rewritten as their typedefs.
func (s *Simplifier) containerElement(t *types.Type) (types.Type, bool) {
	if !t.IsOnlyQualifiedName() {
		return types.Type{}, false
	}
	word, i, ok := s.traits.StdName(&t.SimpleType.Name)
	if !ok || i != len(t.SimpleType.Name.Parts)-1 {
		return types.Type{}, false
	}
	last := t.SimpleType.Name.Last()
	if elem, ok := stringElement[word]; ok && last.TemplateArgs == nil {
		return types.NewType(types.NewSimpleType(elem)), true
	}
	if word != "vector" && word != "basic_string" {
		return types.Type{}, false
	}
	args := targs(last)
	if len(args) == 0 || args[0].AsType() == nil {
		return types.Type{}, false
	}
	return args[0].AsType().Clone(), true
}

func (s *Simplifier) libstdcxxIterator(name *types.QualifiedName) bool {
	// `__gnu_cxx::__normal_iterator<T *, std::vector<T>>`, also used by
	// std::basic_string.
	if len(name.Parts) >= 2 && name.Parts[0].AsSingleWord() == "__gnu_cxx" {
		if name.Parts[1].AsSingleWordIgnoringTemplateArgs() != "__normal_iterator" {
			return false
		}
		args := typeArgs(&name.Parts[1], 2)
		if args == nil {
			return false
		}
		if _, isPtr := args[0].Top().(*types.Pointer); !isPtr {
			return false
		}
		elem, isConst, ok := deref(args[0])
		if !ok {
			return false
		}
		want, ok := s.containerElement(args[1])
		if !ok || !want.Equal(&elem) {
			return false
		}
		replaceWith(name, 2, args[1].SimpleType.Name.Clone(), isConst)
		return true
	}

	i, word, ok := s.internal(name,
		"_Deque_iterator",
		"_Fwd_list_iterator", "_Fwd_list_const_iterator",
		"_List_iterator", "_List_const_iterator",
		"_Rb_tree_iterator", "_Rb_tree_const_iterator",
		"__detail")
	if !ok {
		return false
	}
	part := &name.Parts[i]
	it := iterator{end: i + 1, scope: name.Parts[:i]}

	switch word {
	case "_Deque_iterator":
		// `std::_Deque_iterator<T, T &, T *>`
		args := typeArgs(part, 3)
		if args == nil {
			return false
		}
		ref, refConst, ok1 := deref(args[1])
		ptr, ptrConst, ok2 := deref(args[2])
		if !ok1 || !ok2 || refConst != ptrConst || !ref.Equal(args[0]) || !ptr.Equal(args[0]) {
			return false
		}
		if _, isPtr := args[2].Top().(*types.Pointer); !isPtr {
			return false
		}
		it.container, it.args, it.isConst = "deque", []types.Type{args[0].Clone()}, ptrConst

	case "_Fwd_list_iterator", "_Fwd_list_const_iterator", "_List_iterator", "_List_const_iterator":
		args := typeArgs(part, 1)
		if args == nil {
			return false
		}
		it.container = "list"
		it.isConst = word == "_List_const_iterator"
		if word == "_Fwd_list_iterator" || word == "_Fwd_list_const_iterator" {
			it.container = "forward_list"
			it.isConst = word == "_Fwd_list_const_iterator"
		}
		it.args = []types.Type{args[0].Clone()}

	case "_Rb_tree_iterator", "_Rb_tree_const_iterator":
		args := typeArgs(part, 1)
		if args == nil {
			return false
		}
		it.isConst = word == "_Rb_tree_const_iterator"
		if !s.setOrMap(&it, args[0], "set", "map") {
			return false
		}

	case "__detail":
		// `std::__detail::_Node_iterator<T, constant_iterators, cache_hash>`
		if i+1 >= len(name.Parts) {
			return false
		}
		node := &name.Parts[i+1]
		isConst, ok := constness(node.AsSingleWordIgnoringTemplateArgs(), "_Node_iterator", "_Node_const_iterator")
		args := targs(node)
		if !ok || len(args) != 3 {
			return false
		}
		value := args[0].AsType()
		constant := args[1].AsPseudoExpr()
		cached := args[2].AsPseudoExpr()
		if value == nil || constant == nil || cached == nil || cached.AsSingleIdentifier() != "false" {
			return false
		}
		it.end, it.isConst = i+2, isConst
		switch constant.AsSingleIdentifier() {
		case "true":
			it.container, it.args = "unordered_set", []types.Type{value.Clone()}
		case "false":
			kv, ok := s.constPair(value)
			if !ok {
				return false
			}
			it.container, it.args = "unordered_map", kv
		default:
			return false
		}
	}
	it.apply(name)
	return true
}

// setOrMap fills it for a tree iterator over value: a map if value is a
// `std::pair<const K, V>`, otherwise a set. Set iterators are always const.
func (s *Simplifier) setOrMap(it *iterator, value *types.Type, set, mapName string) bool {
	if kv, ok := s.constPair(value); ok {
		it.container, it.args = mapName, kv
		return true
	}
	if !it.isConst {
		return false
	}
	it.container, it.args = set, []types.Type{value.Clone()}
	return true
}

func (s *Simplifier) libcppIterator(name *types.QualifiedName) bool {
	i, word, ok := s.internal(name,
		"__list_iterator", "__list_const_iterator",
		"__forward_list_iterator", "__forward_list_const_iterator",
		"__deque_iterator",
		"__tree_const_iterator",
		"__map_iterator", "__map_const_iterator",
		"__hash_const_iterator",
		"__hash_map_iterator", "__hash_map_const_iterator")
	if !ok {
		return false
	}
	part := &name.Parts[i]
	it := iterator{end: i + 1, scope: name.Parts[:i]}

	switch word {
	case "__list_iterator", "__list_const_iterator":
		// `std::__list_iterator<T, void *>`
		args := targs(part)
		if len(args) != 2 || args[0].AsType() == nil {
			return false
		}
		it.container, it.isConst = "list", word == "__list_const_iterator"
		it.args = []types.Type{args[0].AsType().Clone()}

	case "__forward_list_iterator", "__forward_list_const_iterator":
		// `std::__forward_list_iterator<std::__forward_list_node<T, void *> *>`
		args := typeArgs(part, 1)
		if args == nil {
			return false
		}
		elem := s.nodeValue(args[0], "__forward_list_node")
		if elem == nil {
			return false
		}
		it.container, it.isConst = "forward_list", word == "__forward_list_const_iterator"
		it.args = []types.Type{elem.Clone()}

	case "__deque_iterator":
		// `std::__deque_iterator<T, T *, T &, T **, long, 1024>`, the block
		// size is optional.
		args := targs(part)
		if len(args) < 5 || len(args) > 6 {
			return false
		}
		value, ptrArg := args[0].AsType(), args[1].AsType()
		if value == nil || ptrArg == nil {
			return false
		}
		if _, isPtr := ptrArg.Top().(*types.Pointer); !isPtr {
			return false
		}
		elem, isConst, ok := deref(ptrArg)
		if !ok || !elem.Equal(value) {
			return false
		}
		it.container, it.isConst = "deque", isConst
		it.args = []types.Type{value.Clone()}

	case "__tree_const_iterator":
		// `std::__tree_const_iterator<T, std::__tree_node<T, void *> *, long>`
		args := targs(part)
		if len(args) != 3 || args[0].AsType() == nil {
			return false
		}
		value := args[0].AsType()
		if stdTypeName(s.traits, value) == "__value_type" {
			// The inside of a map iterator.
			return false
		}
		it.container, it.isConst = "set", true
		it.args = []types.Type{value.Clone()}

	case "__map_iterator", "__map_const_iterator":
		// `std::__map_iterator<std::__tree_iterator<std::__value_type<K, V>,
		// std::__tree_node<...> *, long>>`
		it.isConst = word == "__map_const_iterator"
		tree := "__tree_iterator"
		if it.isConst {
			tree = "__tree_const_iterator"
		}
		args := typeArgs(part, 1)
		if args == nil || stdTypeName(s.traits, args[0]) != tree {
			return false
		}
		treeArgs := targs(args[0].SimpleType.Name.Last())
		if len(treeArgs) != 3 {
			return false
		}
		kv := s.stdTemplate(treeArgs[0].AsType(), "__value_type", 2)
		if kv == nil {
			return false
		}
		it.container = "map"
		it.args = []types.Type{kv[0].Clone(), kv[1].Clone()}

	case "__hash_const_iterator":
		// `std::__hash_const_iterator<std::__hash_node<T, void *> *>`
		args := typeArgs(part, 1)
		if args == nil {
			return false
		}
		elem := s.nodeValue(args[0], "__hash_node")
		if elem == nil || stdTypeName(s.traits, elem) == "__hash_value_type" {
			return false
		}
		it.container, it.isConst = "unordered_set", true
		it.args = []types.Type{elem.Clone()}

	case "__hash_map_iterator", "__hash_map_const_iterator":
		// `std::__hash_map_iterator<std::__hash_iterator<std::__hash_node<
		// std::__hash_value_type<K, V>, void *> *>>`
		it.isConst = word == "__hash_map_const_iterator"
		inner := "__hash_iterator"
		if it.isConst {
			inner = "__hash_const_iterator"
		}
		args := typeArgs(part, 1)
		if args == nil {
			return false
		}
		hashIter := s.stdTemplate(args[0], inner, 1)
		if hashIter == nil {
			return false
		}
		value := s.nodeValue(hashIter[0], "__hash_node")
		if value == nil {
			return false
		}
		kv := s.stdTemplate(value, "__hash_value_type", 2)
		if kv == nil {
			return false
		}
		it.container = "unordered_map"
		it.args = []types.Type{kv[0].Clone(), kv[1].Clone()}
	}
	it.apply(name)
	return true
}

// nodeValue matches `std::node<T, ...> *` and returns T.
func (s *Simplifier) nodeValue(t *types.Type, node string) *types.Type {
	p := pointee(t)
	if p == nil || stdTypeName(s.traits, p) != node {
		return nil
	}
	args := lastTargs(p)
	if len(args) == 0 {
		return nil
	}
	return args[0].AsType()
}

// msvcShapes maps the MSVC STL iterator classes to their containers. The
// element type is nested as `_Iter<_Val<_Types<T>>>`.
var msvcShapes = map[string]struct {
	container string
	isConst   bool
	val       string
	types     string
}{
	"_Vector_iterator":       {"vector", false, "_Vector_val", "_Simple_types"},
	"_Vector_const_iterator": {"vector", true, "_Vector_val", "_Simple_types"},
	"_String_iterator":       {"basic_string", false, "_String_val", "_Simple_types"},
	"_String_const_iterator": {"basic_string", true, "_String_val", "_Simple_types"},
	"_List_iterator":         {"list", false, "_List_val", "_List_simple_types"},
	"_List_const_iterator":   {"list", true, "_List_val", "_List_simple_types"},
	"_Flist_iterator":        {"forward_list", false, "_Flist_val", "_Flist_simple_types"},
	"_Flist_const_iterator":  {"forward_list", true, "_Flist_val", "_Flist_simple_types"},
	"_Deque_iterator":        {"deque", false, "_Deque_val", "_Deque_simple_types"},
	"_Deque_const_iterator":  {"deque", true, "_Deque_val", "_Deque_simple_types"},
	"_Tree_iterator":         {"set", false, "_Tree_val", "_Tree_simple_types"},
	"_Tree_const_iterator":   {"set", true, "_Tree_val", "_Tree_simple_types"},
}

func (s *Simplifier) msvcIterator(name *types.QualifiedName) bool {
	word, i, ok := s.traits.StdName(name)
	if !ok {
		return false
	}
	part := &name.Parts[i]
	it := iterator{end: i + 1, scope: name.Parts[:i]}

	if word == "_String_view_iterator" {
		// `std::_String_view_iterator<std::char_traits<T>>`
		args := typeArgs(part, 1)
		if args == nil {
			return false
		}
		elem := s.unwrap(args[0], "char_traits")
		if elem == nil {
			return false
		}
		it.container, it.isConst = "basic_string_view", true
		it.args = []types.Type{elem.Clone()}
		it.apply(name)
		return true
	}

	shape, ok := msvcShapes[word]
	if !ok {
		return false
	}
	args := typeArgs(part, 1)
	if args == nil {
		return false
	}
	elem := s.unwrap(args[0], shape.val, shape.types)
	if elem == nil {
		return false
	}
	it.isConst = shape.isConst
	if shape.container == "set" {
		if !s.setOrMap(&it, elem, "set", "map") {
			return false
		}
	} else {
		it.container = shape.container
		it.args = []types.Type{elem.Clone()}
	}
	it.apply(name)
	return true
}
