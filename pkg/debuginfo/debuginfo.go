// Package debuginfo extracts the qualified names of C++ types from the DWARF
// debug info of ELF and Mach-O binaries.
package debuginfo

import (
	"bytes"
	"compress/zlib"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/blacktop/go-dwarf"
	"github.com/blacktop/go-macho"
	mtypes "github.com/blacktop/go-macho/types"
	"github.com/pkg/errors"
)

// ErrNoDebugInfo is returned for binaries without a `.debug_info` section.
var ErrNoDebugInfo = errors.New("no DWARF debug info")

// maxCompressionRatio bounds the size claimed by a `ZLIB` section header.
// Deflate cannot expand input by more than about 1032:1.
const maxCompressionRatio = 1032

// section is a named blob of one of the DWARF sections, named without the
// `.debug_` or `__debug_` prefix.
type section struct {
	name string
	data func() ([]byte, error)
}

// Open reads the DWARF data of the ELF or Mach-O file at path.
func Open(path string) (*dwarf.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	d, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return d, nil
}

// Load detects the object format from its magic number.
func Load(r io.ReaderAt) (*dwarf.Data, error) {
	var magic [4]byte
	if _, err := r.ReadAt(magic[:], 0); err != nil {
		return nil, errors.Wrap(err, "read magic")
	}

	switch {
	case string(magic[:]) == elf.ELFMAG:
		f, err := elf.NewFile(r)
		if err != nil {
			return nil, errors.Wrap(err, "parse ELF")
		}
		var sections []section
		for _, s := range f.Sections {
			if name := dwarfSuffix(s.Name); name != "" {
				sections = append(sections, section{name: name, data: s.Data})
			}
		}
		return newData(sections)
	case isMachO(magic):
		f, err := macho.NewFile(r)
		if err != nil {
			return nil, errors.Wrap(err, "parse Mach-O")
		}
		hasInfo := false
		for _, s := range f.Sections {
			hasInfo = hasInfo || dwarfSuffix(s.Name) == "info"
		}
		if !hasInfo {
			return nil, ErrNoDebugInfo
		}
		return machoDWARF(f)
	default:
		return nil, errors.Errorf("unknown object format (magic % x)", magic)
	}
}

// machoDWARF turns a panic in the Mach-O DWARF reader, which trusts the
// sizes in compressed section headers, into an error.
func machoDWARF(f *macho.File) (d *dwarf.Data, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, errors.Errorf("corrupt Mach-O debug info: %v", r)
		}
	}()
	d, err = f.DWARF()
	if err != nil {
		return nil, errors.Wrap(err, "parse DWARF")
	}
	return d, nil
}

func isMachO(magic [4]byte) bool {
	for _, m := range []mtypes.Magic{mtypes.Magic32, mtypes.Magic64} {
		if binary.LittleEndian.Uint32(magic[:]) == uint32(m) || binary.BigEndian.Uint32(magic[:]) == uint32(m) {
			return true
		}
	}
	return false
}

func dwarfSuffix(name string) string {
	for _, prefix := range []string{".debug_", ".zdebug_", "__debug_", "__zdebug_"} {
		if strings.HasPrefix(name, prefix) {
			return name[len(prefix):]
		}
	}
	return ""
}

// sectionData returns the contents of a section, decompressing the
// `ZLIB`-prefixed format used by `.zdebug_` sections.
func sectionData(s section) ([]byte, error) {
	b, err := s.data()
	if err != nil {
		return nil, errors.Wrapf(err, "read section %s", s.name)
	}
	if len(b) >= 12 && string(b[:4]) == "ZLIB" {
		dlen := binary.BigEndian.Uint64(b[4:12])
		if dlen > uint64(len(b)-12)*maxCompressionRatio {
			return nil, errors.Errorf("section %s: compressed header claims %d bytes from %d", s.name, dlen, len(b)-12)
		}
		dbuf := make([]byte, dlen)
		r, err := zlib.NewReader(bytes.NewBuffer(b[12:]))
		if err != nil {
			return nil, errors.Wrapf(err, "decompress section %s", s.name)
		}
		if _, err := io.ReadFull(r, dbuf); err != nil {
			return nil, errors.Wrapf(err, "decompress section %s", s.name)
		}
		if err := r.Close(); err != nil {
			return nil, err
		}
		b = dbuf
	}
	return b, nil
}

func newData(sections []section) (*dwarf.Data, error) {
	// These are the only sections the reader uses.
	dat := map[string][]byte{"abbrev": nil, "info": nil, "str": nil, "line": nil, "ranges": nil}
	for _, s := range sections {
		if _, ok := dat[s.name]; !ok {
			continue
		}
		b, err := sectionData(s)
		if err != nil {
			return nil, err
		}
		dat[s.name] = b
	}
	if dat["info"] == nil {
		return nil, ErrNoDebugInfo
	}

	d, err := dwarf.New(dat["abbrev"], nil, nil, dat["info"], dat["line"], nil, dat["ranges"], dat["str"])
	if err != nil {
		return nil, errors.Wrap(err, "parse DWARF")
	}

	// DWARF 4 type units.
	for i, s := range sections {
		if s.name != "types" {
			continue
		}
		b, err := sectionData(s)
		if err != nil {
			return nil, err
		}
		if err := d.AddTypes(fmt.Sprintf("types-%d", i), b); err != nil {
			return nil, errors.Wrap(err, "parse DWARF type unit")
		}
	}
	return d, nil
}

// TypeName is a type found in the debug info, counted once per entry that
// spells it.
type TypeName struct {
	Name  string
	Tag   dwarf.Tag
	Count int
}

type scope struct {
	name string
	// hidden scopes are function bodies and anonymous namespaces, whose
	// types can't be named from outside.
	hidden bool
	// unit marks a compilation unit, which adds nothing to names.
	unit bool
}

// TypeNames walks every compilation unit and returns the named classes,
// structs, unions, enums, typedefs and base types, qualified with their
// enclosing namespaces and classes. The result is sorted by name.
func TypeNames(d *dwarf.Data) ([]TypeName, error) {
	seen := make(map[string]*TypeName)
	var stack []scope

	r := d.Reader()
	for {
		e, err := r.Next()
		if err != nil {
			return nil, errors.Wrap(err, "read DWARF entry")
		}
		if e == nil {
			break
		}
		if e.Tag == 0 {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		name, _ := e.Val(dwarf.AttrName).(string)
		next := scope{name: name, hidden: name == ""}
		switch e.Tag {
		case dwarf.TagCompileUnit, dwarf.TagPartialUnit, dwarf.TagTypeUnit:
			next = scope{unit: true}
		case dwarf.TagNamespace:
		case dwarf.TagClassType, dwarf.TagStructType, dwarf.TagUnionType,
			dwarf.TagEnumerationType, dwarf.TagTypedef, dwarf.TagBaseType:
			if q, ok := qualify(stack, name); ok {
				tn := seen[q]
				if tn == nil {
					tn = &TypeName{Name: q, Tag: e.Tag}
					seen[q] = tn
				}
				tn.Count++
			}
		default:
			next.hidden = true
		}
		if e.Children {
			stack = append(stack, next)
		}
	}

	names := make([]TypeName, 0, len(seen))
	for _, tn := range seen {
		names = append(names, *tn)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].Name < names[j].Name
	})
	return names, nil
}

// qualify joins the enclosing scopes with name. It fails for unnamed types
// and for types in scopes that can't be named.
func qualify(stack []scope, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	var parts []string
	for _, s := range stack {
		if s.hidden {
			return "", false
		}
		if !s.unit {
			parts = append(parts, s.name)
		}
	}
	return strings.Join(append(parts, name), "::"), true
}
