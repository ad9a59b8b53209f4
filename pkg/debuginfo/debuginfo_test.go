package debuginfo

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDwarfSuffix(t *testing.T) {
	tests := map[string]string{
		".debug_info":    "info",
		".zdebug_abbrev": "abbrev",
		"__debug_str":    "str",
		"__zdebug_line":  "line",
		".text":          "",
		"__apple_names":  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, dwarfSuffix(in), in)
	}
}

func TestSectionDataZlib(t *testing.T) {
	payload := []byte("compressed debug info")

	var buf bytes.Buffer
	buf.WriteString("ZLIB")
	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(len(payload)))
	buf.Write(size[:])
	w := zlib.NewWriter(&buf)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := sectionData(section{name: "info", data: func() ([]byte, error) { return buf.Bytes(), nil }})
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	plain, err := sectionData(section{name: "info", data: func() ([]byte, error) { return payload, nil }})
	require.NoError(t, err)
	assert.Equal(t, payload, plain)
}

func TestSectionDataRejectsOversizedHeader(t *testing.T) {
	b := append([]byte("ZLIB"), 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x78, 0x9c)
	_, err := sectionData(section{name: "info", data: func() ([]byte, error) { return b, nil }})
	assert.ErrorContains(t, err, "compressed header claims")
}

func TestIsMachO(t *testing.T) {
	assert.True(t, isMachO([4]byte{0xcf, 0xfa, 0xed, 0xfe}))
	assert.True(t, isMachO([4]byte{0xfe, 0xed, 0xfa, 0xce}))
	assert.False(t, isMachO([4]byte{0xca, 0xfe, 0xba, 0xbe}))
	assert.False(t, isMachO([4]byte{0x7f, 'E', 'L', 'F'}))
}

func TestQualify(t *testing.T) {
	unit := scope{unit: true}
	tests := []struct {
		stack []scope
		name  string
		want  string
		ok    bool
	}{
		{[]scope{unit}, "int", "int", true},
		{[]scope{unit, {name: "std"}, {name: "vector<int>"}}, "iterator", "std::vector<int>::iterator", true},
		{[]scope{unit, {name: "ns"}, {hidden: true}}, "Local", "", false},
		{[]scope{unit}, "", "", false},
	}
	for _, tt := range tests {
		got, ok := qualify(tt.stack, tt.name)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("not an object file")))
	assert.Error(t, err)
}

// The test binary itself normally carries DWARF.
func TestTypeNamesOfTestBinary(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	d, err := Open(exe)
	if err != nil {
		t.Skipf("no usable debug info in %s: %v", exe, err)
	}
	names, err := TypeNames(d)
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1].Name, names[i].Name)
	}
}
