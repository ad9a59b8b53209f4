package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appsworld/go-cppdecl/pkg/debuginfo"
	"github.com/appsworld/go-cppdecl/pkg/simplify"
)

func testProcessor(t *testing.T, cfg *Config) *processor {
	t.Helper()
	if cfg == nil {
		cfg = defaultConfig()
	}
	p, err := newProcessor(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return p
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "cppdecl.yaml", `
simplify: [common, stdlib_libcpp]
traits:
  vector_like: [boost::container::vector]
cache_size: 16
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.CacheSize)

	flags, err := cfg.Flags()
	require.NoError(t, err)
	assert.Equal(t, simplify.Common|simplify.StdlibLibcpp, flags)

	require.NotNil(t, cfg.Traits)
	assert.Equal(t, []string{"boost::container::vector"}, cfg.Traits.VectorLike)
	assert.NotNil(t, cfg.SimplifyTraits())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultCacheSize, cfg.CacheSize)
	assert.Nil(t, cfg.SimplifyTraits())

	flags, err := cfg.Flags()
	require.NoError(t, err)
	assert.Equal(t, simplify.All, flags)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(writeFile(t, "bad.yaml", "simplify: [common, bogus]\n"))
	assert.ErrorContains(t, err, "bogus")

	_, err = loadConfig(writeFile(t, "broken.yaml", "simplify: [\n"))
	assert.Error(t, err)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestProcessCaches(t *testing.T) {
	p := testProcessor(t, nil)
	a := p.process("std::vector<int, std::allocator<int>> v")
	b := p.process("std::vector<int, std::allocator<int>> v")
	assert.Same(t, a, b)
	assert.Equal(t, "std::vector<int> v", a.Simplified)
	assert.True(t, a.changed())
}

func TestProcessErrors(t *testing.T) {
	p := testProcessor(t, nil)

	r := p.process("int int")
	assert.False(t, r.ok())
	require.NotNil(t, r.Offset)
	assert.Equal(t, 4, *r.Offset)
	assert.False(t, r.junk)

	r = p.process("int x; junk")
	assert.True(t, r.junk)
	require.NotNil(t, r.Offset)
	assert.Equal(t, 5, *r.Offset)
	assert.Equal(t, "int x", r.decl.ToCode(0))
}

func TestPrinterResult(t *testing.T) {
	p := testProcessor(t, nil)

	var buf bytes.Buffer
	pr := &printer{w: &buf, mode: modeCode}
	pr.result(p.process("std::vector<int, std::allocator<int>> v"))
	assert.Equal(t, "--- Parsed to:\nstd::vector<int, std::allocator<int>> v\n--- Simplifies to:\nstd::vector<int> v\n", buf.String())

	buf.Reset()
	pr.result(p.process("int x"))
	assert.Equal(t, "--- Parsed to:\nint x\n", buf.String())

	buf.Reset()
	pr.result(p.process("int int"))
	assert.Equal(t, "int int\n    ^\nParse error: "+p.process("int int").Error+"\n", buf.String())

	buf.Reset()
	pr.result(p.process("int x; junk"))
	assert.Equal(t, "int x; junk\n     ^\nUnparsed junk at the end of input.\n--- Parsed to:\nint x\n", buf.String())
}

func TestPrinterDiff(t *testing.T) {
	pr := &printer{}
	assert.Equal(t, "std::vector<int[-, std::allocator<int>-]>", pr.diffText("std::vector<int, std::allocator<int>>", "std::vector<int>"))
}

func TestCheckModeAndColor(t *testing.T) {
	for _, m := range []string{modePretty, modeDebug, modeCode, modeTree} {
		assert.NoError(t, checkMode(m))
	}
	assert.Error(t, checkMode("xml"))

	on, err := useColor("always", os.Stdout)
	require.NoError(t, err)
	assert.True(t, on)
	on, err = useColor("never", os.Stdout)
	require.NoError(t, err)
	assert.False(t, on)
	_, err = useColor("sometimes", os.Stdout)
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	p := testProcessor(t, nil)
	input := `# comment
std::set<int, std::less<int>, std::allocator<int>> s

int x
int int
`
	var buf bytes.Buffer
	st, err := batch(&buf, strings.NewReader(input), p, false)
	require.NoError(t, err)
	assert.Equal(t, batchStats{total: 3, simplified: 1, failed: 1}, st)

	out := buf.String()
	assert.Contains(t, out, "std::set<int, std::less<int>, std::allocator<int>> s\n  -> std::set<int> s\n")
	assert.Contains(t, out, "int x\n")
	assert.Contains(t, out, "int int\n  error at offset 4: ")
	assert.True(t, strings.HasSuffix(out, "3 declarations, 1 simplified, 1 failed\n"))
}

func TestBatchJSON(t *testing.T) {
	p := testProcessor(t, nil)
	var buf bytes.Buffer
	_, err := batch(&buf, strings.NewReader("std::vector<int, std::allocator<int>> v\nint int\n"), p, true)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "std::vector<int> v", first["simplified"])
	assert.NotContains(t, first, "error")
	assert.Equal(t, float64(4), second["offset"])
	assert.NotEmpty(t, second["error"])
}

func TestRepl(t *testing.T) {
	p := testProcessor(t, nil)
	var buf bytes.Buffer
	pr := &printer{w: &buf, mode: modeCode}
	require.NoError(t, repl(strings.NewReader("int *p\n"), pr, p))
	assert.Equal(t, "\n--- Declaration to parse:\n--- Parsed to:\nint *p\n\n--- Declaration to parse:\n", buf.String())
}

func TestAppParse(t *testing.T) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	err := app.Run([]string{"cppdecl", "parse", "--mode", "code", "--color", "never", "--simplify", "none", "std::vector<int, std::allocator<int>> v"})
	require.NoError(t, err)
	assert.Equal(t, "--- Parsed to:\nstd::vector<int, std::allocator<int>> v\n", buf.String())
}

func TestAppBatchFile(t *testing.T) {
	path := writeFile(t, "decls.txt", "std::map<int, float, std::less<int>, std::allocator<std::pair<const int, float>>> m\n")
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	require.NoError(t, app.Run([]string{"cppdecl", "batch", path}))
	assert.Contains(t, buf.String(), "  -> std::map<int, float> m\n")
}

func TestMergeTypeNames(t *testing.T) {
	p := testProcessor(t, nil)
	names := []debuginfo.TypeName{
		{Name: "int", Count: 3},
		{Name: "std::__cxx11::basic_string<char, std::char_traits<char>, std::allocator<char> >", Count: 2},
		{Name: "std::string", Count: 1},
		{Name: "{lambda(int)#1}", Count: 1},
	}
	entries := mergeTypeNames(names, p)
	require.Len(t, entries, 2)

	assert.Equal(t, "int", entries[0].Name)
	assert.Equal(t, 3, entries[0].Count)
	assert.Empty(t, entries[0].Spelling)

	assert.Equal(t, "std::string", entries[1].Name)
	assert.Equal(t, 3, entries[1].Count)
	assert.Equal(t, []string{names[1].Name}, entries[1].Spelling)

	var buf bytes.Buffer
	require.NoError(t, writeDwarfReport(&buf, entries, false, false))
	assert.Equal(t, "     3  int\n     3  std::string\n2 distinct types, 0 failed to parse\n", buf.String())
}
