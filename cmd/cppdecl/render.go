package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/appsworld/go-cppdecl/types"
)

// Output modes for a parsed declaration.
const (
	modePretty = "pretty"
	modeDebug  = "debug"
	modeCode   = "code"
	modeTree   = "tree"
)

func checkMode(mode string) error {
	switch mode {
	case modePretty, modeDebug, modeCode, modeTree:
		return nil
	}
	return errors.Errorf("unknown mode %q (want pretty, debug, code or tree)", mode)
}

// useColor resolves --color against the terminal and $NO_COLOR.
func useColor(setting string, f *os.File) (bool, error) {
	switch setting {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, errors.Errorf("unknown color setting %q (want auto, always or never)", setting)
}

type printer struct {
	w     io.Writer
	mode  string
	color bool
	diff  bool
}

// highlight colours C++ code for a 256-colour terminal. Errors from the
// highlighter fall back to the plain text.
func (p *printer) highlight(code string) string {
	if !p.color {
		return code
	}
	lexer := lexers.Get("cpp")
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)
	style := styles.Get("monokai")
	formatter := formatters.Get("terminal256")

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var sb strings.Builder
	if err := formatter.Format(&sb, style, it); err != nil {
		return code
	}
	return sb.String()
}

func (p *printer) render(d *types.MaybeAmbiguousDecl) string {
	switch p.mode {
	case modeDebug:
		return d.ToString(types.Debug)
	case modeCode:
		return p.highlight(d.ToCode(0))
	case modeTree:
		var sb strings.Builder
		types.PrintTree(&sb, d)
		return strings.TrimSuffix(sb.String(), "\n")
	}
	return d.ToString(types.Pretty)
}

// diffText marks removed text as [-x-] and inserted text as {+x+}, or uses
// terminal colours.
func (p *printer) diffText(from, to string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if p.color {
		return dmp.DiffPrettyText(diffs)
	}
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// caret points at the offset of an error in the input line above it.
func caret(offset int) string {
	return strings.Repeat(" ", offset) + "^"
}

// result prints the report for one input: errors with a caret line, then
// the parsed tree and, if it changed, the simplified one.
func (p *printer) result(r *result) {
	if r.Offset != nil {
		p.printf("%s\n%s\n", r.Input, caret(*r.Offset))
	}
	switch {
	case r.junk:
		p.printf("Unparsed junk at the end of input.\n")
	case !r.ok():
		p.printf("Parse error: %s\n", r.Error)
		return
	}

	p.printf("--- Parsed to:\n%s\n", p.render(&r.decl))
	if !r.changed() {
		return
	}
	p.printf("--- Simplifies to:\n%s\n", p.highlight(r.Simplified))
	if p.diff {
		p.printf("--- Diff:\n%s\n", p.diffText(r.Parsed, r.Simplified))
	}
	if p.mode != modeCode {
		p.printf("--- The simplified version parses to:\n%s\n", p.render(&r.simplified))
	}
}
