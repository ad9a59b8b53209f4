package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
)

// CmdParse parses the declarations given as arguments.
var CmdParse = cli.Command{
	Name:      "parse",
	Usage:     "Parse and simplify declarations given as arguments",
	ArgsUsage: "DECL...",
	Flags:     outputFlags(),
	Action:    runParse,
}

// CmdRepl reads declarations from stdin until EOF.
var CmdRepl = cli.Command{
	Name:   "repl",
	Usage:  "Parse declarations read line by line from stdin",
	Flags:  outputFlags(),
	Action: runRepl,
}

func runParse(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.ShowSubcommandHelp(ctx)
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	p, err := newPrinter(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for i, input := range ctx.Args().Slice() {
		if ctx.NArg() > 1 {
			p.printf("\n--- %d. Declaration to parse:\n", i+1)
		}
		r := e.proc.process(input)
		p.result(r)
		if !r.ok() {
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d declarations failed to parse", failed, ctx.NArg()), 1)
	}
	return nil
}

func runRepl(ctx *cli.Context) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	p, err := newPrinter(ctx)
	if err != nil {
		return err
	}
	return repl(ctx.App.Reader, p, e.proc)
}

func repl(in io.Reader, p *printer, proc *processor) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		p.printf("\n--- Declaration to parse:\n")
		if !sc.Scan() {
			return sc.Err()
		}
		p.result(proc.process(sc.Text()))
	}
}
