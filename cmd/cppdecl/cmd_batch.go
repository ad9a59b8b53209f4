package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "simplify",
			Aliases: []string{"s"},
			Usage:   "Comma-separated simplification flags or presets, overriding the config",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print one JSON object per line",
		},
	}
}

// CmdBatch parses a file with one declaration per line.
var CmdBatch = cli.Command{
	Name:        "batch",
	Usage:       "Parse and simplify every line of a file",
	Description: "Empty lines and lines starting with # are skipped.",
	ArgsUsage:   "FILE",
	Flags:       reportFlags(),
	Action:      runBatch,
}

func runBatch(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowSubcommandHelp(ctx)
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	st, err := batchFile(ctx.App.Writer, ctx.Args().First(), e.proc, ctx.Bool("json"))
	if err != nil {
		return err
	}
	if st.failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

type batchStats struct {
	total, simplified, failed int
}

func (s batchStats) String() string {
	return fmt.Sprintf("%d declarations, %d simplified, %d failed", s.total, s.simplified, s.failed)
}

func batchFile(w io.Writer, path string, proc *processor, asJSON bool) (batchStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return batchStats{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	st, err := batch(w, f, proc, asJSON)
	if err != nil {
		return st, errors.Wrapf(err, "read %s", path)
	}
	return st, nil
}

func batch(w io.Writer, r io.Reader, proc *processor, asJSON bool) (batchStats, error) {
	var st batchStats
	enc := json.NewEncoder(w)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res := proc.process(line)
		st.total++
		switch {
		case !res.ok():
			st.failed++
		case res.changed():
			st.simplified++
		}

		if asJSON {
			if err := enc.Encode(res); err != nil {
				return st, err
			}
			continue
		}
		writeReportLine(w, res)
	}
	if err := sc.Err(); err != nil {
		return st, err
	}
	if !asJSON {
		fmt.Fprintln(w, st)
	}
	return st, nil
}

func writeReportLine(w io.Writer, r *result) {
	switch {
	case !r.ok() && r.Offset != nil:
		fmt.Fprintf(w, "%s\n  error at offset %d: %s\n", r.Input, *r.Offset, r.Error)
	case !r.ok():
		fmt.Fprintf(w, "%s\n  error: %s\n", r.Input, r.Error)
	case r.changed():
		fmt.Fprintf(w, "%s\n  -> %s\n", r.Input, r.Simplified)
	default:
		fmt.Fprintln(w, r.Input)
	}
}
