package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/appsworld/go-cppdecl/pkg/debuginfo"
	"github.com/appsworld/go-cppdecl/types"
)

// CmdDwarf reports the C++ type names in a binary's debug info.
var CmdDwarf = cli.Command{
	Name:        "dwarf",
	Usage:       "Parse and simplify every C++ type name in the DWARF info of a binary",
	Description: "Names that simplify to the same spelling are merged. Unnamed types and lambdas are skipped.",
	ArgsUsage:   "BINARY",
	Flags: append(reportFlags(), &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "List the original spellings of every merged name",
	}),
	Action: runDwarf,
}

// dwarfEntry is one simplified spelling and the names that produce it.
type dwarfEntry struct {
	Name     string   `json:"name"`
	Count    int      `json:"count"`
	Spelling []string `json:"spellings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func runDwarf(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowSubcommandHelp(ctx)
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	d, err := debuginfo.Open(ctx.Args().First())
	if err != nil {
		return err
	}
	names, err := debuginfo.TypeNames(d)
	if err != nil {
		return err
	}
	e.log.Info("read debug info", "types", len(names))

	entries := mergeTypeNames(names, e.proc)
	return writeDwarfReport(ctx.App.Writer, entries, ctx.Bool("json"), ctx.Bool("verbose"))
}

func mergeTypeNames(names []debuginfo.TypeName, proc *processor) []*dwarfEntry {
	byName := make(map[string]*dwarfEntry)
	for _, tn := range names {
		if types.ContainsUnnamedTypes(tn.Name) {
			continue
		}
		r := proc.process(tn.Name)
		key := r.Simplified
		if !r.ok() {
			key = tn.Name
		}
		ent := byName[key]
		if ent == nil {
			ent = &dwarfEntry{Name: key, Error: r.Error}
			byName[key] = ent
		}
		ent.Count += tn.Count
		if tn.Name != key {
			ent.Spelling = append(ent.Spelling, tn.Name)
		}
	}

	entries := make([]*dwarfEntry, 0, len(byName))
	for _, ent := range byName {
		sort.Strings(ent.Spelling)
		entries = append(entries, ent)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

func writeDwarfReport(w io.Writer, entries []*dwarfEntry, asJSON, verbose bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		for _, ent := range entries {
			if err := enc.Encode(ent); err != nil {
				return err
			}
		}
		return nil
	}
	failed := 0
	for _, ent := range entries {
		fmt.Fprintf(w, "%6d  %s\n", ent.Count, ent.Name)
		if ent.Error != "" {
			failed++
			fmt.Fprintf(w, "        error: %s\n", ent.Error)
		}
		if verbose {
			for _, s := range ent.Spelling {
				fmt.Fprintf(w, "        from %s\n", s)
			}
		}
	}
	fmt.Fprintf(w, "%d distinct types, %d failed to parse\n", len(entries), failed)
	return nil
}
