// Command cppdecl parses and simplifies C++ declarations from the command
// line, files and debug info.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cppdecl: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "cppdecl",
		Usage:   "Parse and simplify C++ declarations",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{"CPPDECL_CONFIG"},
				Usage:   "YAML config with simplify flags, container traits and cache size",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "Log level: debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			&CmdParse,
			&CmdRepl,
			&CmdBatch,
			&CmdDwarf,
			&CmdWatch,
		},
	}
}

// outputFlags are shared by the commands that print declarations.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "simplify",
			Aliases: []string{"s"},
			Usage:   "Comma-separated simplification flags or presets, overriding the config",
		},
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Value:   modePretty,
			Usage:   "Output mode: pretty, debug, code or tree",
		},
		&cli.BoolFlag{
			Name:  "diff",
			Usage: "Show a character diff between the parsed and the simplified code",
		},
		&cli.StringFlag{
			Name:  "color",
			Value: "auto",
			Usage: "Highlight code: auto, always or never",
		},
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Errorf("unknown log level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}

// env is what every command needs: the config, a logger and a processor.
type env struct {
	cfg  *Config
	log  *slog.Logger
	proc *processor
}

func newEnv(ctx *cli.Context) (*env, error) {
	log, err := newLogger(ctx.String("log-level"))
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	if ctx.IsSet("simplify") {
		cfg.Simplify = strings.Split(ctx.String("simplify"), ",")
	}
	proc, err := newProcessor(cfg, log)
	if err != nil {
		return nil, err
	}
	log.Debug("configured", "simplify", proc.flags.String(), "cache_size", cfg.CacheSize)
	return &env{cfg: cfg, log: log, proc: proc}, nil
}

// newPrinter reads outputFlags.
func newPrinter(ctx *cli.Context) (*printer, error) {
	mode := ctx.String("mode")
	if mode == "" {
		mode = modePretty
	}
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	color, err := useColor(ctx.String("color"), os.Stdout)
	if err != nil {
		return nil, err
	}
	return &printer{
		w:     ctx.App.Writer,
		mode:  mode,
		color: color,
		diff:  ctx.Bool("diff"),
	}, nil
}
