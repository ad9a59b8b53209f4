package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// CmdWatch reruns batch whenever the file changes.
var CmdWatch = cli.Command{
	Name:      "watch",
	Usage:     "Run batch on a file every time it is written",
	ArgsUsage: "FILE",
	Flags:     reportFlags(),
	Action:    runWatch,
}

func runWatch(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowSubcommandHelp(ctx)
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	c, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()

	path := ctx.Args().First()
	asJSON := ctx.Bool("json")
	return watch(c, path, e.log, func() {
		fmt.Fprintf(ctx.App.Writer, "--- %s\n", path)
		if _, err := batchFile(ctx.App.Writer, path, e.proc, asJSON); err != nil {
			e.log.Error("batch failed", "path", path, "error", err)
		}
	})
}

// watch calls run once, then after every write to path until ctx is done.
// The parent directory is watched so that editors replacing the file by
// rename are noticed.
func watch(ctx context.Context, path string, log *slog.Logger, run func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "watch %s", path)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watch %s", path)
	}

	run()
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("watched file changed", "event", event)
			run()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error", "path", path, "error", err)
		case <-ctx.Done():
			return nil
		}
	}
}
