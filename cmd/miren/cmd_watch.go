package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Reparse Miren files in a directory whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0])
		},
	}
}

func runWatch(dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}

	log := commonlog.GetLogger("miren.watch")
	log.Infof("watching %s", dir)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(ev.Name) != ".mn" {
				continue
			}
			out, src, err := parseFile(ev.Name)
			if err != nil {
				log.Errorf("%s", err.Error())
				continue
			}
			reportDiagnostics(ev.Name, src, out)
			if n := len(out.Errors); n > 0 {
				log.Infof("%s: %d error(s)", ev.Name, n)
			} else {
				log.Infof("%s: ok", ev.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Errorf("%s", err.Error())
		}
	}
}
