// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/ostafen/ftype/internal/report"
	"github.com/ostafen/ftype/pkg/identify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func DefineWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Identify files as they are created or written",
		Long: `The 'watch' command monitors a directory tree and prints a record for every file that is
created or written below it, until interrupted. New subdirectories are watched as they appear.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunWatch,
	}

	defineClassifierFlags(cmd.Flags())
	return cmd
}

func RunWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)

	root := args[0]
	fi, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return &identify.NotFoundError{Path: root}
	}
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	c, err := newClassifier(cfg, log, nil)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := watchTree(w, root); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithField("root", root).Info("watching for changes")

	out := cmd.OutOrStdout()
	return watch(ctx, w, c, log, func(r identify.Record) {
		fmt.Fprintln(out, report.Line(r))
	})
}

// watchTree adds root and every directory below it to w.
func watchTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

// watch classifies the targets of create and write events until ctx is done
// or the watcher is closed. Entries that vanish before they are read are
// skipped.
func watch(ctx context.Context, w *fsnotify.Watcher, c *identify.Classifier, log logrus.FieldLogger, emit func(identify.Record)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}

			rec, err := c.ClassifyPath(ev.Name)
			if err != nil {
				log.WithFields(logrus.Fields{
					"path": ev.Name,
					"err":  err,
				}).Debug("skipping event")
				continue
			}

			if rec.IsDir && ev.Has(fsnotify.Create) {
				if err := watchTree(w, ev.Name); err != nil {
					log.WithField("path", ev.Name).WithError(err).Warn("cannot watch directory")
				}
			}
			emit(rec)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		}
	}
}
