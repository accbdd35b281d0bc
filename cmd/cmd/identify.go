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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ostafen/ftype/internal/config"
	"github.com/ostafen/ftype/internal/report"
	"github.com/ostafen/ftype/pkg/checksum"
	"github.com/ostafen/ftype/pkg/identify"
	"github.com/ostafen/ftype/pkg/pbar"
	"github.com/ostafen/ftype/pkg/util/format"
	osutil "github.com/ostafen/ftype/pkg/util/os"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func DefineIdentifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify <path>...",
		Short: "Identify the type of files and directories",
		Long: `The 'identify' command classifies each path by its content. Directories are reported as such,
and with --recursive they are expanded into every entry below them.

By default the first missing or unreadable path aborts the run without output. With --keep-going
every path is attempted, the records of the readable ones are printed and the failures are
reported at the end.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunIdentify,
	}

	cmd.Flags().BoolP("recursive", "r", false, "expand directories into their whole tree")
	cmd.Flags().Bool("files", false, "only report files")
	cmd.Flags().Bool("dirs", false, "only report directories")
	cmd.Flags().BoolP("group", "g", false, "group the records by type")
	cmd.Flags().StringSlice("include", nil, "only report paths matching any of these glob patterns")
	cmd.Flags().StringSlice("exclude", nil, "skip paths matching any of these glob patterns")
	cmd.Flags().BoolP("keep-going", "k", false, "classify every path even if some of them fail")
	cmd.Flags().String("output-file", "", "write the report to this file instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("files", "dirs")

	defineClassifierFlags(cmd.Flags())
	cmd.Flags().StringP(config.KeyOutput, "o", config.Defaults().Output, "output format ("+strings.Join(config.Outputs, ", ")+")")
	cmd.Flags().Bool(config.KeyProgress, false, "print a progress counter on stderr")

	return cmd
}

// defineClassifierFlags adds the flags shared by the commands that read files.
func defineClassifierFlags(flags *pflag.FlagSet) {
	names := make([]string, 0, len(checksum.Algorithms()))
	for _, a := range checksum.Algorithms() {
		names = append(names, string(a))
	}

	d := config.Defaults()
	flags.String(config.KeyHash, d.Hash, "checksum of file contents (none, "+strings.Join(names, ", ")+")")
	flags.String(config.KeyMmapThreshold, d.MmapThreshold, "memory map files at least this large (off to disable)")
}

type identifyOptions struct {
	recursive  bool
	files      bool
	dirs       bool
	group      bool
	keepGoing  bool
	include    []string
	exclude    []string
	outputFile string
}

func parseIdentifyOptions(cmd *cobra.Command) identifyOptions {
	var opts identifyOptions
	opts.recursive, _ = cmd.Flags().GetBool("recursive")
	opts.files, _ = cmd.Flags().GetBool("files")
	opts.dirs, _ = cmd.Flags().GetBool("dirs")
	opts.group, _ = cmd.Flags().GetBool("group")
	opts.keepGoing, _ = cmd.Flags().GetBool("keep-going")
	opts.include, _ = cmd.Flags().GetStringSlice("include")
	opts.exclude, _ = cmd.Flags().GetStringSlice("exclude")
	opts.outputFile, _ = cmd.Flags().GetString("output-file")
	return opts
}

func RunIdentify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)
	opts := parseIdentifyOptions(cmd)

	var progress *pbar.ProgressState
	var onRecord func(identify.Record)
	if cfg.Progress {
		progress = pbar.NewProgressState(cmd.ErrOrStderr())
		onRecord = func(r identify.Record) {
			n, _ := r.SizeBytes()
			progress.Add(r.IsDir, int64(n))
		}
	}

	c, err := newClassifier(cfg, log, onRecord)
	if err != nil {
		return err
	}

	records, failures := classify(c, args, opts)
	if progress != nil {
		progress.Finish()
	}
	if failures != nil && !opts.keepGoing {
		return failures
	}

	records, err = selectRecords(records, opts)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, opts.outputFile)
	if err != nil {
		return err
	}

	algo, _ := cfg.Checksum()
	meta := report.Meta{
		RunID:       uuid.NewString(),
		CommandLine: strings.Join(os.Args, " "),
		Sources:     args,
		Hash:        algo,
	}

	if opts.group {
		err = report.WriteGroups(out, cfg.Output, identify.GroupByType(records), meta)
	} else {
		err = report.Write(out, cfg.Output, records, meta)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"run_id":  meta.RunID,
		"records": len(records),
	}).Debug("report written")

	return failures
}

func newClassifier(cfg config.Config, log logrus.FieldLogger, onRecord func(identify.Record)) (*identify.Classifier, error) {
	algo, err := cfg.Checksum()
	if err != nil {
		return nil, err
	}
	threshold, err := cfg.MmapThresholdBytes()
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"hash":           algo,
		"mmap_threshold": format.FormatBytes(threshold),
	}).Debug("classifier configured")

	return identify.New(identify.Options{
		FS:       identify.OSFS{MmapThreshold: threshold},
		Checksum: algo,
		Logger:   log,
		OnRecord: onRecord,
	})
}

// classify runs the fail-fast traversal, or the best-effort one with
// --keep-going. In the latter case the returned error joins every failure
// and the records of the successful paths are still returned.
func classify(c *identify.Classifier, paths []string, opts identifyOptions) ([]identify.Record, error) {
	if !opts.keepGoing {
		if opts.recursive {
			return c.ClassifyBatchRecursive(paths)
		}
		return c.ClassifyBatch(paths)
	}

	records, errs := identify.Records(c.ClassifyEach(paths, opts.recursive))
	if len(errs) > 0 {
		return records, fmt.Errorf("%d of %d paths failed: %w", len(errs), len(paths), errors.Join(errs...))
	}
	return records, nil
}

func selectRecords(records []identify.Record, opts identifyOptions) ([]identify.Record, error) {
	switch {
	case opts.files:
		records = identify.FilterFiles(records)
	case opts.dirs:
		records = identify.FilterDirectories(records)
	}

	if len(opts.include) > 0 {
		m, err := identify.GlobMatcher(opts.include...)
		if err != nil {
			return nil, err
		}
		records = identify.FilterPaths(records, m)
	}
	if len(opts.exclude) > 0 {
		m, err := identify.GlobMatcher(opts.exclude...)
		if err != nil {
			return nil, err
		}
		records = identify.ExcludePaths(records, m)
	}
	return records, nil
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	if _, err := osutil.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
