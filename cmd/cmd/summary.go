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
	"os"
	"strings"

	"github.com/ostafen/ftype/internal/config"
	"github.com/ostafen/ftype/internal/report"
	"github.com/ostafen/ftype/pkg/identify"
	"github.com/spf13/cobra"
)

func DefineSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <report.xml>",
		Short: "Group the records of a DFXML report by type",
		Long: `The 'summary' command reads a report written by 'identify --output dfxml' and prints its
records grouped by type, in order of first appearance.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunSummary,
	}

	cmd.Flags().Bool("files", false, "only report files")
	cmd.Flags().StringP(config.KeyOutput, "o", config.Defaults().Output, "output format ("+strings.Join(config.Outputs, ", ")+")")
	return cmd
}

func RunSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		if os.IsNotExist(err) {
			return &identify.NotFoundError{Path: args[0]}
		}
		return err
	}
	defer f.Close()

	records, err := report.ReadDFXML(f)
	if err != nil {
		return err
	}

	if files, _ := cmd.Flags().GetBool("files"); files {
		records = identify.FilterFiles(records)
	}

	newLogger(cmd, cfg).WithField("records", len(records)).Debug("report loaded")

	return report.WriteGroups(cmd.OutOrStdout(), cfg.Output, identify.GroupByType(records), report.Meta{
		Sources: []string{args[0]},
	})
}
