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
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ostafen/ftype/pkg/checksum"
	"github.com/ostafen/ftype/pkg/identify"
	"github.com/ostafen/ftype/pkg/util/format"
	"gopkg.in/yaml.v3"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatDFXML = "dfxml"
)

// Meta is the run information carried by formats that have a header.
type Meta struct {
	RunID       string
	CommandLine string
	Sources     []string
	// Hash labels the digests of a DFXML report.
	Hash checksum.Algorithm
}

// Write renders records in the given format.
func Write(w io.Writer, format string, records []identify.Record, meta Meta) error {
	switch format {
	case FormatText:
		return writeText(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	case FormatDFXML:
		return WriteDFXML(w, records, meta)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteGroups renders groups in the given format. DFXML has no notion of
// groups: its file objects follow group order.
func WriteGroups(w io.Writer, format string, groups identify.Groups, meta Meta) error {
	switch format {
	case FormatText:
		return writeTextGroups(w, groups)
	case FormatJSON:
		return writeJSON(w, groups)
	case FormatYAML:
		return writeYAML(w, groups)
	case FormatDFXML:
		var records []identify.Record
		for _, g := range groups {
			records = append(records, g.Records...)
		}
		return WriteDFXML(w, records, meta)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeText(w io.Writer, records []identify.Record) error {
	tw := newTabWriter(w)
	writeRows(tw, records)
	return tw.Flush()
}

func writeTextGroups(w io.Writer, groups identify.Groups) error {
	tw := newTabWriter(w)
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s (%d)\n", g.Description, len(g.Records))
		writeRows(tw, g.Records)
	}
	return tw.Flush()
}

func writeRows(w io.Writer, records []identify.Record) {
	withSum := hasChecksum(records)

	header := "PATH\tTYPE\tSIZE\tSOURCE"
	if withSum {
		header += "\tCHECKSUM"
	}
	fmt.Fprintln(w, header)

	for _, r := range records {
		fmt.Fprint(w, Line(r))
		if withSum {
			fmt.Fprintf(w, "\t%s", r.Checksum)
		}
		fmt.Fprintln(w)
	}
}

// Line formats a record as tab separated PATH, TYPE, SIZE and SOURCE
// columns, without a trailing newline.
func Line(r identify.Record) string {
	size := "-"
	if n, ok := r.SizeBytes(); ok {
		size = format.FormatBytes(int64(n))
	}

	return strings.Join([]string{r.Path, r.Description, size, r.Source.String()}, "\t")
}

func hasChecksum(records []identify.Record) bool {
	for _, r := range records {
		if r.Checksum != "" {
			return true
		}
	}
	return false
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
