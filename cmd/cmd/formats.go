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
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/h2non/filetype/types"
	"github.com/ostafen/ftype/pkg/magic"
	"github.com/spf13/cobra"
)

func DefineFormatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List all recognized file formats",
		Long: `The 'formats' command displays the signature table in matching order: the first signature
whose magic bytes appear at its offset names the file. With --oracle it lists instead the
types recognized by the content sniffer used when no signature matches.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunFormats,
	}

	cmd.Flags().Bool("oracle", false, "list the types of the fallback content sniffer")
	return cmd
}

func RunFormats(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	if oracle, _ := cmd.Flags().GetBool("oracle"); oracle {
		fmt.Fprintln(w, "EXT\tDESC")
		for _, kind := range oracleTypes() {
			fmt.Fprintf(w, "%s\t%s\n", kind.Extension, magic.Describe(kind))
		}
		return w.Flush()
	}

	sigs := magic.Signatures()
	fmt.Fprintln(w, "OFFSET\tSIGNATURE\tDESC")
	for _, sig := range sigs {
		fmt.Fprintf(w, "%d\t%s\t%s\n",
			sig.Offset,
			hex.EncodeToString(sig.Magic),
			sig.Description,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d signatures, the shortest needs %d bytes\n", len(sigs), magic.MinLen(sigs))
	return nil
}

// oracleTypes returns the kinds registered with the content sniffer, sorted
// by extension.
func oracleTypes() []types.Type {
	var kinds []types.Type
	types.Types.Range(func(_, v any) bool {
		if kind, ok := v.(types.Type); ok && kind != types.Unknown {
			kinds = append(kinds, kind)
		}
		return true
	})

	slices.SortFunc(kinds, func(a, b types.Type) int {
		return strings.Compare(a.Extension, b.Extension)
	})
	return kinds
}
