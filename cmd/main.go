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
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ostafen/ftype/cmd/cmd"
	"github.com/ostafen/ftype/internal/env"
	"github.com/ostafen/ftype/pkg/identify"
)

func main() {
	if os.Getenv("FTYPE_NO_LOGO") == "" {
		PrintLogo()
	}

	if err := cmd.Execute(); err != nil {
		if errors.Is(err, identify.ErrPathNotFound) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// PrintLogo writes the banner to stderr, keeping stdout for reports.
func PrintLogo() {
	w := os.Stderr
	fmt.Fprintln(w, "  __ _                   ")
	fmt.Fprintln(w, " / _| |_ _   _ _ __   ___ ")
	fmt.Fprintln(w, "| |_| __| | | | '_ \\ / _ \\")
	fmt.Fprintln(w, "|  _| |_| |_| | |_) |  __/")
	fmt.Fprintln(w, "|_|  \\__|\\__, | .__/ \\___|")
	fmt.Fprintln(w, "         |___/|_|         ")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Magic number file type identification")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Version:    %s\n", env.Version)
	fmt.Fprintf(w, "Commit:     %s\n", env.CommitHash)
	fmt.Fprintf(w, "Build Time: %s\n", env.BuildTime)
	fmt.Fprintln(w)
}
