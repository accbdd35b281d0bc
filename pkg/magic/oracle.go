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
package magic

import (
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
)

type category struct {
	name  string
	types matchers.Map
}

var categories = []category{
	{"image", matchers.Image},
	{"video", matchers.Video},
	{"audio", matchers.Audio},
	{"font", matchers.Font},
	{"document", matchers.Document},
	{"archive", matchers.Archive},
	{"application", matchers.Application},
}

// OracleMatcher identifies buffers with the generic sniffers of
// github.com/h2non/filetype. Descriptions read "<mime> (<category>)", or the
// bare mime type when the kind belongs to no known category.
type OracleMatcher struct{}

func (OracleMatcher) Match(buf []byte) Result {
	kind, err := filetype.Match(buf)
	if err != nil || kind == filetype.Unknown {
		return Unrecognized
	}
	return Result{Description: Describe(kind), Source: SourceOracle}
}

// Describe formats an oracle kind.
func Describe(kind types.Type) string {
	if c := Category(kind); c != "" {
		return kind.MIME.Value + " (" + c + ")"
	}
	return kind.MIME.Value
}

// Category returns the oracle category of kind, or "" if it has none.
func Category(kind types.Type) string {
	for _, c := range categories {
		if _, ok := c.types[kind]; ok {
			return c.name
		}
	}
	return ""
}
