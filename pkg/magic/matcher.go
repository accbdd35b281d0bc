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

import "fmt"

// Source records which strategy produced a Result.
type Source uint8

const (
	SourceNone Source = iota
	SourceSignature
	SourceOracle
)

func (s Source) String() string {
	switch s {
	case SourceSignature:
		return "signature"
	case SourceOracle:
		return "oracle"
	default:
		return "none"
	}
}

func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Source) UnmarshalText(b []byte) error {
	switch string(b) {
	case "signature":
		*s = SourceSignature
	case "oracle":
		*s = SourceOracle
	case "none", "":
		*s = SourceNone
	default:
		return fmt.Errorf("unknown match source %q", b)
	}
	return nil
}

// Result is either Matched, carrying a description and its Source, or
// Unrecognized.
type Result struct {
	Description string
	Source      Source
}

// Unrecognized is the Result of a buffer no strategy could identify.
var Unrecognized = Result{}

// Matched reports whether the result carries a description.
func (r Result) Matched() bool {
	return r.Source != SourceNone
}

// Matcher identifies a buffer. Implementations must not retain buf.
type Matcher interface {
	Match(buf []byte) Result
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(buf []byte) Result

func (f MatcherFunc) Match(buf []byte) Result {
	return f(buf)
}

// Chain tries each matcher in order and returns the first matched result.
type Chain []Matcher

func (c Chain) Match(buf []byte) Result {
	for _, m := range c {
		if r := m.Match(buf); r.Matched() {
			return r
		}
	}
	return Unrecognized
}

// Default returns the standard lookup: the built-in signature table, then
// the content-sniffing oracle.
func Default() Chain {
	return Chain{Builtin(), OracleMatcher{}}
}
