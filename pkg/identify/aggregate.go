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
package identify

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

func filter(records []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterFiles keeps the non-directory records, in order.
func FilterFiles(records []Record) []Record {
	return filter(records, func(r Record) bool { return !r.IsDir })
}

// FilterDirectories keeps the directory records, in order.
func FilterDirectories(records []Record) []Record {
	return filter(records, func(r Record) bool { return r.IsDir })
}

// Group holds the records sharing a description.
type Group struct {
	Description string   `json:"description" yaml:"description"`
	Records     []Record `json:"records" yaml:"records"`
}

// Groups is ordered by the first appearance of each description.
type Groups []Group

// Get returns the records described by description.
func (g Groups) Get(description string) ([]Record, bool) {
	for _, grp := range g {
		if grp.Description == description {
			return grp.Records, true
		}
	}
	return nil, false
}

// Len returns the number of distinct descriptions.
func (g Groups) Len() int {
	return len(g)
}

// Descriptions returns the group keys in order.
func (g Groups) Descriptions() []string {
	keys := make([]string, len(g))
	for i, grp := range g {
		keys[i] = grp.Description
	}
	return keys
}

// GroupByType groups records by description. Neither the keys nor the
// records within a group are sorted: both keep first-seen order.
func GroupByType(records []Record) Groups {
	var groups Groups
	index := make(map[string]int)

	for _, r := range records {
		i, ok := index[r.Description]
		if !ok {
			i = len(groups)
			index[r.Description] = i
			groups = append(groups, Group{Description: r.Description})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// PathMatcher selects records by path.
type PathMatcher interface {
	Match(path string) bool
}

type globs []glob.Glob

func (g globs) Match(path string) bool {
	path = filepath.ToSlash(path)
	for _, p := range g {
		if p.Match(path) {
			return true
		}
	}
	return false
}

// GlobMatcher matches a path against any of patterns. Patterns use '/' as
// separator: '*' stays within a path element and '**' spans elements.
func GlobMatcher(patterns ...string) (PathMatcher, error) {
	g := make(globs, 0, len(patterns))
	for _, p := range patterns {
		compiled, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		g = append(g, compiled)
	}
	return g, nil
}

// FilterPaths keeps the records whose path m matches, in order.
func FilterPaths(records []Record, m PathMatcher) []Record {
	return filter(records, func(r Record) bool { return m.Match(r.Path) })
}

// ExcludePaths drops the records whose path m matches, in order.
func ExcludePaths(records []Record, m PathMatcher) []Record {
	return filter(records, func(r Record) bool { return !m.Match(r.Path) })
}
