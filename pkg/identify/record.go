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

import "github.com/ostafen/ftype/pkg/magic"

const (
	DirectoryDescription = "Directory"
	UnknownDescription   = "Unknown file type"
)

// Record is the classification of a buffer, file or directory.
type Record struct {
	Path        string       `json:"path,omitempty" yaml:"path,omitempty"`
	Description string       `json:"description" yaml:"description"`
	IsDir       bool         `json:"is_dir" yaml:"is_dir"`
	Size        *uint64      `json:"size,omitempty" yaml:"size,omitempty"`
	Source      magic.Source `json:"source" yaml:"source"`
	Checksum    string       `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

// SizeBytes returns the size and whether it is set. Directories have none.
func (r Record) SizeBytes() (uint64, bool) {
	if r.Size == nil {
		return 0, false
	}
	return *r.Size, true
}

func sizePtr(n uint64) *uint64 {
	return &n
}

func directoryRecord(path string) Record {
	return Record{
		Path:        path,
		Description: DirectoryDescription,
		IsDir:       true,
	}
}

// ClassifyBytes identifies buf with the default matcher chain. The boolean
// is false when neither the signature table nor the oracle recognise it.
func ClassifyBytes(buf []byte) (Record, bool) {
	return classifyBytes(magic.Default(), buf)
}

func classifyBytes(m magic.Matcher, buf []byte) (Record, bool) {
	r := m.Match(buf)
	if !r.Matched() {
		return Record{}, false
	}
	return Record{
		Description: r.Description,
		Size:        sizePtr(uint64(len(buf))),
		Source:      r.Source,
	}, true
}
